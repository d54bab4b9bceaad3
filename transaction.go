/*
Copyright 2025 Saldo Ledger Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package saldo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/saldo-ledger/saldo/database"
	"github.com/saldo-ledger/saldo/internal/apierror"
	"github.com/saldo-ledger/saldo/model"
)

// maxSaveRetries bounds how often a balance mutation is replayed when the
// stored account version moved underneath it (another process committed
// between load and save).
const maxSaveRetries = 3

// Deposit credits amount to the account and records a deposit ledger entry
// carrying the new balance snapshot. Returns the updated account and the
// entry just created.
func (s *Saldo) Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (*model.Account, *model.Transaction, error) {
	if err := model.ValidateAmount(amount); err != nil {
		return nil, nil, apierror.NewAPIError(apierror.ErrInvalidInput, "invalid deposit amount", err.Error())
	}
	return s.applyTransaction(ctx, accountID, model.TypeDeposit, amount)
}

// Withdraw debits amount from the account and records a withdraw ledger
// entry. The withdrawal is rejected outright when it would drive the
// balance negative; no partial withdrawal, no overdraft.
func (s *Saldo) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (*model.Account, *model.Transaction, error) {
	if err := model.ValidateAmount(amount); err != nil {
		return nil, nil, apierror.NewAPIError(apierror.ErrInvalidInput, "invalid withdrawal amount", err.Error())
	}
	return s.applyTransaction(ctx, accountID, model.TypeWithdraw, amount)
}

// applyTransaction runs one load-mutate-save cycle under the account's
// exclusive lock. The lock serializes all in-process mutations to the
// account; the datasource's version check catches writers in other
// processes, in which case the cycle is replayed with backoff.
func (s *Saldo) applyTransaction(ctx context.Context, accountID, txnType string, amount decimal.Decimal) (*model.Account, *model.Transaction, error) {
	s.locks.Lock(accountID)
	defer s.locks.Unlock(accountID)

	var account *model.Account
	var txn model.Transaction

	operation := func() error {
		var err error
		account, err = s.datasource.GetAccountByID(ctx, accountID)
		if errors.Is(err, sql.ErrNoRows) {
			return backoff.Permanent(apierror.NewAPIError(apierror.ErrNotFound, "account not found", nil))
		}
		if err != nil {
			return backoff.Permanent(apierror.NewAPIError(apierror.ErrInternalServer, "failed to look up account", err))
		}

		if txnType == model.TypeWithdraw && !account.CanWithdraw(amount) {
			return backoff.Permanent(apierror.NewAPIError(apierror.ErrInsufficientFunds, "insufficient funds", nil))
		}

		txn = account.NewTransaction(txnType, amount)
		err = s.datasource.UpdateAccountBalance(ctx, account, &txn)
		if errors.Is(err, database.ErrVersionConflict) {
			logrus.WithField("account_id", accountID).Warn("balance save lost a version race, retrying")
			return err
		}
		if err != nil {
			return backoff.Permanent(apierror.NewAPIError(apierror.ErrInternalServer, "failed to save transaction", err))
		}
		return nil
	}

	err := backoff.Retry(operation, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxSaveRetries))
	if err != nil {
		var apiErr apierror.APIError
		if errors.As(err, &apiErr) {
			return nil, nil, apiErr
		}
		// Retries exhausted on version conflicts.
		return nil, nil, apierror.NewAPIError(apierror.ErrInternalServer, "failed to commit transaction", err)
	}

	logrus.WithFields(logrus.Fields{
		"account_id":     accountID,
		"type":           txnType,
		"amount":         amount,
		"balance_after":  txn.BalanceAfter,
		"transaction_id": txn.TransactionID,
	}).Info("transaction applied")
	return account, &txn, nil
}

// GetTransactions returns the account's full transaction history, newest
// first. A fresh call always returns the complete current list.
func (s *Saldo) GetTransactions(ctx context.Context, accountID string) ([]model.Transaction, error) {
	_, err := s.datasource.GetAccountByID(ctx, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierror.NewAPIError(apierror.ErrNotFound, "account not found", nil)
	}
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "failed to look up account", err)
	}
	transactions, err := s.datasource.GetTransactions(ctx, accountID)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "failed to load transactions", err)
	}
	return transactions, nil
}
