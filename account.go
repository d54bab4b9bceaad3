package saldo

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/saldo-ledger/saldo/internal/apierror"
	"github.com/saldo-ledger/saldo/model"
)

func (s *Saldo) checkUniqueness(ctx context.Context, email, cardNumber string) error {
	_, err := s.datasource.GetAccountByEmail(ctx, email)
	if err == nil {
		return apierror.NewAPIError(apierror.ErrConflict, "email or card number already registered", nil)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return apierror.NewAPIError(apierror.ErrInternalServer, "failed to check email", err)
	}

	_, err = s.datasource.GetAccountByCardNumber(ctx, cardNumber)
	if err == nil {
		return apierror.NewAPIError(apierror.ErrConflict, "email or card number already registered", nil)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return apierror.NewAPIError(apierror.ErrInternalServer, "failed to check card number", err)
	}
	return nil
}

// CreateAccount registers a new account. Field shapes are validated, the
// card number and email are normalized, uniqueness is checked against the
// datasource, and the opening balance defaults to 1000.00 when the request
// carries none.
func (s *Saldo) CreateAccount(ctx context.Context, account model.Account) (model.Account, error) {
	account.Name = strings.TrimSpace(account.Name)
	account.Email = model.NormalizeEmail(account.Email)
	account.CardNumber = model.NormalizeCardNumber(account.CardNumber)

	if err := model.ValidateSignup(account.Name, account.Email, account.CardNumber, account.PIN); err != nil {
		return model.Account{}, apierror.NewAPIError(apierror.ErrInvalidInput, err.Error(), nil)
	}
	if account.Balance.Cmp(decimal.Zero) < 0 {
		return model.Account{}, apierror.NewAPIError(apierror.ErrInvalidInput, "balance cannot be negative", nil)
	}

	if err := s.checkUniqueness(ctx, account.Email, account.CardNumber); err != nil {
		return model.Account{}, err
	}

	// A zero balance means the caller did not supply one.
	if account.Balance.IsZero() {
		account.Balance = model.DefaultOpeningBalance
	}
	account.Transactions = nil
	account.Version = 0

	created, err := s.datasource.CreateAccount(ctx, account)
	if err != nil {
		var apiErr apierror.APIError
		if errors.As(err, &apiErr) {
			return model.Account{}, apiErr
		}
		return model.Account{}, apierror.NewAPIError(apierror.ErrInternalServer, "failed to create account", err)
	}

	logrus.WithFields(logrus.Fields{
		"account_id": created.AccountID,
		"balance":    created.Balance,
	}).Info("account created")
	return created, nil
}

// Authenticate looks an account up by normalized card number and compares
// PINs. An unknown card and a wrong PIN produce the same failure so callers
// cannot enumerate registered cards.
func (s *Saldo) Authenticate(ctx context.Context, cardNumber, pin string) (*model.Account, error) {
	cardNumber = model.NormalizeCardNumber(cardNumber)

	account, err := s.datasource.GetAccountByCardNumber(ctx, cardNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierror.NewAPIError(apierror.ErrUnauthorized, "invalid card number or PIN", nil)
	}
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "failed to look up account", err)
	}
	if account.PIN != pin {
		return nil, apierror.NewAPIError(apierror.ErrUnauthorized, "invalid card number or PIN", nil)
	}

	account.Transactions, err = s.datasource.GetTransactions(ctx, account.AccountID)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "failed to load transactions", err)
	}
	return account, nil
}

// GetAccount retrieves an account by id with its transaction history
// attached, newest first.
func (s *Saldo) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	account, err := s.datasource.GetAccountByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierror.NewAPIError(apierror.ErrNotFound, "account not found", nil)
	}
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "failed to look up account", err)
	}

	account.Transactions, err = s.datasource.GetTransactions(ctx, account.AccountID)
	if err != nil {
		return nil, apierror.NewAPIError(apierror.ErrInternalServer, "failed to load transactions", err)
	}
	return account, nil
}
