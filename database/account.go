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

package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/saldo-ledger/saldo/internal/apierror"
	"github.com/saldo-ledger/saldo/model"
)

const pqUniqueViolation = "23505"

// CreateAccount inserts a new Account into the database. The account id and
// creation timestamp are assigned here; the caller is expected to have
// normalized the email and card number already.
func (d Datasource) CreateAccount(ctx context.Context, account model.Account) (model.Account, error) {
	account.AccountID = model.GenerateUUIDWithSuffix("acc")
	account.CreatedAt = time.Now()

	_, err := d.Conn.ExecContext(ctx, `
		INSERT INTO accounts (account_id, name, email, card_number, pin, balance, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, account.AccountID, account.Name, account.Email, account.CardNumber, account.PIN, account.Balance, account.Version, account.CreatedAt)
	if err != nil {
		// Uniqueness races slip past the service-level lookup; surface them
		// as the same conflict the lookup would have produced.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqUniqueViolation {
			return model.Account{}, apierror.NewAPIError(apierror.ErrConflict, "email or card number already registered", err)
		}
		return model.Account{}, err
	}

	return account, nil
}

// GetAccountByID retrieves an account by its ID. Returns sql.ErrNoRows when
// no account exists.
func (d Datasource) GetAccountByID(ctx context.Context, id string) (*model.Account, error) {
	row := d.Conn.QueryRowContext(ctx, `
		SELECT account_id, name, email, card_number, pin, balance, version, created_at
		FROM accounts WHERE account_id = $1
	`, id)
	return scanAccountRow(row)
}

// GetAccountByCardNumber retrieves an account by its normalized card number.
func (d Datasource) GetAccountByCardNumber(ctx context.Context, cardNumber string) (*model.Account, error) {
	row := d.Conn.QueryRowContext(ctx, `
		SELECT account_id, name, email, card_number, pin, balance, version, created_at
		FROM accounts WHERE card_number = $1
	`, cardNumber)
	return scanAccountRow(row)
}

// GetAccountByEmail retrieves an account by its normalized email address.
func (d Datasource) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	row := d.Conn.QueryRowContext(ctx, `
		SELECT account_id, name, email, card_number, pin, balance, version, created_at
		FROM accounts WHERE email = $1
	`, email)
	return scanAccountRow(row)
}

func scanAccountRow(row *sql.Row) (*model.Account, error) {
	account := model.Account{}
	err := row.Scan(
		&account.AccountID,
		&account.Name,
		&account.Email,
		&account.CardNumber,
		&account.PIN,
		&account.Balance,
		&account.Version,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateAccountBalance persists a new balance together with the ledger
// entry that produced it, in a single database transaction. The update is
// guarded by the account version loaded by the caller: if another writer
// committed in between, ErrVersionConflict is returned and nothing is
// written. On success the in-memory version is advanced.
func (d Datasource) UpdateAccountBalance(ctx context.Context, account *model.Account, txn *model.Transaction) error {
	dbTx, err := d.Conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = dbTx.Rollback()
		}
	}()

	result, err := dbTx.ExecContext(ctx, `
		UPDATE accounts SET balance = $1, version = version + 1
		WHERE account_id = $2 AND version = $3
	`, account.Balance, account.AccountID, account.Version)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		err = ErrVersionConflict
		return err
	}

	_, err = dbTx.ExecContext(ctx, `
		INSERT INTO transactions (transaction_id, account_id, type, amount, balance_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, txn.TransactionID, txn.AccountID, txn.Type, txn.Amount, txn.BalanceAfter, txn.CreatedAt)
	if err != nil {
		return err
	}

	err = dbTx.Commit()
	if err != nil {
		return err
	}
	account.Version++
	return nil
}

// GetTransactions retrieves all ledger entries for an account, newest
// first.
func (d Datasource) GetTransactions(ctx context.Context, accountID string) ([]model.Transaction, error) {
	rows, err := d.Conn.QueryContext(ctx, `
		SELECT transaction_id, account_id, type, amount, balance_after, created_at
		FROM transactions WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		txn := model.Transaction{}
		err := rows.Scan(
			&txn.TransactionID,
			&txn.AccountID,
			&txn.Type,
			&txn.Amount,
			&txn.BalanceAfter,
			&txn.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}

var _ IDataSource = (*Datasource)(nil)
