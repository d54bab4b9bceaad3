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
	"errors"

	"github.com/saldo-ledger/saldo/model"
)

// ErrVersionConflict is returned by UpdateAccountBalance when the persisted
// account version changed since it was loaded. The caller reloads and
// retries; the write was not applied.
var ErrVersionConflict = errors.New("account version conflict")

// IDataSource defines the interface for data source operations, grouping related functionalities.
type IDataSource interface {
	account     // Interface for account-related operations
	transaction // Interface for ledger-entry operations
}

// account defines methods for handling accounts.
type account interface {
	CreateAccount(ctx context.Context, account model.Account) (model.Account, error)        // Creates a new account
	GetAccountByID(ctx context.Context, id string) (*model.Account, error)                  // Retrieves an account by ID
	GetAccountByCardNumber(ctx context.Context, cardNumber string) (*model.Account, error)  // Retrieves an account by its normalized card number
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)            // Retrieves an account by its normalized email
	UpdateAccountBalance(ctx context.Context, account *model.Account, txn *model.Transaction) error // Persists a new balance and its ledger entry as one atomic unit
}

// transaction defines methods for handling ledger entries.
type transaction interface {
	GetTransactions(ctx context.Context, accountID string) ([]model.Transaction, error) // Retrieves an account's ledger entries, newest first
}
