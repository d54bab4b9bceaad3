package memory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/saldo-ledger/saldo/database"
	"github.com/saldo-ledger/saldo/internal/apierror"
	"github.com/saldo-ledger/saldo/model"
)

// Store is an in-memory implementation of database.IDataSource. It mirrors
// the Postgres datasource's contract: lookups return sql.ErrNoRows when
// nothing matches, and UpdateAccountBalance enforces the same optimistic
// version check. Used when no data source DNS is configured, and by tests.
type Store struct {
	mu           sync.Mutex
	accounts     map[string]model.Account
	transactions map[string][]model.Transaction
}

func NewStore() *Store {
	return &Store{
		accounts:     make(map[string]model.Account),
		transactions: make(map[string][]model.Transaction),
	}
}

func (s *Store) CreateAccount(ctx context.Context, account model.Account) (model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.Email == account.Email || existing.CardNumber == account.CardNumber {
			return model.Account{}, apierror.NewAPIError(apierror.ErrConflict, "email or card number already registered", nil)
		}
	}

	account.AccountID = model.GenerateUUIDWithSuffix("acc")
	account.CreatedAt = time.Now()
	s.accounts[account.AccountID] = account
	return account, nil
}

func (s *Store) GetAccountByID(ctx context.Context, id string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &account, nil
}

func (s *Store) GetAccountByCardNumber(ctx context.Context, cardNumber string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.CardNumber == cardNumber {
			account := account
			return &account, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.Email == email {
			account := account
			return &account, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *Store) UpdateAccountBalance(ctx context.Context, account *model.Account, txn *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.accounts[account.AccountID]
	if !ok {
		return sql.ErrNoRows
	}
	if stored.Version != account.Version {
		return database.ErrVersionConflict
	}

	stored.Balance = account.Balance
	stored.Version++
	s.accounts[account.AccountID] = stored
	s.transactions[account.AccountID] = append(s.transactions[account.AccountID], *txn)
	account.Version = stored.Version
	return nil
}

func (s *Store) GetTransactions(ctx context.Context, accountID string) ([]model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Entries are appended in commit order; reverse for newest first.
	stored := s.transactions[accountID]
	transactions := make([]model.Transaction, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		transactions = append(transactions, stored[i])
	}
	return transactions, nil
}

// Compile-time check: ensure Store implements IDataSource.
var _ database.IDataSource = (*Store)(nil)
