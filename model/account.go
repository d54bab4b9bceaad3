package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultOpeningBalance is credited to every account whose signup request
// does not carry an explicit starting balance.
var DefaultOpeningBalance = decimal.NewFromFloat(1000.00)

// Account is a registered holder's record: identity, credentials, balance
// and transaction history. Balance and Transactions are only ever mutated
// through the saldo services, never directly.
type Account struct {
	ID           int64           `json:"-"`
	AccountID    string          `json:"account_id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	CardNumber   string          `json:"card_number"`
	PIN          string          `json:"-"`
	Balance      decimal.Decimal `json:"balance"`
	Version      int64           `json:"-"`
	Transactions []Transaction   `json:"transactions,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewTransaction applies a balance-affecting event to the account and
// returns the ledger entry recording it. The entry carries a snapshot of
// the balance immediately after the event; it is prepended so the
// transaction list stays newest first.
func (a *Account) NewTransaction(txnType string, amount decimal.Decimal) Transaction {
	switch txnType {
	case TypeDeposit:
		a.Balance = a.Balance.Add(amount)
	case TypeWithdraw:
		a.Balance = a.Balance.Sub(amount)
	}
	txn := Transaction{
		TransactionID: GenerateUUIDWithSuffix("txn"),
		AccountID:     a.AccountID,
		Type:          txnType,
		Amount:        amount,
		BalanceAfter:  a.Balance,
		CreatedAt:     time.Now(),
	}
	a.Transactions = append([]Transaction{txn}, a.Transactions...)
	return txn
}

// CanWithdraw reports whether the account holds enough funds to withdraw
// the given amount. Overdrafts are never permitted.
func (a *Account) CanWithdraw(amount decimal.Decimal) bool {
	return a.Balance.Cmp(amount) >= 0
}
