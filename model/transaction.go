package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeDeposit  = "deposit"
	TypeWithdraw = "withdraw"
)

// Transaction is one immutable ledger entry: a balance-affecting event
// together with a snapshot of the account balance right after it applied.
type Transaction struct {
	ID            int64           `json:"-"`
	TransactionID string          `json:"transaction_id"`
	AccountID     string          `json:"account_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	CreatedAt     time.Time       `json:"created_at"`
}
