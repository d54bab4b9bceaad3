package model

import (
	"github.com/shopspring/decimal"

	"github.com/saldo-ledger/saldo/model"
)

// Request bodies keep the original ATM API's field names so existing
// clients keep working.

type Signup struct {
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	CardNumber string          `json:"cardNumber"`
	PIN        string          `json:"pin"`
	Balance    decimal.Decimal `json:"balance"`
}

type Login struct {
	CardNumber string `json:"cardNumber"`
	PIN        string `json:"pin"`
}

type TransactionRequest struct {
	UserID string          `json:"userId"`
	Amount decimal.Decimal `json:"amount"`
}

func (s *Signup) ToAccount() model.Account {
	return model.Account{
		Name:       s.Name,
		Email:      s.Email,
		CardNumber: s.CardNumber,
		PIN:        s.PIN,
		Balance:    s.Balance,
	}
}
