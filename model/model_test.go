package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGenerateUUIDWithSuffix(t *testing.T) {
	module := "acc"
	id := GenerateUUIDWithSuffix(module)
	assert.Contains(t, id, module+"_")
}

func TestNormalizeCardNumber(t *testing.T) {
	assert.Equal(t, "12345678", NormalizeCardNumber("1234 5678"))
	assert.Equal(t, "12345678", NormalizeCardNumber(" 1234\t5678 "))
	assert.Equal(t, "12345678", NormalizeCardNumber("12345678"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
}

func TestValidateSignup(t *testing.T) {
	assert.NoError(t, ValidateSignup("Jane Doe", "jane@example.com", "12345678", "1234"))

	assert.Error(t, ValidateSignup("", "jane@example.com", "12345678", "1234"))
	assert.Error(t, ValidateSignup("Jane Doe", "", "12345678", "1234"))
	assert.Error(t, ValidateSignup("Jane Doe", "jane@example.com", "", "1234"))
	assert.Error(t, ValidateSignup("Jane Doe", "jane@example.com", "12345678", ""))

	// card number must be 4-16 digits
	assert.Error(t, ValidateSignup("Jane Doe", "jane@example.com", "123", "1234"))
	assert.Error(t, ValidateSignup("Jane Doe", "jane@example.com", "12345678901234567", "1234"))
	assert.Error(t, ValidateSignup("Jane Doe", "jane@example.com", "1234abcd", "1234"))
	assert.NoError(t, ValidateSignup("Jane Doe", "jane@example.com", "1234567890123456", "1234"))

	// PIN must be 4-6 digits
	assert.Error(t, ValidateSignup("Jane Doe", "jane@example.com", "12345678", "123"))
	assert.Error(t, ValidateSignup("Jane Doe", "jane@example.com", "12345678", "1234567"))
	assert.Error(t, ValidateSignup("Jane Doe", "jane@example.com", "12345678", "12ab"))
	assert.NoError(t, ValidateSignup("Jane Doe", "jane@example.com", "12345678", "123456"))
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(decimal.NewFromFloat(0.01)))
	assert.Error(t, ValidateAmount(decimal.Zero))
	assert.Error(t, ValidateAmount(decimal.NewFromFloat(-5)))
}

func TestAccount_NewTransaction_Deposit(t *testing.T) {
	account := &Account{
		AccountID: GenerateUUIDWithSuffix("acc"),
		Balance:   decimal.NewFromFloat(1000),
	}

	txn := account.NewTransaction(TypeDeposit, decimal.NewFromFloat(250.50))

	assert.Equal(t, TypeDeposit, txn.Type)
	assert.True(t, account.Balance.Equal(decimal.NewFromFloat(1250.50)))
	assert.True(t, txn.BalanceAfter.Equal(account.Balance))
	assert.WithinDuration(t, time.Now(), txn.CreatedAt, time.Second)
	assert.Len(t, account.Transactions, 1)
}

func TestAccount_NewTransaction_PrependsNewestFirst(t *testing.T) {
	account := &Account{
		AccountID: GenerateUUIDWithSuffix("acc"),
		Balance:   decimal.NewFromFloat(100),
	}

	first := account.NewTransaction(TypeDeposit, decimal.NewFromFloat(10))
	second := account.NewTransaction(TypeWithdraw, decimal.NewFromFloat(30))

	assert.Len(t, account.Transactions, 2)
	assert.Equal(t, second.TransactionID, account.Transactions[0].TransactionID)
	assert.Equal(t, first.TransactionID, account.Transactions[1].TransactionID)
	assert.True(t, account.Transactions[0].BalanceAfter.Equal(account.Balance))
	assert.True(t, account.Balance.Equal(decimal.NewFromFloat(80)))
}

func TestAccount_CanWithdraw(t *testing.T) {
	account := &Account{Balance: decimal.NewFromFloat(100)}

	assert.True(t, account.CanWithdraw(decimal.NewFromFloat(100)))
	assert.True(t, account.CanWithdraw(decimal.NewFromFloat(99.99)))
	assert.False(t, account.CanWithdraw(decimal.NewFromFloat(100.01)))
}
