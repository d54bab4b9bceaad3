package saldo

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saldo-ledger/saldo/database"
	"github.com/saldo-ledger/saldo/database/mocks"
	"github.com/saldo-ledger/saldo/internal/apierror"
	"github.com/saldo-ledger/saldo/model"
)

func TestDeposit(t *testing.T) {
	s := newTestSaldo()
	ctx := context.Background()

	created, err := s.CreateAccount(ctx, fakeSignup())
	require.NoError(t, err)

	account, txn, err := s.Deposit(ctx, created.AccountID, decimal.NewFromFloat(250.50))
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromFloat(1250.50)))
	assert.Equal(t, model.TypeDeposit, txn.Type)
	assert.True(t, txn.Amount.Equal(decimal.NewFromFloat(250.50)))
	assert.True(t, txn.BalanceAfter.Equal(account.Balance))
}

func TestDeposit_InvalidAmount(t *testing.T) {
	s := newTestSaldo()
	ctx := context.Background()

	created, err := s.CreateAccount(ctx, fakeSignup())
	require.NoError(t, err)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromFloat(-10)} {
		_, _, err := s.Deposit(ctx, created.AccountID, amount)
		apiErr, ok := err.(apierror.APIError)
		require.True(t, ok)
		assert.Equal(t, apierror.ErrInvalidInput, apiErr.Code)
	}

	// Nothing was recorded.
	transactions, err := s.GetTransactions(ctx, created.AccountID)
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestDeposit_AccountNotFound(t *testing.T) {
	s := newTestSaldo()

	_, _, err := s.Deposit(context.Background(), "acc_missing", decimal.NewFromFloat(10))
	apiErr, ok := err.(apierror.APIError)
	require.True(t, ok)
	assert.Equal(t, apierror.ErrNotFound, apiErr.Code)
}

func TestWithdraw(t *testing.T) {
	s := newTestSaldo()
	ctx := context.Background()

	created, err := s.CreateAccount(ctx, fakeSignup())
	require.NoError(t, err)

	account, txn, err := s.Withdraw(ctx, created.AccountID, decimal.NewFromFloat(400))
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromFloat(600)))
	assert.Equal(t, model.TypeWithdraw, txn.Type)
	assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromFloat(600)))
}

func TestWithdraw_ToExactlyZero(t *testing.T) {
	s := newTestSaldo()
	ctx := context.Background()

	created, err := s.CreateAccount(ctx, fakeSignup())
	require.NoError(t, err)

	account, _, err := s.Withdraw(ctx, created.AccountID, decimal.NewFromFloat(1000))
	require.NoError(t, err)
	assert.True(t, account.Balance.IsZero())
}

func TestWithdraw_InsufficientFunds(t *testing.T) {
	s := newTestSaldo()
	ctx := context.Background()

	created, err := s.CreateAccount(ctx, fakeSignup())
	require.NoError(t, err)

	_, _, err = s.Withdraw(ctx, created.AccountID, decimal.NewFromFloat(1000.01))
	apiErr, ok := err.(apierror.APIError)
	require.True(t, ok)
	assert.Equal(t, apierror.ErrInsufficientFunds, apiErr.Code)

	// Balance and history are untouched by the rejected withdrawal.
	account, err := s.GetAccount(ctx, created.AccountID)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromFloat(1000)))
	assert.Empty(t, account.Transactions)
}

func TestTransactionHistory_NewestFirstWithRunningBalance(t *testing.T) {
	s := newTestSaldo()
	ctx := context.Background()

	created, err := s.CreateAccount(ctx, fakeSignup())
	require.NoError(t, err)

	_, _, err = s.Deposit(ctx, created.AccountID, decimal.NewFromFloat(100))
	require.NoError(t, err)
	_, _, err = s.Withdraw(ctx, created.AccountID, decimal.NewFromFloat(300))
	require.NoError(t, err)
	_, _, err = s.Deposit(ctx, created.AccountID, decimal.NewFromFloat(25))
	require.NoError(t, err)

	transactions, err := s.GetTransactions(ctx, created.AccountID)
	require.NoError(t, err)
	require.Len(t, transactions, 3)

	assert.Equal(t, model.TypeDeposit, transactions[0].Type)
	assert.True(t, transactions[0].BalanceAfter.Equal(decimal.NewFromFloat(825)))
	assert.Equal(t, model.TypeWithdraw, transactions[1].Type)
	assert.True(t, transactions[1].BalanceAfter.Equal(decimal.NewFromFloat(800)))
	assert.Equal(t, model.TypeDeposit, transactions[2].Type)
	assert.True(t, transactions[2].BalanceAfter.Equal(decimal.NewFromFloat(1100)))

	// The newest entry's snapshot equals the current balance.
	account, err := s.GetAccount(ctx, created.AccountID)
	require.NoError(t, err)
	assert.True(t, transactions[0].BalanceAfter.Equal(account.Balance))
}

func TestGetTransactions_NotFound(t *testing.T) {
	s := newTestSaldo()

	_, err := s.GetTransactions(context.Background(), "acc_missing")
	apiErr, ok := err.(apierror.APIError)
	require.True(t, ok)
	assert.Equal(t, apierror.ErrNotFound, apiErr.Code)
}

func TestConcurrentDepositAndWithdraw(t *testing.T) {
	s := newTestSaldo()
	ctx := context.Background()

	account := fakeSignup()
	account.Balance = decimal.NewFromFloat(100)
	created, err := s.CreateAccount(ctx, account)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _, err := s.Deposit(ctx, created.AccountID, decimal.NewFromFloat(10))
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, _, err := s.Withdraw(ctx, created.AccountID, decimal.NewFromFloat(5))
		assert.NoError(t, err)
	}()
	wg.Wait()

	final, err := s.GetAccount(ctx, created.AccountID)
	require.NoError(t, err)
	assert.True(t, final.Balance.Equal(decimal.NewFromFloat(105)), "expected 105, got %s", final.Balance)
	assert.Len(t, final.Transactions, 2)
}

func TestConcurrentDeposits_NoLostUpdates(t *testing.T) {
	s := newTestSaldo()
	ctx := context.Background()

	created, err := s.CreateAccount(ctx, fakeSignup())
	require.NoError(t, err)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := s.Deposit(ctx, created.AccountID, decimal.NewFromFloat(1))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	final, err := s.GetAccount(ctx, created.AccountID)
	require.NoError(t, err)
	assert.True(t, final.Balance.Equal(decimal.NewFromFloat(1050)), "expected 1050, got %s", final.Balance)
	assert.Len(t, final.Transactions, workers)

	// Every entry's snapshot matches the running balance at its point in
	// history.
	for i, txn := range final.Transactions[:len(final.Transactions)-1] {
		assert.True(t, txn.BalanceAfter.Sub(txn.Amount).Equal(final.Transactions[i+1].BalanceAfter))
	}
}

func TestApplyTransaction_RetriesOnVersionConflict(t *testing.T) {
	ds := &mocks.MockDataSource{}
	s := New(ds)
	ctx := context.Background()

	// Each attempt reloads the account fresh.
	ds.On("GetAccountByID", mock.Anything, "acc_1").Return(&model.Account{
		AccountID: "acc_1",
		Balance:   decimal.NewFromFloat(100),
		Version:   1,
	}, nil).Once()
	ds.On("GetAccountByID", mock.Anything, "acc_1").Return(&model.Account{
		AccountID: "acc_1",
		Balance:   decimal.NewFromFloat(100),
		Version:   2,
	}, nil).Once()
	// Another process commits between load and save once, then the replay
	// succeeds.
	ds.On("UpdateAccountBalance", mock.Anything, mock.Anything, mock.Anything).Return(database.ErrVersionConflict).Once()
	ds.On("UpdateAccountBalance", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	_, txn, err := s.Deposit(ctx, "acc_1", decimal.NewFromFloat(10))
	require.NoError(t, err)
	assert.Equal(t, model.TypeDeposit, txn.Type)
	ds.AssertNumberOfCalls(t, "UpdateAccountBalance", 2)
}
