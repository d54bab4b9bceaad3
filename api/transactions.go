package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	model2 "github.com/saldo-ledger/saldo/api/model"
	"github.com/saldo-ledger/saldo/internal/apierror"
)

func (a Api) Deposit(c *gin.Context) {
	var req model2.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierror.NewAPIError(apierror.ErrInvalidInput, "invalid request body", err.Error()))
		return
	}

	if err := req.ValidateTransaction(); err != nil {
		respondError(c, apierror.NewAPIError(apierror.ErrInvalidInput, "invalid deposit amount", err.Error()))
		return
	}

	account, txn, err := a.saldo.Deposit(c.Request.Context(), req.UserID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     fmt.Sprintf("successfully deposited %s", req.Amount),
		"balance":     account.Balance,
		"transaction": txn,
	})
}

func (a Api) Withdraw(c *gin.Context) {
	var req model2.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierror.NewAPIError(apierror.ErrInvalidInput, "invalid request body", err.Error()))
		return
	}

	if err := req.ValidateTransaction(); err != nil {
		respondError(c, apierror.NewAPIError(apierror.ErrInvalidInput, "invalid withdrawal amount", err.Error()))
		return
	}

	account, txn, err := a.saldo.Withdraw(c.Request.Context(), req.UserID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     fmt.Sprintf("successfully withdrew %s", req.Amount),
		"balance":     account.Balance,
		"transaction": txn,
	})
}

func (a Api) GetTransactions(c *gin.Context) {
	userID := c.Param("userId")

	transactions, err := a.saldo.GetTransactions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"transactions": transactions,
	})
}
