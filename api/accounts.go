package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	model2 "github.com/saldo-ledger/saldo/api/model"
	"github.com/saldo-ledger/saldo/internal/apierror"
)

func (a Api) Signup(c *gin.Context) {
	var signup model2.Signup
	if err := c.ShouldBindJSON(&signup); err != nil {
		respondError(c, apierror.NewAPIError(apierror.ErrInvalidInput, "invalid request body", err.Error()))
		return
	}

	if err := signup.ValidateSignup(); err != nil {
		respondError(c, apierror.NewAPIError(apierror.ErrInvalidInput, "all fields are required", err.Error()))
		return
	}

	account, err := a.saldo.CreateAccount(c.Request.Context(), signup.ToAccount())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "account created successfully",
		"user":    account,
	})
}

func (a Api) Login(c *gin.Context) {
	var login model2.Login
	if err := c.ShouldBindJSON(&login); err != nil {
		respondError(c, apierror.NewAPIError(apierror.ErrInvalidInput, "invalid request body", err.Error()))
		return
	}

	if err := login.ValidateLogin(); err != nil {
		respondError(c, apierror.NewAPIError(apierror.ErrInvalidInput, "card number and PIN are required", err.Error()))
		return
	}

	account, err := a.saldo.Authenticate(c.Request.Context(), login.CardNumber, login.PIN)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "login successful",
		"user":    account,
	})
}

func (a Api) GetAccount(c *gin.Context) {
	id := c.Param("id")

	account, err := a.saldo.GetAccount(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    account,
	})
}
