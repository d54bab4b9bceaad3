package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/saldo-ledger/saldo"
	"github.com/saldo-ledger/saldo/internal/apierror"
)

type Api struct {
	saldo  *saldo.Saldo
	router *gin.Engine
}

func (a Api) Router() *gin.Engine {
	router := a.router
	router.POST("/api/signup", a.Signup)
	router.POST("/api/login", a.Login)
	router.GET("/api/user/:id", a.GetAccount)
	router.POST("/api/deposit", a.Deposit)
	router.POST("/api/withdraw", a.Withdraw)
	router.GET("/api/transactions/:userId", a.GetTransactions)
	return a.router
}

func NewAPI(s *saldo.Saldo) *Api {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, "server running...")
	})

	r.GET("/api/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "backend is running",
		})
	})

	return &Api{saldo: s, router: r}
}

// respondError translates a service failure into a status code through the
// single apierror mapping table; handlers never pick statuses themselves.
func respondError(c *gin.Context, err error) {
	message := "internal server error"
	if apiErr, ok := err.(apierror.APIError); ok {
		message = apiErr.Message
	}
	c.JSON(apierror.MapErrorToHTTPStatus(err), gin.H{
		"success": false,
		"message": message,
	})
}
