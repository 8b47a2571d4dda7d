package handler

import (
	"onchain-discgolf/internal/adapter/http/middleware"
	"onchain-discgolf/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	WalletSvc      ports.WalletService
	InvoiceSvc     ports.InvoiceService
	TransferSvc    ports.TransferService
	RoundSvc       ports.RoundService
	PayoutSvc      ports.PayoutService
	LocalIdentity  string
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
// The API listens on loopback and is consumed by the scorecard UI shell,
// so there is no auth surface.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	v1 := r.Group("/api/v1")

	walletHandler := NewWalletHandler(deps.WalletSvc, deps.InvoiceSvc, deps.Logger)
	wallet := v1.Group("/wallet")
	{
		wallet.GET("/balance", walletHandler.GetBalance)
		wallet.POST("/topup", walletHandler.Topup)
	}

	roundHandler := NewRoundHandler(deps.RoundSvc, deps.PayoutSvc, deps.LocalIdentity, deps.Logger)
	paymentHandler := NewPaymentHandler(deps.RoundSvc, deps.TransferSvc, deps.InvoiceSvc, deps.LocalIdentity, deps.Logger)
	rounds := v1.Group("/rounds")
	{
		rounds.POST("", roundHandler.CreateRound)
		rounds.GET("/:id", roundHandler.GetRound)
		rounds.POST("/:id/players", roundHandler.AddPlayer)
		rounds.POST("/:id/scores", roundHandler.RecordScore)
		rounds.GET("/:id/players/:identity/obligation", roundHandler.Obligation)
		rounds.GET("/:id/pots", roundHandler.PotTotals)
		rounds.POST("/:id/finalize", roundHandler.Finalize)
		rounds.GET("/:id/payouts", roundHandler.PayoutStatus)
		rounds.GET("/:id/summary", roundHandler.Summary)

		rounds.POST("/:id/pay", paymentHandler.Pay)
		rounds.POST("/:id/invoice", paymentHandler.CreateEntryInvoice)
	}

	return r
}
