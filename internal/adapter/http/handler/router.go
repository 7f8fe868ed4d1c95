package handler

import (
	"wallet-topup-service/internal/adapter/http/middleware"
	"wallet-topup-service/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	TopupSvc       ports.TopupService
	Validator      ports.PayloadValidator
	SecretSource   ports.SecretSource
	SigSvc         ports.SignatureService
	TokenSvc       ports.TokenService
	WalletRepo     ports.WalletRepository
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Provider webhook, gated by the body signature.
	webhookAuth := middleware.WebhookAuth(deps.SecretSource, deps.SigSvc, deps.Logger)
	topupHandler := NewTopupHandler(deps.Validator, deps.TopupSvc, deps.Logger)
	r.POST("/wallet/top-up/notify", webhookAuth, topupHandler.Notify)

	// Read-only ledger views for the surrounding platform.
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	walletHandler := NewWalletHandler(deps.WalletRepo)
	users := r.Group("/users/:userId", jwtAuth)
	{
		users.GET("/wallet", walletHandler.GetWallet)
		users.GET("/payment-transactions", walletHandler.ListTransactions)
	}

	return r
}
