package http

import (
	"time"

	"auction-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const maxRequestBody = 1 << 20 // 1 MiB

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	AuctionSvc     ports.AuctionService
	PaymentSvc     ports.PaymentService
	LedgerSvc      ports.LedgerService
	TokenSvc       ports.CallbackTokenService
	RateLimitStore RateLimitCounter // nil disables rate limiting
	RateLimit      int64
	RateWindow     time.Duration
	HealthCheckers []ports.HealthChecker
	Log            zerolog.Logger
	Mode           string
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(deps.Mode)

	router := gin.New()
	router.Use(
		RequestID(),
		RequestLogger(deps.Log),
		Recovery(deps.Log),
		MaxBodySize(maxRequestBody),
	)

	// The limiter covers the bid and payment surfaces only; ledger reads and
	// health checks stay unthrottled.
	rateLimited := gin.HandlerFunc(func(c *gin.Context) { c.Next() })
	if deps.RateLimitStore != nil {
		rateLimited = RateLimiter(deps.RateLimitStore, deps.RateLimit, deps.RateWindow, deps.Log)
	}

	healthHandler := NewHealthHandler(deps.HealthCheckers...)
	router.GET("/health", healthHandler.Check)

	itemHandler := NewItemHandler(deps.AuctionSvc)
	paymentHandler := NewPaymentHandler(deps.PaymentSvc, deps.TokenSvc, deps.Log)
	ledgerHandler := NewLedgerHandler(deps.LedgerSvc)

	v1 := router.Group("/api/v1")
	{
		items := v1.Group("/items")
		{
			items.GET("", itemHandler.List)
			items.GET("/:id", itemHandler.Get)

			authed := items.Group("", RequireUserID())
			{
				authed.POST("", itemHandler.Create)
				authed.POST("/:id/join", itemHandler.Join)
				authed.POST("/:id/bids", rateLimited, itemHandler.PlaceBid)
				authed.POST("/:id/activate", itemHandler.Activate)
				authed.POST("/:id/payments", rateLimited, paymentHandler.Start)
			}
		}

		// Provider callbacks authenticate with the callback token, not the
		// user header.
		payments := v1.Group("/payments", rateLimited)
		{
			payments.POST("/:id/confirm", paymentHandler.Confirm)
			payments.POST("/:id/fail", paymentHandler.Fail)
		}

		ledger := v1.Group("/ledger")
		{
			ledger.GET("", ledgerHandler.Chain)
			ledger.GET("/head", ledgerHandler.Head)
			ledger.GET("/validate", ledgerHandler.Validate)
			ledger.GET("/events", ledgerHandler.Events)
			ledger.POST("/events", ledgerHandler.AppendEvent)
		}
	}

	return router
}
