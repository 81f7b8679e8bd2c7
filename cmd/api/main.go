package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction-ledger/config"
	httpadapter "auction-ledger/internal/adapter/http"
	"auction-ledger/internal/adapter/storage/postgres"
	redisadapter "auction-ledger/internal/adapter/storage/redis"
	"auction-ledger/internal/core/ports"
	"auction-ledger/internal/service"
	"auction-ledger/pkg/logger"
)

const (
	rateLimit       = 100
	rateWindow      = time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgresql")
	}
	defer pool.Close()

	redisClient, err := redisadapter.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	// Repositories
	ledgerRepo := postgres.NewLedgerRepo(pool)
	itemRepo := postgres.NewItemRepo(pool)
	bidRepo := postgres.NewBidRepo(pool)
	participantRepo := postgres.NewParticipantRepo(pool)
	paymentRepo := postgres.NewPaymentRepo(pool)
	transactor := postgres.NewPgxTransactor(pool)

	// Services
	hasher := service.NewSHA256ChainHasher()
	headCache := redisadapter.NewHeadCache(redisClient)
	ledgerSvc := service.NewLedgerService(ledgerRepo, hasher, transactor, headCache, log)

	rules := service.AuctionRules{
		MinParticipants:     cfg.Auction.MinParticipants,
		ActivationThreshold: cfg.Auction.ActivationThreshold,
		MinIncrement:        cfg.Auction.MinIncrement,
		Duration:            cfg.Auction.Duration,
	}
	auctionSvc := service.NewAuctionService(itemRepo, bidRepo, participantRepo, ledgerSvc, transactor, rules, log)
	paymentSvc := service.NewPaymentService(paymentRepo, itemRepo, bidRepo, ledgerSvc, transactor, cfg.Auction.Provider, log)
	tokenSvc := service.NewCallbackTokenService(cfg.Callback.Secret, cfg.Callback.Expiry, cfg.Callback.Issuer)

	router := httpadapter.NewRouter(httpadapter.RouterDeps{
		AuctionSvc:     auctionSvc,
		PaymentSvc:     paymentSvc,
		LedgerSvc:      ledgerSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: redisadapter.NewRateLimitStore(redisClient),
		RateLimit:      rateLimit,
		RateWindow:     rateWindow,
		HealthCheckers: []ports.HealthChecker{
			postgres.NewHealthChecker(pool),
			redisadapter.NewHealthChecker(redisClient),
		},
		Log:  log,
		Mode: cfg.Server.Mode,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
