package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"onchain-discgolf/config"
	httpHandler "onchain-discgolf/internal/adapter/http/handler"
	"onchain-discgolf/internal/adapter/lightning"
	"onchain-discgolf/internal/adapter/mint"
	"onchain-discgolf/internal/adapter/relay"
	pgStorage "onchain-discgolf/internal/adapter/storage/postgres"
	redisStorage "onchain-discgolf/internal/adapter/storage/redis"
	"onchain-discgolf/internal/core/ports"
	"onchain-discgolf/internal/service"
	"onchain-discgolf/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Int("port", cfg.Server.Port).
		Str("mint", cfg.Mint.URL).
		Int("relays", len(cfg.Relay.URLs)).
		Msg("Starting Round Payment & Settlement Engine")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	if err := pgStorage.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database schema")
	}
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize encryption for token secrets at rest
	encSvc, err := service.NewChaChaEncryptionService(cfg.Wallet.EncryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}

	// Initialize repositories
	tokenRepo := pgStorage.NewTokenRepo(pool, encSvc)
	roundRepo := pgStorage.NewRoundRepo(pool)
	payoutRepo := pgStorage.NewPayoutRepo(pool)
	transactor := pgStorage.NewTransactor(pool)
	dedupStore := redisStorage.NewDedupStore(rdb)

	// Initialize external clients
	mintClient, err := mint.NewClient(cfg.Mint.URL, cfg.Mint.Timeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize mint client")
	}
	gateways := make([]ports.LightningGateway, 0, len(cfg.Lightning.GatewayURLs))
	for _, u := range cfg.Lightning.GatewayURLs {
		gateways = append(gateways, lightning.NewGateway(u, 10*time.Second))
	}
	relays := relay.NewMultiRelay(cfg.Relay.URLs, log)
	defer relays.Close()

	wrapSvc, err := service.NewNostrGiftWrapService(cfg.Identity.PrivateKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize identity")
	}
	log.Info().Str("identity", wrapSvc.LocalIdentity()).Msg("Local identity loaded")

	// Initialize business services
	walletSvc := service.NewWalletService(tokenRepo, mintClient, transactor, log)
	invoiceSvc := service.NewInvoiceService(gateways, walletSvc, cfg.Lightning.PollInterval, cfg.Lightning.PollTimeout, log)
	roundSvc := service.NewRoundService(roundRepo, payoutRepo, log)
	transferSvc := service.NewTransferService(walletSvc, roundSvc, relays, wrapSvc, dedupStore, log)
	payoutSvc := service.NewPayoutService(
		roundSvc,
		payoutRepo,
		walletSvc,
		transferSvc,
		transactor,
		nil, // winner-take-all
		wrapSvc.LocalIdentity(),
		cfg.Payout.MaxAttempts,
		cfg.Payout.InitialBackoff,
		log,
	)

	// Re-drive disbursements interrupted by a previous shutdown
	if err := payoutSvc.Resume(ctx); err != nil {
		log.Error().Err(err).Msg("Resuming unsettled payouts failed")
	}

	// Incoming envelope loop
	runCtx, stopRun := context.WithCancel(ctx)
	defer stopRun()
	go func() {
		if err := transferSvc.Run(runCtx); err != nil && runCtx.Err() == nil {
			log.Error().Err(err).Msg("Relay subscription loop exited")
		}
	}()

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		WalletSvc:      walletSvc,
		InvoiceSvc:     invoiceSvc,
		TransferSvc:    transferSvc,
		RoundSvc:       roundSvc,
		PayoutSvc:      payoutSvc,
		LocalIdentity:  wrapSvc.LocalIdentity(),
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down engine...")

	stopRun()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Engine exited")
}
