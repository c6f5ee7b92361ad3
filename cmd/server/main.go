// Command server runs the wallet gateway HTTP API.
//
// @title        Wallet Gateway API
// @version      1.0
// @description  Identity and custodial wallet provisioning gateway.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lzar/wallet-gateway/internal/api"
	"github.com/lzar/wallet-gateway/internal/core/service"
	mongodb "github.com/lzar/wallet-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/lzar/wallet-gateway/internal/infrastructure/db/redis"
	"github.com/lzar/wallet-gateway/internal/infrastructure/provider"
	"github.com/lzar/wallet-gateway/internal/pkg/config"
	"github.com/lzar/wallet-gateway/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Init(logger.Options{})
		fallback := logger.Get()
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}
	if cfg.Provider.APIToken == "" {
		log.Fatal().Msg("PROVIDER_API_TOKEN is required")
	}

	// --- Dependencies ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(ctx) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	providerClient := provider.NewClient(provider.Config{
		BaseURL:  cfg.Provider.BaseURL,
		APIToken: cfg.Provider.APIToken,
		Timeout:  cfg.Provider.Timeout,
	})

	accounts := mongodb.NewAccountRepository(db)
	balances := redisdb.NewBalanceCache(rdb, cfg.Redis.BalanceTTL)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	identity := service.NewIdentityService(accounts, providerClient, tokens, balances, cfg.Provider.Currency, log)

	e := api.NewRouter(identity, tokens, db, rdb, log)

	// --- Graceful shutdown ---
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("wallet gateway listening")
	if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server error")
	}
}
