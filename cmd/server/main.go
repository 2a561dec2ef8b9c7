package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Bhupesh-Khordia/auth-service/internal/api"
	"github.com/Bhupesh-Khordia/auth-service/internal/core/service"
	"github.com/Bhupesh-Khordia/auth-service/internal/pkg/config"
	"github.com/Bhupesh-Khordia/auth-service/internal/store"
	"github.com/Bhupesh-Khordia/auth-service/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	userStore, checks, cleanup, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("store init failed")
	}
	defer cleanup()

	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	tokens := service.NewJWTTokenService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.TokenTTL)
	guard := service.NewGuard(tokens, userStore)
	sessions := service.NewSession(userStore, hasher, tokens)

	e := api.NewRouter(sessions, guard, checks, log)

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("backend", cfg.StoreBackend).
			Dur("token_ttl", tokens.TTL()).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
