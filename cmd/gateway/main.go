package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shareit-go/shareit/internal/config"
	"github.com/shareit-go/shareit/internal/gateway"
	"github.com/shareit-go/shareit/internal/logging"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadGateway()
	if err != nil {
		bootLogger := logging.New(config.LoggingConfig{}, "shareit-gateway", false)
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.New(cfg.Logging, "shareit-gateway", cfg.IsProduction)

	client, err := gateway.NewClient(cfg.ServerURL, cfg.UpstreamTimeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create upstream client")
	}

	// The server may still be starting; report but keep going.
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	if err := client.Ping(pingCtx); err != nil {
		logger.Warn().Err(err).Str("server_url", cfg.ServerURL).Msg("server not reachable yet")
	}
	cancel()

	router := gateway.NewRouter(gateway.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         logger,
		Upstream:       client,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Str("server_url", cfg.ServerURL).Msg("gateway running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("gateway error")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("gateway forced to shutdown")
	}

	logger.Info().Msg("gateway exited gracefully")
}
