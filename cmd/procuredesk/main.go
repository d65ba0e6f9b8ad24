package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/odyssey-erp/procuredesk/internal/app"
	"github.com/odyssey-erp/procuredesk/internal/gateway"
	"github.com/odyssey-erp/procuredesk/internal/observability"
	"github.com/odyssey-erp/procuredesk/internal/platform/cache"
	"github.com/odyssey-erp/procuredesk/internal/procure/lookups"
	"github.com/odyssey-erp/procuredesk/internal/session"
	"github.com/odyssey-erp/procuredesk/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping server startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		if cfg.SessionStore == "redis" {
			logger.Error("connect redis", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Warn("redis unavailable, lookup cache disabled", slog.Any("error", err))
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	sessions := session.NewManager(sessionStore(cfg, redisClient), cfg.SessionTTL)

	metrics := observability.NewMetrics()

	clients, err := app.NewClients(cfg, logger, metrics)
	if err != nil {
		logger.Error("init webhook clients", slog.Any("error", err))
		os.Exit(1)
	}

	lookupCache := cache.NewJSON(redisClient, "procuredesk:lookups", cfg.LookupCacheTTL)
	cachedLookups := lookups.NewCached(clients.Lookups, lookupCache, logger)

	gatewayHandler := gateway.NewHandler(gateway.Services{
		Invoices: clients.Invoices,
		Assets:   clients.Assets,
		Payments: clients.Payments,
		Chains:   clients.Chains,
		Lookups:  cachedLookups,
	}, sessions, logger, cfg.IsProduction())

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:     logger,
		Config:     cfg,
		Sessions:   sessions,
		Gateway:    gatewayHandler,
		JobHandler: jobHandler,
		Metrics:    metrics,
	})

	server := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           router,
		ReadTimeout:       cfg.AppReadTimeout,
		ReadHeaderTimeout: cfg.AppReadTimeout,
		WriteTimeout:      cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

func sessionStore(cfg *app.Config, client *redis.Client) session.Store {
	if cfg.SessionStore == "memory" || client == nil {
		return session.NewMemoryStore()
	}
	return session.NewRedisStore(client)
}
