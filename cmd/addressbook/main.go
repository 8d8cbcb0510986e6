package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"addressbook/internal/addressbook"
	"addressbook/internal/api"
	"addressbook/internal/common/config"
	"addressbook/internal/common/database"
	"addressbook/internal/common/logger"
	"addressbook/internal/common/observability"
	"addressbook/internal/entry"
	"addressbook/internal/lookup"
)

func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting addressbook service...",
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New("addressbook")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Address book store ---
	var store addressbook.Store
	var pg *database.PostgresClient

	switch cfg.Store.Driver {
	case "postgres":
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()

		pgStore := addressbook.NewPostgresStore(pg.GetDB(), log)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			zapLog.Fatal("schema setup failed", zap.Error(err))
		}
		store = pgStore
		zapLog.Info("PostgreSQL address book store ready")
	default:
		store = addressbook.NewMemoryStore()
		zapLog.Info("In-memory address book store ready")
	}

	// --- Lookup cache (optional) ---
	var cache *lookup.Cache
	if cfg.Lookup.CacheEnabled {
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()

		cache = lookup.NewCache(rdb, time.Duration(cfg.Lookup.CacheTTL)*time.Second, log)
		zapLog.Info("Lookup cache enabled")
	}

	// --- Workflow + API ---
	lookupClient := lookup.NewClient(cfg.Lookup.BaseURL, config.GetDuration(cfg.Lookup.Timeout), cache, log)
	workflow := entry.New(entry.Dependencies{
		Lookup: lookupClient,
		Store:  store,
		Logger: log,
		Obs:    obs,
	})

	server := api.NewServer(workflow, log)
	mux := server.Routes()
	mux.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      mux,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http server shutdown failed", zap.Error(err))
	}
	zapLog.Info("Shutdown complete")
}
