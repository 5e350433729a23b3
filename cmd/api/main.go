package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tigerlife/internal/app"
	"tigerlife/internal/config"
	"tigerlife/internal/database"
	"tigerlife/internal/gateway"
	"tigerlife/internal/pkg/logger"
	"tigerlife/internal/pkg/mq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseURL, zl)
	if err != nil {
		zl.Fatal("db connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zl.Fatal("migrate failed", zap.Error(err))
	}

	store, err := app.NewObjectStore(ctx, cfg.Storage)
	if err != nil {
		zl.Fatal("storage init failed", zap.Error(err))
	}

	deps := app.Deps{
		DB:        db,
		Store:     store,
		Functions: gateway.NewHTTPFunctions(cfg.Functions.URL, cfg.Functions.Key, cfg.Functions.Timeout),
	}

	if cfg.Rabbit.URL != "" {
		pub, err := mq.NewPublisher(cfg.Rabbit.URL, cfg.Rabbit.Exchange)
		if err != nil {
			zl.Warn("rabbitmq unavailable, notification events disabled", zap.Error(err))
		} else {
			defer func() { _ = pub.Close() }()
			deps.Publisher = pub
		}
	}

	a := app.New(cfg, deps, zl)
	defer a.Hub.Close()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("http server listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
