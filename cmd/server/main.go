// Package main is the entry point for the trash API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"trash/internal/config"
	"trash/internal/domain/posts"
	v1 "trash/internal/infrastructure/http/v1"
	"trash/internal/infrastructure/metrics"
	"trash/internal/infrastructure/storage/postgres"
	"trash/internal/infrastructure/storage/postgres/datastore"
	"trash/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	log.Infow("starting trash server", "env", cfg.App.Env)

	// --- Migrations ---
	if cfg.Database.AutoMigrate {
		res, err := postgres.Migrate(cfg.Database.URL)
		if err != nil {
			log.Fatalw("failed to run migrations", "error", err)
		}
		log.Infow("migrations applied", "version", res.Version, "changed", res.Changed)
	}

	// --- Database ---
	pool, err := postgres.NewPool(ctx, cfg.Database.PoolConfig(cfg.App.Name))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	pool.LogStats(ctx)

	txm := postgres.NewTxManager(pool)

	// --- Metrics ---
	var m *metrics.Metrics
	var observer posts.Observer
	if cfg.Metrics.Enabled {
		m = metrics.New(func() float64 { return float64(pool.Stats().AcquiredConns) })
		observer = m
	}

	// --- Posts ---
	postStore := datastore.New(txm, posts.TableName, func() *posts.Post { return &posts.Post{} })
	postService, err := posts.NewService(posts.ServiceConfig{
		Store:     postStore,
		TxManager: txm,
		Observer:  observer,
		Logger:    log,
	})
	if err != nil {
		log.Fatalw("failed to build post service", "error", err)
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:      log,
		PostService: postService,
		DB:          pool,
		Metrics:     m,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Infow("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
