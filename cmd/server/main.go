// Package main is the entry point for the inventrack API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	"inventrack/internal/config"
	"inventrack/internal/domain/product"
	"inventrack/internal/domain/sales"
	v1 "inventrack/internal/infrastructure/http/v1"
	"inventrack/internal/infrastructure/metrics"
	"inventrack/internal/infrastructure/numerator"
	"inventrack/internal/infrastructure/storage/postgres"
	"inventrack/internal/infrastructure/storage/postgres/product_repo"
	"inventrack/internal/infrastructure/storage/postgres/sales_repo"
	"inventrack/pkg/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := logger.WithLogger(context.Background(), log)
	log.Infow("starting inventrack server", "version", version, "env", cfg.AppEnv)

	// --- Database ---
	if cfg.MigrateOnStart {
		v, err := postgres.RunMigrations(cfg.DatabaseURL)
		if err != nil {
			log.Fatalw("failed to apply migrations", "error", err)
		}
		log.Infow("schema up to date", "version", v)
	}

	poolCfg := postgres.DefaultPoolConfig(cfg.DatabaseURL)
	poolCfg.MaxConns = cfg.DBMaxConns
	poolCfg.MinConns = cfg.DBMinConns
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txm := postgres.NewTxManager(pool).WithStatementTimeout(cfg.DBStatementTimeout)

	// --- Metrics ---
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New(true)
	}

	// --- Services ---
	codes := numerator.New(func(ctx context.Context) numerator.Querier {
		return txm.GetQuerier(ctx)
	})

	salesService := sales.NewService(sales_repo.NewSalesRepo(txm))
	productService := product.NewService(product.ServiceConfig{
		Repo:      product_repo.NewProductRepo(txm),
		Ledger:    salesService,
		Numerator: codes,
		TxManager: txm,
		Metrics:   m,
	})

	// Prices and totals go out as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:             log,
		Products:           productService,
		Sales:              salesService,
		DB:                 pool,
		Metrics:            m,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		StaticDir:          cfg.StaticDir,
		Version:            version,
		Debug:              cfg.IsDevelopment(),
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Infow("server starting", "addr", server.Addr, "static_dir", cfg.StaticDir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	pool.LogStats(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
