package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	_ "poolpro/docs"
	"poolpro/internal/adapter/http/routes"
	"poolpro/internal/infrastructure/config"
	"poolpro/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// @title           PoolPro API
// @version         1.0
// @description     Pool-service business backend: customers, routes, jobs, quotes, invoices, alerts and reports.

// @host localhost:8080

// @BasePath  /api

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// Money goes over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	useCases, err := buildUseCases(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("failed to start application", zap.Error(err))
	}

	router := routes.NewRouter(useCases, zl)
	if err := routes.Run(ctx, router, cfg.Port, zl); err != nil {
		zl.Fatal("http server stopped", zap.Error(err))
	}
}
