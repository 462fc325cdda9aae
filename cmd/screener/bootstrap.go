package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"dcf-screener/internal/interfaces"
	"dcf-screener/internal/logger"
	"dcf-screener/internal/provider/mock"
	"dcf-screener/internal/provider/providerobs"
	"dcf-screener/internal/provider/yahoo"
	"dcf-screener/internal/screener"
	"dcf-screener/internal/screener/screenerobs"
	"dcf-screener/internal/store"
	"dcf-screener/internal/trace"
	"dcf-screener/internal/universe"
	"dcf-screener/internal/valuation"

	"github.com/joho/godotenv"
)

// initializeSystem initializes environment, logger and tracer
func initializeSystem() error {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Initialize tracer
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration
func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// initializeProvider initializes the market data provider with observability
func initializeProvider(ctx context.Context, cfg *store.Config) interfaces.MarketDataProvider {
	var p interfaces.MarketDataProvider

	if cfg.DataSource == "LIVE" {
		logger.Info(ctx, "Using LIVE financial data from Yahoo Finance")
		p = yahoo.New(
			time.Duration(cfg.Provider.TimeoutSeconds)*time.Second,
			yahoo.WithRetryAttempts(cfg.Provider.RetryAttempts),
		)
	} else {
		logger.Info(ctx, "Using STATIC mock financial data for testing")
		p = mock.New()
	}

	// Wrap with observability middleware
	return providerobs.Wrap(p)
}

// initializeScreener initializes the batch runner with observability
func initializeScreener(cfg *store.Config, provider interfaces.MarketDataProvider) interfaces.Screener {
	catalog := valuation.NewCatalog(cfg.Valuation.Tiers, cfg.Valuation.DefaultAssumptions)

	runner := screener.New(provider, catalog, screener.Config{
		Window:       cfg.FCF.Window,
		MaxWorkers:   cfg.Processing.MaxWorkers,
		FetchTimeout: time.Duration(cfg.Provider.TimeoutSeconds) * time.Second,
	})

	// Wrap with observability middleware
	return screenerobs.Wrap(runner)
}

// initializeUniverse initializes the ticker universe source
func initializeUniverse(ctx context.Context, cfg *store.Config) interfaces.UniverseSource {
	if cfg.Universe.Mode == "SP500" {
		logger.Info(ctx, "Universe: S&P 500 constituents")
		return universe.NewSP500(time.Duration(cfg.Provider.TimeoutSeconds) * time.Second)
	}
	logger.Info(ctx, "Universe: static list", "count", len(cfg.Universe.Static))
	return universe.NewStatic(cfg.Universe.Static)
}
