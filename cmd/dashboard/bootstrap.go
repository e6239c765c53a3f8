package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"stockchat/internal/dashboard"
	"stockchat/internal/interfaces"
	"stockchat/internal/logger"
	"stockchat/internal/maintenance"
	"stockchat/internal/marketdata"
	"stockchat/internal/marketdata/alphavantage"
	"stockchat/internal/marketdata/mdobs"
	"stockchat/internal/news"
	"stockchat/internal/store"
	"stockchat/internal/trace"
)

// initializeSystem loads .env and sets up logging and tracing
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init("stockchat-dashboard", os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

func loadConfig(ctx context.Context, path string) (*store.Config, *store.Secrets, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, nil, err
	}
	secrets, err := store.LoadSecrets()
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load secrets", err)
		return nil, nil, err
	}
	return cfg, secrets, nil
}

// initializeMarketData builds the Alpha Vantage client with its disk cache and observability
func initializeMarketData(ctx context.Context, cfg *store.Config, secrets *store.Secrets) (interfaces.MarketData, *marketdata.Cache) {
	if secrets.AlphaVantageAPIKey == "" {
		logger.Warn(ctx, "ALPHA_VANTAGE_API_KEY not set - requests will be rejected upstream")
	}

	cache, err := marketdata.NewCache(cfg.MarketData.CacheDir, cfg.MarketDataCacheTTL())
	if err != nil {
		logger.Warn(ctx, "Market data cache disabled", "error", err)
		cache = nil
	}
	if err := cache.CleanupExpired(); err != nil {
		logger.Warn(ctx, "Failed to clean market data cache", "error", err)
	}

	md := alphavantage.New(alphavantage.Params{
		BaseURL:        cfg.MarketData.BaseURL,
		APIKey:         secrets.AlphaVantageAPIKey,
		RequestsPerMin: cfg.MarketData.RequestsPerMin,
		Timeout:        cfg.Timeout(),
		Cache:          cache,
	})
	return mdobs.Wrap(md), cache
}

func initializeService(ctx context.Context, cfg *store.Config, secrets *store.Secrets) (*dashboard.Service, *marketdata.Cache) {
	feed := news.NewService(&news.ServiceConfig{
		FeedURL:       cfg.News.FeedURL,
		MaxArticles:   cfg.News.MaxArticles,
		CacheDuration: cfg.NewsCacheTTL(),
		FetchTimeout:  cfg.Timeout(),
	})
	md, cache := initializeMarketData(ctx, cfg, secrets)
	return dashboard.NewService(md, feed), cache
}

// initializeMaintenance schedules periodic cache cleanup for the long-running API
func initializeMaintenance(ctx context.Context, cfg *store.Config, cache *marketdata.Cache) (*maintenance.Scheduler, error) {
	s := maintenance.NewScheduler(ctx)
	err := s.Register(cfg.Maintenance.Schedule, maintenance.Task{
		Name: "cache_cleanup",
		Run:  func(context.Context) error { return cache.CleanupExpired() },
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
