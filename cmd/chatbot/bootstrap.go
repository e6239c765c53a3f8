package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"stockchat/internal/broker/alpaca"
	"stockchat/internal/broker/brokerobs"
	"stockchat/internal/broker/zerodha"
	"stockchat/internal/interfaces"
	"stockchat/internal/logger"
	"stockchat/internal/maintenance"
	"stockchat/internal/news"
	"stockchat/internal/nlu/claude"
	"stockchat/internal/nlu/nluobs"
	"stockchat/internal/nlu/noop"
	"stockchat/internal/nlu/openai"
	"stockchat/internal/nlu/wit"
	"stockchat/internal/store"
	"stockchat/internal/trace"
	"stockchat/internal/transcript"
)

// initializeSystem loads .env and sets up logging and tracing
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init("stockchat-chatbot", os.Stderr); err != nil {
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

// initializeExtractor picks the NLU provider and wraps it with observability
func initializeExtractor(ctx context.Context, cfg *store.Config, secrets *store.Secrets) interfaces.IntentExtractor {
	var ex interfaces.IntentExtractor

	switch cfg.NLU.Provider {
	case "WIT":
		ex = wit.New(wit.Params{
			BaseURL:     cfg.NLU.BaseURL,
			AccessToken: secrets.WitAccessToken,
			Version:     cfg.NLU.Version,
			Timeout:     cfg.Timeout(),
		})
	case "OPENAI":
		ex = openai.NewClassifier(openai.Params{
			BaseURL:     cfg.NLU.BaseURL,
			APIKey:      secrets.OpenAIAPIKey,
			Model:       cfg.NLU.Model,
			System:      cfg.NLU.System,
			MaxTokens:   cfg.NLU.MaxTokens,
			Temperature: cfg.NLU.Temperature,
			Timeout:     cfg.Timeout(),
		})
	case "CLAUDE":
		ex = claude.NewClassifier(claude.Params{
			BaseURL:     cfg.NLU.BaseURL,
			APIKey:      secrets.ClaudeAPIKey,
			Model:       cfg.NLU.Model,
			System:      cfg.NLU.System,
			MaxTokens:   cfg.NLU.MaxTokens,
			Temperature: cfg.NLU.Temperature,
			Timeout:     cfg.Timeout(),
		})
	default:
		ex = noop.NewExtractor()
		logger.Warn(ctx, "No NLU provider configured - every message will get the fallback reply")
	}

	return nluobs.Wrap(ex, cfg.NLU.Provider)
}

// initializeBroker builds the bar source selected by broker.provider
func initializeBroker(ctx context.Context, cfg *store.Config, secrets *store.Secrets) interfaces.Broker {
	var brk interfaces.Broker

	switch cfg.Broker.Provider {
	case "ZERODHA":
		brk = zerodha.NewZerodha(zerodha.Params{
			APIKey:      secrets.KiteAPIKey,
			AccessToken: secrets.KiteAccessToken,
			Exchange:    cfg.Broker.Exchange,
			BaseURL:     cfg.Broker.BaseURL,
			Timeout:     cfg.Timeout(),
		})
		logger.Info(ctx, "Using Kite Connect historical candles", "exchange", cfg.Broker.Exchange)
	default:
		brk = alpaca.New(alpaca.Params{
			BaseURL:   cfg.Broker.BaseURL,
			KeyID:     secrets.AlpacaKeyID,
			SecretKey: secrets.AlpacaSecretKey,
			Feed:      cfg.Broker.Feed,
			Timeout:   cfg.Timeout(),
		})
		logger.Info(ctx, "Using Alpaca market data", "feed", cfg.Broker.Feed)
	}

	return brokerobs.Wrap(brk)
}

func initializeNews(cfg *store.Config) *news.Service {
	return news.NewService(&news.ServiceConfig{
		FeedURL:       cfg.News.FeedURL,
		MaxArticles:   cfg.News.MaxArticles,
		CacheDuration: cfg.NewsCacheTTL(),
		FetchTimeout:  cfg.Timeout(),
	})
}

// initializeTranscript opens the transcript log and compresses old days when retention is configured
func initializeTranscript(ctx context.Context, cfg *store.Config) *transcript.Log {
	log := transcript.New(cfg.Chat.TranscriptDir)
	if log == nil {
		return nil
	}
	if err := log.CompressOlder(cfg.Chat.TranscriptRetentionDays); err != nil {
		logger.Warn(ctx, "Failed to compress old transcripts", "error", err)
	}
	logger.Info(ctx, "Persisting chat transcripts", "dir", log.Dir())
	return log
}

// initializeMaintenance schedules transcript compression for the long-running Telegram surface
func initializeMaintenance(ctx context.Context, cfg *store.Config, log *transcript.Log) (*maintenance.Scheduler, error) {
	s := maintenance.NewScheduler(ctx)
	err := s.Register(cfg.Maintenance.Schedule, maintenance.Task{
		Name: "transcript_compress",
		Run: func(context.Context) error {
			return log.CompressOlder(cfg.Chat.TranscriptRetentionDays)
		},
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
