package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"llm-forex-bot/internal/forex"
	"llm-forex-bot/internal/interfaces"
	"llm-forex-bot/internal/llm/noop"
	"llm-forex-bot/internal/llm/openrouter"
	"llm-forex-bot/internal/logger"
	"llm-forex-bot/internal/news"
	"llm-forex-bot/internal/provider"
	"llm-forex-bot/internal/store"
	"llm-forex-bot/internal/trace"
	"llm-forex-bot/internal/tradelog"

	"github.com/joho/godotenv"
)

// initializeSystem initializes environment, logger and tracer.
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

// compressOldLogs compresses old decision journals if retention is configured.
func compressOldLogs(ctx context.Context) {
	if v := os.Getenv("FOREX_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := tradelog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old logs", "error", err)
		}
	}
}

// buildEngine wires the provider, the scraper fallback and the cache into an
// analysis engine.
func buildEngine(cfg *store.Config) *forex.Engine {
	timeout := time.Duration(cfg.Provider.TimeoutSeconds) * time.Second
	yahoo := provider.NewYahoo(timeout)

	var scraper forex.HeadlineScraper
	if cfg.News.ScrapeFallback {
		scraper = news.NewScraper(timeout)
	}

	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	return forex.New(yahoo, scraper, ttl, cfg.News.Limit)
}

// buildDecider selects the decision layer from configuration.
func buildDecider(ctx context.Context, cfg *store.Config) interfaces.Decider {
	if cfg.LLM.Provider == "OPENROUTER" && os.Getenv("OPENROUTER_API_KEY") != "" {
		logger.Info(ctx, "Using OpenRouter decider", "model", cfg.LLM.Model)
		return openrouter.New(cfg)
	}
	logger.Info(ctx, "No LLM configured, using noop decider")
	return noop.New()
}
