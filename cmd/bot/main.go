package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"llm-forex-bot/internal/forex"
	"llm-forex-bot/internal/interfaces"
	"llm-forex-bot/internal/llm/openrouter"
	"llm-forex-bot/internal/logger"
	"llm-forex-bot/internal/store"
	"llm-forex-bot/internal/trace"
	"llm-forex-bot/internal/tradelog"
)

func main() {
	if err := initializeSystem(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		os.Exit(1)
	}

	compressOldLogs(ctx)

	eng := buildEngine(cfg)
	decider := buildDecider(ctx, cfg)

	logger.Info(ctx, "Bot started", "pairs", cfg.Pairs, "poll_seconds", cfg.PollSeconds,
		"cache_ttl_seconds", cfg.Cache.TTLSeconds, "news_limit", cfg.News.Limit)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	tick := time.NewTicker(time.Duration(cfg.PollSeconds) * time.Second)
	defer tick.Stop()

	// First cycle runs immediately, then on every tick.
	runCycle(ctx, cfg, eng, decider)

	for {
		select {
		case <-tick.C:
			runCycle(ctx, cfg, eng, decider)
		case <-sigc:
			logger.Info(ctx, "Shutting down")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = trace.Shutdown(shutdownCtx)
			shutdownCancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

// runCycle analyzes every enabled pair, asks the decision layer for a verdict
// and journals the outcome. A single pair's failure never aborts the cycle.
func runCycle(ctx context.Context, cfg *store.Config, eng *forex.Engine, decider interfaces.Decider) {
	timer := logger.StartOperation(ctx, "trading-cycle", "pairs", len(cfg.Pairs))
	ctx = timer.GetContext()

	pairContexts := make(map[string]string, len(cfg.Pairs))
	rates := make(map[string]float64, len(cfg.Pairs))
	sentiments := make(map[string]int, len(cfg.Pairs))

	for _, pair := range cfg.Pairs {
		result := eng.Execute(ctx, pair, forex.Options{
			NewsLimit: cfg.News.Limit,
			Period:    cfg.Provider.Period,
		})
		if !result.Success {
			logger.Warn(ctx, "Skipping pair this cycle", "pair", pair, "error", result.Error)
			continue
		}
		pairContexts[result.Metadata.Pair] = result.Context
		rates[result.Metadata.Pair] = result.RawData.MarketData.CurrentRate
		sentiments[result.Metadata.Pair] = result.RawData.Sentiment.PairSentiment
	}

	if len(pairContexts) == 0 {
		logger.Warn(ctx, "No pair data available, skipping decision")
		timer.End("analyzed", 0)
		return
	}

	overview := eng.MajorsOverview(ctx)

	decision, err := decider.Decide(ctx, pairContexts, overview)
	if err != nil {
		logger.ErrorWithErr(ctx, "Decision layer failed, holding all pairs", err)
		pairs := make([]string, 0, len(pairContexts))
		for p := range pairContexts {
			pairs = append(pairs, p)
		}
		decision = openrouter.FallbackDecision(pairs, err.Error())
	}

	logger.Info(ctx, "Cycle reasoning", "reasoning", decision.Reasoning)
	for _, trade := range decision.Trades {
		logger.Decision(ctx, trade.Pair, trade.Action, sentiments[trade.Pair], trade.Rationale,
			"allocation_usd", trade.AllocationUSD, "tp_price", trade.TPPrice, "sl_price", trade.SLPrice)

		if err := tradelog.AppendDecision(tradelog.DecisionEntry{
			Pair:      trade.Pair,
			Action:    trade.Action,
			Rate:      rates[trade.Pair],
			Sentiment: sentiments[trade.Pair],
			Reason:    trade.Rationale,
		}); err != nil {
			logger.Warn(ctx, "Failed to journal decision", "pair", trade.Pair, "error", err)
		}
	}

	timer.End("analyzed", len(pairContexts), "decisions", len(decision.Trades))
}
