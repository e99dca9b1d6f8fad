package noop

import (
	"context"

	"llm-forex-bot/internal/logger"
	"llm-forex-bot/internal/types"
)

// Decider is the fallback decision layer used when no LLM is configured.
type Decider struct{}

// New returns a decider that always holds every pair.
func New() *Decider {
	return &Decider{}
}

// Decide implements the Decider interface. It always returns HOLD for every
// pair it is given.
func (d *Decider) Decide(ctx context.Context, pairContexts map[string]string, overview []types.PairOverview) (types.Decision, error) {
	logger.Debug(ctx, "Noop decider called - holding all pairs", "pairs", len(pairContexts))

	trades := make([]types.TradeDecision, 0, len(pairContexts))
	for pair := range pairContexts {
		trades = append(trades, types.TradeDecision{
			Pair:      pair,
			Action:    "HOLD",
			Rationale: "noop_decider_fallback",
		})
	}
	return types.Decision{
		Reasoning: "No LLM configured; holding all pairs.",
		Trades:    trades,
	}, nil
}
