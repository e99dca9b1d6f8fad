package interfaces

import (
	"context"

	"llm-forex-bot/internal/types"
)

// Decider turns per-pair market context into a trading decision for a cycle.
type Decider interface {
	Decide(ctx context.Context, pairContexts map[string]string, overview []types.PairOverview) (types.Decision, error)
}
