package interfaces

import (
	"context"

	"llm-forex-bot/internal/types"
)

// MarketProvider is the upstream source of price history and headlines.
type MarketProvider interface {
	// FetchHistory returns OHLC bars for a provider symbol over an enumerated
	// period ("1d", "5d", "1mo", ...). An empty slice with a nil error means
	// the market had no rows, which is distinct from a transport failure.
	FetchHistory(ctx context.Context, symbol, period string) ([]types.PriceBar, error)

	// FetchNews returns up to limit headlines for a provider symbol.
	FetchNews(ctx context.Context, symbol string, limit int) ([]types.NewsItem, error)
}
