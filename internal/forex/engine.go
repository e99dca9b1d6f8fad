package forex

import (
	"context"
	"strconv"
	"time"

	"llm-forex-bot/internal/cache"
	"llm-forex-bot/internal/interfaces"
	"llm-forex-bot/internal/logger"
	"llm-forex-bot/internal/market"
	"llm-forex-bot/internal/news"
	"llm-forex-bot/internal/pairs"
	"llm-forex-bot/internal/provider"
	"llm-forex-bot/internal/trace"
	"llm-forex-bot/internal/types"
)

// HeadlineScraper is the optional fallback news source used when the primary
// provider returns no headlines for a symbol.
type HeadlineScraper interface {
	ScrapeHeadlines(ctx context.Context, symbol string, limit int) ([]types.NewsItem, error)
}

// Options tunes a single Execute call.
type Options struct {
	NewsLimit int    // 0 means the engine default
	Period    string // "" means the provider default (5d)
}

// Engine turns raw provider feeds into decision-ready per-pair results,
// gating every provider call through a TTL cache.
type Engine struct {
	provider  interfaces.MarketProvider
	scraper   HeadlineScraper
	cache     *cache.Cache
	ttl       time.Duration
	newsLimit int
}

// New creates an engine. scraper may be nil to disable the fallback.
func New(p interfaces.MarketProvider, scraper HeadlineScraper, ttl time.Duration, newsLimit int) *Engine {
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	if newsLimit <= 0 {
		newsLimit = 10
	}
	return &Engine{
		provider:  p,
		scraper:   scraper,
		cache:     cache.New(),
		ttl:       ttl,
		newsLimit: newsLimit,
	}
}

// Execute resolves a pair, fetches its market data and news through the
// cache, and assembles the full Result envelope. Every sub-step failure is
// converted into a Success=false envelope; no partial payload is returned.
func (e *Engine) Execute(ctx context.Context, pairText string, opts Options) types.Result {
	ctx, span := trace.StartSpan(ctx, "forex-execute")
	defer span.End()

	spec, err := pairs.Resolve(pairText)
	if err != nil {
		return e.failure(pairText, err)
	}

	period := opts.Period
	if period == "" {
		period = provider.DefaultPeriod
	}
	limit := opts.NewsLimit
	if limit <= 0 {
		limit = e.newsLimit
	}

	bars, err := e.history(ctx, spec, period)
	if err != nil {
		return e.failure(spec.Code, err)
	}

	snap, err := market.BuildSnapshot(spec, bars)
	if err != nil {
		return e.failure(spec.Code, err)
	}

	items, err := e.news(ctx, spec, limit)
	if err != nil {
		return e.failure(spec.Code, err)
	}

	sentiment := news.Score(items, spec.Base, spec.Quote)
	pip := CalculatePipValue(spec, 1.0)
	llmContext := FormatContext(spec, snap, sentiment, items, pip)

	logger.Debug(ctx, "Pair analysis complete", "pair", spec.Code,
		"rate", snap.CurrentRate, "sentiment", sentiment.PairSentiment,
		"news_count", len(items))

	return types.Result{
		Success: true,
		Context: llmContext,
		RawData: types.RawData{
			News:       items,
			MarketData: snap,
			Sentiment:  sentiment,
			PipInfo:    pip,
		},
		Metadata: types.Metadata{
			Pair:      spec.Code,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			NewsCount: len(items),
		},
	}
}

// MajorsOverview returns summary rows for every supported pair. Pairs that
// fail are skipped and omitted; a single bad pair never aborts the batch.
func (e *Engine) MajorsOverview(ctx context.Context) []types.PairOverview {
	ctx, span := trace.StartSpan(ctx, "forex-majors-overview")
	defer span.End()

	overview := make([]types.PairOverview, 0, len(pairs.Majors))
	for _, code := range pairs.Majors {
		spec, err := pairs.Resolve(code)
		if err != nil {
			continue
		}
		bars, err := e.history(ctx, spec, provider.DefaultPeriod)
		if err != nil {
			logger.Warn(ctx, "Skipping pair in overview", "pair", code, "error", err)
			continue
		}
		snap, err := market.BuildSnapshot(spec, bars)
		if err != nil {
			logger.Warn(ctx, "Skipping pair in overview", "pair", code, "error", err)
			continue
		}
		overview = append(overview, types.PairOverview{
			Pair:            snap.Pair,
			Rate:            snap.CurrentRate,
			ChangePct:       snap.ChangePct,
			Volatility:      snap.Volatility,
			PositionInRange: snap.PositionInRange,
		})
	}
	return overview
}

// ClearCache drops all cached provider data.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

// history fetches price bars through the cache, keyed per pair and period.
func (e *Engine) history(ctx context.Context, spec pairs.PairSpec, period string) ([]types.PriceBar, error) {
	key := cache.Key{Op: "market", Pair: spec.Code, Param: period}
	v, err := e.cache.GetOrCompute(key, e.ttl, func() (any, error) {
		return e.provider.FetchHistory(ctx, spec.ProviderSymbol, period)
	})
	if err != nil {
		return nil, err
	}
	return v.([]types.PriceBar), nil
}

// news fetches headlines through the cache, keyed per pair and limit. An
// empty primary result falls back to the scraper; a failing fallback after a
// successful primary fetch degrades to no news rather than an error.
func (e *Engine) news(ctx context.Context, spec pairs.PairSpec, limit int) ([]types.NewsItem, error) {
	key := cache.Key{Op: "news", Pair: spec.Code, Param: strconv.Itoa(limit)}
	v, err := e.cache.GetOrCompute(key, e.ttl, func() (any, error) {
		items, err := e.provider.FetchNews(ctx, spec.ProviderSymbol, limit)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 && e.scraper != nil {
			scraped, scrapeErr := e.scraper.ScrapeHeadlines(ctx, spec.ProviderSymbol, limit)
			if scrapeErr != nil {
				logger.Warn(ctx, "Headline scrape fallback failed", "pair", spec.Code, "error", scrapeErr)
				return items, nil
			}
			return scraped, nil
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]types.NewsItem), nil
}

func (e *Engine) failure(pair string, err error) types.Result {
	return types.Result{
		Success: false,
		Error:   err.Error(),
		Metadata: types.Metadata{
			Pair:      pair,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}
}
