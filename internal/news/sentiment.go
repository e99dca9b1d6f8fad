package news

import (
	"strings"

	"llm-forex-bot/internal/types"
)

// Keyword lists are fixed design constants. Matching is case-insensitive
// substring search against headline titles, nothing smarter.
var bullishKeywords = []string{
	"strengthens", "rallies", "gains", "rises", "surges", "climbs",
	"rate hike", "hawkish", "strong", "growth", "positive", "bullish",
	"optimistic", "improve", "recovery", "expansion",
}

var bearishKeywords = []string{
	"weakens", "falls", "declines", "drops", "plunges", "slides",
	"rate cut", "dovish", "weak", "recession", "negative", "bearish",
	"pessimistic", "worsen", "slowdown", "contraction",
}

// Recommendation thresholds: score must exceed +2 for BUY, undercut -2 for SELL.
const (
	RecommendBuy     = "BUY"
	RecommendSell    = "SELL"
	RecommendNeutral = "NEUTRAL"
)

// Score aggregates directional keyword hits per side of a pair. A headline is
// attributed to a currency when its title contains that currency's code
// (case-insensitive substring, so "Euro rallies" attributes to EUR); a
// headline mentioning both codes contributes to both sides independently.
// An empty list yields zero counts and NEUTRAL.
func Score(items []types.NewsItem, baseCurrency, quoteCurrency string) types.SentimentResult {
	base := strings.ToLower(baseCurrency)
	quote := strings.ToLower(quoteCurrency)

	var result types.SentimentResult

	for _, item := range items {
		title := strings.ToLower(item.Title)

		if strings.Contains(title, base) {
			bull, bear := countKeywords(title)
			result.BaseBullish += bull
			result.BaseBearish += bear
		}
		if strings.Contains(title, quote) {
			bull, bear := countKeywords(title)
			result.QuoteBullish += bull
			result.QuoteBearish += bear
		}
	}

	// Base strengthening and quote weakening both push the pair up.
	result.PairSentiment = (result.BaseBullish - result.BaseBearish) -
		(result.QuoteBullish - result.QuoteBearish)

	switch {
	case result.PairSentiment > 2:
		result.Recommendation = RecommendBuy
	case result.PairSentiment < -2:
		result.Recommendation = RecommendSell
	default:
		result.Recommendation = RecommendNeutral
	}

	return result
}

func countKeywords(title string) (bullish, bearish int) {
	for _, kw := range bullishKeywords {
		if strings.Contains(title, kw) {
			bullish++
		}
	}
	for _, kw := range bearishKeywords {
		if strings.Contains(title, kw) {
			bearish++
		}
	}
	return bullish, bearish
}
