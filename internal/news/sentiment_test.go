package news

import (
	"testing"

	"llm-forex-bot/internal/types"
)

func TestScoreEmptyList(t *testing.T) {
	result := Score(nil, "EUR", "USD")

	if result.PairSentiment != 0 {
		t.Errorf("PairSentiment = %d, want 0", result.PairSentiment)
	}
	if result.Recommendation != RecommendNeutral {
		t.Errorf("Recommendation = %s, want NEUTRAL", result.Recommendation)
	}
	if result.BaseBullish+result.BaseBearish+result.QuoteBullish+result.QuoteBearish != 0 {
		t.Errorf("empty list produced non-zero counts: %+v", result)
	}
}

func TestScoreBoundaryAtTwo(t *testing.T) {
	items := []types.NewsItem{
		{Title: "EUR rallies on strong data"}, // EUR: rallies + strong = 2 bullish
		{Title: "USD falls after report"},     // USD: 1 bearish
	}

	result := Score(items, "EUR", "USD")

	if result.BaseBullish != 2 {
		t.Errorf("BaseBullish = %d, want 2", result.BaseBullish)
	}
	if result.QuoteBearish != 1 {
		t.Errorf("QuoteBearish = %d, want 1", result.QuoteBearish)
	}
	// (2-0) - (0-1) = 3 > 2: BUY.
	if result.PairSentiment != 3 {
		t.Errorf("PairSentiment = %d, want 3", result.PairSentiment)
	}
	if result.Recommendation != RecommendBuy {
		t.Errorf("Recommendation = %s, want BUY", result.Recommendation)
	}
}

func TestScoreExactlyTwoIsNeutral(t *testing.T) {
	items := []types.NewsItem{
		{Title: "EUR rallies in early trade"}, // EUR: 1 bullish
		{Title: "USD falls in Asia trade"},   // USD: 1 bearish
	}

	result := Score(items, "EUR", "USD")

	// (1-0) - (0-1) = 2: not > 2, so boundary stays NEUTRAL.
	if result.PairSentiment != 2 {
		t.Fatalf("PairSentiment = %d, want 2", result.PairSentiment)
	}
	if result.Recommendation != RecommendNeutral {
		t.Errorf("Recommendation = %s, want NEUTRAL at boundary", result.Recommendation)
	}
}

func TestScoreSell(t *testing.T) {
	items := []types.NewsItem{
		// "weakens" also matches the "weak" keyword, so this counts 3 bearish.
		{Title: "EUR weakens as recession fears grow"},
		{Title: "USD surges to new highs"}, // USD: 1 bullish
	}

	result := Score(items, "EUR", "USD")

	if result.BaseBearish != 3 {
		t.Fatalf("BaseBearish = %d, want 3 (weakens + weak + recession)", result.BaseBearish)
	}
	// (0-3) - (1-0) = -4 < -2: SELL.
	if result.PairSentiment != -4 {
		t.Fatalf("PairSentiment = %d, want -4", result.PairSentiment)
	}
	if result.Recommendation != RecommendSell {
		t.Errorf("Recommendation = %s, want SELL", result.Recommendation)
	}
}

func TestScoreAttributesBothCurrencies(t *testing.T) {
	items := []types.NewsItem{
		{Title: "EUR gains while USD gains too"},
	}

	result := Score(items, "EUR", "USD")

	if result.BaseBullish != 1 || result.QuoteBullish != 1 {
		t.Errorf("dual mention: base=%d quote=%d, want 1/1", result.BaseBullish, result.QuoteBullish)
	}
	if result.PairSentiment != 0 {
		t.Errorf("PairSentiment = %d, want 0 (mentions cancel)", result.PairSentiment)
	}
}

func TestScoreUnattributedHeadlineIgnored(t *testing.T) {
	items := []types.NewsItem{
		{Title: "Gold surges on safe haven demand"},
	}

	result := Score(items, "EUR", "USD")

	if result.BaseBullish+result.QuoteBullish != 0 {
		t.Errorf("headline without currency mention contributed counts: %+v", result)
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	items := []types.NewsItem{
		{Title: "Euro Rallies After Hawkish ECB Comments"},
	}

	result := Score(items, "EUR", "USD")

	// "euro" contains "eur"; "rallies" and "hawkish" both count.
	if result.BaseBullish != 2 {
		t.Errorf("BaseBullish = %d, want 2", result.BaseBullish)
	}
}
