package forex

import (
	"fmt"
	"strings"
	"time"

	"llm-forex-bot/internal/pairs"
	"llm-forex-bot/internal/types"
)

const banner = "======================================================================"

// FormatContext renders a snapshot, sentiment and headlines into the text
// block handed to the decision layer. This layer only formats: display
// rounding to the pair's precision happens here and nowhere else.
func FormatContext(spec pairs.PairSpec, snap types.MarketSnapshot, sentiment types.SentimentResult,
	items []types.NewsItem, pip types.PipInfo) string {

	baseInfo := pairs.Currency(spec.Base)
	quoteInfo := pairs.Currency(spec.Quote)
	p := spec.Precision

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line(banner)
	line("%s %s %s - Market Data", baseInfo.Flag, spec.Code, quoteInfo.Flag)
	line(banner)
	line("")

	line("MARKET DATA:")
	line("  Current Rate: %.*f", p, snap.CurrentRate)
	line("  Change: %+.*f (%+.2f%%)", p, snap.Change, snap.ChangePct)
	line("  High: %.*f", p, snap.High)
	line("  Low: %.*f", p, snap.Low)
	line("  Support: %.*f", p, snap.Support)
	line("  Resistance: %.*f", p, snap.Resistance)
	line("  Volatility (ATR): %.*f", p, snap.Volatility)
	line("")

	line("CURRENCY INFO:")
	line("  Base: %s - %s", baseInfo.Name, baseInfo.CentralBank)
	line("  Quote: %s - %s", quoteInfo.Name, quoteInfo.CentralBank)
	line("")

	line("PIP VALUE:")
	line("  Pip Size: %g", pip.PipSize)
	line("  Pip Value: %.2f %s", pip.PipValue, spec.Quote)
	line("  Lot Size: %g (Units: %.0f)", pip.LotSize, pip.Units)
	line("")

	if len(items) > 0 {
		line("LATEST NEWS (%d articles):", len(items))
		for i, item := range items {
			line("  %d. [%s] %s", i+1, formatPublished(item.Published), item.Title)
			line("     Source: %s", item.Publisher)
		}
	} else {
		line("LATEST NEWS: No recent news available")
	}
	line("")

	line("SENTIMENT:")
	line("  Base (%s) Bullish: %d | Bearish: %d", spec.Base, sentiment.BaseBullish, sentiment.BaseBearish)
	line("  Quote (%s) Bullish: %d | Bearish: %d", spec.Quote, sentiment.QuoteBullish, sentiment.QuoteBearish)
	line("  Pair Sentiment Score: %+d", sentiment.PairSentiment)
	line("  Recommendation: %s", sentiment.Recommendation)
	line("")

	line("TECHNICAL CONTEXT:")
	line("  Position in Range: %.1f%%", snap.PositionInRange)
	switch {
	case snap.PositionInRange > 70:
		line("  -> Near resistance (overbought territory)")
	case snap.PositionInRange < 30:
		line("  -> Near support (oversold territory)")
	default:
		line("  -> Mid-range (neutral territory)")
	}
	if snap.Volatility > 0.01 {
		line("  Volatility: HIGH - Caution advised")
	} else {
		line("  Volatility: NORMAL")
	}

	return b.String()
}

func formatPublished(ts int64) string {
	if ts == 0 {
		return "N/A"
	}
	return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04")
}
