package market

import (
	"fmt"

	"llm-forex-bot/internal/pairs"
	"llm-forex-bot/internal/types"
)

// NoDataError reports a provider response with no usable price rows, e.g. a
// closed market. Distinct from a transport failure.
type NoDataError struct {
	Pair string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no historical data available for %s", e.Pair)
}

// BuildSnapshot derives the market snapshot for a pair from its price history.
// The history must be ordered oldest to newest. Support and resistance are the
// window low and high; volatility is the mean per-bar high-low range. Nothing
// is rounded here.
func BuildSnapshot(spec pairs.PairSpec, bars []types.PriceBar) (types.MarketSnapshot, error) {
	if len(bars) == 0 {
		return types.MarketSnapshot{}, &NoDataError{Pair: spec.Code}
	}

	currentRate := bars[len(bars)-1].Close
	prevClose := currentRate
	if len(bars) > 1 {
		prevClose = bars[len(bars)-2].Close
	}

	change := currentRate - prevClose
	changePct := 0.0
	if prevClose != 0 {
		changePct = change / prevClose * 100
	}

	high := bars[0].High
	low := bars[0].Low
	rangeSum := 0.0
	for _, b := range bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
		rangeSum += b.High - b.Low
	}
	volatility := rangeSum / float64(len(bars))

	support, resistance := low, high

	// Degenerate zero-range window: park the position mid-range.
	positionInRange := 50.0
	if resistance != support {
		positionInRange = (currentRate - support) / (resistance - support) * 100
		if positionInRange < 0 {
			positionInRange = 0
		} else if positionInRange > 100 {
			positionInRange = 100
		}
	}

	return types.MarketSnapshot{
		Pair:            spec.Code,
		CurrentRate:     currentRate,
		PrevClose:       prevClose,
		Change:          change,
		ChangePct:       changePct,
		High:            high,
		Low:             low,
		Support:         support,
		Resistance:      resistance,
		Volatility:      volatility,
		PositionInRange: positionInRange,
		BaseCurrency:    spec.Base,
		QuoteCurrency:   spec.Quote,
	}, nil
}
