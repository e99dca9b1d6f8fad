package forex

import (
	"llm-forex-bot/internal/pairs"
	"llm-forex-bot/internal/types"
)

// unitsPerLot is the standard lot size in base-currency units.
const unitsPerLot = 100000

// CalculatePipValue computes pip economics for a pair. The pip value is
// expressed in quote-currency terms; no cross-rate conversion is applied.
func CalculatePipValue(spec pairs.PairSpec, lotSize float64) types.PipInfo {
	if lotSize <= 0 {
		lotSize = 1.0
	}
	units := unitsPerLot * lotSize
	return types.PipInfo{
		PipSize:  spec.PipSize,
		PipValue: spec.PipSize * units,
		LotSize:  lotSize,
		Units:    units,
	}
}
