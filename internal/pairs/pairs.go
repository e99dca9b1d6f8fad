package pairs

import (
	"fmt"
	"strings"
)

// PairSpec describes one supported currency pair. Specs are defined once at
// startup and never mutated.
type PairSpec struct {
	Code           string  `json:"code"`
	Base           string  `json:"base"`
	Quote          string  `json:"quote"`
	ProviderSymbol string  `json:"provider_symbol"`
	PipSize        float64 `json:"pip_size"`
	Precision      int     `json:"precision"`
}

// CurrencyInfo is cosmetic per-currency metadata shown in formatted output.
type CurrencyInfo struct {
	Name        string `json:"name"`
	Flag        string `json:"flag"`
	CentralBank string `json:"central_bank"`
}

// Majors lists the supported pairs in overview order.
var Majors = []string{"EURUSD", "GBPUSD", "USDJPY", "USDCHF", "AUDUSD", "USDCAD", "NZDUSD"}

var providerSymbols = map[string]string{
	"EURUSD": "EURUSD=X",
	"GBPUSD": "GBPUSD=X",
	"USDJPY": "USDJPY=X",
	"USDCHF": "USDCHF=X",
	"AUDUSD": "AUDUSD=X",
	"USDCAD": "USDCAD=X",
	"NZDUSD": "NZDUSD=X",
}

var currencies = map[string]CurrencyInfo{
	"EUR": {Name: "Euro", Flag: "🇪🇺", CentralBank: "European Central Bank"},
	"GBP": {Name: "British Pound", Flag: "🇬🇧", CentralBank: "Bank of England"},
	"USD": {Name: "US Dollar", Flag: "🇺🇸", CentralBank: "Federal Reserve"},
	"JPY": {Name: "Japanese Yen", Flag: "🇯🇵", CentralBank: "Bank of Japan"},
	"CHF": {Name: "Swiss Franc", Flag: "🇨🇭", CentralBank: "Swiss National Bank"},
	"AUD": {Name: "Australian Dollar", Flag: "🇦🇺", CentralBank: "Reserve Bank of Australia"},
	"CAD": {Name: "Canadian Dollar", Flag: "🇨🇦", CentralBank: "Bank of Canada"},
	"NZD": {Name: "New Zealand Dollar", Flag: "🇳🇿", CentralBank: "Reserve Bank of New Zealand"},
}

// InvalidPairError reports pair text that is malformed or outside the
// supported majors.
type InvalidPairError struct {
	Input string
}

func (e *InvalidPairError) Error() string {
	return fmt.Sprintf("pair %q is not a supported major pair (supported: %s)",
		e.Input, strings.Join(Majors, ", "))
}

// normalize strips separators and the provider suffix and uppercases.
func normalize(pair string) string {
	p := strings.ToUpper(strings.TrimSpace(pair))
	p = strings.ReplaceAll(p, "/", "")
	p = strings.TrimSuffix(p, "=X")
	return p
}

// Parse validates pair text ("EURUSD", "EUR/USD", "EURUSD=X") and returns the
// base and quote currency codes.
func Parse(pair string) (base, quote string, err error) {
	p := normalize(pair)
	if len(p) != 6 {
		return "", "", &InvalidPairError{Input: pair}
	}
	if _, ok := providerSymbols[p]; !ok {
		return "", "", &InvalidPairError{Input: pair}
	}
	return p[:3], p[3:], nil
}

// Resolve parses pair text and returns the full spec for it.
func Resolve(pair string) (PairSpec, error) {
	base, quote, err := Parse(pair)
	if err != nil {
		return PairSpec{}, err
	}
	code := base + quote

	// JPY-quoted pairs trade with a 0.01 pip and fewer display decimals.
	pipSize := 0.0001
	precision := 5
	if quote == "JPY" {
		pipSize = 0.01
		precision = 3
	}

	return PairSpec{
		Code:           code,
		Base:           base,
		Quote:          quote,
		ProviderSymbol: providerSymbols[code],
		PipSize:        pipSize,
		Precision:      precision,
	}, nil
}

// Currency returns metadata for a currency code. Unknown codes yield a
// zero-value info whose Name falls back to the code itself.
func Currency(code string) CurrencyInfo {
	if info, ok := currencies[code]; ok {
		return info
	}
	return CurrencyInfo{Name: code}
}
