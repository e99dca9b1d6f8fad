package types

// PriceBar is a single period of OHLC history as returned by the data provider.
type PriceBar struct {
	Ts                     int64
	Open, High, Low, Close float64
}

// NewsItem is a single provider-sourced headline.
type NewsItem struct {
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	Link      string `json:"link"`
	Published int64  `json:"published"`
}

// MarketSnapshot holds the derived market state for one pair. All values keep
// native float64 precision; display rounding happens at the formatting layer.
type MarketSnapshot struct {
	Pair            string  `json:"pair"`
	CurrentRate     float64 `json:"current_rate"`
	PrevClose       float64 `json:"prev_close"`
	Change          float64 `json:"change"`
	ChangePct       float64 `json:"change_pct"`
	High            float64 `json:"high"`
	Low             float64 `json:"low"`
	Support         float64 `json:"support"`
	Resistance      float64 `json:"resistance"`
	Volatility      float64 `json:"volatility"`
	PositionInRange float64 `json:"position_in_range"`
	BaseCurrency    string  `json:"base_currency"`
	QuoteCurrency   string  `json:"quote_currency"`
}

// SentimentResult aggregates keyword sentiment per side of a pair.
type SentimentResult struct {
	BaseBullish    int    `json:"base_bullish"`
	BaseBearish    int    `json:"base_bearish"`
	QuoteBullish   int    `json:"quote_bullish"`
	QuoteBearish   int    `json:"quote_bearish"`
	PairSentiment  int    `json:"pair_sentiment"`
	Recommendation string `json:"recommendation"`
}

// PipInfo describes the pip economics for a pair at a given lot size.
// PipValue is expressed in quote-currency terms.
type PipInfo struct {
	PipSize  float64 `json:"pip_size"`
	PipValue float64 `json:"pip_value"`
	LotSize  float64 `json:"lot_size"`
	Units    float64 `json:"units"`
}

// RawData is the structured payload inside a Result envelope.
type RawData struct {
	News       []NewsItem      `json:"news"`
	MarketData MarketSnapshot  `json:"market_data"`
	Sentiment  SentimentResult `json:"sentiment"`
	PipInfo    PipInfo         `json:"pip_info"`
}

// Metadata carries request bookkeeping alongside a Result.
type Metadata struct {
	Pair      string `json:"pair"`
	Timestamp string `json:"timestamp"`
	NewsCount int    `json:"news_count"`
}

// Result is the envelope returned by the engine. Callers must check Success
// before reading Context or RawData.
type Result struct {
	Success  bool     `json:"success"`
	Error    string   `json:"error,omitempty"`
	Context  string   `json:"llm_context"`
	RawData  RawData  `json:"raw_data"`
	Metadata Metadata `json:"metadata"`
}

// PairOverview is one row of the all-majors overview.
type PairOverview struct {
	Pair            string  `json:"pair"`
	Rate            float64 `json:"rate"`
	ChangePct       float64 `json:"change_pct"`
	Volatility      float64 `json:"volatility"`
	PositionInRange float64 `json:"position_in_range"`
}

// TradeDecision is a single per-pair instruction from the decision layer.
type TradeDecision struct {
	Pair          string  `json:"asset"`
	Action        string  `json:"action"`
	AllocationUSD float64 `json:"allocation_usd"`
	TPPrice       float64 `json:"tp_price,omitempty"`
	SLPrice       float64 `json:"sl_price,omitempty"`
	ExitPlan      string  `json:"exit_plan,omitempty"`
	Rationale     string  `json:"rationale,omitempty"`
}

// Decision is the full response from the decision layer for one cycle.
type Decision struct {
	Reasoning string          `json:"reasoning"`
	Trades    []TradeDecision `json:"trade_decisions"`
}
