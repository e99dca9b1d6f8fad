package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"llm-forex-bot/internal/logger"
	"llm-forex-bot/internal/types"
)

// Periods enumerates the history windows the chart API accepts.
var Periods = map[string]bool{
	"1d": true, "5d": true, "1mo": true, "3mo": true,
	"6mo": true, "1y": true, "2y": true, "5y": true,
}

// DefaultPeriod is used when the caller does not request a window.
const DefaultPeriod = "5d"

// UnavailableError wraps a transport or API failure reaching Yahoo Finance.
type UnavailableError struct {
	Symbol string
	Err    error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("yahoo finance unavailable for %s: %v", e.Symbol, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Yahoo fetches forex history and news from the Yahoo Finance public API.
type Yahoo struct {
	client  *http.Client
	baseURL string
}

// NewYahoo creates a provider with a bounded request timeout. A single failed
// fetch surfaces immediately; retry policy belongs to the caller.
func NewYahoo(timeout time.Duration) *Yahoo {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Yahoo{
		client:  &http.Client{Timeout: timeout},
		baseURL: "https://query1.finance.yahoo.com",
	}
}

// chartResponse is the shape of the v8 chart endpoint.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []any `json:"open"`
					High  []any `json:"high"`
					Low   []any `json:"low"`
					Close []any `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// searchResponse is the shape of the v1 search endpoint, news fields only.
type searchResponse struct {
	News []struct {
		Title               string `json:"title"`
		Publisher           string `json:"publisher"`
		Link                string `json:"link"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
	} `json:"news"`
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// FetchHistory returns daily bars over the requested period, oldest first.
// Null bars (holidays) are skipped. An empty market is reported as an empty
// slice, not an error.
func (y *Yahoo) FetchHistory(ctx context.Context, symbol, period string) ([]types.PriceBar, error) {
	if period == "" {
		period = DefaultPeriod
	}
	if !Periods[period] {
		return nil, fmt.Errorf("unsupported period %q", period)
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		y.baseURL, url.PathEscape(symbol), period)

	body, err := y.get(ctx, symbol, u)
	if err != nil {
		return nil, err
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, &UnavailableError{Symbol: symbol, Err: fmt.Errorf("decode chart: %w", err)}
	}
	if chart.Chart.Error != nil {
		return nil, &UnavailableError{Symbol: symbol,
			Err: fmt.Errorf("api error: %s", chart.Chart.Error.Description)}
	}
	if len(chart.Chart.Result) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, nil
	}

	quote := result.Indicators.Quote[0]
	// The API can return ragged arrays; never index past the shortest one.
	n := min(len(result.Timestamp), len(quote.Open), len(quote.High), len(quote.Low), len(quote.Close))
	bars := make([]types.PriceBar, 0, n)
	for i := 0; i < n; i++ {
		ts := result.Timestamp[i]
		o, h := toFloat(quote.Open[i]), toFloat(quote.High[i])
		l, c := toFloat(quote.Low[i]), toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue
		}
		bars = append(bars, types.PriceBar{Ts: ts, Open: o, High: h, Low: l, Close: c})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Ts < bars[j].Ts })
	logger.Debug(ctx, "History fetched", "symbol", symbol, "period", period, "bars", len(bars))
	return bars, nil
}

// FetchNews returns up to limit headlines for a symbol via the search
// endpoint. No matching news is an empty slice, not an error.
func (y *Yahoo) FetchNews(ctx context.Context, symbol string, limit int) ([]types.NewsItem, error) {
	if limit <= 0 {
		limit = 10
	}

	u := fmt.Sprintf("%s/v1/finance/search?q=%s&newsCount=%d&quotesCount=0",
		y.baseURL, url.QueryEscape(symbol), limit)

	body, err := y.get(ctx, symbol, u)
	if err != nil {
		return nil, err
	}

	var search searchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return nil, &UnavailableError{Symbol: symbol, Err: fmt.Errorf("decode news: %w", err)}
	}

	items := make([]types.NewsItem, 0, limit)
	for _, n := range search.News {
		if len(items) >= limit {
			break
		}
		if n.Title == "" {
			continue
		}
		publisher := n.Publisher
		if publisher == "" {
			publisher = "Unknown"
		}
		items = append(items, types.NewsItem{
			Title:     n.Title,
			Publisher: publisher,
			Link:      n.Link,
			Published: n.ProviderPublishTime,
		})
	}

	logger.Debug(ctx, "News fetched", "symbol", symbol, "count", len(items))
	return items, nil
}

func (y *Yahoo) get(ctx context.Context, symbol, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, &UnavailableError{Symbol: symbol, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnavailableError{Symbol: symbol, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UnavailableError{Symbol: symbol,
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(body))}
	}
	return body, nil
}
