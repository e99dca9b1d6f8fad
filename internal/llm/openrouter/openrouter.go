package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"llm-forex-bot/internal/store"
	"llm-forex-bot/internal/trace"
	"llm-forex-bot/internal/types"
)

const systemPrompt = `You are an expert FOREX trading agent. Analyze the market data, news sentiment and technical context provided for each currency pair and make informed trading decisions.

RISK MANAGEMENT RULES:
1. Never risk more than 2% of account balance per trade
2. Always set stop loss at key support/resistance levels
3. Target minimum 2:1 reward-to-risk ratio
4. Maximum 3-4 open positions simultaneously

DECISION LOGIC:
- BUY: trend up, sentiment bullish, price near support with confirmation
- SELL: trend down, sentiment bearish, price near resistance with confirmation
- HOLD: mixed signals, excessive volatility, or no clear setup

Respond ONLY with valid JSON matching this structure:
{
  "reasoning": "analysis of market conditions per pair",
  "trade_decisions": [
    {
      "asset": "EURUSD",
      "action": "BUY|SELL|HOLD",
      "allocation_usd": 1000,
      "tp_price": 1.1200,
      "sl_price": 1.0900,
      "exit_plan": "short exit plan",
      "rationale": "specific reason for this decision"
    }
  ]
}`

// Decider makes trading decisions through the OpenRouter chat-completions API.
type Decider struct {
	cfg *store.Config
}

func New(cfg *store.Config) *Decider {
	return &Decider{cfg: cfg}
}

func (d *Decider) Decide(ctx context.Context, pairContexts map[string]string, overview []types.PairOverview) (types.Decision, error) {
	ctx, span := trace.StartSpan(ctx, "openrouter-api-call")
	defer span.End()

	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return types.Decision{}, errors.New("OPENROUTER_API_KEY missing")
	}

	prompt := d.buildPrompt(pairContexts, overview)

	body := map[string]any{
		"model": d.cfg.LLM.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": prompt},
		},
		"temperature": d.cfg.LLM.Temperature,
		"max_tokens":  d.cfg.LLM.MaxTokens,
	}
	bb, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", d.cfg.LLM.BaseURL+"/chat/completions", bytes.NewReader(bb))
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")
	if d.cfg.LLM.Referer != "" {
		req.Header.Set("HTTP-Referer", d.cfg.LLM.Referer)
	}
	if d.cfg.LLM.AppTitle != "" {
		req.Header.Set("X-Title", d.cfg.LLM.AppTitle)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return types.Decision{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return types.Decision{}, fmt.Errorf("openrouter http %d", resp.StatusCode)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return types.Decision{}, err
	}
	if len(r.Choices) == 0 {
		return types.Decision{}, errors.New("no choices")
	}

	content := stripFences(r.Choices[0].Message.Content)

	var decision types.Decision
	if err := json.Unmarshal([]byte(content), &decision); err != nil {
		return FallbackDecision(pairKeys(pairContexts), "invalid_json"), nil
	}

	valid := map[string]bool{"BUY": true, "SELL": true, "HOLD": true}
	for i := range decision.Trades {
		decision.Trades[i].Action = strings.ToUpper(strings.TrimSpace(decision.Trades[i].Action))
		if !valid[decision.Trades[i].Action] {
			decision.Trades[i].Action = "HOLD"
		}
	}

	return decision, nil
}

func (d *Decider) buildPrompt(pairContexts map[string]string, overview []types.PairOverview) string {
	var b strings.Builder

	if len(overview) > 0 {
		b.WriteString("MAJORS OVERVIEW:\n")
		for _, row := range overview {
			fmt.Fprintf(&b, "  %s: rate=%.5f change=%+.2f%% volatility=%.5f range_position=%.1f%%\n",
				row.Pair, row.Rate, row.ChangePct, row.Volatility, row.PositionInRange)
		}
		b.WriteString("\n")
	}

	for _, pair := range pairKeys(pairContexts) {
		b.WriteString(pairContexts[pair])
		b.WriteString("\n")
	}

	return b.String()
}

// stripFences removes a markdown code fence wrapper, if present.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = content[7:]
	} else if strings.HasPrefix(content, "```") {
		content = content[3:]
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// FallbackDecision is the safe HOLD-everything decision used when the LLM
// response cannot be used.
func FallbackDecision(pairs []string, reason string) types.Decision {
	trades := make([]types.TradeDecision, 0, len(pairs))
	for _, pair := range pairs {
		trades = append(trades, types.TradeDecision{
			Pair:      pair,
			Action:    "HOLD",
			ExitPlan:  "Wait for stable market conditions",
			Rationale: reason,
		})
	}
	return types.Decision{
		Reasoning: "Unable to make an informed decision. Holding all positions for safety.",
		Trades:    trades,
	}
}

func pairKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Deterministic prompt ordering.
	sort.Strings(keys)
	return keys
}
