package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Pairs) != 7 {
		t.Errorf("default pairs = %d, want the 7 majors", len(cfg.Pairs))
	}
	if cfg.Cache.TTLSeconds != 300 {
		t.Errorf("default ttl = %d, want 300", cfg.Cache.TTLSeconds)
	}
	if cfg.News.Limit != 10 {
		t.Errorf("default news limit = %d, want 10", cfg.News.Limit)
	}
	if cfg.Provider.Period != "5d" {
		t.Errorf("default period = %s, want 5d", cfg.Provider.Period)
	}
	if cfg.LLM.Provider != "NOOP" {
		t.Errorf("default llm provider = %s, want NOOP", cfg.LLM.Provider)
	}
}

func TestLoadConfigFileOverrides(t *testing.T) {
	path := writeConfig(t, `
pairs:
  - EURUSD
  - USDJPY
poll_seconds: 60
cache:
  ttl_seconds: 120
news:
  limit: 5
provider:
  period: 1mo
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Pairs) != 2 {
		t.Errorf("pairs = %v", cfg.Pairs)
	}
	if cfg.PollSeconds != 60 {
		t.Errorf("poll = %d, want 60", cfg.PollSeconds)
	}
	if cfg.Cache.TTLSeconds != 120 {
		t.Errorf("ttl = %d, want 120", cfg.Cache.TTLSeconds)
	}
	if cfg.Provider.Period != "1mo" {
		t.Errorf("period = %s, want 1mo", cfg.Provider.Period)
	}
	// Keys the file leaves out keep their defaults.
	if cfg.Provider.TimeoutSeconds != 30 {
		t.Errorf("timeout = %d, want 30", cfg.Provider.TimeoutSeconds)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("FOREX_PAIRS", "GBPUSD,AUDUSD")
	t.Setenv("YAHOO_NEWS_LIMIT", "3")
	t.Setenv("YAHOO_CACHE_DURATION", "600")
	t.Setenv("LLM_MODEL", "openai/gpt-4o")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Pairs) != 2 || cfg.Pairs[0] != "GBPUSD" {
		t.Errorf("pairs = %v", cfg.Pairs)
	}
	if cfg.News.Limit != 3 {
		t.Errorf("news limit = %d, want 3", cfg.News.Limit)
	}
	if cfg.Cache.TTLSeconds != 600 {
		t.Errorf("ttl = %d, want 600", cfg.Cache.TTLSeconds)
	}
	if cfg.LLM.Model != "openai/gpt-4o" {
		t.Errorf("model = %s", cfg.LLM.Model)
	}
}

func TestLoadConfigRejectsBadPair(t *testing.T) {
	path := writeConfig(t, "pairs:\n  - EURGBP\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected validation error for unsupported pair")
	} else if !strings.Contains(err.Error(), "EURGBP") {
		t.Errorf("error should name the pair: %v", err)
	}
}

func TestLoadConfigRejectsBadPeriod(t *testing.T) {
	path := writeConfig(t, "provider:\n  period: 9q\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected validation error for unsupported period")
	}
}

func TestValidateLLMProvider(t *testing.T) {
	cfg := defaults()
	cfg.LLM.Provider = "OLLAMA"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown llm provider")
	}
}
