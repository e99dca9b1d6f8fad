package store

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"llm-forex-bot/internal/pairs"
	"llm-forex-bot/internal/provider"
)

type Config struct {
	Pairs       []string `yaml:"pairs"`
	PollSeconds int      `yaml:"poll_seconds"`
	Cache       struct {
		TTLSeconds int `yaml:"ttl_seconds"`
	} `yaml:"cache"`
	News struct {
		Limit          int  `yaml:"limit"`
		ScrapeFallback bool `yaml:"scrape_fallback"`
	} `yaml:"news"`
	Provider struct {
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		Period         string `yaml:"period"`
	} `yaml:"provider"`
	LLM struct {
		Provider    string  `yaml:"provider"`
		Model       string  `yaml:"model"`
		BaseURL     string  `yaml:"base_url"`
		Referer     string  `yaml:"referer"`
		AppTitle    string  `yaml:"app_title"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
	} `yaml:"llm"`
}

// envOverrides is the environment surface layered on top of the yaml file.
type envOverrides struct {
	Pairs         []string `envconfig:"FOREX_PAIRS"`
	NewsLimit     int      `envconfig:"YAHOO_NEWS_LIMIT"`
	CacheDuration int      `envconfig:"YAHOO_CACHE_DURATION"`
	LLMModel      string   `envconfig:"LLM_MODEL"`
	LLMProvider   string   `envconfig:"LLM_PROVIDER"`
	BaseURL       string   `envconfig:"OPENROUTER_BASE_URL"`
	Referer       string   `envconfig:"OPENROUTER_REFERER"`
	AppTitle      string   `envconfig:"OPENROUTER_APP_TITLE"`
}

func (c *Config) Validate() error {
	if len(c.Pairs) == 0 {
		return fmt.Errorf("pairs cannot be empty")
	}
	for _, p := range c.Pairs {
		if _, _, err := pairs.Parse(p); err != nil {
			return fmt.Errorf("config pair %q: %w", p, err)
		}
	}
	if c.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("cache.ttl_seconds must be positive, got %d", c.Cache.TTLSeconds)
	}
	if c.News.Limit <= 0 {
		return fmt.Errorf("news.limit must be positive, got %d", c.News.Limit)
	}
	if !provider.Periods[c.Provider.Period] {
		return fmt.Errorf("provider.period %q is not a supported period", c.Provider.Period)
	}
	if c.LLM.Provider != "OPENROUTER" && c.LLM.Provider != "NOOP" {
		return fmt.Errorf("llm.provider must be 'OPENROUTER' or 'NOOP', got %q", c.LLM.Provider)
	}
	return nil
}

func defaults() *Config {
	c := &Config{
		Pairs:       append([]string(nil), pairs.Majors...),
		PollSeconds: 300,
	}
	c.Cache.TTLSeconds = 300
	c.News.Limit = 10
	c.News.ScrapeFallback = true
	c.Provider.TimeoutSeconds = 30
	c.Provider.Period = provider.DefaultPeriod
	c.LLM.Provider = "NOOP"
	c.LLM.Model = "anthropic/claude-3-5-sonnet"
	c.LLM.BaseURL = "https://openrouter.ai/api/v1"
	c.LLM.AppTitle = "LLM FOREX Bot"
	c.LLM.MaxTokens = 2000
	c.LLM.Temperature = 0.7
	return c
}

// LoadConfig reads the yaml file at path, falls back to defaults when the
// file is absent, applies environment overrides, and validates the result.
func LoadConfig(path string) (*Config, error) {
	c := defaults()

	b, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	fillZero(c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return err
	}

	if len(env.Pairs) > 0 {
		c.Pairs = env.Pairs
	}
	if env.NewsLimit > 0 {
		c.News.Limit = env.NewsLimit
	}
	if env.CacheDuration > 0 {
		c.Cache.TTLSeconds = env.CacheDuration
	}
	if env.LLMModel != "" {
		c.LLM.Model = env.LLMModel
	}
	if env.LLMProvider != "" {
		c.LLM.Provider = env.LLMProvider
	}
	if env.BaseURL != "" {
		c.LLM.BaseURL = env.BaseURL
	}
	if env.Referer != "" {
		c.LLM.Referer = env.Referer
	}
	if env.AppTitle != "" {
		c.LLM.AppTitle = env.AppTitle
	}
	return nil
}

// fillZero restores defaults for keys the yaml file set to zero values.
func fillZero(c *Config) {
	d := defaults()
	if c.PollSeconds == 0 {
		c.PollSeconds = d.PollSeconds
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = d.Cache.TTLSeconds
	}
	if c.News.Limit == 0 {
		c.News.Limit = d.News.Limit
	}
	if c.Provider.TimeoutSeconds == 0 {
		c.Provider.TimeoutSeconds = d.Provider.TimeoutSeconds
	}
	if c.Provider.Period == "" {
		c.Provider.Period = d.Provider.Period
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = d.LLM.Provider
	}
	if c.LLM.Model == "" {
		c.LLM.Model = d.LLM.Model
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = d.LLM.BaseURL
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = d.LLM.MaxTokens
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = d.LLM.Temperature
	}
}
