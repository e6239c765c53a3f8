package store

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"http"`
	MarketData struct {
		BaseURL         string `yaml:"base_url"`
		RequestsPerMin  int    `yaml:"requests_per_min"`
		CacheDir        string `yaml:"cache_dir"`
		CacheTTLMinutes int    `yaml:"cache_ttl_minutes"`
	} `yaml:"market_data"`
	NLU struct {
		Provider    string  `yaml:"provider"` // WIT, OPENAI, CLAUDE, NONE
		BaseURL     string  `yaml:"base_url"`
		Version     string  `yaml:"version"`
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
		System      string  `yaml:"system"`
	} `yaml:"nlu"`
	Broker struct {
		Provider string `yaml:"provider"` // ALPACA, ZERODHA
		BaseURL  string `yaml:"base_url"`
		Feed     string `yaml:"feed"`
		Exchange string `yaml:"exchange"`
	} `yaml:"broker"`
	News struct {
		FeedURL         string `yaml:"feed_url"`
		MaxArticles     int    `yaml:"max_articles"`
		CacheTTLMinutes int    `yaml:"cache_ttl_minutes"`
	} `yaml:"news"`
	Chat struct {
		TranscriptDir           string `yaml:"transcript_dir"`
		TranscriptRetentionDays int    `yaml:"transcript_retention_days"`
	} `yaml:"chat"`
	Dashboard struct {
		Addr        string `yaml:"addr"`
		ChartHeight int    `yaml:"chart_height"`
		ChartWidth  int    `yaml:"chart_width"`
	} `yaml:"dashboard"`
	Maintenance struct {
		Schedule string `yaml:"schedule"` // standard 5-field cron spec
	} `yaml:"maintenance"`
}

// Secrets are never read from config.yaml, only from the environment (.env included).
type Secrets struct {
	AlphaVantageAPIKey string `envconfig:"ALPHA_VANTAGE_API_KEY"`
	WitAccessToken     string `envconfig:"WIT_ACCESS_TOKEN"`
	OpenAIAPIKey       string `envconfig:"OPENAI_API_KEY"`
	ClaudeAPIKey       string `envconfig:"CLAUDE_API_KEY"`
	AlpacaKeyID        string `envconfig:"ALPACA_KEY_ID"`
	AlpacaSecretKey    string `envconfig:"ALPACA_SECRET_KEY"`
	KiteAPIKey         string `envconfig:"KITE_API_KEY"`
	KiteAccessToken    string `envconfig:"KITE_ACCESS_TOKEN"`
	TelegramBotToken   string `envconfig:"TELEGRAM_BOT_TOKEN"`
}

func LoadSecrets() (*Secrets, error) {
	var s Secrets
	if err := envconfig.Process("", &s); err != nil {
		return nil, fmt.Errorf("load secrets: %w", err)
	}
	return &s, nil
}

// Timeout is the bound applied to every external call.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

func (c *Config) MarketDataCacheTTL() time.Duration {
	return time.Duration(c.MarketData.CacheTTLMinutes) * time.Minute
}

func (c *Config) NewsCacheTTL() time.Duration {
	return time.Duration(c.News.CacheTTLMinutes) * time.Minute
}

func (c *Config) Validate() error {
	switch c.NLU.Provider {
	case "WIT", "OPENAI", "CLAUDE", "NONE":
	default:
		return fmt.Errorf("invalid nlu.provider '%s': must be 'WIT', 'OPENAI', 'CLAUDE' or 'NONE'", c.NLU.Provider)
	}
	if c.Broker.Provider != "ALPACA" && c.Broker.Provider != "ZERODHA" {
		return fmt.Errorf("invalid broker.provider '%s': must be 'ALPACA' or 'ZERODHA'", c.Broker.Provider)
	}
	if c.HTTP.TimeoutSeconds <= 0 || c.HTTP.TimeoutSeconds > 120 {
		return fmt.Errorf("http.timeout_seconds must be between 1-120, got %d", c.HTTP.TimeoutSeconds)
	}
	if c.News.MaxArticles <= 0 {
		return fmt.Errorf("news.max_articles must be positive, got %d", c.News.MaxArticles)
	}
	return nil
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	var c Config
	c.applyDefaults()
	return &c
}

func (c *Config) applyDefaults() {
	if c.HTTP.TimeoutSeconds == 0 {
		c.HTTP.TimeoutSeconds = 10
	}
	if c.MarketData.BaseURL == "" {
		c.MarketData.BaseURL = "https://www.alphavantage.co"
	}
	if c.MarketData.RequestsPerMin == 0 {
		c.MarketData.RequestsPerMin = 5
	}
	if c.MarketData.CacheTTLMinutes == 0 {
		c.MarketData.CacheTTLMinutes = 60
	}
	if c.NLU.Provider == "" {
		c.NLU.Provider = "WIT"
	}
	if c.NLU.Version == "" {
		c.NLU.Version = "20240101"
	}
	if c.NLU.MaxTokens == 0 {
		c.NLU.MaxTokens = 200
	}
	if c.Broker.Provider == "" {
		c.Broker.Provider = "ALPACA"
	}
	if c.Broker.Feed == "" {
		c.Broker.Feed = "iex"
	}
	if c.Broker.Exchange == "" {
		c.Broker.Exchange = "NSE"
	}
	if c.News.FeedURL == "" {
		c.News.FeedURL = "https://finance.yahoo.com/news/rssindex"
	}
	if c.News.MaxArticles == 0 {
		c.News.MaxArticles = 10
	}
	if c.News.CacheTTLMinutes == 0 {
		c.News.CacheTTLMinutes = 15
	}
	if c.Dashboard.Addr == "" {
		c.Dashboard.Addr = ":8080"
	}
	if c.Dashboard.ChartHeight == 0 {
		c.Dashboard.ChartHeight = 15
	}
	if c.Dashboard.ChartWidth == 0 {
		c.Dashboard.ChartWidth = 80
	}
	if c.Maintenance.Schedule == "" {
		c.Maintenance.Schedule = "0 3 * * *"
	}
}

// LoadConfig reads path; a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}
