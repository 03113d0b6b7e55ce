package config

import (
	"time"

	"golang-stock-advisor/pkg/config"
)

// Watcher holds the alert evaluation loop configuration.
type Watcher struct {
	PollInterval      time.Duration `mapstructure:"poll_interval"`
	EvaluationTimeout time.Duration `mapstructure:"evaluation_timeout"`
	BackoffInitial    time.Duration `mapstructure:"backoff_initial"`
	BackoffMax        time.Duration `mapstructure:"backoff_max"`
}

// MarketData holds the configuration for the market data API.
type MarketData struct {
	BaseURL             string        `mapstructure:"base_url"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
	DefaultRange        string        `mapstructure:"default_range"`
	DefaultInterval     string        `mapstructure:"default_interval"`
}

// Analyzer holds the scheduled watchlist analysis configuration.
type Analyzer struct {
	Schedule string `mapstructure:"schedule"`
	Range    string `mapstructure:"range"`
	Interval string `mapstructure:"interval"`
}

// News holds the news ingestion configuration.
type News struct {
	FeedURL        string        `mapstructure:"feed_url"`
	MaxNewsAgeDays int           `mapstructure:"max_news_age_days"`
	SummaryWindow  time.Duration `mapstructure:"summary_window"`
}

// AI holds configuration for sentiment providers.
type AI struct {
	Provider string `mapstructure:"provider"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the advisor service.
type Config struct {
	App        config.App      `mapstructure:"app"`
	Logger     config.Logger   `mapstructure:"logger"`
	Database   config.Database `mapstructure:"database"`
	Redis      config.Redis    `mapstructure:"redis"`
	API        config.API      `mapstructure:"api"`
	Watcher    Watcher         `mapstructure:"watcher"`
	MarketData MarketData      `mapstructure:"market_data"`
	Analyzer   Analyzer        `mapstructure:"analyzer"`
	News       News            `mapstructure:"news"`
	AI         AI              `mapstructure:"ai"`
	Gemini     Gemini          `mapstructure:"gemini"`
	Telegram   Telegram        `mapstructure:"telegram"`
}

// Load loads the advisor configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
