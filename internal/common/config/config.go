package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	Xotelo  XoteloConfig  `mapstructure:"xotelo"`
	Planner PlannerConfig `mapstructure:"planner"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// OpenAIConfig holds credentials and tuning for the chat-completion
// provider. An empty APIKey is valid configuration: the destination flow
// reports it, the hotel flow degrades.
type OpenAIConfig struct {
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	Model     string `mapstructure:"model"`
	WarmModel string `mapstructure:"warm_model"`
	Timeout   int    `mapstructure:"timeout"` // milliseconds
}

// XoteloConfig holds credentials for the hotel-search provider (RapidAPI).
// BaseURL is derived from Host when unset.
type XoteloConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Host    string `mapstructure:"host"`
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// PlannerConfig bounds the hybrid hotel flow.
type PlannerConfig struct {
	HotelLimit       int `mapstructure:"hotel_limit"`        // ranked hotels returned per call
	FactualPoolLimit int `mapstructure:"factual_pool_limit"` // factual hotels pulled before ranking
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig controls the optional /metrics listener. Empty address
// disables it.
type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
