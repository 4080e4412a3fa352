package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like OPENAI_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if cfg.Xotelo.BaseURL == "" && cfg.Xotelo.Host != "" {
		cfg.Xotelo.BaseURL = "https://" + cfg.Xotelo.Host + "/api"
	}

	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if cfg.Xotelo.BaseURL == "" && cfg.Xotelo.Host != "" {
		cfg.Xotelo.BaseURL = "https://" + cfg.Xotelo.Host + "/api"
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// Direct override if config values are still empty after viper's env pass
func overrideEmptyConfig(cfg *Config) {
	if cfg.OpenAI.APIKey == "" {
		if val := os.Getenv("OPENAI_API_KEY"); val != "" {
			cfg.OpenAI.APIKey = val
		}
	}
	if val := os.Getenv("OPENAI_BASE_URL"); val != "" {
		cfg.OpenAI.BaseURL = val
	}
	if val := os.Getenv("OPENAI_MODEL"); val != "" {
		cfg.OpenAI.Model = val
	}

	if cfg.Xotelo.APIKey == "" {
		if val := os.Getenv("XOTELO_API_KEY"); val != "" {
			cfg.Xotelo.APIKey = val
		}
	}
	if cfg.Xotelo.Host == "" {
		if val := os.Getenv("XOTELO_API_HOST"); val != "" {
			cfg.Xotelo.Host = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
// Credentials deliberately have no defaults: their absence is a runtime
// degrade, not a load failure.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "travel-madlibs"
	}

	if cfg.OpenAI.BaseURL == "" {
		cfg.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.OpenAI.WarmModel == "" {
		cfg.OpenAI.WarmModel = "gpt-3.5-turbo-0125"
	}
	if cfg.OpenAI.Timeout == 0 {
		cfg.OpenAI.Timeout = 60000
	}

	if cfg.Xotelo.Timeout == 0 {
		cfg.Xotelo.Timeout = 15000
	}

	if cfg.Planner.HotelLimit == 0 {
		cfg.Planner.HotelLimit = 10
	}
	if cfg.Planner.FactualPoolLimit == 0 {
		cfg.Planner.FactualPoolLimit = 100
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}
