// Package config loads tool configuration from .env files and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/pdfpeek/pdfpeek/internal/domain"
)

// DefaultMinImageBytes is the smallest embedded image we keep. Anything below
// is almost always an icon or layout artifact, not page content.
const DefaultMinImageBytes = 1000

const (
	defaultModel       = "deepseek/deepseek-chat-v3-0324:free"
	defaultBackupModel = "google/gemma-2-9b-it:free"
	defaultTimeout     = 30 * time.Second
	defaultMaxTokens   = 1000
)

// OpenRouterConfig holds settings for the optional AI post-processing step.
type OpenRouterConfig struct {
	APIKey      string
	Model       string
	BackupModel string
	Timeout     time.Duration
	MaxTokens   int
}

// Config holds all runtime configuration.
type Config struct {
	MinImageBytes int
	LogLevel      string
	OpenRouter    OpenRouterConfig
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MinImageBytes: DefaultMinImageBytes,
		LogLevel:      "warn",
		OpenRouter: OpenRouterConfig{
			Model:       defaultModel,
			BackupModel: defaultBackupModel,
			Timeout:     defaultTimeout,
			MaxTokens:   defaultMaxTokens,
		},
	}
}

// Load reads configuration from a .env file (when present) and the
// environment. Missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_KEY")
	if v := os.Getenv("OPENROUTER_MODEL"); v != "" {
		cfg.OpenRouter.Model = v
	}
	if v := os.Getenv("OPENROUTER_BACKUP_MODEL"); v != "" {
		cfg.OpenRouter.BackupModel = v
	}
	if v := os.Getenv("OPENROUTER_TIMEOUT"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return nil, domain.ConfigError(fmt.Sprintf("invalid OPENROUTER_TIMEOUT %q (want milliseconds)", v), err)
		}
		cfg.OpenRouter.Timeout = time.Duration(ms) * time.Millisecond
	}
	if v := os.Getenv("OPENROUTER_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, domain.ConfigError(fmt.Sprintf("invalid OPENROUTER_MAX_TOKENS %q", v), err)
		}
		cfg.OpenRouter.MaxTokens = n
	}
	if v := os.Getenv("PDFPEEK_MIN_IMAGE_BYTES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, domain.ConfigError(fmt.Sprintf("invalid PDFPEEK_MIN_IMAGE_BYTES %q", v), err)
		}
		cfg.MinImageBytes = n
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}

// RequireAPIKey returns a ConfigError when no OpenRouter key is configured.
// The key is only needed when AI post-processing is requested.
func (c *Config) RequireAPIKey() error {
	if c.OpenRouter.APIKey == "" {
		return domain.ConfigError("OPENROUTER_KEY not set", nil)
	}
	return nil
}
