package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

// Config holds all application configuration
type Config struct {
	BotToken    string `validate:"required"`
	BotPassword string `validate:"required"`
	Session     SessionConfig
	Assistant   AssistantConfig
}

// SessionConfig controls the lifetime of in-memory user workspaces
type SessionConfig struct {
	IdleTTL         time.Duration `validate:"gt=0"`
	CleanupInterval time.Duration `validate:"gt=0"`
}

// AssistantConfig holds simulated delays of the mock assistant
type AssistantConfig struct {
	TranslateDelay time.Duration `validate:"gte=0"`
	AnalyzeDelay   time.Duration `validate:"gte=0"`
	DetectDelay    time.Duration `validate:"gte=0"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	var errs []error
	duration := func(key, defaultValue string) time.Duration {
		d, err := time.ParseDuration(getEnv(key, defaultValue))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return d
	}

	cfg := &Config{
		BotToken:    os.Getenv("BOT_TOKEN"),
		BotPassword: os.Getenv("BOT_PASSWORD"),
		Session: SessionConfig{
			IdleTTL:         duration("SESSION_IDLE_TTL", "24h"),
			CleanupInterval: duration("CLEANUP_INTERVAL", "1h"),
		},
		Assistant: AssistantConfig{
			TranslateDelay: duration("TRANSLATE_DELAY", "1s"),
			AnalyzeDelay:   duration("ANALYZE_DELAY", "2s"),
			DetectDelay:    duration("DETECT_DELAY", "0s"),
		},
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid duration: %w", errors.Join(errs...))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s%s", fe.Namespace(), fe.Tag(), param(fe.Param())))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

func param(p string) string {
	if p == "" {
		return ""
	}
	return "=" + p
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
