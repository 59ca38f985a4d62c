package parkbot

import (
	"time"

	"github.com/prilive-com/parkbot/i18n"
	"github.com/prilive-com/parkbot/internal/env"
	"github.com/prilive-com/parkbot/internal/validate"
)

// DefaultSenderWindow is the minimum gap between two answered updates from
// the same user.
const DefaultSenderWindow = 2500 * time.Millisecond

// Config holds bot configuration.
type Config struct {
	SenderWindow    time.Duration
	DefaultLanguage string
	LocalesDir      string // Empty uses the bundled locales
	MetricsEnabled  bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SenderWindow:    DefaultSenderWindow,
		DefaultLanguage: i18n.DefaultLanguage,
		MetricsEnabled:  true,
	}
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()
	var err error

	if cfg.SenderWindow, err = env.Duration("SENDER_WINDOW", cfg.SenderWindow); err != nil {
		return nil, err
	}
	cfg.DefaultLanguage = env.String("DEFAULT_LANGUAGE", cfg.DefaultLanguage)
	cfg.LocalesDir = env.String("LOCALES_DIR", "")
	if cfg.MetricsEnabled, err = env.Bool("METRICS_ENABLED", cfg.MetricsEnabled); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validate.PositiveDuration("SENDER_WINDOW", c.SenderWindow); err != nil {
		return err
	}
	return validate.Language("DEFAULT_LANGUAGE", c.DefaultLanguage)
}
