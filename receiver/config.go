package receiver

import (
	"net"
	"strconv"
	"time"

	"github.com/prilive-com/parkbot/internal/env"
	"github.com/prilive-com/parkbot/internal/validate"
	"github.com/prilive-com/parkbot/tg"
)

// Config holds receiver configuration.
type Config struct {
	// Listen address
	Host string
	Port int

	// Routing
	WebhookPath      string // "/" accepts updates on any path
	MetricsPath      string // Empty disables the exposition endpoint
	HealthPathPrefix string // Empty disables /livez and /readyz

	// Webhook security
	WebhookSecret tg.SecretToken

	// Request limits
	MaxBodySize       int64
	RateLimitRequests float64 // Requests per second, all bots together
	RateLimitBurst    int

	// Circuit breaker around dispatch
	BreakerMaxRequests uint32
	BreakerThreshold   uint32
	BreakerInterval    time.Duration
	BreakerTimeout     time.Duration

	// Server timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	// Shutdown
	DrainDelay      time.Duration // Wait for LB before shutdown
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:               "127.0.0.1",
		Port:               3000,
		WebhookPath:        "/",
		MetricsPath:        "/supersecretmetrics",
		MaxBodySize:        1 << 20, // 1MB
		RateLimitRequests:  100,
		RateLimitBurst:     200,
		BreakerMaxRequests: 5,
		BreakerThreshold:   20,
		BreakerInterval:    2 * time.Minute,
		BreakerTimeout:     60 * time.Second,
		ReadTimeout:        10 * time.Second,
		ReadHeaderTimeout:  2 * time.Second,
		WriteTimeout:       15 * time.Second,
		IdleTimeout:        120 * time.Second,
		DrainDelay:         5 * time.Second,
		ShutdownTimeout:    15 * time.Second,
	}
}

// Addr returns the host:port the server listens on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()
	var err error

	// Listen address
	cfg.Host = env.String("HOST", cfg.Host)
	if cfg.Port, err = env.Int("PORT", cfg.Port); err != nil {
		return nil, err
	}

	// Routing
	cfg.WebhookPath = env.String("WEBHOOK_PATH", cfg.WebhookPath)
	// An empty METRICS_PATH turns the endpoint off.
	cfg.MetricsPath = env.StringOrEmpty("METRICS_PATH", cfg.MetricsPath)
	cfg.HealthPathPrefix = env.String("HEALTH_PATH_PREFIX", cfg.HealthPathPrefix)
	cfg.WebhookSecret = tg.SecretToken(env.String("WEBHOOK_SECRET", ""))

	// Request limits
	if cfg.MaxBodySize, err = env.Int64("MAX_BODY_SIZE", cfg.MaxBodySize); err != nil {
		return nil, err
	}
	if cfg.RateLimitRequests, err = env.Float("RATE_LIMIT_REQUESTS", cfg.RateLimitRequests); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = env.Int("RATE_LIMIT_BURST", cfg.RateLimitBurst); err != nil {
		return nil, err
	}

	// Circuit breaker
	if cfg.BreakerMaxRequests, err = env.Uint32("BREAKER_MAX_REQUESTS", cfg.BreakerMaxRequests); err != nil {
		return nil, err
	}
	if cfg.BreakerThreshold, err = env.Uint32("BREAKER_THRESHOLD", cfg.BreakerThreshold); err != nil {
		return nil, err
	}
	if cfg.BreakerInterval, err = env.Duration("BREAKER_INTERVAL", cfg.BreakerInterval); err != nil {
		return nil, err
	}
	if cfg.BreakerTimeout, err = env.Duration("BREAKER_TIMEOUT", cfg.BreakerTimeout); err != nil {
		return nil, err
	}

	// Server timeouts
	if cfg.ReadTimeout, err = env.Duration("READ_TIMEOUT", cfg.ReadTimeout); err != nil {
		return nil, err
	}
	if cfg.ReadHeaderTimeout, err = env.Duration("READ_HEADER_TIMEOUT", cfg.ReadHeaderTimeout); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = env.Duration("WRITE_TIMEOUT", cfg.WriteTimeout); err != nil {
		return nil, err
	}
	if cfg.IdleTimeout, err = env.Duration("IDLE_TIMEOUT", cfg.IdleTimeout); err != nil {
		return nil, err
	}

	// Shutdown
	if cfg.DrainDelay, err = env.Duration("DRAIN_DELAY", cfg.DrainDelay); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = env.Duration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	checks := []error{
		validate.Host("HOST", c.Host),
		validate.Port("PORT", c.Port),
		validate.Path("WEBHOOK_PATH", c.WebhookPath),
		validate.OptionalPath("METRICS_PATH", c.MetricsPath),
		validate.OptionalPath("HEALTH_PATH_PREFIX", c.HealthPathPrefix),
		validate.Positive("MAX_BODY_SIZE", c.MaxBodySize),
		validate.Positive("RATE_LIMIT_REQUESTS", c.RateLimitRequests),
		validate.Positive("RATE_LIMIT_BURST", c.RateLimitBurst),
		validate.PositiveDuration("BREAKER_TIMEOUT", c.BreakerTimeout),
		validate.NonNegativeDuration("BREAKER_INTERVAL", c.BreakerInterval),
		validate.PositiveDuration("READ_TIMEOUT", c.ReadTimeout),
		validate.PositiveDuration("READ_HEADER_TIMEOUT", c.ReadHeaderTimeout),
		validate.PositiveDuration("WRITE_TIMEOUT", c.WriteTimeout),
		validate.PositiveDuration("IDLE_TIMEOUT", c.IdleTimeout),
		validate.NonNegativeDuration("DRAIN_DELAY", c.DrainDelay),
		validate.PositiveDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if c.MetricsPath != "" && c.MetricsPath == c.WebhookPath {
		return validate.New("METRICS_PATH", "must differ from WEBHOOK_PATH")
	}
	return nil
}
