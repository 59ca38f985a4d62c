package parkbot

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/prilive-com/parkbot/i18n"
	"github.com/prilive-com/parkbot/internal/metrics"
	"github.com/prilive-com/parkbot/internal/resilience"
	"github.com/prilive-com/parkbot/router"
	"github.com/prilive-com/parkbot/tg"
)

// Bot answers updates for any number of parked bots. It holds no token and
// never calls the Bot API; every answer travels back in the webhook response.
//
// Bot owns its per-sender limiter and is safe for concurrent use.
type Bot struct {
	logger    *slog.Logger
	localizer i18n.Translator
	metrics   *metrics.Metrics
	limiter   *resilience.RateLimiter
	router    *router.Router
	closeOnce sync.Once
}

type botConfig struct {
	logger       *slog.Logger
	senderWindow time.Duration
	localizer    i18n.Translator
	metrics      *metrics.Metrics
	now          func() time.Time
}

// Option configures the Bot.
type Option func(*botConfig)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *botConfig) {
		c.logger = logger
	}
}

// WithSenderWindow sets how often one sender may be answered.
func WithSenderWindow(d time.Duration) Option {
	return func(c *botConfig) {
		c.senderWindow = d
	}
}

// WithLocalizer replaces the bundled translations.
func WithLocalizer(tr i18n.Translator) Option {
	return func(c *botConfig) {
		c.localizer = tr
	}
}

// WithMetrics enables the update counters.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *botConfig) {
		c.metrics = m
	}
}

// WithClock sets the clock used by the per-sender limiter.
func WithClock(now func() time.Time) Option {
	return func(c *botConfig) {
		c.now = now
	}
}

// New creates a Bot with the bundled translations and no metrics.
func New(opts ...Option) (*Bot, error) {
	cfg := botConfig{
		senderWindow: DefaultSenderWindow,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	// Use configured logger or default
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.localizer == nil {
		loc, err := i18n.New()
		if err != nil {
			return nil, err
		}
		cfg.localizer = loc
	}

	limiterCfg := resilience.DefaultRateLimiterConfig()
	limiterCfg.Window = cfg.senderWindow
	limiterCfg.Now = cfg.now

	b := &Bot{
		logger:    logger,
		localizer: cfg.localizer,
		metrics:   cfg.metrics,
		limiter:   resilience.NewRateLimiter(limiterCfg),
		router:    router.New(router.WithLogger(logger)),
	}

	b.router.Use(
		router.Recover(),
		router.Logging(),
		router.Localize(b.localizer),
		router.RateLimit(b.limiter, func(*router.Context) {
			b.metrics.Dropped(metrics.ReasonRateLimited)
		}),
	)
	registerHandlers(b.router, b.metrics)

	return b, nil
}

// NewFromConfig creates a Bot from loaded configuration. Options are applied
// after the configuration, so they win.
func NewFromConfig(cfg Config, opts ...Option) (*Bot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	locOpts := []i18n.Option{i18n.WithDefaultLanguage(cfg.DefaultLanguage)}
	var (
		loc *i18n.Localizer
		err error
	)
	if cfg.LocalesDir != "" {
		loc, err = i18n.Load(os.DirFS(cfg.LocalesDir), locOpts...)
	} else {
		loc, err = i18n.New(locOpts...)
	}
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithSenderWindow(cfg.SenderWindow),
		WithLocalizer(loc),
	}
	if cfg.MetricsEnabled {
		base = append(base, WithMetrics(metrics.New()))
	}
	return New(append(base, opts...)...)
}

// Dispatch answers one update. The returned call, if any, belongs in the
// webhook response body.
func (b *Bot) Dispatch(ctx context.Context, u *tg.Update) (tg.Method, error) {
	return b.router.Dispatch(ctx, u)
}

// Metrics returns the counters, or nil when metrics are disabled.
func (b *Bot) Metrics() *metrics.Metrics {
	return b.metrics
}

// Close stops the limiter's background sweep. It is safe to call more than
// once.
func (b *Bot) Close() error {
	b.closeOnce.Do(func() {
		b.limiter.Close()
		b.logger.Debug("bot closed")
	})
	return nil
}
