package resilience

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter limits events per key (typically a Telegram user ID).
//
// Each key gets its own token bucket refilled once per Window. With the
// default burst of 1 this admits at most one event per Window per key; events
// over the limit are rejected without consuming anything.
type RateLimiter struct {
	mu        sync.Mutex
	perKey    map[string]*keyState
	window    time.Duration
	burst     int
	idleTTL   time.Duration
	now       func() time.Time
	cleanupCh chan struct{}
	closeOnce sync.Once
}

type keyState struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterConfig holds rate limiter configuration.
type RateLimiterConfig struct {
	Window          time.Duration    // One event per Window per key
	Burst           int              // Events allowed back to back
	IdleTTL         time.Duration    // Keys unseen for this long are forgotten
	CleanupInterval time.Duration    // How often idle keys are swept (0 = never)
	Now             func() time.Time // Clock, defaults to time.Now
}

// DefaultRateLimiterConfig returns the parked bot defaults: one update per
// 2.5 seconds per sender.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		Window:          2500 * time.Millisecond,
		Burst:           1,
		IdleTTL:         10 * time.Minute,
		CleanupInterval: time.Minute,
	}
}

// NewRateLimiter creates a new rate limiter.
// Zero-value fields in cfg are replaced with defaults.
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	defaults := DefaultRateLimiterConfig()
	if cfg.Window <= 0 {
		cfg.Window = defaults.Window
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaults.Burst
	}
	// A key must never be forgotten while its bucket is still refilling.
	if minTTL := cfg.Window * time.Duration(cfg.Burst); cfg.IdleTTL < minTTL {
		cfg.IdleTTL = minTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	rl := &RateLimiter{
		perKey:    make(map[string]*keyState),
		window:    cfg.Window,
		burst:     cfg.Burst,
		idleTTL:   cfg.IdleTTL,
		now:       cfg.Now,
		cleanupCh: make(chan struct{}),
	}

	if cfg.CleanupInterval > 0 {
		go rl.cleanup(cfg.CleanupInterval)
	}

	return rl
}

// Allow reports whether an event for key may proceed now.
func (r *RateLimiter) Allow(key string) bool {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.perKey[key]
	if !ok {
		st = &keyState{limiter: rate.NewLimiter(rate.Every(r.window), r.burst)}
		r.perKey[key] = st
	}
	st.lastSeen = now
	return st.limiter.AllowN(now, 1)
}

// Window returns the per-key window.
func (r *RateLimiter) Window() time.Duration {
	return r.window
}

// Len returns the number of tracked keys.
func (r *RateLimiter) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.perKey)
}

// Sweep forgets keys idle for longer than the idle TTL and returns how many
// were removed.
func (r *RateLimiter) Sweep() int {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, st := range r.perKey {
		if now.Sub(st.lastSeen) > r.idleTTL {
			delete(r.perKey, key)
			removed++
		}
	}
	return removed
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (r *RateLimiter) Close() {
	r.closeOnce.Do(func() {
		close(r.cleanupCh)
	})
}

func (r *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Sweep()
		case <-r.cleanupCh:
			return
		}
	}
}
