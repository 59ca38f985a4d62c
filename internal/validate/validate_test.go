package validate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/prilive-com/parkbot/internal/validate"
	"github.com/prilive-com/parkbot/tg"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"port ok", validate.Port("PORT", 3000), false},
		{"port zero", validate.Port("PORT", 0), true},
		{"port too big", validate.Port("PORT", 70000), true},
		{"host ip", validate.Host("HOST", "127.0.0.1"), false},
		{"host ipv6", validate.Host("HOST", "::1"), false},
		{"host name", validate.Host("HOST", "localhost"), false},
		{"host empty", validate.Host("HOST", ""), true},
		{"host with port", validate.Host("HOST", "localhost:3000"), true},
		{"path root", validate.Path("WEBHOOK_PATH", "/"), false},
		{"path nested", validate.Path("WEBHOOK_PATH", "/bots/hook"), false},
		{"path relative", validate.Path("WEBHOOK_PATH", "hook"), true},
		{"path query", validate.Path("WEBHOOK_PATH", "/hook?x=1"), true},
		{"optional path empty", validate.OptionalPath("HEALTH_PATH_PREFIX", ""), false},
		{"optional path bad", validate.OptionalPath("HEALTH_PATH_PREFIX", "health"), true},
		{"language", validate.Language("DEFAULT_LANGUAGE", "pt-br"), false},
		{"language empty", validate.Language("DEFAULT_LANGUAGE", ""), true},
		{"language bad", validate.Language("DEFAULT_LANGUAGE", "not a language"), true},
		{"positive", validate.Positive("N", 1), false},
		{"positive zero", validate.Positive("N", 0), true},
		{"positive float", validate.Positive("RPS", 0.5), false},
		{"positive int64", validate.Positive("SIZE", int64(1<<20)), false},
		{"negative int64", validate.Positive("SIZE", int64(-1)), true},
		{"positive float zero", validate.Positive("RPS", 0.0), true},
		{"positive duration", validate.PositiveDuration("D", time.Second), false},
		{"positive duration zero", validate.PositiveDuration("D", 0), true},
		{"non-negative duration zero", validate.NonNegativeDuration("D", 0), false},
		{"non-negative duration negative", validate.NonNegativeDuration("D", -time.Second), true},
		{"in range", validate.InRange("N", 5, 1, 10), false},
		{"below range", validate.InRange("N", 0, 1, 10), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr {
				assert.ErrorIs(t, tt.err, tg.ErrInvalidConfig)
			} else {
				assert.NoError(t, tt.err)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := validate.Newf("PORT", "got %d", 7)
	assert.Equal(t, "PORT", err.Field)
	assert.Equal(t, "got 7", err.Message)
	assert.Contains(t, err.Error(), "PORT")
}
