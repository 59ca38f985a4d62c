package tg

import (
	"crypto/subtle"
	"log/slog"
)

// SecretToken wraps a webhook secret so it never ends up in logs.
// Implements fmt.Stringer, fmt.GoStringer, slog.LogValuer, and encoding.TextMarshaler.
type SecretToken string

// Value returns the actual secret.
func (s SecretToken) Value() string { return string(s) }

// String returns a redacted placeholder (fmt.Stringer).
func (s SecretToken) String() string { return "[REDACTED]" }

// GoString returns redacted for %#v (fmt.GoStringer).
func (s SecretToken) GoString() string { return `tg.SecretToken("[REDACTED]")` }

// LogValue returns a redacted value for slog (slog.LogValuer).
func (s SecretToken) LogValue() slog.Value {
	return slog.StringValue("[REDACTED]")
}

// MarshalText returns redacted bytes (encoding.TextMarshaler).
func (s SecretToken) MarshalText() ([]byte, error) {
	return []byte("[REDACTED]"), nil
}

// IsEmpty returns true if no secret is set.
func (s SecretToken) IsEmpty() bool {
	return s == ""
}

// Matches compares candidate against the secret in constant time.
// An empty secret matches nothing.
func (s SecretToken) Matches(candidate string) bool {
	if s == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(s)) == 1
}
