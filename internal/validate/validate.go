// Package validate holds the checks applied to loaded configuration.
// Every failure is a *tg.ValidationError, so callers can match any of them
// with errors.Is(err, tg.ErrInvalidConfig).
package validate

import (
	"fmt"
	"net"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/prilive-com/parkbot/tg"
)

// New creates a new validation error.
func New(field, message string) *tg.ValidationError {
	return tg.NewValidationError(field, message)
}

// Newf creates a new validation error with formatted message.
func Newf(field, format string, args ...any) *tg.ValidationError {
	return tg.NewValidationError(field, fmt.Sprintf(format, args...))
}

// Port validates a TCP port number.
func Port(field string, port int) error {
	return InRange(field, port, 1, 65535)
}

// Host validates a listen host: an IP address or a hostname.
func Host(field, host string) error {
	if host == "" {
		return New(field, "cannot be empty")
	}
	if net.ParseIP(host) != nil {
		return nil
	}
	if strings.ContainsAny(host, " :/") {
		return Newf(field, "invalid host %q", host)
	}
	return nil
}

// Path validates an absolute URL path.
func Path(field, path string) error {
	if !strings.HasPrefix(path, "/") {
		return Newf(field, "must start with /, got %q", path)
	}
	if strings.ContainsAny(path, " ?#") {
		return Newf(field, "invalid path %q", path)
	}
	return nil
}

// OptionalPath validates path unless it is empty.
func OptionalPath(field, path string) error {
	if path == "" {
		return nil
	}
	return Path(field, path)
}

// Language validates a BCP 47 language code ("en", "pt-br").
func Language(field, lang string) error {
	if lang == "" {
		return New(field, "cannot be empty")
	}
	if _, err := language.Parse(lang); err != nil {
		return Newf(field, "invalid language code %q", lang)
	}
	return nil
}

// Positive validates that a value is positive.
func Positive[T int | int64 | uint32 | float64](field string, value T) error {
	if value <= 0 {
		return Newf(field, "must be positive, got %v", value)
	}
	return nil
}

// PositiveDuration validates that a duration is positive.
func PositiveDuration(field string, d time.Duration) error {
	if d <= 0 {
		return Newf(field, "must be positive, got %s", d)
	}
	return nil
}

// NonNegativeDuration validates that a duration is not negative.
func NonNegativeDuration(field string, d time.Duration) error {
	if d < 0 {
		return Newf(field, "cannot be negative, got %s", d)
	}
	return nil
}

// InRange validates that a value is within a range.
func InRange(field string, value, min, max int) error {
	if value < min || value > max {
		return Newf(field, "must be between %d and %d, got %d", min, max, value)
	}
	return nil
}
