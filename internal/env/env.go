// Package env reads typed configuration values from environment variables.
//
// Every getter returns the default when the variable is unset or blank and a
// *tg.ValidationError naming the variable when it is set but unparsable.
package env

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prilive-com/parkbot/tg"
)

// String returns the trimmed value of key, or def when unset or blank.
func String(key, def string) string {
	if value, ok := lookup(key); ok {
		return value
	}
	return def
}

// StringOrEmpty is String for settings where an explicitly empty value means
// "off": it returns def only when key is unset.
func StringOrEmpty(key, def string) string {
	if value, exists := os.LookupEnv(key); exists {
		return strings.TrimSpace(value)
	}
	return def
}

// Int returns key parsed as an int.
func Int(key string, def int) (int, error) {
	raw, ok := lookup(key)
	if !ok {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, tg.NewValidationError(key, "must be an integer")
	}
	return v, nil
}

// Int64 returns key parsed as an int64.
func Int64(key string, def int64) (int64, error) {
	raw, ok := lookup(key)
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, tg.NewValidationError(key, "must be an integer")
	}
	return v, nil
}

// Uint32 returns key parsed as a uint32.
func Uint32(key string, def uint32) (uint32, error) {
	raw, ok := lookup(key)
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, tg.NewValidationError(key, "must be a non-negative integer")
	}
	return uint32(v), nil
}

// Float returns key parsed as a float64.
func Float(key string, def float64) (float64, error) {
	raw, ok := lookup(key)
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, tg.NewValidationError(key, "must be a number")
	}
	return v, nil
}

// Bool returns key parsed with strconv.ParseBool ("1", "true", "false", ...).
func Bool(key string, def bool) (bool, error) {
	raw, ok := lookup(key)
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, tg.NewValidationError(key, "must be true or false")
	}
	return v, nil
}

// Duration returns key parsed with time.ParseDuration ("2.5s", "1m").
func Duration(key string, def time.Duration) (time.Duration, error) {
	raw, ok := lookup(key)
	if !ok {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, tg.NewValidationError(key, "must be a duration like 2.5s")
	}
	return v, nil
}

// lookup treats blank values as unset so "PORT=" in a .env file keeps the
// default.
func lookup(key string) (string, bool) {
	value, exists := os.LookupEnv(key)
	value = strings.TrimSpace(value)
	if !exists || value == "" {
		return "", false
	}
	return value, true
}
