// Package scrub removes bot tokens from values before they are logged.
//
// Operators often put the bot token in the webhook URL ("/bot123:AAE.../"),
// which makes request paths and errors that quote them sensitive.
package scrub

import (
	"regexp"
)

// Redacted replaces every token found.
const Redacted = "[REDACTED]"

// tokenPattern matches a Telegram bot token: numeric bot ID, colon, secret.
var tokenPattern = regexp.MustCompile(`\d{5,}:[A-Za-z0-9_-]{30,}`)

// Tokens replaces anything shaped like a bot token in s.
func Tokens(s string) string {
	return tokenPattern.ReplaceAllString(s, Redacted)
}

// TokensFromError scrubs err's message. The error chain is preserved via
// Unwrap, so errors.Is and errors.As keep working.
func TokensFromError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if scrubbed := Tokens(msg); scrubbed != msg {
		return &scrubbedError{msg: scrubbed, err: err}
	}
	return err
}

type scrubbedError struct {
	msg string
	err error
}

func (e *scrubbedError) Error() string { return e.msg }
func (e *scrubbedError) Unwrap() error { return e.err }
