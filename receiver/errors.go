package receiver

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors
var (
	ErrUnauthorized       = errors.New("parkbot/receiver: unauthorized")
	ErrMethodNotAllowed   = errors.New("parkbot/receiver: method not allowed")
	ErrRateLimited        = errors.New("parkbot/receiver: rate limited")
	ErrBodyTooLarge       = errors.New("parkbot/receiver: request body too large")
	ErrInvalidUpdate      = errors.New("parkbot/receiver: invalid update JSON")
	ErrServiceUnavailable = errors.New("parkbot/receiver: service unavailable")
	ErrNotFound           = errors.New("parkbot/receiver: not found")
)

// WebhookError represents an HTTP error response.
type WebhookError struct {
	Code    int
	Message string
	Err     error
}

func (e *WebhookError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("webhook error %d: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("webhook error %d: %s", e.Code, e.Message)
}

func (e *WebhookError) Unwrap() error {
	return e.Err
}

// statusFor maps a request error to the HTTP status and the message sent
// in the JSON error body.
func statusFor(err error) (int, string) {
	var webhookErr *WebhookError
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, "method not allowed"
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, "rate limit exceeded"
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge, "request body too large"
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, "service unavailable"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.As(err, &webhookErr):
		return webhookErr.Code, webhookErr.Message
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
