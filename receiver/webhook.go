package receiver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/prilive-com/parkbot/internal/metrics"
	"github.com/prilive-com/parkbot/internal/resilience"
	"github.com/prilive-com/parkbot/internal/scrub"
	"github.com/prilive-com/parkbot/tg"
)

// SecretHeader carries the secret_token given to setWebhook.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// hintBody is served to anything that GETs the webhook.
var hintBody = []byte(`{"hint": "You should not be here. This place is not for humans."}`)

// noReply tells Telegram the update was handled and nothing is to be sent.
var noReply = []byte(`{}`)

// Dispatcher turns one update into at most one Bot API call.
// Implemented by *parkbot.Bot.
type Dispatcher interface {
	Dispatch(ctx context.Context, u *tg.Update) (tg.Method, error)
}

var _ http.Handler = (*WebhookHandler)(nil)

// WebhookHandler implements http.Handler for Telegram webhook callbacks.
//
// Replies are written into the response body, where Telegram executes them;
// no outbound API call is ever made.
type WebhookHandler struct {
	logger      *slog.Logger
	dispatcher  Dispatcher
	secret      tg.SecretToken
	metrics     *metrics.Metrics
	limiter     *rate.Limiter
	breaker     *gobreaker.CircuitBreaker[tg.Method]
	maxBodySize int64
}

// WebhookOption configures the WebhookHandler.
type WebhookOption func(*WebhookHandler)

// WithWebhookRateLimit sets rate limiting parameters.
func WithWebhookRateLimit(rps float64, burst int) WebhookOption {
	return func(h *WebhookHandler) {
		h.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithWebhookCircuitBreaker sets a custom circuit breaker.
func WithWebhookCircuitBreaker(breaker *gobreaker.CircuitBreaker[tg.Method]) WebhookOption {
	return func(h *WebhookHandler) {
		h.breaker = breaker
	}
}

// WithWebhookMaxBodySize sets the maximum request body size.
func WithWebhookMaxBodySize(size int64) WebhookOption {
	return func(h *WebhookHandler) {
		h.maxBodySize = size
	}
}

// WithWebhookMetrics counts GET requests on m.
func WithWebhookMetrics(m *metrics.Metrics) WebhookOption {
	return func(h *WebhookHandler) {
		h.metrics = m
	}
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(
	logger *slog.Logger,
	dispatcher Dispatcher,
	cfg Config,
	opts ...WebhookOption,
) *WebhookHandler {
	if logger == nil {
		logger = slog.Default()
	}

	h := &WebhookHandler{
		logger:      logger,
		dispatcher:  dispatcher,
		secret:      cfg.WebhookSecret,
		limiter:     rate.NewLimiter(rate.Limit(cfg.RateLimitRequests), cfg.RateLimitBurst),
		maxBodySize: cfg.MaxBodySize,
	}

	// Default circuit breaker
	breakerCfg := resilience.DefaultBreakerConfig("parkbot-webhook")
	breakerCfg.MaxRequests = cfg.BreakerMaxRequests
	breakerCfg.Threshold = cfg.BreakerThreshold
	breakerCfg.Interval = cfg.BreakerInterval
	breakerCfg.Timeout = cfg.BreakerTimeout
	h.breaker = resilience.NewBreaker[tg.Method](breakerCfg, logger)

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// ServeHTTP implements http.Handler.
//
// GET requests get the hint. POST requests are decoded as an update and
// answered with the dispatcher's reply, or {} when there is none.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Telegram only executes a reply declared as JSON.
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case http.MethodGet:
		h.metrics.RootGet()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(hintBody)
		return
	case http.MethodPost:
	default:
		w.Header().Set("Allow", "GET, POST")
		h.fail(w, r, ErrMethodNotAllowed)
		return
	}

	reply, err := h.handle(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	body := noReply
	if reply != nil {
		if body, err = json.Marshal(reply); err != nil {
			h.logger.Error("failed to encode reply", "method", reply.MethodName(), "error", err)
			body = noReply
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *WebhookHandler) handle(r *http.Request) (tg.Method, error) {
	// Secret validation (constant-time comparison)
	if !h.secret.IsEmpty() && !h.secret.Matches(r.Header.Get(SecretHeader)) {
		return nil, ErrUnauthorized
	}

	// Rate limit check
	if !h.limiter.Allow() {
		return nil, ErrRateLimited
	}

	if resilience.IsOpen(h.breaker) {
		return nil, ErrServiceUnavailable
	}

	update, err := h.decode(r)
	if err != nil {
		return nil, err
	}

	// Malformed bodies are the caller's fault and stay outside the breaker.
	reply, err := h.breaker.Execute(func() (tg.Method, error) {
		return h.dispatcher.Dispatch(r.Context(), update)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return nil, ErrServiceUnavailable
	case err != nil:
		// Telegram would redeliver on a non-2xx status and hit the same
		// failure again, so the update is acknowledged without a reply.
		h.logger.Error("dispatch failed",
			"path", scrub.Tokens(r.URL.Path),
			"update_id", update.UpdateID,
			"kind", update.Kind(),
			"error", err)
		return nil, nil
	}
	return reply, nil
}

func (h *WebhookHandler) decode(r *http.Request) (*tg.Update, error) {
	defer r.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(r.Body, h.maxBodySize+1))
	if err != nil {
		return nil, &WebhookError{Code: http.StatusBadRequest, Message: "failed to read body", Err: err}
	}
	if int64(len(raw)) > h.maxBodySize {
		return nil, ErrBodyTooLarge
	}

	var update tg.Update
	if err := json.Unmarshal(raw, &update); err != nil {
		return nil, &WebhookError{Code: http.StatusBadRequest, Message: "invalid JSON", Err: errors.Join(ErrInvalidUpdate, err)}
	}
	return &update, nil
}

func (h *WebhookHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := statusFor(err)
	attrs := []any{
		"code", code,
		"method", r.Method,
		"path", scrub.Tokens(r.URL.Path),
		"error", scrub.TokensFromError(err),
	}
	if code >= http.StatusInternalServerError {
		h.logger.Error(msg, attrs...)
	} else {
		h.logger.Warn(msg, attrs...)
	}
	writeError(w, code, msg)
}

// writeError writes {"error": msg} with code.
func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
