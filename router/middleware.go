package router

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/prilive-com/parkbot/i18n"
)

// Limiter decides whether an event for key may proceed.
// Implemented by *resilience.RateLimiter.
type Limiter interface {
	Allow(key string) bool
}

// Recover turns a handler panic into an error wrapping ErrPanic so one bad
// update cannot take the webhook down.
func Recover() Middleware {
	return func(c *Context, next HandlerFunc) (err error) {
		defer func() {
			if r := recover(); r != nil {
				c.Logger().Error("panic in update handler",
					"route", c.Route(),
					"panic", r,
					"stack", string(debug.Stack()))
				err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()
		return next(c)
	}
}

// Logging records each dispatched update at debug level and failures at
// error level.
func Logging() Middleware {
	return func(c *Context, next HandlerFunc) error {
		start := time.Now()
		err := next(c)

		attrs := []any{
			"kind", c.Update().Kind(),
			"route", c.Route(),
			"duration", time.Since(start),
		}
		if c.Response() != nil {
			attrs = append(attrs, "reply", c.Response().MethodName())
		}
		if err != nil {
			c.Logger().Error("update handler failed", append(attrs, "error", err)...)
			return err
		}
		c.Logger().Debug("update handled", attrs...)
		return nil
	}
}

// Localize selects the translation language from the sender's
// language_code. Updates without a sender use the translator's default.
func Localize(tr i18n.Translator) Middleware {
	return func(c *Context, next HandlerFunc) error {
		var lang string
		if u := c.Sender(); u != nil {
			lang = u.LanguageCode
		}
		c.SetTranslator(tr, lang)
		return next(c)
	}
}

// RateLimit drops updates from senders that exceed l. The limiter is keyed by
// the sender's user ID. Updates without a sender are never limited.
//
// A dropped update ends the pipeline without reply or error; onDrop, when
// non-nil, observes it.
func RateLimit(l Limiter, onDrop func(c *Context)) Middleware {
	return func(c *Context, next HandlerFunc) error {
		u := c.Sender()
		if u == nil {
			return next(c)
		}
		if !l.Allow(strconv.FormatInt(u.ID, 10)) {
			c.Logger().Debug("update rate limited",
				slog.Int64("user_id", u.ID),
				slog.String("route", c.Route()))
			if onDrop != nil {
				onDrop(c)
			}
			return nil
		}
		return next(c)
	}
}
