package router

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/prilive-com/parkbot/tg"
)

// Route names for non-command handlers.
const (
	RouteMessage       = "message"
	RouteCallbackQuery = "callback_query"
	RouteInlineQuery   = "inline_query"
)

// Sentinel errors
var (
	ErrReplyAlreadySet = errors.New("parkbot/router: reply already set for this update")
	ErrPanic           = errors.New("parkbot/router: handler panicked")
)

// HandlerFunc handles one update.
type HandlerFunc func(c *Context) error

// Middleware wraps the rest of the pipeline. Calling next continues; not
// calling it stops the update silently.
type Middleware func(c *Context, next HandlerFunc) error

// Router selects exactly one handler per update and runs every update through
// an ordered middleware pipeline before it.
type Router struct {
	logger     *slog.Logger
	middleware []Middleware
	commands   map[string]HandlerFunc
	onMessage  HandlerFunc
	onCallback HandlerFunc
	onInline   HandlerFunc

	buildOnce sync.Once
	pipeline  HandlerFunc
}

// Option configures the Router.
type Option func(*Router)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// New creates an empty Router.
func New(opts ...Option) *Router {
	r := &Router{
		logger:   slog.Default(),
		commands: make(map[string]HandlerFunc),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use appends middleware. The first registered runs outermost.
// Middleware must be registered before the first Dispatch.
func (r *Router) Use(mw ...Middleware) {
	r.middleware = append(r.middleware, mw...)
}

// Command handles "/name" messages in any chat and "/name" channel posts.
// Names are case-sensitive.
func (r *Router) Command(name string, h HandlerFunc) {
	r.commands[name] = h
}

// OnMessage handles messages that are not a registered command.
func (r *Router) OnMessage(h HandlerFunc) {
	r.onMessage = h
}

// OnCallbackQuery handles callback queries that carry data.
func (r *Router) OnCallbackQuery(h HandlerFunc) {
	r.onCallback = h
}

// OnInlineQuery handles inline queries.
func (r *Router) OnInlineQuery(h HandlerFunc) {
	r.onInline = h
}

// Dispatch runs u through the pipeline and returns the call to embed in the
// webhook response, or nil when nothing should be sent.
//
// Updates without a matching handler still pass through the middleware (so
// they count towards rate limits) and end without a reply or an error.
func (r *Router) Dispatch(ctx context.Context, u *tg.Update) (tg.Method, error) {
	if u == nil {
		return nil, nil
	}
	r.buildOnce.Do(r.build)

	route, h := r.match(u)
	c := &Context{
		ctx:     ctx,
		update:  u,
		route:   route,
		logger:  r.logger.With("update_id", u.UpdateID),
		handler: h,
	}

	if err := r.pipeline(c); err != nil {
		return nil, err
	}
	return c.response, nil
}

// build composes the middleware once, outermost first. The innermost step
// calls whatever handler match selected for the update.
func (r *Router) build() {
	next := HandlerFunc(func(c *Context) error {
		if c.handler == nil {
			return nil
		}
		return c.handler(c)
	})
	for i := len(r.middleware) - 1; i >= 0; i-- {
		mw, inner := r.middleware[i], next
		next = func(c *Context) error {
			return mw(c, inner)
		}
	}
	r.pipeline = next
}

func (r *Router) match(u *tg.Update) (string, HandlerFunc) {
	switch {
	case u.Message != nil:
		if name, _, ok := u.Message.Command(); ok {
			if h, found := r.commands[name]; found {
				return "/" + name, h
			}
		}
		if r.onMessage != nil {
			return RouteMessage, r.onMessage
		}
	case u.ChannelPost != nil:
		// Channel posts only reach registered commands.
		if name, _, ok := u.ChannelPost.Command(); ok {
			if h, found := r.commands[name]; found {
				return "/" + name, h
			}
		}
	case u.CallbackQuery != nil:
		if u.CallbackQuery.Data != "" && r.onCallback != nil {
			return RouteCallbackQuery, r.onCallback
		}
	case u.InlineQuery != nil:
		if r.onInline != nil {
			return RouteInlineQuery, r.onInline
		}
	}
	return "", nil
}
