package receiver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/prilive-com/parkbot/internal/metrics"
)

// Server exposes the webhook, the metrics endpoint and health probes over
// plain HTTP. TLS is expected to end at a reverse proxy in front of it.
type Server struct {
	cfg     Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	webhook *WebhookHandler
	health  *HealthHandler
	router  chi.Router
	srv     *http.Server
}

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithServerLogger sets a custom logger.
func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithServerMetrics serves m on the configured metrics path.
func WithServerMetrics(m *metrics.Metrics) ServerOption {
	return func(s *Server) {
		s.metrics = m
	}
}

// NewServer wires the routes and the underlying http.Server.
func NewServer(cfg Config, webhook *WebhookHandler, opts ...ServerOption) *Server {
	s := &Server{
		cfg:     cfg,
		logger:  slog.Default(),
		webhook: webhook,
		health:  NewHealthHandler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.router = s.routes()
	s.srv = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	if s.metrics != nil && s.cfg.MetricsPath != "" {
		r.Handle(s.cfg.MetricsPath, s.metrics.Handler())
	}

	if s.cfg.HealthPathPrefix != "" {
		prefix := s.cfg.HealthPathPrefix
		if prefix == "/" {
			prefix = ""
		}
		r.Get(prefix+"/livez", s.health.LivenessHandler())
		r.Get(prefix+"/readyz", s.health.ReadinessHandler())
	}

	if s.cfg.WebhookPath == "/" {
		r.Handle("/*", s.webhook)
		return r
	}

	// Updates are only accepted on the webhook path; every other path still
	// answers GET with the hint.
	r.Handle(s.cfg.WebhookPath, s.webhook)
	r.Handle("/*", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodGet {
			s.webhook.ServeHTTP(w, req)
			return
		}
		s.webhook.fail(w, req, ErrNotFound)
	}))
	return r
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Health returns the probe state.
func (s *Server) Health() *HealthHandler {
	return s.health
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("parkbot/receiver: listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully:
// readiness goes false, the drain delay passes, and in-flight requests get
// up to ShutdownTimeout to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(ln)
	}()

	s.health.SetReady(true)
	s.logger.Info("Listening on http://" + ln.Addr().String())

	select {
	case err := <-errCh:
		s.health.SetReady(false)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("parkbot/receiver: serve: %w", err)
	case <-ctx.Done():
	}

	s.health.SetReady(false)
	s.logger.Info("shutting down", "drain_delay", s.cfg.DrainDelay)

	if s.cfg.DrainDelay > 0 {
		timer := time.NewTimer(s.cfg.DrainDelay)
		<-timer.C
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("parkbot/receiver: shutdown: %w", err)
	}
	<-errCh
	s.logger.Info("server stopped")
	return nil
}
