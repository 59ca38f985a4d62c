// Package metrics holds the responder's Prometheus counters.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Update labels for parked_bot_update.
const (
	LabelGenericMessage = "generic_message"
	LabelCallbackQuery  = "callback_query"
	LabelInlineQuery    = "inline_query"
)

// Drop reasons for parked_bot_dropped_updates.
const (
	ReasonRateLimited = "rate_limited"
)

// Metrics owns a private registry so several instances (tests, multiple
// servers) never collide on the process-wide default registry.
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	rootGetRequests prometheus.Counter
	updates         *prometheus.CounterVec
	dropped         *prometheus.CounterVec
}

// New creates and registers the counters.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rootGetRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "root_get_requests",
			Help: "How many times a GET request went to /",
		}),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parked_bot_update",
			Help: "How many times a parked bot received an update",
		}, []string{"method"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parked_bot_dropped_updates",
			Help: "How many updates were dropped before reaching a handler",
		}, []string{"reason"}),
	}
	m.registry.MustRegister(m.rootGetRequests, m.updates, m.dropped)
	return m
}

// RootGet counts a GET request to the webhook endpoint.
func (m *Metrics) RootGet() {
	if m == nil {
		return
	}
	m.rootGetRequests.Inc()
}

// Update counts a handled update; method is a command ("/start") or one of
// the Label constants.
func (m *Metrics) Update(method string) {
	if m == nil {
		return
	}
	m.updates.WithLabelValues(method).Inc()
}

// Dropped counts an update dropped for reason.
func (m *Metrics) Dropped(reason string) {
	if m == nil {
		return
	}
	m.dropped.WithLabelValues(reason).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the text exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
