package receiver

import (
	"net/http"
	"sync/atomic"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	ready atomic.Bool
}

// NewHealthHandler creates health check handlers. The service starts not
// ready; Server flips it once the listener is up.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// SetReady marks the service as ready.
func (h *HealthHandler) SetReady(ready bool) {
	h.ready.Store(ready)
}

// Ready reports the current readiness.
func (h *HealthHandler) Ready() bool {
	return h.ready.Load()
}

// LivenessHandler returns the liveness probe handler.
func (h *HealthHandler) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	}
}

// ReadinessHandler returns the readiness probe handler.
func (h *HealthHandler) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.ready.Load() {
			writeStatus(w, http.StatusOK, "ready")
			return
		}
		writeStatus(w, http.StatusServiceUnavailable, "not ready")
	}
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"status":"` + status + `"}`))
}
