package rest

import (
	"net/http"
	"time"
)

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	version    string
	components map[string]CompStatus
}

// NewHealthHandler creates a HealthHandler. components describes the
// configured collaborators and is reported verbatim by /health.
func NewHealthHandler(version string, components map[string]CompStatus) *HealthHandler {
	return &HealthHandler{version: version, components: components}
}

// HealthResponse is the JSON response for /health and /live.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health reports the build version and the configured collaborators.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:     "ok",
		Version:    h.version,
		Components: h.components,
		Timestamp:  time.Now(),
	})
}
