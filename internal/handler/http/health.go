// Package http holds the server-wide HTTP plumbing: middleware, metrics and
// the health endpoints. Feature handlers live in subpackages.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"newshub/internal/handler/http/respond"
	"newshub/internal/resilience/circuitbreaker"
	"newshub/internal/usecase/news"
)

// Health check states.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"` // RFC 3339, UTC
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthHandler reports whether the proxy can serve news.
// A missing credential is unhealthy (503). An open circuit breaker is
// degraded: the process is fine and will recover on its own.
type HealthHandler struct {
	Version    string
	Credential news.CredentialSource
	Breaker    *circuitbreaker.CircuitBreaker // optional
	CSPEnabled bool
	Now        func() time.Time // defaults to time.Now
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := map[string]CheckStatus{
		"credential": h.checkCredential(),
	}
	if h.Breaker != nil {
		checks["newsapi"] = h.checkBreaker()
	}
	checks["csp"] = CheckStatus{
		Status:  StatusHealthy,
		Details: map[string]interface{}{"enabled": h.CSPEnabled},
	}

	status := StatusHealthy
	code := http.StatusOK
	for _, c := range checks {
		switch c.Status {
		case StatusUnhealthy:
			status = StatusUnhealthy
			code = http.StatusServiceUnavailable
		case StatusDegraded:
			if status == StatusHealthy {
				status = StatusDegraded
			}
		}
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	if status != StatusHealthy {
		slog.Warn("health check not healthy", slog.String("status", status))
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

// checkCredential never reports the credential, only whether one is set.
func (h *HealthHandler) checkCredential() CheckStatus {
	if h.Credential == nil || h.Credential() == "" {
		return CheckStatus{Status: StatusUnhealthy, Message: "NEWS_API_KEY not configured"}
	}
	return CheckStatus{Status: StatusHealthy, Message: "configured"}
}

func (h *HealthHandler) checkBreaker() CheckStatus {
	state := h.Breaker.State()
	check := CheckStatus{
		Status:  StatusHealthy,
		Details: map[string]interface{}{
			"circuit":         h.Breaker.Name(),
			"circuit_breaker": state.String(),
		},
	}
	switch state {
	case gobreaker.StateOpen:
		check.Status = StatusDegraded
		check.Message = "provider calls are short-circuited"
	case gobreaker.StateHalfOpen:
		check.Status = StatusDegraded
		check.Message = "probing provider"
	}
	return check
}

// ReadyHandler answers readiness probes: ready once a credential is present.
type ReadyHandler struct {
	Credential news.CredentialSource
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Credential == nil || h.Credential() == "" {
		http.Error(w, "credential not configured", http.StatusServiceUnavailable)
		return
	}
	writeText(w, "ready")
}

// LiveHandler answers liveness probes and always succeeds.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeText(w, "alive")
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Debug("failed to write probe response", slog.Any("error", err))
	}
}
