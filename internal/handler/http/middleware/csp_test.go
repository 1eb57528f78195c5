package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"newshub/pkg/security/csp"
)

func serveCSP(m *CSPMiddleware, path string) *httptest.ResponseRecorder {
	handler := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestCSPMiddleware_Disabled(t *testing.T) {
	m := NewCSPMiddleware(CSPMiddlewareConfig{
		Enabled:       false,
		DefaultPolicy: csp.PagePolicy(),
	})

	rec := serveCSP(m, "/")

	if rec.Header().Get(csp.HeaderEnforce) != "" {
		t.Error("expected no CSP header when disabled")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestCSPMiddleware_PathSelection(t *testing.T) {
	m := NewCSPMiddleware(CSPMiddlewareConfig{
		Enabled:       true,
		DefaultPolicy: csp.PagePolicy(),
		PathPolicies: map[string]*csp.CSPBuilder{
			"/api/":     csp.StrictPolicy(),
			"/api/news": csp.NewCSPBuilder().DefaultSrc("'self'"),
		},
	})

	tests := []struct {
		path string
		want string
	}{
		{"/", csp.PagePolicy().Build()},
		{"/?category=health", csp.PagePolicy().Build()},
		{"/api/other", csp.StrictPolicy().Build()},
		{"/api/news", "default-src 'self'"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := serveCSP(m, tt.path).Header().Get(csp.HeaderEnforce)
			if got != tt.want {
				t.Errorf("path %s: got %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestCSPMiddleware_ReportOnly(t *testing.T) {
	m := NewCSPMiddleware(CSPMiddlewareConfig{
		Enabled:       true,
		DefaultPolicy: csp.StrictPolicy(),
		ReportOnly:    true,
	})

	rec := serveCSP(m, "/")

	if rec.Header().Get(csp.HeaderEnforce) != "" {
		t.Error("expected no enforcing header in report-only mode")
	}
	if rec.Header().Get(csp.HeaderReportOnly) == "" {
		t.Error("expected report-only header")
	}
}

func TestCSPMiddleware_EmptyPolicySkipped(t *testing.T) {
	m := NewCSPMiddleware(CSPMiddlewareConfig{
		Enabled:       true,
		DefaultPolicy: csp.NewCSPBuilder(),
	})

	if got := serveCSP(m, "/").Header().Get(csp.HeaderEnforce); got != "" {
		t.Errorf("expected no header for empty policy, got %q", got)
	}
}
