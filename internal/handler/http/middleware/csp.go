// Package middleware holds response-header middleware for the HTTP server.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"newshub/pkg/security/csp"
)

// CSPMiddlewareConfig holds configuration for CSP middleware.
type CSPMiddlewareConfig struct {
	// Enabled controls whether CSP headers are applied (CSP_ENABLED).
	Enabled bool

	// DefaultPolicy applies when no path prefix matches.
	DefaultPolicy *csp.CSPBuilder

	// PathPolicies maps path prefixes to policies; the longest prefix wins.
	//
	//	map[string]*csp.CSPBuilder{"/api/": csp.StrictPolicy()}
	PathPolicies map[string]*csp.CSPBuilder

	// ReportOnly sends Content-Security-Policy-Report-Only instead of enforcing.
	ReportOnly bool
}

type compiledPolicy struct {
	prefix string
	header string
	value  string
}

// CSPMiddleware applies Content-Security-Policy headers to HTTP responses.
// Policies are rendered once at construction.
type CSPMiddleware struct {
	enabled  bool
	fallback *compiledPolicy
	paths    []compiledPolicy
}

// NewCSPMiddleware compiles config into a middleware.
func NewCSPMiddleware(config CSPMiddlewareConfig) *CSPMiddleware {
	m := &CSPMiddleware{enabled: config.Enabled}
	compile := func(prefix string, b *csp.CSPBuilder) *compiledPolicy {
		if b == nil {
			return nil
		}
		value := b.Build()
		if value == "" {
			return nil
		}
		header := b.HeaderName()
		if config.ReportOnly {
			header = csp.HeaderReportOnly
		}
		return &compiledPolicy{prefix: prefix, header: header, value: value}
	}

	m.fallback = compile("", config.DefaultPolicy)
	for prefix, b := range config.PathPolicies {
		if p := compile(prefix, b); p != nil {
			m.paths = append(m.paths, *p)
		}
	}
	return m
}

// Middleware returns the http middleware.
func (m *CSPMiddleware) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.enabled {
				if p := m.selectPolicy(r.URL.Path); p != nil {
					w.Header().Set(p.header, p.value)
					slog.Debug("CSP header applied",
						slog.String("path", r.URL.Path),
						slog.String("header", p.header))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *CSPMiddleware) selectPolicy(path string) *compiledPolicy {
	var best *compiledPolicy
	for i := range m.paths {
		p := &m.paths[i]
		if strings.HasPrefix(path, p.prefix) && (best == nil || len(p.prefix) > len(best.prefix)) {
			best = p
		}
	}
	if best != nil {
		return best
	}
	return m.fallback
}
