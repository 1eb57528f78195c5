// Package config loads and validates the server configuration from the
// environment.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // PAGE_TIMEZONE must resolve in minimal containers

	"newshub/internal/infra/newsapi"
	"newshub/internal/usecase/news"
	pkgconfig "newshub/pkg/config"
)

// CredentialEnv is the variable holding the upstream API key.
const CredentialEnv = "NEWS_API_KEY"

// ServerConfig holds everything cmd/api needs except the credential, which
// is read on every request through CredentialFromEnv.
type ServerConfig struct {
	// HTTPAddr is the listen address. Default: ":8080"
	HTTPAddr string

	// RequestTimeout bounds each request context. Default: 15s
	RequestTimeout time.Duration

	// NewsAPI configures the upstream adapter.
	NewsAPI newsapi.Config

	// Country and PageSize shape headline requests. Defaults: "us", 12
	Country  string
	PageSize int

	// CircuitBreakerEnabled wraps upstream calls in a breaker. Default: true
	CircuitBreakerEnabled bool

	// ProxyBaseURL is where the web page fetches /api/news from.
	// Default: this server, derived from HTTPAddr ("http://localhost:8080")
	ProxyBaseURL string

	// Location renders card timestamps. Default: UTC
	Location *time.Location

	// CSPEnabled sets Content-Security-Policy headers. Default: true
	CSPEnabled bool

	// LogLevel is one of debug, info, warn, error. Default: "info"
	LogLevel string

	// Version is reported by /health. Default: "dev"
	Version string
}

// LoadServerConfig reads the environment and validates the result.
func LoadServerConfig() (*ServerConfig, error) {
	def := newsapi.DefaultConfig()

	tzName := pkgconfig.GetEnvString("PAGE_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("PAGE_TIMEZONE %q: %w", tzName, err)
	}

	httpAddr := pkgconfig.GetEnvString("HTTP_ADDR", ":8080")

	cfg := &ServerConfig{
		HTTPAddr:       httpAddr,
		RequestTimeout: pkgconfig.GetEnvDuration("HTTP_REQUEST_TIMEOUT", 15*time.Second),
		NewsAPI: newsapi.Config{
			BaseURL:     pkgconfig.GetEnvString("NEWS_API_BASE_URL", def.BaseURL),
			UserAgent:   def.UserAgent,
			Timeout:     pkgconfig.GetEnvDuration("NEWS_API_TIMEOUT", def.Timeout),
			MaxBodySize: pkgconfig.GetEnvInt64("NEWS_API_MAX_BODY_BYTES", def.MaxBodySize),
		},
		Country:               strings.ToLower(pkgconfig.GetEnvString("NEWS_API_COUNTRY", news.DefaultCountry)),
		PageSize:              pkgconfig.GetEnvInt("NEWS_API_PAGE_SIZE", news.DefaultPageSize),
		CircuitBreakerEnabled: pkgconfig.GetEnvBool("NEWS_API_CB_ENABLED", true),
		ProxyBaseURL:          pkgconfig.GetEnvString("PROXY_BASE_URL", loopbackURL(httpAddr)),
		Location:              loc,
		CSPEnabled:            pkgconfig.GetEnvBool("CSP_ENABLED", true),
		LogLevel:              pkgconfig.GetEnvString("LOG_LEVEL", "info"),
		Version:               pkgconfig.GetEnvString("VERSION", "dev"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration correctness.
func (c *ServerConfig) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR cannot be empty")
	}
	if err := pkgconfig.ValidatePositiveDuration(c.RequestTimeout); err != nil {
		return fmt.Errorf("HTTP_REQUEST_TIMEOUT: %w", err)
	}
	if err := c.NewsAPI.Validate(); err != nil {
		return fmt.Errorf("NEWS_API_*: %w", err)
	}
	if len(c.Country) != 2 {
		return fmt.Errorf("NEWS_API_COUNTRY must be a 2-letter code, got %q", c.Country)
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		return fmt.Errorf("NEWS_API_PAGE_SIZE must be between 1 and 100, got %d", c.PageSize)
	}
	u, err := url.Parse(c.ProxyBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("PROXY_BASE_URL must be an absolute http(s) URL, got %q", c.ProxyBaseURL)
	}
	if c.Location == nil {
		return fmt.Errorf("PAGE_TIMEZONE must be set")
	}
	return nil
}

// loopbackURL is the base URL at which this process reaches itself when
// listening on addr. Wildcard hosts map to localhost.
func loopbackURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		return "http://localhost:8080"
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

// CredentialFromEnv reads NEWS_API_KEY at call time, so a rotated key takes
// effect without a restart.
func CredentialFromEnv() news.CredentialSource {
	return func() string {
		return strings.TrimSpace(os.Getenv(CredentialEnv))
	}
}
