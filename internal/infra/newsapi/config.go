package newsapi

import (
	"fmt"
	"net/url"
	"time"

	"newshub/internal/resilience/circuitbreaker"
)

// Config holds connection settings for the NewsAPI provider.
type Config struct {
	// BaseURL is the provider root, without the /v2 path.
	// Default: https://newsapi.org
	BaseURL string

	// UserAgent is sent on every request. Default: NewsHub/1.0
	UserAgent string

	// Timeout bounds a single provider call. Default: 10s
	Timeout time.Duration

	// MaxBodySize caps the response body read into memory. Default: 2 MiB
	MaxBodySize int64
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://newsapi.org",
		UserAgent:   "NewsHub/1.0",
		Timeout:     10 * time.Second,
		MaxBodySize: 2 << 20,
	}
}

// BreakerConfig is circuitbreaker.NewsAPIConfig with caller errors (see
// IsCallerError) counted as successes, so a bad key cannot open the circuit
// and a rotated key is used on the very next request.
func BreakerConfig() circuitbreaker.Config {
	cfg := circuitbreaker.NewsAPIConfig()
	cfg.IsSuccessful = IsCallerError
	return cfg
}

// Validate checks that the configuration can be used to build requests.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base url must use http or https, got %q", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base url must have a host, got %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxBodySize < 1024 {
		return fmt.Errorf("max body size must be at least 1KB, got %d", c.MaxBodySize)
	}
	return nil
}
