// Package newsapi is the adapter for the NewsAPI headline provider
// (https://newsapi.org). It implements news.Provider.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"newshub/internal/domain/entity"
	"newshub/internal/observability/tracing"
	"newshub/internal/resilience/circuitbreaker"
	"newshub/internal/usecase/news"
)

// Endpoint names, also used as metric and span labels.
const (
	EndpointTopHeadlines = "top-headlines"
	EndpointEverything   = "everything"
)

// apiKeyHeader carries the credential so it never appears in a URL or access log.
const apiKeyHeader = "X-Api-Key"

// Client calls the NewsAPI v2 endpoints.
type Client struct {
	config     Config
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
	metrics    MetricsRecorder
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (tests point it at httptest servers).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCircuitBreaker routes every call through cb. Passing nil disables the breaker.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(c *Client) { c.breaker = cb }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a Client. Without options it has no circuit breaker and
// records nothing.
func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		config:     cfg,
		httpClient: &http.Client{},
		metrics:    noopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Breaker returns the circuit breaker in use, or nil.
func (c *Client) Breaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}

// Fetch implements news.Provider. It sends exactly one request.
func (c *Client) Fetch(ctx context.Context, req news.ProviderRequest) (*entity.ResultSet, error) {
	endpoint, u, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.GetTracer().Start(ctx, "newsapi."+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("newsapi.endpoint", endpoint),
			attribute.Int("newsapi.page_size", req.PageSize),
		),
	)
	defer span.End()

	rs, err := c.execute(ctx, endpoint, u, req.APIKey)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "newsapi request failed")
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("newsapi.total_results", rs.TotalResults),
		attribute.Int("newsapi.articles", len(rs.Articles)),
	)
	return rs, nil
}

// BuildURL exposes the request URL for a ProviderRequest; the credential is
// not part of it.
func (c *Client) BuildURL(req news.ProviderRequest) (string, error) {
	_, u, err := c.buildURL(req)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (c *Client) buildURL(req news.ProviderRequest) (string, *url.URL, error) {
	base, err := url.Parse(strings.TrimRight(c.config.BaseURL, "/"))
	if err != nil {
		return "", nil, fmt.Errorf("parse newsapi base url: %w", err)
	}

	params := url.Values{}
	params.Set("pageSize", strconv.Itoa(req.PageSize))

	var endpoint string
	switch req.Mode {
	case entity.ModeSearch:
		endpoint = EndpointEverything
		params.Set("q", req.Query)
		params.Set("sortBy", req.SortBy)
		params.Set("language", req.Language)
	default:
		endpoint = EndpointTopHeadlines
		params.Set("country", req.Country)
		params.Set("category", req.Category.String())
	}

	u := base.JoinPath("v2", endpoint)
	u.RawQuery = params.Encode()
	return endpoint, u, nil
}

func (c *Client) execute(ctx context.Context, endpoint string, u *url.URL, apiKey string) (*entity.ResultSet, error) {
	if c.breaker == nil {
		return c.do(ctx, endpoint, u, apiKey)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, endpoint, u, apiKey)
	})
	if err != nil {
		if errors.Is(err, circuitbreaker.ErrOpenState) || errors.Is(err, circuitbreaker.ErrTooManyRequests) {
			c.metrics.RecordRejected(endpoint)
			return nil, ErrProviderUnavailable
		}
		return nil, err
	}
	return result.(*entity.ResultSet), nil
}

func (c *Client) do(ctx context.Context, endpoint string, u *url.URL, apiKey string) (*entity.ResultSet, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build newsapi request: %w", err)
	}
	httpReq.Header.Set(apiKeyHeader, apiKey)
	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.RecordRequest(endpoint, "error", time.Since(start))
		return nil, fmt.Errorf("newsapi %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()
	c.metrics.RecordRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	body, err := c.readBody(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("newsapi %s: %w", endpoint, err)
	}

	var raw response
	decodeErr := json.Unmarshal(body, &raw)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		if decodeErr == nil {
			statusErr.Code = raw.Code
			statusErr.Message = raw.Message
		}
		return nil, statusErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode newsapi %s response: %w", endpoint, decodeErr)
	}
	if raw.Status == "error" {
		return nil, &StatusError{StatusCode: resp.StatusCode, Code: raw.Code, Message: raw.Message}
	}

	articles := make([]entity.Article, 0, len(raw.Articles))
	for _, a := range raw.Articles {
		articles = append(articles, a.toEntity())
	}

	return &entity.ResultSet{
		Articles:     articles,
		TotalResults: raw.TotalResults,
	}, nil
}

func (c *Client) readBody(r io.Reader) ([]byte, error) {
	limit := c.config.MaxBodySize
	if limit <= 0 {
		return io.ReadAll(r)
	}
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, ErrBodyTooLarge
	}
	return body, nil
}
