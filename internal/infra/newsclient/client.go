// Package newsclient calls the proxy's GET /api/news endpoint on behalf of the
// rendering client.
package newsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"newshub/internal/domain/entity"
)

// DefaultTimeout bounds one proxy call when the caller's context has no deadline.
const DefaultTimeout = 15 * time.Second

// maxBodySize caps the proxy response read into memory.
const maxBodySize = 4 << 20

// StatusError is returned for non-2xx proxy responses.
type StatusError struct {
	StatusCode int
	Message    string // the proxy's {"error": ...} text, if any
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("news proxy: status %d", e.StatusCode)
	}
	return fmt.Sprintf("news proxy: status %d: %s", e.StatusCode, e.Message)
}

// Client fetches news from the proxy.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a Client for the proxy at baseURL (scheme and host, optional path prefix).
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse proxy base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("proxy base url must use http or https, got %q", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  "NewsHub/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL returns the request URL for q. search is omitted when empty.
func (c *Client) URL(q entity.Query) string {
	u := c.baseURL.JoinPath("api", "news")
	params := url.Values{}
	category := q.Category
	if category == "" {
		category = entity.DefaultCategory
	}
	params.Set("category", category.String())
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	u.RawQuery = params.Encode()
	return u.String()
}

type responseDTO struct {
	Articles []struct {
		Source struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"source"`
		Author      string `json:"author"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
	TotalResults int    `json:"totalResults"`
	Error        string `json:"error"`
}

// Fetch performs one GET /api/news call.
func (c *Client) Fetch(ctx context.Context, q entity.Query) (*entity.ResultSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(q), nil)
	if err != nil {
		return nil, fmt.Errorf("build proxy request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news proxy: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read proxy response: %w", err)
	}

	var dto responseDTO
	decodeErr := json.Unmarshal(body, &dto)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		if decodeErr == nil {
			statusErr.Message = dto.Error
		}
		return nil, statusErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode proxy response: %w", decodeErr)
	}

	rs := &entity.ResultSet{
		Articles:     make([]entity.Article, 0, len(dto.Articles)),
		TotalResults: dto.TotalResults,
	}
	for _, a := range dto.Articles {
		rs.Articles = append(rs.Articles, entity.Article{
			Title:          a.Title,
			Description:    a.Description,
			URL:            a.URL,
			ImageURL:       a.URLToImage,
			PublishedAt:    entity.ParsePublishedAt(a.PublishedAt),
			PublishedAtRaw: a.PublishedAt,
			SourceID:       a.Source.ID,
			SourceName:     a.Source.Name,
			Author:         a.Author,
		})
	}
	return rs, nil
}
