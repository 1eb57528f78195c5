package news

import (
	"context"
	"fmt"
	"log/slog"

	"newshub/internal/domain/entity"
	"newshub/internal/observability/metrics"
)

// Request parameters fixed by the proxy contract.
const (
	DefaultCountry  = "us"
	DefaultPageSize = 12
	SearchSortBy    = "publishedAt"
	SearchLanguage  = "en"
)

// Options tunes the parameters the proxy sends upstream.
type Options struct {
	Country  string
	PageSize int
}

// Service provides the news proxy use case.
type Service struct {
	Provider   Provider
	Credential CredentialSource
	Options    Options
	Logger     *slog.Logger
}

// Fetch resolves q against the provider and returns only displayable articles.
//
// The upstream total is passed through unchanged, so callers must not assume
// TotalResults == len(Articles).
func (s *Service) Fetch(ctx context.Context, q entity.Query) (*entity.ResultSet, error) {
	apiKey := ""
	if s.Credential != nil {
		apiKey = s.Credential()
	}
	if apiKey == "" {
		metrics.RecordProxyRequest(q.Mode().String(), metrics.OutcomeMissingCredential)
		return nil, ErrMissingCredential
	}

	req := s.BuildRequest(q)
	req.APIKey = apiKey

	rs, err := s.Provider.Fetch(ctx, req)
	if err != nil {
		metrics.RecordProxyRequest(req.Mode.String(), metrics.OutcomeUpstreamError)
		return nil, fmt.Errorf("%w: %s: %w", ErrUpstreamFailed, req.Mode, err)
	}

	articles := entity.FilterDisplayable(rs.Articles)
	if dropped := len(rs.Articles) - len(articles); dropped > 0 {
		s.logger().DebugContext(ctx, "dropped non-displayable articles",
			slog.String("mode", req.Mode.String()),
			slog.Int("received", len(rs.Articles)),
			slog.Int("dropped", dropped))
	}
	metrics.RecordProxyRequest(req.Mode.String(), metrics.OutcomeOK)
	metrics.RecordArticles(req.Mode.String(), len(articles), len(rs.Articles))

	return &entity.ResultSet{
		Articles:     articles,
		TotalResults: rs.TotalResults,
	}, nil
}

// BuildRequest maps q onto the upstream request shape. The credential is not
// set here.
func (s *Service) BuildRequest(q entity.Query) ProviderRequest {
	pageSize := s.Options.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	if q.Mode() == entity.ModeSearch {
		return ProviderRequest{
			Mode:     entity.ModeSearch,
			PageSize: pageSize,
			Query:    q.Search,
			SortBy:   SearchSortBy,
			Language: SearchLanguage,
		}
	}

	country := s.Options.Country
	if country == "" {
		country = DefaultCountry
	}
	category := q.Category
	if category == "" {
		category = entity.DefaultCategory
	}

	return ProviderRequest{
		Mode:     entity.ModeHeadlines,
		PageSize: pageSize,
		Country:  country,
		Category: category,
	}
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
