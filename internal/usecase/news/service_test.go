package news_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newshub/internal/domain/entity"
	"newshub/internal/observability/metrics"
	"newshub/internal/usecase/news"
)

type stubProvider struct {
	result *entity.ResultSet
	err    error
	calls  []news.ProviderRequest
}

func (s *stubProvider) Fetch(_ context.Context, req news.ProviderRequest) (*entity.ResultSet, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func staticKey(key string) news.CredentialSource {
	return func() string { return key }
}

func TestService_Fetch_MissingCredential(t *testing.T) {
	for _, cred := range []news.CredentialSource{nil, staticKey("")} {
		provider := &stubProvider{result: &entity.ResultSet{}}
		svc := news.Service{Provider: provider, Credential: cred}

		rs, err := svc.Fetch(context.Background(), entity.NewQuery("technology", ""))

		require.ErrorIs(t, err, news.ErrMissingCredential)
		assert.Nil(t, rs)
		assert.Empty(t, provider.calls, "no upstream call may be made without a credential")
	}
}

func TestService_Fetch_HeadlinesRequest(t *testing.T) {
	provider := &stubProvider{result: &entity.ResultSet{}}
	svc := news.Service{Provider: provider, Credential: staticKey("secret")}

	_, err := svc.Fetch(context.Background(), entity.NewQuery("technology", ""))
	require.NoError(t, err)
	require.Len(t, provider.calls, 1)

	want := news.ProviderRequest{
		Mode:     entity.ModeHeadlines,
		APIKey:   "secret",
		PageSize: 12,
		Country:  "us",
		Category: entity.CategoryTechnology,
	}
	if diff := cmp.Diff(want, provider.calls[0]); diff != "" {
		t.Errorf("provider request mismatch (-want +got):\n%s", diff)
	}
}

func TestService_Fetch_SearchIgnoresCategory(t *testing.T) {
	var requests []news.ProviderRequest
	for _, category := range []string{"general", "sports", "science"} {
		provider := &stubProvider{result: &entity.ResultSet{}}
		svc := news.Service{Provider: provider, Credential: staticKey("secret")}

		_, err := svc.Fetch(context.Background(), entity.NewQuery(category, "golang"))
		require.NoError(t, err)
		require.Len(t, provider.calls, 1)
		requests = append(requests, provider.calls[0])
	}

	want := news.ProviderRequest{
		Mode:     entity.ModeSearch,
		APIKey:   "secret",
		PageSize: 12,
		Query:    "golang",
		SortBy:   "publishedAt",
		Language: "en",
	}
	for _, got := range requests {
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("search request must not vary by category (-want +got):\n%s", diff)
		}
	}
}

func TestService_Fetch_FiltersRedactedArticles(t *testing.T) {
	provider := &stubProvider{result: &entity.ResultSet{
		Articles: []entity.Article{
			{Title: "Chip shortage eases", Description: "Supply recovers"},
			{Title: "Removed story", Description: entity.RedactedPlaceholder},
		},
		TotalResults: 2,
	}}
	svc := news.Service{Provider: provider, Credential: staticKey("secret")}

	rs, err := svc.Fetch(context.Background(), entity.NewQuery("technology", ""))
	require.NoError(t, err)

	require.Len(t, rs.Articles, 1)
	assert.Equal(t, "Chip shortage eases", rs.Articles[0].Title)
	assert.Equal(t, 2, rs.TotalResults, "total must be the upstream count, not the filtered length")
}

func TestService_Fetch_UpstreamError(t *testing.T) {
	cause := errors.New("status 429")
	provider := &stubProvider{err: cause}
	svc := news.Service{Provider: provider, Credential: staticKey("secret")}

	rs, err := svc.Fetch(context.Background(), entity.NewQuery("", ""))

	require.Error(t, err)
	assert.ErrorIs(t, err, news.ErrUpstreamFailed)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, rs)
	assert.Len(t, provider.calls, 1, "failures are not retried")
}

func TestService_BuildRequest_Options(t *testing.T) {
	svc := news.Service{Options: news.Options{Country: "gb", PageSize: 20}}

	req := svc.BuildRequest(entity.Query{})

	assert.Equal(t, "gb", req.Country)
	assert.Equal(t, 20, req.PageSize)
	assert.Equal(t, entity.CategoryGeneral, req.Category)
	assert.Empty(t, req.APIKey)
}

func TestService_Fetch_RecordsMetrics(t *testing.T) {
	metrics.ProxyRequestsTotal.Reset()
	metrics.ArticlesServedTotal.Reset()
	metrics.ArticlesDroppedTotal.Reset()

	provider := &stubProvider{result: &entity.ResultSet{
		Articles: []entity.Article{
			{Title: "Kept", Description: "Body"},
			{Title: "", Description: "No title"},
			{Title: entity.RedactedPlaceholder, Description: "x"},
		},
		TotalResults: 40,
	}}
	svc := news.Service{Provider: provider, Credential: staticKey("secret")}
	_, err := svc.Fetch(context.Background(), entity.NewQuery("", "rust"))
	require.NoError(t, err)

	_, err = (&news.Service{Provider: provider}).Fetch(context.Background(), entity.NewQuery("health", ""))
	require.ErrorIs(t, err, news.ErrMissingCredential)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ProxyRequestsTotal.WithLabelValues("search", metrics.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ProxyRequestsTotal.WithLabelValues("headlines", metrics.OutcomeMissingCredential)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ArticlesServedTotal.WithLabelValues("search")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.ArticlesDroppedTotal.WithLabelValues("search")))
}
