package news_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newshub/internal/domain/entity"
	"newshub/internal/handler/http/news"
	newsUC "newshub/internal/usecase/news"
)

type stubProvider struct {
	result *entity.ResultSet
	err    error
	calls  []newsUC.ProviderRequest
}

func (s *stubProvider) Fetch(_ context.Context, req newsUC.ProviderRequest) (*entity.ResultSet, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newMux(provider newsUC.Provider, key string, logs *bytes.Buffer) *http.ServeMux {
	logger := slog.New(slog.NewJSONHandler(logs, nil))
	svc := &newsUC.Service{
		Provider:   provider,
		Credential: func() string { return key },
		Logger:     logger,
	}
	mux := http.NewServeMux()
	news.Register(mux, svc, logger)
	return mux
}

func get(t *testing.T, mux http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_FiltersAndPassesTotalThrough(t *testing.T) {
	published := time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC)
	provider := &stubProvider{result: &entity.ResultSet{
		Articles: []entity.Article{
			{
				Title:       "Chips get faster",
				Description: "A new generation arrives.",
				URL:         "https://example.com/chips",
				ImageURL:    "https://example.com/chips.jpg",
				PublishedAt:    published,
				PublishedAtRaw: "2024-03-05T14:07:00.000Z",
				SourceID:       "the-verge",
				SourceName:     "The Verge",
				Author:         "Jane Doe",
			},
			{
				Title:       entity.RedactedPlaceholder,
				Description: "gone",
				URL:         "https://removed.com",
				SourceName:  "[Removed]",
			},
		},
		TotalResults: 2,
	}}

	rec := get(t, newMux(provider, "secret", &bytes.Buffer{}), "/api/news?category=technology")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{
		"articles": [{
			"source": {"id": "the-verge", "name": "The Verge"},
			"author": "Jane Doe",
			"title": "Chips get faster",
			"description": "A new generation arrives.",
			"url": "https://example.com/chips",
			"urlToImage": "https://example.com/chips.jpg",
			"publishedAt": "2024-03-05T14:07:00.000Z"
		}],
		"totalResults": 2
	}`, rec.Body.String())

	require.Len(t, provider.calls, 1)
	assert.Equal(t, entity.CategoryTechnology, provider.calls[0].Category)
}

func TestHandler_DefaultsToGeneralHeadlines(t *testing.T) {
	provider := &stubProvider{result: &entity.ResultSet{}}

	rec := get(t, newMux(provider, "secret", &bytes.Buffer{}), "/api/news")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, provider.calls, 1)
	assert.Equal(t, entity.ModeHeadlines, provider.calls[0].Mode)
	assert.Equal(t, entity.CategoryGeneral, provider.calls[0].Category)
}

func TestHandler_SearchOverridesCategory(t *testing.T) {
	provider := &stubProvider{result: &entity.ResultSet{}}

	rec := get(t, newMux(provider, "secret", &bytes.Buffer{}), "/api/news?category=sports&search=mars+rover")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, provider.calls, 1)
	assert.Equal(t, entity.ModeSearch, provider.calls[0].Mode)
	assert.Equal(t, "mars rover", provider.calls[0].Query)
}

func TestHandler_EmptyResultIsArray(t *testing.T) {
	provider := &stubProvider{result: &entity.ResultSet{Articles: nil, TotalResults: 0}}

	rec := get(t, newMux(provider, "secret", &bytes.Buffer{}), "/api/news")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"articles":[],"totalResults":0}`, rec.Body.String())
}

func TestHandler_OptionalFieldsAreNull(t *testing.T) {
	provider := &stubProvider{result: &entity.ResultSet{
		Articles:     []entity.Article{{Title: "T", Description: "D", URL: "https://x.test", SourceName: "X"}},
		TotalResults: 1,
	}}

	rec := get(t, newMux(provider, "secret", &bytes.Buffer{}), "/api/news")

	var body struct {
		Articles []map[string]interface{} `json:"articles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Articles, 1)
	article := body.Articles[0]
	assert.Nil(t, article["author"])
	assert.Nil(t, article["urlToImage"])
	assert.Nil(t, article["source"].(map[string]interface{})["id"])
	assert.Equal(t, "", article["publishedAt"])
}

func TestHandler_PublishedAtPassedThroughVerbatim(t *testing.T) {
	provider := &stubProvider{result: &entity.ResultSet{
		Articles: []entity.Article{
			{Title: "Odd clock", Description: "D", URL: "https://x.test/1", PublishedAtRaw: "yesterday-ish"},
			{Title: "No raw", Description: "D", URL: "https://x.test/2",
				PublishedAt: time.Date(2024, 3, 5, 23, 7, 0, 0, time.FixedZone("JST", 9*3600))},
		},
		TotalResults: 2,
	}}

	rec := get(t, newMux(provider, "secret", &bytes.Buffer{}), "/api/news")

	var body news.ResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Articles, 2)
	assert.Equal(t, "yesterday-ish", body.Articles[0].PublishedAt)
	assert.Equal(t, "2024-03-05T14:07:00Z", body.Articles[1].PublishedAt)
}

func TestHandler_UnknownCategoryIsForwardedAndLogged(t *testing.T) {
	provider := &stubProvider{result: &entity.ResultSet{}}
	var logs bytes.Buffer

	rec := get(t, newMux(provider, "secret", &logs), "/api/news?category=Entertainment")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, provider.calls, 1)
	assert.Equal(t, entity.Category("entertainment"), provider.calls[0].Category)
	assert.Contains(t, logs.String(), "unknown category passed through to provider")

	logs.Reset()
	get(t, newMux(provider, "secret", &logs), "/api/news?category=science")
	assert.NotContains(t, logs.String(), "unknown category")
}

func TestHandler_MissingCredential(t *testing.T) {
	provider := &stubProvider{result: &entity.ResultSet{}}
	var logs bytes.Buffer

	rec := get(t, newMux(provider, "", &logs), "/api/news?category=health")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"API key not configured"}`, rec.Body.String())
	assert.Empty(t, provider.calls)
}

func TestHandler_UpstreamFailureHidesCause(t *testing.T) {
	provider := &stubProvider{err: errors.New("newsapi: status 401 (apiKeyInvalid): key 0123456789abcdef0123456789abcdef is invalid")}
	var logs bytes.Buffer

	rec := get(t, newMux(provider, "secret", &logs), "/api/news?search=go")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch news"}`, rec.Body.String())
	assert.Contains(t, logs.String(), "apiKeyInvalid")
	assert.NotContains(t, logs.String(), "0123456789abcdef0123456789abcdef")
	assert.Len(t, provider.calls, 1)
}

func TestRegister_RejectsOtherMethods(t *testing.T) {
	mux := newMux(&stubProvider{result: &entity.ResultSet{}}, "secret", &bytes.Buffer{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/news", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
