// Package web serves the server-rendered news page at GET /.
//
// The page is streamed: the header, category bar and placeholder cards are
// flushed before the proxy call, and the results are appended when it
// returns, along with a style rule that hides the placeholders.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"newshub/internal/domain/entity"
	"newshub/internal/observability/logging"
	"newshub/internal/view"
	"newshub/pkg/security/csp"
)

// ImageErrorHandler is the inline onerror handler that hides broken article
// images. It must match the attribute in templates/page.html byte for byte,
// because the page CSP allows it by hash.
const ImageErrorHandler = "this.style.display='none'"

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Fetcher loads articles for a query. *newsclient.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, q entity.Query) (*entity.ResultSet, error)
}

// CSPPolicy returns the Content-Security-Policy for the page.
func CSPPolicy() *csp.CSPBuilder {
	return csp.PagePolicy(csp.Hash(ImageErrorHandler))
}

// Handler renders the page.
type Handler struct {
	News     Fetcher
	Location *time.Location // card timestamps; nil means UTC
	Logger   *slog.Logger
}

type categoryLink struct {
	Label  string
	Href   string
	Active bool
}

type startData struct {
	Category     entity.Category
	Search       string
	Categories   []categoryLink
	Placeholders []struct{}
}

type resultsData struct {
	Empty      bool
	EmptyTitle string
	EmptyHint  string
	Cards      []view.Card
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.logger())

	params := r.URL.Query()
	state := view.NewState()
	state.SelectCategory(entity.ParseCategory(params.Get("category")))
	state.SetSearch(params.Get("search"))

	ticket, q := state.Begin()
	snap := state.Snapshot()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTemplates.ExecuteTemplate(w, "page_start", startData{
		Category:     snap.Category,
		Search:       snap.Search,
		Categories:   categoryLinks(snap.Category, snap.Search),
		Placeholders: make([]struct{}, view.PlaceholderCount),
	}); err != nil {
		logger.Error("render page header", slog.Any("error", err))
		return
	}
	if err := http.NewResponseController(w).Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
		logger.Debug("flush page header", slog.Any("error", err))
	}

	rs, err := h.News.Fetch(ctx, q)
	if err != nil {
		// The page does not tell failures apart from empty results.
		logger.Warn("news fetch failed; rendering empty state",
			slog.String("mode", q.Mode().String()),
			slog.String("category", q.Category.String()),
			slog.Any("error", err))
	}
	state.Complete(ticket, rs, err)
	snap = state.Snapshot()

	if err := pageTemplates.ExecuteTemplate(w, "results", resultsData{
		Empty:      snap.Empty(),
		EmptyTitle: view.EmptyTitle,
		EmptyHint:  view.EmptyHint,
		Cards:      view.Cards(snap.Articles, h.Location),
	}); err != nil {
		logger.Error("render page results", slog.Any("error", err))
		return
	}
	if err := pageTemplates.ExecuteTemplate(w, "page_end", nil); err != nil {
		logger.Error("render page footer", slog.Any("error", err))
	}
}

// categoryLinks keeps the current search text on every category link.
func categoryLinks(active entity.Category, search string) []categoryLink {
	links := make([]categoryLink, 0, len(entity.Categories()))
	for _, c := range entity.Categories() {
		v := url.Values{}
		v.Set("category", c.String())
		if search != "" {
			v.Set("search", search)
		}
		links = append(links, categoryLink{
			Label:  c.DisplayName(),
			Href:   "/?" + v.Encode(),
			Active: c == active,
		})
	}
	return links
}

func (h Handler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Register mounts the page at exactly "/".
func Register(mux *http.ServeMux, h Handler) {
	mux.Handle("GET /{$}", h)
}
