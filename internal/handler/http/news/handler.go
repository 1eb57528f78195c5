// Package news serves GET /api/news, the credential-holding proxy in front of
// the headline provider.
package news

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"newshub/internal/domain/entity"
	"newshub/internal/handler/http/respond"
	"newshub/internal/observability/logging"
	newsUC "newshub/internal/usecase/news"
)

// Public error messages. Clients match on these strings.
const (
	MsgMissingCredential = "API key not configured"
	MsgFetchFailed       = "Failed to fetch news"
)

// Fetcher is the use case the handler depends on.
type Fetcher interface {
	Fetch(ctx context.Context, q entity.Query) (*entity.ResultSet, error)
}

// Handler serves the proxy endpoint.
type Handler struct {
	Svc    Fetcher
	Logger *slog.Logger
}

// ServeHTTP returns filtered articles for a category or search term.
// @Summary      Fetch news
// @Description  Proxies top headlines for a category, or a full-text search when search is set.
// @Tags         news
// @Produce      json
// @Param        category  query  string  false  "Headline category"  default(general)
// @Param        search    query  string  false  "Search term; overrides category"
// @Success      200 {object} ResponseDTO
// @Failure      500 {object} respond.ErrorBody "API key not configured | Failed to fetch news"
// @Router       /api/news [get]
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.logger())

	params := r.URL.Query()
	q := entity.NewQuery(params.Get("category"), params.Get("search"))
	if q.Mode() == entity.ModeHeadlines && !q.Category.Known() {
		logger.Info("unknown category passed through to provider",
			slog.String("category", q.Category.String()))
	}

	rs, err := h.Svc.Fetch(ctx, q)
	if err != nil {
		if errors.Is(err, newsUC.ErrMissingCredential) {
			logger.Error("news request rejected: credential missing")
			respond.Error(w, http.StatusInternalServerError, MsgMissingCredential)
			return
		}
		respond.SafeError(w, logger, http.StatusInternalServerError,
			respond.NewAppError(http.StatusInternalServerError, MsgFetchFailed, err))
		return
	}

	logger.Debug("news served",
		slog.String("mode", q.Mode().String()),
		slog.String("category", q.Category.String()),
		slog.Int("articles", len(rs.Articles)),
		slog.Int("total_results", rs.TotalResults))

	respond.JSON(w, http.StatusOK, toResponse(rs))
}

func (h Handler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
