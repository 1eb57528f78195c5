package news

import (
	"log/slog"
	"net/http"
)

// Register mounts the proxy endpoint. Other methods on the path get 405
// from the mux.
func Register(mux *http.ServeMux, svc Fetcher, logger *slog.Logger) {
	mux.Handle("GET /api/news", Handler{Svc: svc, Logger: logger})
}
