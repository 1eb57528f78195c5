package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	assert.Equal(t, "", FromContext(context.Background()))
	assert.Equal(t, "abc", FromContext(WithRequestID(context.Background(), "abc")))
	assert.Equal(t, "", FromContext(context.WithValue(context.Background(), RequestIDKey, 42)))
}

func serve(t *testing.T, header string) (ctxID string, rr *httptest.ResponseRecorder) {
	t.Helper()
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return ctxID, rr
}

func TestMiddleware_WithExistingRequestID(t *testing.T) {
	id, rr := serve(t, "client-req.01")

	assert.Equal(t, "client-req.01", id)
	assert.Equal(t, "client-req.01", rr.Header().Get(RequestIDHeader))
}

func TestMiddleware_GeneratesNewRequestID(t *testing.T) {
	id, rr := serve(t, "")

	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, rr.Header().Get(RequestIDHeader))
}

func TestMiddleware_ReplacesMalformedRequestID(t *testing.T) {
	for _, bad := range []string{"has space", "line\nbreak", strings.Repeat("a", 65)} {
		id, _ := serve(t, bad)
		assert.NotEqual(t, bad, id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err, "input %q", bad)
	}
}

func TestMiddleware_MultipleRequests(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		id, _ := serve(t, "")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
