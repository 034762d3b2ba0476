package routers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"codesync/internal/api"
	"codesync/internal/session"
	"codesync/internal/ws"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	groups := ws.NewGroups()
	coordinator := session.NewCoordinator(groups, zap.NewNop())
	sock := ws.NewServer(groups, coordinator, zap.NewNop())
	return New(api.NewHandlers(zap.NewNop(), nil, nil), sock)
}

func TestHealthRoutes(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/", "/healthz"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", path, rec.Code)
		}
	}
}

func TestMetricsRoute(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for /metrics, got %d", rec.Code)
	}
}

func TestWebsocketRouteRequiresUpgrade(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected upgrade failure for plain GET, got %d", rec.Code)
	}
}
