package routers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"codesync/internal/api"
	"codesync/internal/metrics"
	"codesync/internal/ws"
)

// New assembles the route table. The websocket route sits outside the
// timeout middleware: sessions are long-lived.
func New(h *api.Handlers, sock *ws.Server) http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/", h.Health)
		r.Get("/healthz", h.Health)
		r.Post("/execute", h.ExecuteCode)
		r.Post("/ask-ai", h.AskAI)
		r.Handle("/metrics", metrics.Handler())
	})

	r.Get("/ws", sock.Handle)

	return r
}
