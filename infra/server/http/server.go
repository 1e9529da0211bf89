package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/opengram/realtime-delivery-service/internal/handler/history"
	"github.com/opengram/realtime-delivery-service/internal/handler/lp"
	"github.com/opengram/realtime-delivery-service/internal/handler/stats"
	"github.com/opengram/realtime-delivery-service/internal/handler/ws"
)

// NewRouter mounts the realtime endpoints. The websocket is the primary
// transport; long-polling exists for clients that cannot hold one.
func NewRouter(wsHandler *ws.WSHandler, lpHandler *lp.LPHandler, statsHandler *stats.Handler, historyHandler *history.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Method(http.MethodGet, "/ws", wsHandler)
	r.Get("/poll", lpHandler.Poll)
	r.Get("/stats", statsHandler.Stats)
	r.Get("/notifications", historyHandler.Notifications)

	return r
}

func NewServer(addr string, router *chi.Mux) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// No global read/write timeouts: websocket and long-poll requests
		// stay open far longer than any sane request timeout.
	}
}
