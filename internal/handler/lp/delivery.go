package lp

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/opengram/realtime-delivery-service/internal/domain/event"
	"github.com/opengram/realtime-delivery-service/internal/domain/model"
	lpmarshaller "github.com/opengram/realtime-delivery-service/internal/handler/marshaller/lp"
	"github.com/opengram/realtime-delivery-service/internal/service"
)

const (
	pollTimeout = 30 * time.Second
	batchLimit  = 15
)

// LPHandler is the long-polling fallback for clients that cannot hold a
// websocket. Each request is a short-lived presence entry: the connection
// registers on arrival and deregisters when the response is written.
type LPHandler struct {
	logger    *slog.Logger
	auther    service.Auther
	deliverer service.Deliverer
}

func NewLPHandler(logger *slog.Logger, auther service.Auther, deliverer service.Deliverer) *LPHandler {
	return &LPHandler{
		logger:    logger,
		auther:    auther,
		deliverer: deliverer,
	}
}

// Poll holds the connection until an event arrives or the timeout fires.
func (h *LPHandler) Poll(w http.ResponseWriter, r *http.Request) {
	sess := model.NewSession()
	sess.BeginAuth()

	claims, err := h.auther.Verify(pollToken(r))
	if err != nil {
		sess.Reject()
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	if !sess.Authenticate(claims.UserID) {
		http.Error(w, service.ErrTokenInvalid.Error(), http.StatusUnauthorized)
		return
	}

	conn, err := h.deliverer.Subscribe(r.Context(), sess)
	if err != nil {
		http.Error(w, "failed to subscribe", http.StatusInternalServerError)
		return
	}
	defer h.deliverer.Disconnect(context.WithoutCancel(r.Context()), sess, conn)

	if !h.deliverer.Announce(r.Context(), sess, conn, claims.UserID) {
		http.Error(w, "failed to register presence", http.StatusConflict)
		return
	}

	var events []event.Eventer

	select {
	case <-r.Context().Done():
		return

	case <-time.After(pollTimeout):
		w.WriteHeader(http.StatusNoContent)
		return

	case ev, ok := <-conn.Recv():
		if !ok {
			return
		}
		events = append(events, ev)

		// Drain whatever else is buffered so one response carries a batch.
	drainLoop:
		for range batchLimit {
			select {
			case nextEv, ok := <-conn.Recv():
				if !ok {
					break drainLoop
				}
				events = append(events, nextEv)
			default:
				break drainLoop
			}
		}
	}

	data, err := lpmarshaller.MarshallEvents(events)
	if err != nil {
		http.Error(w, "marshal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func pollToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return after
	}
	return ""
}
