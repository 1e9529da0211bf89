package history

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/opengram/realtime-delivery-service/internal/service"
)

const defaultLimit = 50

// Handler serves the notification catch-up read: a client reconnecting
// after being offline fetches the pushes it missed.
type Handler struct {
	logger *slog.Logger
	auther service.Auther
	store  service.NotificationStore
}

func NewHandler(logger *slog.Logger, auther service.Auther, store service.NotificationStore) *Handler {
	return &Handler{
		logger: logger,
		auther: auther,
		store:  store,
	}
}

// Notifications returns the caller's most recent notifications, newest
// first. The identity comes from the token alone; there is no way to read
// another user's feed.
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	claims, err := h.auther.Verify(requestToken(r))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	limit := int64(defaultLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	notifications, err := h.store.ListByRecipient(r.Context(), claims.UserID, limit)
	if err != nil {
		h.logger.Error("notification listing failed", "user_id", claims.UserID, "err", err)
		http.Error(w, "listing failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(notifications); err != nil {
		h.logger.Error("notification listing encode failed", "err", err)
	}
}

func requestToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return after
	}
	return ""
}
