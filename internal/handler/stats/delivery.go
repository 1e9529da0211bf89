package stats

import (
	"encoding/json"
	"net/http"

	"github.com/opengram/realtime-delivery-service/internal/domain/registry"
)

// Handler exposes registry counters for operators and the terminal
// dashboard.
type Handler struct {
	hub registry.Hubber
}

func NewHandler(hub registry.Hubber) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.hub.Stats()); err != nil {
		http.Error(w, "marshal error", http.StatusInternalServerError)
	}
}
