package favorites

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/heritage-map/backend/internal/models"
)

// Rewarder is notified when an item is newly favorited. Removing a
// favorite is silent.
type Rewarder interface {
	RecordFavorite()
}

type Handler struct {
	store    *Store
	rewarder Rewarder
}

func NewHandler(store *Store, rewarder Rewarder) *Handler {
	return &Handler{store: store, rewarder: rewarder}
}

func (h *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.List())
}

// ToggleFavorite flips the favorite state. Favoriting earns points
// through the gamification service.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req models.ToggleFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	req.City = strings.TrimSpace(req.City)
	req.Item = strings.TrimSpace(req.Item)
	if req.City == "" || req.Item == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "city and item are required"})
		return
	}

	added := h.store.Toggle(req.City, req.Item)
	if added && h.rewarder != nil {
		h.rewarder.RecordFavorite()
	}
	writeJSON(w, http.StatusOK, models.ToggleFavoriteResponse{
		Favorited: added,
		Count:     h.store.Count(),
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
