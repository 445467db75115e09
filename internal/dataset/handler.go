package dataset

import (
	"encoding/json"
	"net/http"

	"github.com/heritage-map/backend/internal/models"
)

type Handler struct {
	provider *Provider
}

func NewHandler(provider *Provider) *Handler {
	return &Handler{provider: provider}
}

// GetDataset serves the full city dataset, or 503 while the first
// load is still in flight.
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	select {
	case <-h.provider.Ready():
	default:
		writeJSON(w, http.StatusServiceUnavailable, models.ErrorResponse{Error: "dataset is still loading"})
		return
	}
	writeJSON(w, http.StatusOK, h.provider.Cities())
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
