package mapdata

import (
	"encoding/json"
	"net/http"

	"github.com/heritage-map/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetBoundary serves the cached province boundary GeoJSON.
func (h *Handler) GetBoundary(w http.ResponseWriter, r *http.Request) {
	raw, err := h.service.Boundary(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "boundary data unavailable"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}

// GetProvinces serves the official-to-short province name mapping.
func (h *Handler) GetProvinces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Names())
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
