package settings

import (
	"encoding/json"
	"net/http"

	"github.com/heritage-map/backend/internal/models"
	"github.com/heritage-map/backend/internal/storage"
)

const defaultTheme = "light"

// Store persists UI preferences. The only one today is the theme.
type Store struct {
	kv storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Theme returns the saved theme, defaulting to light.
func (s *Store) Theme() string {
	raw, ok := s.kv.Get(storage.KeyTheme)
	if !ok {
		return defaultTheme
	}
	theme := string(raw)
	if theme != "light" && theme != "dark" {
		return defaultTheme
	}
	return theme
}

func (s *Store) SetTheme(theme string) error {
	return s.kv.Set(storage.KeyTheme, []byte(theme))
}

type themePayload struct {
	Theme string `json:"theme"`
}

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) GetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, themePayload{Theme: h.store.Theme()})
}

func (h *Handler) PutTheme(w http.ResponseWriter, r *http.Request) {
	var req themePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.Theme != "light" && req.Theme != "dark" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "theme must be light or dark"})
		return
	}
	if err := h.store.SetTheme(req.Theme); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "failed to save theme"})
		return
	}
	writeJSON(w, http.StatusOK, themePayload{Theme: req.Theme})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
