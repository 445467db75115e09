package gamification

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/heritage-map/backend/internal/models"
)

// DatasetSource supplies the reference dataset for the read-side
// summaries. It may return an empty slice while the dataset is still
// loading; summaries then report zero totals.
type DatasetSource interface {
	Cities() []models.CityRecord
}

type Handler struct {
	service *Service
	dataset DatasetSource
}

func NewHandler(service *Service, dataset DatasetSource) *Handler {
	return &Handler{service: service, dataset: dataset}
}

// ── Read Side ───────────────────────────────────────────

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Progress(h.dataset.Cities()))
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Report(h.dataset.Cities()))
}

func (h *Handler) GetAchievements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Achievements())
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Leaderboard())
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Snapshot())
}

// ── Mutators ────────────────────────────────────────────

// Login records today's visit, extending or resetting the streak.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.service.CheckDailyLogin()
	writeJSON(w, http.StatusOK, h.service.Snapshot())
}

// AddPoints credits an arbitrary positive amount with a caller
// supplied reason.
func (h *Handler) AddPoints(w http.ResponseWriter, r *http.Request) {
	var req models.AddPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if err := h.service.AddPoints(req.Amount, req.Reason); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, h.service.Snapshot())
}

func (h *Handler) VisitProvince(w http.ResponseWriter, r *http.Request) {
	var req models.VisitProvinceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	req.Province = strings.TrimSpace(req.Province)
	if req.Province == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "province is required"})
		return
	}

	h.service.RecordProvinceVisit(req.Province)
	writeJSON(w, http.StatusOK, h.service.Snapshot())
}

func (h *Handler) LearnEvent(w http.ResponseWriter, r *http.Request) {
	var req models.LearnEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	req.City = strings.TrimSpace(req.City)
	req.Title = strings.TrimSpace(req.Title)
	if req.City == "" || req.Title == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "city and title are required"})
		return
	}

	h.service.RecordEventLearn(req.City, req.Title)
	writeJSON(w, http.StatusOK, h.service.Snapshot())
}

// ── Helpers ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
