package models

// ── Persisted Progress Records ────────────────────────────

// UserProgress is the single persisted progress record for the local
// user, stored under the "user_stats" key. Field names match the
// legacy storage format so existing records load unchanged.
type UserProgress struct {
	TotalPoints      int      `json:"totalPoints"`
	VisitedProvinces []string `json:"visitedProvinces"`
	LearnedEvents    []string `json:"learnedEvents"`
	Achievements     []string `json:"achievements"`
	LoginHistory     []string `json:"loginHistory"`
	LastLoginDate    string   `json:"lastLoginDate,omitempty"`
}

// NewUserProgress returns an all-empty record.
func NewUserProgress() *UserProgress {
	return &UserProgress{
		VisitedProvinces: []string{},
		LearnedEvents:    []string{},
		Achievements:     []string{},
		LoginHistory:     []string{},
	}
}

func (p *UserProgress) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

func (p *UserProgress) HasLearned(key string) bool {
	for _, e := range p.LearnedEvents {
		if e == key {
			return true
		}
	}
	return false
}

func (p *UserProgress) HasVisited(province string) bool {
	for _, v := range p.VisitedProvinces {
		if v == province {
			return true
		}
	}
	return false
}

// Favorite is one entry of the persisted "favorites" list.
type Favorite struct {
	Key  string `json:"key"`
	City string `json:"city"`
	Item string `json:"item"`
}

// ── Response Types ────────────────────────────────────────

type ProgressSummary struct {
	TotalEvents          int `json:"total_events"`
	LearnedCount         int `json:"learned_count"`
	Percent              int `json:"percent"`
	VisitedProvinceCount int `json:"visited_province_count"`
	TotalProvinceCount   int `json:"total_province_count"`
}

type PointsSample struct {
	Date   string `json:"date"`
	Points int    `json:"points"`
}

type LearningReport struct {
	Summary       ProgressSummary `json:"summary"`
	DynastyStats  map[string]int  `json:"dynasty_stats"`
	PointsHistory []PointsSample  `json:"points_history"`
}

type AchievementStatus struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Points      int    `json:"points"`
	Unlocked    bool   `json:"unlocked"`
}

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	Name          string `json:"name"`
	Avatar        string `json:"avatar"`
	Points        int    `json:"points"`
	IsCurrentUser bool   `json:"is_current_user"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ── Request Types ─────────────────────────────────────────

type AddPointsRequest struct {
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

type VisitProvinceRequest struct {
	Province string `json:"province"`
}

type LearnEventRequest struct {
	City  string `json:"city"`
	Title string `json:"title"`
}

type ToggleFavoriteRequest struct {
	City string `json:"city"`
	Item string `json:"item"`
}

type ToggleFavoriteResponse struct {
	Favorited bool `json:"favorited"`
	Count     int  `json:"count"`
}
