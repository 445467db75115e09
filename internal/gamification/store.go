package gamification

import (
	"encoding/json"
	"log"

	"github.com/heritage-map/backend/internal/models"
	"github.com/heritage-map/backend/internal/storage"
)

// Store persists the UserProgress record under the "user_stats" key.
// Every mutator in this package reads the full record, mutates it, and
// writes the full record back.
type Store struct {
	kv storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Load returns the persisted record, or a freshly-initialized empty
// one when nothing is stored or the stored JSON is unreadable. A fresh
// record is persisted immediately.
func (s *Store) Load() *models.UserProgress {
	raw, ok := s.kv.Get(storage.KeyUserStats)
	if ok {
		var p models.UserProgress
		if err := json.Unmarshal(raw, &p); err == nil {
			normalize(&p)
			return &p
		}
		log.Printf("[gamification] corrupt user_stats record, reinitializing")
	}

	p := models.NewUserProgress()
	s.Save(p)
	return p
}

// Save writes the record through to storage. Failures are logged and
// swallowed: the app stays usable with ephemeral-only progress.
func (s *Store) Save(p *models.UserProgress) {
	raw, err := json.Marshal(p)
	if err != nil {
		log.Printf("[gamification] marshal user_stats: %v", err)
		return
	}
	if err := s.kv.Set(storage.KeyUserStats, raw); err != nil {
		log.Printf("[gamification] save user_stats: %v", err)
	}
}

// normalize replaces nil slices from older or partial records so
// mutators can append without nil checks.
func normalize(p *models.UserProgress) {
	if p.VisitedProvinces == nil {
		p.VisitedProvinces = []string{}
	}
	if p.LearnedEvents == nil {
		p.LearnedEvents = []string{}
	}
	if p.Achievements == nil {
		p.Achievements = []string{}
	}
	if p.LoginHistory == nil {
		p.LoginHistory = []string{}
	}
}
