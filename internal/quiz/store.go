package quiz

import (
	"encoding/json"
	"log"

	"github.com/heritage-map/backend/internal/models"
	"github.com/heritage-map/backend/internal/storage"
)

// Store persists the quiz record ("quiz_data") and the active
// question ("current_question"). Same write-through, never-fatal
// contract as the progress store.
type Store struct {
	kv storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

func (s *Store) LoadStats() *models.QuizStats {
	raw, ok := s.kv.Get(storage.KeyQuizData)
	if ok {
		var q models.QuizStats
		if err := json.Unmarshal(raw, &q); err == nil {
			if q.Answers == nil {
				q.Answers = []models.AnswerRecord{}
			}
			return &q
		}
		log.Printf("[quiz] corrupt quiz_data record, reinitializing")
	}

	q := models.NewQuizStats()
	s.SaveStats(q)
	return q
}

func (s *Store) SaveStats(q *models.QuizStats) {
	raw, err := json.Marshal(q)
	if err != nil {
		log.Printf("[quiz] marshal quiz_data: %v", err)
		return
	}
	if err := s.kv.Set(storage.KeyQuizData, raw); err != nil {
		log.Printf("[quiz] save quiz_data: %v", err)
	}
}

// LoadCurrent returns the stored active question, or nil when none is
// stored or the record is unreadable.
func (s *Store) LoadCurrent() *models.QuizQuestion {
	raw, ok := s.kv.Get(storage.KeyCurrentQuestion)
	if !ok {
		return nil
	}
	var q models.QuizQuestion
	if err := json.Unmarshal(raw, &q); err != nil {
		log.Printf("[quiz] corrupt current_question record, discarding")
		return nil
	}
	return &q
}

func (s *Store) SaveCurrent(q *models.QuizQuestion) {
	raw, err := json.Marshal(q)
	if err != nil {
		log.Printf("[quiz] marshal current_question: %v", err)
		return
	}
	if err := s.kv.Set(storage.KeyCurrentQuestion, raw); err != nil {
		log.Printf("[quiz] save current_question: %v", err)
	}
}

func (s *Store) ClearCurrent() {
	if err := s.kv.Delete(storage.KeyCurrentQuestion); err != nil {
		log.Printf("[quiz] clear current_question: %v", err)
	}
}
