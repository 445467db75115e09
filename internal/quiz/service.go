package quiz

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/heritage-map/backend/internal/dates"
	"github.com/heritage-map/backend/internal/models"
)

const pointsCorrectAnswer = 5

// PointsLedger is the gamification collaborator a correct answer
// reports to. A nil ledger means answers simply earn nothing.
type PointsLedger interface {
	AddPoints(amount int, reason string) error
}

// DatasetSource supplies the reference dataset questions are built
// from. It returns an empty slice until the dataset has loaded.
type DatasetSource interface {
	Cities() []models.CityRecord
}

// Service owns question generation, answer grading, and the
// consecutive-quiz-day streak.
type Service struct {
	mu      sync.Mutex
	store   *Store
	gen     *Generator
	dataset DatasetSource
	points  PointsLedger
	now     func() time.Time
}

func NewService(store *Store, gen *Generator, dataset DatasetSource, points PointsLedger) *Service {
	return &Service{
		store:   store,
		gen:     gen,
		dataset: dataset,
		points:  points,
		now:     time.Now,
	}
}

// Show generates a fresh question, replacing and abandoning any
// previous one. Opening the quiz has always dealt a new question, it
// is not limited to one per day.
func (s *Service) Show() (*models.QuizQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generate()
}

// Current returns the stored question, regenerating only when none is
// stored or the stored one was issued on a previous day.
func (s *Service) Current() (*models.QuizQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := s.store.LoadCurrent()
	if q != nil && q.Date == dates.Day(s.now()) {
		return q, nil
	}
	return s.generate()
}

// generate builds and persists a new question. Caller holds the lock.
func (s *Service) generate() (*models.QuizQuestion, error) {
	q, err := s.gen.Generate(s.dataset.Cities(), dates.Day(s.now()))
	if err != nil {
		return nil, fmt.Errorf("generate question: %w", err)
	}
	s.store.SaveCurrent(q)
	return q, nil
}

// Answer grades the active question. Each question can be answered
// once: it is cleared here, and the next Show deals a new one. The
// totals, the last-quiz date, and the consecutive-day counter are
// updated regardless of correctness.
func (s *Service) Answer(selected string) (*models.AnswerResult, error) {
	s.mu.Lock()

	q := s.store.LoadCurrent()
	if q == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("no active question")
	}

	today := dates.Day(s.now())
	stats := s.store.LoadStats()
	rollQuizDay(stats, today)

	correct := selected == q.Correct
	stats.TotalQuestions++
	if correct {
		stats.CorrectAnswers++
	}
	stats.LastQuizDate = today
	stats.Answers = append(stats.Answers, models.AnswerRecord{
		Date:     today,
		Kind:     q.Kind,
		Question: q.Question,
		Selected: selected,
		Correct:  correct,
	})
	s.store.SaveStats(stats)
	s.store.ClearCurrent()
	s.mu.Unlock()

	// Outside the lock: the ledger re-evaluates achievements, which
	// reads back our consecutive-day counter.
	awarded := 0
	if correct && s.points != nil {
		if err := s.points.AddPoints(pointsCorrectAnswer, "答对题目"); err != nil {
			log.Printf("[quiz] award points: %v", err)
		} else {
			awarded = pointsCorrectAnswer
		}
	}

	return &models.AnswerResult{
		Correct:       correct,
		CorrectAnswer: q.Correct,
		Explanation:   q.Explanation,
		PointsAwarded: awarded,
	}, nil
}

// rollQuizDay advances the consecutive-day counter when a new quiz
// day starts: the day after the last quiz extends the streak, a
// longer gap restarts it at one.
func rollQuizDay(stats *models.QuizStats, today string) {
	if stats.LastQuizDate == today {
		return
	}
	if stats.LastQuizDate == "" {
		stats.ConsecutiveDays = 1
		stats.LastConsecutiveDate = today
		return
	}
	diff, err := dates.DaysBetween(stats.LastQuizDate, today)
	if err != nil {
		stats.ConsecutiveDays = 1
		stats.LastConsecutiveDate = today
		return
	}
	switch {
	case diff == 1:
		stats.ConsecutiveDays++
		stats.LastConsecutiveDate = today
	case diff > 1:
		stats.ConsecutiveDays = 1
		stats.LastConsecutiveDate = today
	}
}

// Stats summarizes the persisted quiz record.
func (s *Service) Stats() models.QuizStatsSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := s.store.LoadStats()
	accuracy := 0
	if stats.TotalQuestions > 0 {
		accuracy = int(math.Round(float64(stats.CorrectAnswers) / float64(stats.TotalQuestions) * 100))
	}
	return models.QuizStatsSummary{
		TotalQuestions:  stats.TotalQuestions,
		CorrectAnswers:  stats.CorrectAnswers,
		Accuracy:        accuracy,
		ConsecutiveDays: stats.ConsecutiveDays,
	}
}

// ConsecutiveDays exposes the quiz-day streak to the achievement
// engine (quiz_master).
func (s *Service) ConsecutiveDays() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.LoadStats().ConsecutiveDays
}
