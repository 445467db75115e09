package gamification

import (
	"fmt"
	"sync"
	"time"

	"github.com/heritage-map/backend/internal/dates"
	"github.com/heritage-map/backend/internal/models"
)

// Points awarded by the fixed reward schedule.
const (
	pointsLoginStreak    = 3
	pointsProvinceVisit  = 1
	pointsEventLearn     = 1
	pointsFavoriteRecord = 2
)

// FavoritesCounter reports how many events are currently favorited.
// The core reads the count for the collector achievement; it never
// writes favorites.
type FavoritesCounter interface {
	Count() int
}

// QuizDays reports the consecutive-quiz-day counter kept by the quiz
// subsystem, read by the quiz_master achievement.
type QuizDays interface {
	ConsecutiveDays() int
}

// Service owns the points ledger, the daily-login streak, and
// achievement evaluation. All mutators run a full read-modify-write
// cycle against the store under one mutex, so two logical mutations
// can never interleave.
type Service struct {
	mu        sync.Mutex
	store     *Store
	notifier  Notifier
	favorites FavoritesCounter
	quizDays  QuizDays
	now       func() time.Time
}

func NewService(store *Store, notifier Notifier) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// SetFavoritesCounter injects the favorites collaborator. Without it
// the collector achievement simply never unlocks.
func (s *Service) SetFavoritesCounter(c FavoritesCounter) {
	s.favorites = c
}

// SetQuizDays injects the quiz-streak collaborator for quiz_master.
func (s *Service) SetQuizDays(q QuizDays) {
	s.quizDays = q
}

// ── Points Ledger ───────────────────────────────────────

// AddPoints increments the total by a positive amount, persists, and
// re-evaluates achievements before returning. The ledger is
// append-only: there is no API to retract a mis-awarded amount.
func (s *Service) AddPoints(amount int, reason string) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %d", amount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.store.Load()
	s.addPoints(p, amount, reason)
	return nil
}

// addPoints is the internal ledger mutation. Caller holds the lock.
func (s *Service) addPoints(p *models.UserProgress, amount int, reason string) {
	p.TotalPoints += amount
	s.store.Save(p)
	s.notifier.PointsAwarded(amount, reason)
	s.evaluate(p)
}

// ── Daily Login Streak ──────────────────────────────────

// CheckDailyLogin processes at most one login per calendar day. A
// login the day after the previous one earns the continuation bonus;
// a longer gap starts over with no bonus. Idempotent within a day.
func (s *Service) CheckDailyLogin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.store.Load()
	today := dates.Day(s.now())
	if p.LastLoginDate == today {
		return
	}

	continued := false
	if p.LastLoginDate != "" {
		diff, err := dates.DaysBetween(p.LastLoginDate, today)
		// An unparseable stored date is treated as a fresh start, as
		// is a zero difference with mismatched strings.
		if err == nil && diff == 1 {
			continued = true
		}
	}

	if !contains(p.LoginHistory, today) {
		p.LoginHistory = append(p.LoginHistory, today)
	}
	p.LastLoginDate = today
	s.store.Save(p)

	if continued {
		s.addPoints(p, pointsLoginStreak, "连续登录")
	}
	s.evaluate(p)
}

// ── Learning Mutators ───────────────────────────────────

// RecordProvinceVisit adds a province to the visited set. Revisits are
// no-ops: no duplicate entry, no second award.
func (s *Service) RecordProvinceVisit(province string) {
	if province == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.store.Load()
	if p.HasVisited(province) {
		return
	}
	p.VisitedProvinces = append(p.VisitedProvinces, province)
	s.store.Save(p)
	s.addPoints(p, pointsProvinceVisit, "探索新省份")
}

// RecordEventLearn marks one (city, title) dataset item as learned.
// The persisted key keeps the legacy city-title concatenation.
func (s *Service) RecordEventLearn(city, title string) {
	if city == "" || title == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.store.Load()
	key := EventKey(city, title)
	if p.HasLearned(key) {
		return
	}
	p.LearnedEvents = append(p.LearnedEvents, key)
	s.store.Save(p)
	s.addPoints(p, pointsEventLearn, "学习历史事件")
}

// RecordFavorite awards the favoriting bonus and re-evaluates, so the
// collector achievement can fire on the updated favorites count.
func (s *Service) RecordFavorite() {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.store.Load()
	s.addPoints(p, pointsFavoriteRecord, "收藏历史事件")
}

// ── Achievement Engine ──────────────────────────────────

// evaluate unlocks every catalog entry whose predicate newly holds.
// The id is recorded (and saved) before the reward points are added,
// so the re-entrant evaluation triggered by addPoints sees the id as
// already earned and cannot recurse forever. Caller holds the lock.
func (s *Service) evaluate(p *models.UserProgress) {
	favorites := 0
	if s.favorites != nil {
		favorites = s.favorites.Count()
	}
	quizDays := 0
	if s.quizDays != nil {
		quizDays = s.quizDays.ConsecutiveDays()
	}

	for _, a := range Catalog {
		if p.HasAchievement(a.ID) {
			continue
		}
		if !a.satisfied(p, favorites, quizDays) {
			continue
		}
		p.Achievements = append(p.Achievements, a.ID)
		s.store.Save(p)
		s.addPoints(p, a.Points, "解锁成就："+a.Name)
		s.notifier.AchievementUnlocked(a)
	}
}

// ── Read Side ───────────────────────────────────────────

// Snapshot returns a copy of the current progress record.
func (s *Service) Snapshot() *models.UserProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Load()
}

// Achievements lists the whole catalog with unlock status.
func (s *Service) Achievements() []models.AchievementStatus {
	p := s.Snapshot()
	out := make([]models.AchievementStatus, 0, len(Catalog))
	for _, a := range Catalog {
		out = append(out, models.AchievementStatus{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Icon:        a.Icon,
			Points:      a.Points,
			Unlocked:    p.HasAchievement(a.ID),
		})
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
