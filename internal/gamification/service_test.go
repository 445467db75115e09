package gamification

import (
	"testing"
	"time"

	"github.com/heritage-map/backend/internal/dates"
	"github.com/heritage-map/backend/internal/storage"
)

type recordingNotifier struct {
	awards   []string
	unlocked []string
}

func (n *recordingNotifier) PointsAwarded(amount int, reason string) {
	n.awards = append(n.awards, reason)
}

func (n *recordingNotifier) AchievementUnlocked(a Achievement) {
	n.unlocked = append(n.unlocked, a.ID)
}

type fixedFavorites int

func (f fixedFavorites) Count() int { return int(f) }

type fixedQuizDays int

func (f fixedQuizDays) ConsecutiveDays() int { return int(f) }

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewStore(storage.NewMemory()), nil)
}

func setDay(t *testing.T, s *Service, day string) {
	t.Helper()
	parsed, err := time.Parse(dates.Layout, day)
	if err != nil {
		t.Fatalf("bad test date %q: %v", day, err)
	}
	s.now = func() time.Time { return parsed }
}

func TestAddPoints(t *testing.T) {
	s := newTestService(t)

	if err := s.AddPoints(5, "答对题目"); err != nil {
		t.Fatalf("AddPoints(5) returned error: %v", err)
	}
	if err := s.AddPoints(3, "连续登录"); err != nil {
		t.Fatalf("AddPoints(3) returned error: %v", err)
	}
	if got := s.Snapshot().TotalPoints; got != 8 {
		t.Errorf("TotalPoints = %d, want 8", got)
	}

	if err := s.AddPoints(0, "nothing"); err == nil {
		t.Error("AddPoints(0) did not return an error")
	}
	if err := s.AddPoints(-5, "refund"); err == nil {
		t.Error("AddPoints(-5) did not return an error")
	}
	if got := s.Snapshot().TotalPoints; got != 8 {
		t.Errorf("TotalPoints after rejected amounts = %d, want 8", got)
	}
}

func TestRecordEventLearnFirstVisit(t *testing.T) {
	s := newTestService(t)

	// First learned event: 1 point plus the first_visit reward.
	s.RecordEventLearn("西安", "大雁塔")

	p := s.Snapshot()
	if p.TotalPoints != 11 {
		t.Errorf("TotalPoints = %d, want 11 (1 + 10 for first_visit)", p.TotalPoints)
	}
	if !p.HasAchievement("first_visit") {
		t.Error("first_visit not unlocked after the first learned event")
	}
	if len(p.LearnedEvents) != 1 || p.LearnedEvents[0] != "西安-大雁塔" {
		t.Errorf("LearnedEvents = %v, want [西安-大雁塔]", p.LearnedEvents)
	}
}

func TestRecordEventLearnDedup(t *testing.T) {
	s := newTestService(t)

	s.RecordEventLearn("西安", "大雁塔")
	s.RecordEventLearn("西安", "大雁塔")

	p := s.Snapshot()
	if len(p.LearnedEvents) != 1 {
		t.Errorf("LearnedEvents has %d entries, want 1", len(p.LearnedEvents))
	}
	if p.TotalPoints != 11 {
		t.Errorf("TotalPoints after relearn = %d, want 11", p.TotalPoints)
	}
}

func TestRecordProvinceVisit(t *testing.T) {
	s := newTestService(t)

	s.RecordProvinceVisit("陕西")
	s.RecordProvinceVisit("陕西")
	s.RecordProvinceVisit("河南")

	p := s.Snapshot()
	if len(p.VisitedProvinces) != 2 {
		t.Errorf("VisitedProvinces has %d entries, want 2", len(p.VisitedProvinces))
	}
	if p.TotalPoints != 2 {
		t.Errorf("TotalPoints = %d, want 2", p.TotalPoints)
	}
}

func TestTravelerUnlocksAtTenProvinces(t *testing.T) {
	s := newTestService(t)

	provinces := []string{"陕西", "河南", "北京", "江苏", "浙江", "四川", "湖北", "山东", "广东", "甘肃"}
	for _, p := range provinces {
		s.RecordProvinceVisit(p)
	}

	p := s.Snapshot()
	if !p.HasAchievement("traveler") {
		t.Error("traveler not unlocked after 10 provinces")
	}
	if p.TotalPoints != 210 {
		t.Errorf("TotalPoints = %d, want 210 (10 visits + 200 reward)", p.TotalPoints)
	}
}

func TestCheckDailyLoginStreak(t *testing.T) {
	s := newTestService(t)

	// Day one: recorded, no continuation bonus.
	setDay(t, s, "2026-03-01")
	s.CheckDailyLogin()
	p := s.Snapshot()
	if p.TotalPoints != 0 {
		t.Errorf("TotalPoints after first login = %d, want 0", p.TotalPoints)
	}
	if len(p.LoginHistory) != 1 {
		t.Errorf("LoginHistory has %d entries, want 1", len(p.LoginHistory))
	}

	// Same day again: idempotent.
	s.CheckDailyLogin()
	if got := len(s.Snapshot().LoginHistory); got != 1 {
		t.Errorf("LoginHistory after repeat login has %d entries, want 1", got)
	}

	// Days two and three: one bonus each.
	setDay(t, s, "2026-03-02")
	s.CheckDailyLogin()
	setDay(t, s, "2026-03-03")
	s.CheckDailyLogin()

	p = s.Snapshot()
	if p.TotalPoints != 6 {
		t.Errorf("TotalPoints after three consecutive logins = %d, want 6", p.TotalPoints)
	}
	if len(p.LoginHistory) != 3 {
		t.Errorf("LoginHistory has %d entries, want 3", len(p.LoginHistory))
	}
	if p.LastLoginDate != "2026-03-03" {
		t.Errorf("LastLoginDate = %q, want 2026-03-03", p.LastLoginDate)
	}
}

func TestCheckDailyLoginGapResets(t *testing.T) {
	s := newTestService(t)

	setDay(t, s, "2026-03-01")
	s.CheckDailyLogin()
	setDay(t, s, "2026-03-05")
	s.CheckDailyLogin()

	p := s.Snapshot()
	if p.TotalPoints != 0 {
		t.Errorf("TotalPoints after gapped login = %d, want 0", p.TotalPoints)
	}
	if len(p.LoginHistory) != 2 {
		t.Errorf("LoginHistory has %d entries, want 2", len(p.LoginHistory))
	}
}

func TestPerfectWeekUnlocks(t *testing.T) {
	s := newTestService(t)

	days := []string{
		"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04",
		"2026-03-05", "2026-03-06", "2026-03-07",
	}
	for _, d := range days {
		setDay(t, s, d)
		s.CheckDailyLogin()
	}

	p := s.Snapshot()
	if !p.HasAchievement("perfect_week") {
		t.Error("perfect_week not unlocked after seven consecutive login days")
	}
	// Six continuation bonuses plus the achievement reward.
	if p.TotalPoints != 6*3+300 {
		t.Errorf("TotalPoints = %d, want %d", p.TotalPoints, 6*3+300)
	}
}

func TestCollectorUnlocksViaFavoritesCounter(t *testing.T) {
	s := newTestService(t)
	s.SetFavoritesCounter(fixedFavorites(10))

	s.RecordFavorite()

	p := s.Snapshot()
	if !p.HasAchievement("collector") {
		t.Error("collector not unlocked with 10 favorites")
	}
	if p.TotalPoints != 2+100 {
		t.Errorf("TotalPoints = %d, want 102", p.TotalPoints)
	}
}

func TestQuizMasterUnlocksViaQuizDays(t *testing.T) {
	s := newTestService(t)
	s.SetQuizDays(fixedQuizDays(7))

	if err := s.AddPoints(5, "答对题目"); err != nil {
		t.Fatalf("AddPoints returned error: %v", err)
	}

	p := s.Snapshot()
	if !p.HasAchievement("quiz_master") {
		t.Error("quiz_master not unlocked with a 7-day quiz streak")
	}
	if p.TotalPoints != 5+150 {
		t.Errorf("TotalPoints = %d, want 155", p.TotalPoints)
	}
}

func TestNotifierEvents(t *testing.T) {
	n := &recordingNotifier{}
	s := NewService(NewStore(storage.NewMemory()), n)

	s.RecordEventLearn("西安", "大雁塔")

	if len(n.unlocked) != 1 || n.unlocked[0] != "first_visit" {
		t.Errorf("unlocked = %v, want [first_visit]", n.unlocked)
	}
	// The learn award plus the achievement reward.
	want := []string{"学习历史事件", "解锁成就：历史新手"}
	if len(n.awards) != len(want) {
		t.Fatalf("awards = %v, want %v", n.awards, want)
	}
	for i := range want {
		if n.awards[i] != want[i] {
			t.Errorf("awards[%d] = %q, want %q", i, n.awards[i], want[i])
		}
	}
}

func TestAchievementsAppendOnly(t *testing.T) {
	s := newTestService(t)

	s.RecordEventLearn("西安", "大雁塔")
	before := len(s.Snapshot().Achievements)

	// Nothing here re-triggers first_visit.
	s.RecordEventLearn("北京", "故宫")
	s.RecordEventLearn("洛阳", "龙门石窟")

	p := s.Snapshot()
	if len(p.Achievements) != before {
		t.Errorf("Achievements grew from %d to %d without a new unlock", before, len(p.Achievements))
	}
	count := 0
	for _, id := range p.Achievements {
		if id == "first_visit" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("first_visit recorded %d times, want 1", count)
	}
}
