package gamification

import (
	"github.com/heritage-map/backend/internal/dates"
	"github.com/heritage-map/backend/internal/models"
)

// Kind tags what an achievement's threshold is measured against.
// Achievements are data, not code: one dispatcher evaluates the whole
// catalog.
type Kind int

const (
	// KindLearnedEvents counts entries in learnedEvents.
	KindLearnedEvents Kind = iota
	// KindVisitedProvinces counts entries in visitedProvinces.
	KindVisitedProvinces
	// KindFavorites counts the externally-stored favorites list.
	KindFavorites
	// KindQuizDays reads the consecutive-quiz-day counter from the
	// externally-stored quiz record.
	KindQuizDays
	// KindLoginWeek counts login-history entries that fall exactly one
	// day after their predecessor (see consecutiveLoginDays).
	KindLoginWeek
)

// Achievement is one entry of the fixed catalog.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Kind        Kind
	Threshold   int
	Points      int
}

// Catalog is the fixed achievement set, in evaluation order.
var Catalog = []Achievement{
	{ID: "first_visit", Name: "历史新手", Description: "首次访问历史事件", Icon: "🌱", Kind: KindLearnedEvents, Threshold: 1, Points: 10},
	{ID: "explorer", Name: "探索者", Description: "访问10个历史事件", Icon: "🗺️", Kind: KindLearnedEvents, Threshold: 10, Points: 50},
	{ID: "scholar", Name: "历史学者", Description: "访问50个历史事件", Icon: "📖", Kind: KindLearnedEvents, Threshold: 50, Points: 200},
	{ID: "master", Name: "历史大师", Description: "访问100个历史事件", Icon: "👑", Kind: KindLearnedEvents, Threshold: 100, Points: 500},
	{ID: "collector", Name: "收藏家", Description: "收藏10个历史事件", Icon: "⭐", Kind: KindFavorites, Threshold: 10, Points: 100},
	{ID: "quiz_master", Name: "问答大师", Description: "连续答题7天", Icon: "🎯", Kind: KindQuizDays, Threshold: 7, Points: 150},
	{ID: "traveler", Name: "旅行者", Description: "访问10个省份", Icon: "✈️", Kind: KindVisitedProvinces, Threshold: 10, Points: 200},
	{ID: "perfect_week", Name: "完美一周", Description: "连续7天登录", Icon: "📅", Kind: KindLoginWeek, Threshold: 7, Points: 300},
}

// satisfied evaluates one achievement against the current progress
// plus the two external counters (favorites and quiz days).
func (a Achievement) satisfied(p *models.UserProgress, favorites, quizDays int) bool {
	switch a.Kind {
	case KindLearnedEvents:
		return len(p.LearnedEvents) >= a.Threshold
	case KindVisitedProvinces:
		return len(p.VisitedProvinces) >= a.Threshold
	case KindFavorites:
		return favorites >= a.Threshold
	case KindQuizDays:
		return quizDays >= a.Threshold
	case KindLoginWeek:
		return consecutiveLoginDays(p.LoginHistory) >= a.Threshold
	}
	return false
}

// consecutiveLoginDays counts history entries that extend a daily run:
// the first entry always counts, and a later entry counts when it is
// exactly one calendar day after its predecessor. The count covers the
// whole history, not one contiguous run: perfect_week unlocks once
// seven such entries exist anywhere, which is the long-standing
// behavior existing records depend on.
func consecutiveLoginDays(history []string) int {
	count := 0
	for i, day := range history {
		if i == 0 {
			count++
			continue
		}
		diff, err := dates.DaysBetween(history[i-1], day)
		if err != nil {
			continue
		}
		if diff == 1 {
			count++
		}
	}
	return count
}
