package gamification

import (
	"math"
	"sort"
	"strings"

	"github.com/heritage-map/backend/internal/models"
)

// TotalProvinceCount is the number of province-level divisions shown
// on the map.
const TotalProvinceCount = 34

// EventKey builds the persisted learned-event key. The legacy
// city-title concatenation is kept for storage compatibility.
func EventKey(city, title string) string {
	return city + "-" + title
}

// ParseEventKey splits a learned-event key back into city and title.
// It cuts at the first separator only, so titles containing "-"
// resolve correctly as long as the city name does not.
func ParseEventKey(key string) (city, title string, ok bool) {
	return strings.Cut(key, "-")
}

// Progress derives the read-only learning summary the UI renders.
// With no dataset available yet, totals are zero and percent is
// defined as 0 rather than dividing by zero.
func (s *Service) Progress(dataset []models.CityRecord) models.ProgressSummary {
	p := s.Snapshot()

	totalEvents := 0
	for _, city := range dataset {
		totalEvents += len(city.Items)
	}

	percent := 0
	if totalEvents > 0 {
		percent = int(math.Round(float64(len(p.LearnedEvents)) / float64(totalEvents) * 100))
	}

	return models.ProgressSummary{
		TotalEvents:          totalEvents,
		LearnedCount:         len(p.LearnedEvents),
		Percent:              percent,
		VisitedProvinceCount: len(p.VisitedProvinces),
		TotalProvinceCount:   TotalProvinceCount,
	}
}

// Report tallies learned events by dynasty for the report chart.
// Keys that no longer resolve to a dataset item are skipped.
func (s *Service) Report(dataset []models.CityRecord) models.LearningReport {
	p := s.Snapshot()

	byCity := make(map[string]models.CityRecord, len(dataset))
	for _, c := range dataset {
		byCity[c.City] = c
	}

	dynastyStats := make(map[string]int)
	for _, key := range p.LearnedEvents {
		city, title, ok := ParseEventKey(key)
		if !ok {
			continue
		}
		record, ok := byCity[city]
		if !ok {
			continue
		}
		for _, item := range record.Items {
			if item.Title == title {
				dynastyStats[item.Dynasty]++
				break
			}
		}
	}

	history := make([]models.PointsSample, 0, len(p.LoginHistory))
	for i, date := range p.LoginHistory {
		history = append(history, models.PointsSample{
			Date:   date,
			Points: p.TotalPoints - (len(p.LoginHistory)-i-1)*10,
		})
	}

	return models.LearningReport{
		Summary:       s.Progress(dataset),
		DynastyStats:  dynastyStats,
		PointsHistory: history,
	}
}

// Placeholder leaderboard entries. There is no real multi-user
// backend: the board mixes these with the local user.
var virtualUsers = []models.LeaderboardEntry{
	{Name: "历史学者", Points: 1250, Avatar: "👨‍🏫"},
	{Name: "文化探索者", Points: 980, Avatar: "🧳"},
	{Name: "时光旅行者", Points: 850, Avatar: "⏰"},
	{Name: "古都爱好者", Points: 720, Avatar: "🏛️"},
	{Name: "历史新手", Points: 450, Avatar: "📚"},
}

// Leaderboard merges the placeholder entries with the local user,
// sorted by points descending.
func (s *Service) Leaderboard() []models.LeaderboardEntry {
	p := s.Snapshot()

	entries := make([]models.LeaderboardEntry, 0, len(virtualUsers)+1)
	entries = append(entries, virtualUsers...)
	entries = append(entries, models.LeaderboardEntry{
		Name:          "我",
		Avatar:        "👤",
		Points:        p.TotalPoints,
		IsCurrentUser: true,
	})

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
