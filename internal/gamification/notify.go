package gamification

import "log"

// Notifier receives the transient UI events the core emits. Delivery
// is fire-and-forget; the core never depends on them being displayed.
type Notifier interface {
	PointsAwarded(amount int, reason string)
	AchievementUnlocked(a Achievement)
}

// LogNotifier writes events to the process log.
type LogNotifier struct{}

func (LogNotifier) PointsAwarded(amount int, reason string) {
	log.Printf("[gamification] +%d points: %s", amount, reason)
}

func (LogNotifier) AchievementUnlocked(a Achievement) {
	log.Printf("[gamification] achievement unlocked: %s %s (+%d)", a.Icon, a.Name, a.Points)
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) PointsAwarded(int, string) {}
func (NopNotifier) AchievementUnlocked(Achievement) {}
