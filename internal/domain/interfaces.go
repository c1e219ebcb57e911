package domain

import (
	"context"
	"time"
)

// ─── Store Interfaces ───────────────────────────────────────────────────────
// Infrastructure implements them; the application layer depends on them.

// EntryStore persists the per-user emotion log.
type EntryStore interface {
	InsertEntry(ctx context.Context, e EmotionEntry) error
	DeleteEntry(ctx context.Context, userID, id string) error
	ListEntries(ctx context.Context, userID string, limit int) ([]EmotionEntry, error)
	ListEntriesSince(ctx context.Context, userID string, since time.Time) ([]EmotionEntry, error)
}

// AchievementStore persists the append-only unlocked set.
type AchievementStore interface {
	// UnlockAchievement returns false when the id was already unlocked.
	UnlockAchievement(ctx context.Context, userID, id string, at time.Time) (bool, error)
	ListUnlockedAchievements(ctx context.Context, userID string) ([]UnlockedAchievement, error)
	MarkAchievementNotified(ctx context.Context, userID, id string) error
}

// CounterStore persists the community counters.
type CounterStore interface {
	GetCounters(ctx context.Context, userID string) (EngagementCounters, error)
	SetCounters(ctx context.Context, userID string, c EngagementCounters) error
}

// NotificationStore persists notifications.
type NotificationStore interface {
	InsertNotification(ctx context.Context, n Notification) (int64, error)
	NotificationCountSince(ctx context.Context, userID string, since time.Time) (int, error)
	ListPendingNotifications(ctx context.Context, userID string, limit int) ([]Notification, error)
	MarkNotificationShown(ctx context.Context, userID string, id int64) error
}
