package engagement

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/moodtrail/moodtrail/internal/domain"
)

// NotificationService raises unlock and level-up notifications.
//   - At most MaxPerDay notifications per user per calendar day
//   - Nothing between QuietStart and QuietEnd (calendar zone)
//   - Suppressed notifications are dropped, never queued
type NotificationService struct {
	store  domain.NotificationStore
	cal    Calendar
	policy domain.NotificationPolicy
}

// NewNotificationService creates a notification service with default policy.
func NewNotificationService(store domain.NotificationStore, cal Calendar) *NotificationService {
	return NewNotificationServiceWithPolicy(store, cal, domain.DefaultNotificationPolicy())
}

// NewNotificationServiceWithPolicy creates a notification service with custom policy.
func NewNotificationServiceWithPolicy(store domain.NotificationStore, cal Calendar, policy domain.NotificationPolicy) *NotificationService {
	return &NotificationService{store: store, cal: cal, policy: policy}
}

// Create stores notif if policy allows it. CreatedAt decides both the
// quiet-hour check and the calendar day counted against the cap.
// Returns the notification ID (0 if suppressed by policy) and any error.
func (n *NotificationService) Create(ctx context.Context, notif domain.Notification) (int64, error) {
	if notif.CreatedAt.IsZero() {
		notif.CreatedAt = time.Now()
	}
	if n.isQuietHour(notif.CreatedAt) {
		return 0, nil
	}

	todayCount, err := n.store.NotificationCountSince(ctx, notif.UserID, n.cal.DayStart(notif.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("count today: %w", err)
	}
	if todayCount >= n.policy.MaxPerDay {
		return 0, nil
	}

	notif.Shown = false
	id, err := n.store.InsertNotification(ctx, notif)
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}
	return id, nil
}

// AchievementNotification builds the message for a fresh unlock.
func AchievementNotification(userID string, u domain.UnlockedAchievement, now time.Time) domain.Notification {
	return domain.Notification{
		UserID:    userID,
		Type:      domain.NotifyAchievement,
		Title:     "Achievement unlocked: " + u.Name,
		Body:      fmt.Sprintf("%s (+%d exp)", u.Description, max(u.Reward.Experience, 0)),
		CreatedAt: now,
	}
}

// LevelUpNotification builds the message for reaching a new level.
func LevelUpNotification(userID string, level domain.LevelInfo, now time.Time) domain.Notification {
	return domain.Notification{
		UserID:    userID,
		Type:      domain.NotifyLevelUp,
		Title:     fmt.Sprintf("Level %d reached", level.Level),
		Body:      fmt.Sprintf("You are now %s %s", level.Name, level.Badge),
		CreatedAt: now,
	}
}

// Pending returns unshown notifications, oldest first.
func (n *NotificationService) Pending(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	return n.store.ListPendingNotifications(ctx, userID, limit)
}

// MarkShown marks a notification as shown.
func (n *NotificationService) MarkShown(ctx context.Context, userID string, id int64) error {
	return n.store.MarkNotificationShown(ctx, userID, id)
}

// Policy returns the current notification policy.
func (n *NotificationService) Policy() domain.NotificationPolicy {
	return n.policy
}

// isQuietHour returns true if t falls within quiet hours in the calendar zone.
func (n *NotificationService) isQuietHour(t time.Time) bool {
	startHour, startMin := parseHHMM(n.policy.QuietStart)
	endHour, endMin := parseHHMM(n.policy.QuietEnd)

	local := n.cal.In(t)
	timeMinutes := local.Hour()*60 + local.Minute()
	startMinutes := startHour*60 + startMin
	endMinutes := endHour*60 + endMin

	if startMinutes == endMinutes {
		return false
	}
	if startMinutes > endMinutes {
		// Wraps midnight: e.g., 23:00 to 07:00
		return timeMinutes >= startMinutes || timeMinutes < endMinutes
	}
	return timeMinutes >= startMinutes && timeMinutes < endMinutes
}

// parseHHMM parses "HH:MM" into hour and minute.
func parseHHMM(s string) (int, int) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h, m
}
