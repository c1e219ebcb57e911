package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/moodtrail/moodtrail/internal/domain"
)

// ─── Engagement Key-Value ───────────────────────────────────────────────────

// Counter keys in the engagement table.
const (
	KeyPostCount    = "post_count"
	KeyCommentCount = "comment_count"
	KeyMaxPostLikes = "max_post_likes"
)

// SetEngagement stores an engagement key-value pair for a user.
func (d *DB) SetEngagement(ctx context.Context, userID, key, value string) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO engagement (user_id, key, value) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, key) DO UPDATE SET value=excluded.value`,
		userID, key, value,
	)
	return err
}

// GetEngagement retrieves an engagement value by key.
// Returns "" if key not found.
func (d *DB) GetEngagement(ctx context.Context, userID, key string) (string, error) {
	var value string
	err := d.db.QueryRowContext(ctx,
		`SELECT value FROM engagement WHERE user_id = ? AND key = ?`, userID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// GetCounters loads the community counters. Missing keys read as 0.
func (d *DB) GetCounters(ctx context.Context, userID string) (domain.EngagementCounters, error) {
	var c domain.EngagementCounters
	for key, dst := range map[string]*int{
		KeyPostCount:    &c.PostCount,
		KeyCommentCount: &c.CommentCount,
		KeyMaxPostLikes: &c.MaxPostLikes,
	} {
		raw, err := d.GetEngagement(ctx, userID, key)
		if err != nil {
			return c, fmt.Errorf("get %s: %w", key, err)
		}
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			continue // corrupt value reads as 0
		}
		*dst = n
	}
	return c.Normalized(), nil
}

// SetCounters stores all three counters in one transaction.
func (d *DB) SetCounters(ctx context.Context, userID string, c domain.EngagementCounters) error {
	c = c.Normalized()
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, kv := range []struct {
		key   string
		value int
	}{
		{KeyPostCount, c.PostCount},
		{KeyCommentCount, c.CommentCount},
		{KeyMaxPostLikes, c.MaxPostLikes},
	} {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO engagement (user_id, key, value) VALUES (?, ?, ?)
			 ON CONFLICT(user_id, key) DO UPDATE SET value=excluded.value`,
			userID, kv.key, strconv.Itoa(kv.value),
		); err != nil {
			return fmt.Errorf("set %s: %w", kv.key, err)
		}
	}
	return tx.Commit()
}

// ─── Achievements ───────────────────────────────────────────────────────────

// UnlockAchievement records an achievement as unlocked.
// Returns false if already unlocked (idempotent).
func (d *DB) UnlockAchievement(ctx context.Context, userID, id string, at time.Time) (bool, error) {
	result, err := d.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO achievements (user_id, id, unlocked_at, notified) VALUES (?, ?, ?, 0)`,
		userID, id, at.UnixMilli(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil // true = newly unlocked
}

// ListUnlockedAchievements returns the user's unlocked achievements in
// unlock order. Only ID, UnlockedAt and Notified are populated.
func (d *DB) ListUnlockedAchievements(ctx context.Context, userID string) ([]domain.UnlockedAchievement, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, unlocked_at, notified FROM achievements
		 WHERE user_id = ? ORDER BY unlocked_at ASC, id ASC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var achievements []domain.UnlockedAchievement
	for rows.Next() {
		var a domain.UnlockedAchievement
		var unlockedAt int64
		if err := rows.Scan(&a.ID, &unlockedAt, &a.Notified); err != nil {
			return nil, err
		}
		a.UnlockedAt = fromMillis(unlockedAt)
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

// MarkAchievementNotified flags an unlock as announced.
func (d *DB) MarkAchievementNotified(ctx context.Context, userID, id string) error {
	_, err := d.db.ExecContext(ctx,
		`UPDATE achievements SET notified = 1 WHERE user_id = ? AND id = ?`, userID, id,
	)
	return err
}

// ─── Notifications ──────────────────────────────────────────────────────────

// InsertNotification creates a new notification.
func (d *DB) InsertNotification(ctx context.Context, n domain.Notification) (int64, error) {
	result, err := d.db.ExecContext(ctx,
		`INSERT INTO notifications (user_id, type, title, body, created_at, shown)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		n.UserID, string(n.Type), n.Title, n.Body, n.CreatedAt.UnixMilli(), n.Shown,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// NotificationCountSince counts the user's notifications created at or
// after since.
func (d *DB) NotificationCountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND created_at >= ?`,
		userID, since.UnixMilli(),
	).Scan(&count)
	return count, err
}

// ListPendingNotifications returns unshown notifications, oldest first.
// limit <= 0 means all.
func (d *DB) ListPendingNotifications(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, user_id, type, title, body, created_at, shown
		 FROM notifications WHERE user_id = ? AND shown = 0
		 ORDER BY created_at ASC, id ASC LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifs []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifs = append(notifs, n)
	}
	return notifs, rows.Err()
}

// MarkNotificationShown marks a notification as shown.
// Returns domain.ErrNotificationNotFound for an unknown id.
func (d *DB) MarkNotificationShown(ctx context.Context, userID string, id int64) error {
	result, err := d.db.ExecContext(ctx,
		`UPDATE notifications SET shown = 1 WHERE user_id = ? AND id = ?`, userID, id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func scanNotification(s scanner) (domain.Notification, error) {
	var n domain.Notification
	var createdAt int64
	err := s.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Body, &createdAt, &n.Shown)
	if err != nil {
		return n, err
	}
	n.CreatedAt = fromMillis(createdAt)
	return n, nil
}
