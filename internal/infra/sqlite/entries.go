package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/moodtrail/moodtrail/internal/domain"
)

// ─── Emotion Entries ────────────────────────────────────────────────────────

const entryColumns = `id, user_id, emotion, intensity, tags, description, timestamp`

// InsertEntry appends an entry to the user's log.
func (d *DB) InsertEntry(ctx context.Context, e domain.EmotionEntry) error {
	tags, err := json.Marshal(nonNilTags(e.Tags))
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	_, err = d.db.ExecContext(ctx,
		`INSERT INTO entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Emotion, e.Intensity, string(tags), e.Description, e.Timestamp,
	)
	return err
}

// DeleteEntry removes one entry. Returns domain.ErrEntryNotFound when the
// user has no entry with that id.
func (d *DB) DeleteEntry(ctx context.Context, userID, id string) error {
	result, err := d.db.ExecContext(ctx,
		`DELETE FROM entries WHERE user_id = ? AND id = ?`, userID, id,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}

// ListEntries returns the user's entries newest first. limit <= 0 means all.
func (d *DB) ListEntries(ctx context.Context, userID string, limit int) ([]domain.EmotionEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	return d.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE user_id = ?
		 ORDER BY timestamp DESC, id DESC LIMIT ?`, userID, limit,
	)
}

// ListEntriesSince returns entries at or after since, newest first.
func (d *DB) ListEntriesSince(ctx context.Context, userID string, since time.Time) ([]domain.EmotionEntry, error) {
	return d.queryEntries(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE user_id = ? AND timestamp >= ?
		 ORDER BY timestamp DESC, id DESC`, userID, since.UnixMilli(),
	)
}

// EntryCount returns how many entries the user has.
func (d *DB) EntryCount(ctx context.Context, userID string) (int, error) {
	var count int
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM entries WHERE user_id = ?`, userID,
	).Scan(&count)
	return count, err
}

func (d *DB) queryEntries(ctx context.Context, query string, args ...any) ([]domain.EmotionEntry, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.EmotionEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanEntry(s scanner) (domain.EmotionEntry, error) {
	var e domain.EmotionEntry
	var tags string
	if err := s.Scan(&e.ID, &e.UserID, &e.Emotion, &e.Intensity, &tags, &e.Description, &e.Timestamp); err != nil {
		return e, err
	}
	if tags != "" {
		if err := json.Unmarshal([]byte(tags), &e.Tags); err != nil {
			return e, fmt.Errorf("decode tags of %s: %w", e.ID, err)
		}
	}
	if len(e.Tags) == 0 {
		e.Tags = nil
	}
	return e, nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
