package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodtrail/moodtrail/internal/domain"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	dir := t.TempDir()
	db, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var base = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func entryAt(id, user, emotion string, ts time.Time) domain.EmotionEntry {
	return domain.EmotionEntry{
		ID: id, UserID: user, Emotion: emotion, Intensity: 5,
		Timestamp: ts.UnixMilli(),
	}
}

// ─── Database Lifecycle ─────────────────────────────────────────────────────

func TestOpen_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(dir)
	require.NoError(t, err)
	defer db.Close()

	_, err = os.Stat(filepath.Join(dir, DBFile))
	assert.NoError(t, err, "database file should exist")
}

func TestOpen_Ping(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Ping(context.Background()))
}

func TestOpen_MigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()
	db1, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, db1.Close())

	db2, err := Open(dir)
	require.NoError(t, err)
	defer db2.Close()
}

// ─── Entries ────────────────────────────────────────────────────────────────

func TestEntries_InsertAndList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	e := entryAt("e1", "alice", domain.EmotionHappy, base)
	e.Tags = []string{"work", "sun"}
	e.Description = "good day"
	require.NoError(t, db.InsertEntry(ctx, e))
	require.NoError(t, db.InsertEntry(ctx, entryAt("e2", "alice", domain.EmotionSad, base.Add(time.Hour))))
	require.NoError(t, db.InsertEntry(ctx, entryAt("e3", "bob", domain.EmotionCalm, base)))

	got, err := db.ListEntries(ctx, "alice", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e2", got[0].ID, "newest first")
	assert.Equal(t, e, got[1])

	limited, err := db.ListEntries(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	n, err := db.EntryCount(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestEntries_EmptyTagsReadAsNil(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.InsertEntry(ctx, entryAt("e1", "alice", domain.EmotionHappy, base)))
	got, err := db.ListEntries(ctx, "alice", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Tags)
}

func TestEntries_Since(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for i := range 5 {
		id := string(rune('a' + i))
		require.NoError(t, db.InsertEntry(ctx, entryAt(id, "alice", domain.EmotionHappy, base.AddDate(0, 0, i))))
	}

	got, err := db.ListEntriesSince(ctx, "alice", base.AddDate(0, 0, 3))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e", got[0].ID)
	assert.Equal(t, "d", got[1].ID)
}

func TestEntries_Delete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.InsertEntry(ctx, entryAt("e1", "alice", domain.EmotionHappy, base)))

	err := db.DeleteEntry(ctx, "bob", "e1")
	assert.ErrorIs(t, err, domain.ErrEntryNotFound, "other users cannot delete")

	require.NoError(t, db.DeleteEntry(ctx, "alice", "e1"))
	assert.ErrorIs(t, db.DeleteEntry(ctx, "alice", "e1"), domain.ErrEntryNotFound)
}

// ─── Engagement Key-Value ───────────────────────────────────────────────────

func TestEngagement_SetGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	v, err := db.GetEngagement(ctx, "alice", "missing")
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, db.SetEngagement(ctx, "alice", "k", "1"))
	require.NoError(t, db.SetEngagement(ctx, "alice", "k", "2"))
	v, err = db.GetEngagement(ctx, "alice", "k")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}

func TestCounters_RoundTripAndDefaults(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c, err := db.GetCounters(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.EngagementCounters{}, c, "absent counters are zero")

	want := domain.EngagementCounters{PostCount: 3, CommentCount: 21, MaxPostLikes: 12}
	require.NoError(t, db.SetCounters(ctx, "alice", want))
	got, err := db.GetCounters(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, db.SetCounters(ctx, "alice", domain.EngagementCounters{PostCount: -4}))
	got, err = db.GetCounters(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, got.PostCount, "negative counters are clamped")
}

func TestCounters_CorruptValueReadsZero(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SetEngagement(ctx, "alice", KeyCommentCount, "lots"))
	got, err := db.GetCounters(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, got.CommentCount)
}

// ─── Achievements ───────────────────────────────────────────────────────────

func TestAchievements_UnlockIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	isNew, err := db.UnlockAchievement(ctx, "alice", "first_record", base)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = db.UnlockAchievement(ctx, "alice", "first_record", base.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, isNew, "second unlock is ignored")

	isNew, err = db.UnlockAchievement(ctx, "bob", "first_record", base)
	require.NoError(t, err)
	assert.True(t, isNew, "unlocks are per user")

	list, err := db.ListUnlockedAchievements(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "first_record", list[0].ID)
	assert.True(t, list[0].UnlockedAt.Equal(base), "first unlock time is kept")
}

func TestAchievements_NotifiedFlag(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	_, err := db.UnlockAchievement(ctx, "alice", "ten_records", base)
	require.NoError(t, err)

	require.NoError(t, db.MarkAchievementNotified(ctx, "alice", "ten_records"))
	list, err := db.ListUnlockedAchievements(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Notified)
}

// ─── Notifications ──────────────────────────────────────────────────────────

func TestNotifications_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, err := db.InsertNotification(ctx, domain.Notification{
		UserID: "alice", Type: domain.NotifyAchievement,
		Title: "Unlocked", Body: "First Entry", CreatedAt: base,
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	count, err := db.NotificationCountSince(ctx, "alice", base.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = db.NotificationCountSince(ctx, "bob", base.Add(-time.Minute))
	require.NoError(t, err)
	assert.Zero(t, count)

	pending, err := db.ListPendingNotifications(ctx, "alice", 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, domain.NotifyAchievement, pending[0].Type)

	require.NoError(t, db.MarkNotificationShown(ctx, "alice", id))
	pending, err = db.ListPendingNotifications(ctx, "alice", 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	assert.ErrorIs(t, db.MarkNotificationShown(ctx, "alice", id+100), domain.ErrNotificationNotFound)
	assert.ErrorIs(t, db.MarkNotificationShown(ctx, "bob", id), domain.ErrNotificationNotFound)
}
