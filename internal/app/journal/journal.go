// Package journal is the recording flow around the engagement engine.
// Every write to the entry log or the community counters is followed by a
// refresh that persists new unlocks and raises notifications.
package journal

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/moodtrail/moodtrail/internal/app/engagement"
	"github.com/moodtrail/moodtrail/internal/domain"
	"github.com/moodtrail/moodtrail/internal/infra/metrics"
)

// Store is the persistence the journal needs.
type Store interface {
	domain.EntryStore
	domain.AchievementStore
	domain.CounterStore
	domain.NotificationStore
}

// Service records entries and keeps achievements current.
type Service struct {
	store         Store
	engine        *engagement.Engine
	achievements  *engagement.AchievementService
	notifications *engagement.NotificationService
	log           *zap.Logger
	now           func() time.Time

	locks sync.Map // userID -> *sync.Mutex
}

// Options configures a Service. Zero values select defaults.
type Options struct {
	Policy domain.NotificationPolicy // zero = domain.DefaultNotificationPolicy()
	Logger *zap.Logger               // nil = zap.NewNop()
	Clock  func() time.Time          // nil = time.Now
}

// NewService wires a journal over a store and an engine.
func NewService(store Store, engine *engagement.Engine, opts Options) *Service {
	if opts.Policy == (domain.NotificationPolicy{}) {
		opts.Policy = domain.DefaultNotificationPolicy()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Service{
		store:         store,
		engine:        engine,
		achievements:  engagement.NewAchievementService(store, engine.Catalog()),
		notifications: engagement.NewNotificationServiceWithPolicy(store, engine.Calendar(), opts.Policy),
		log:           opts.Logger.Named("journal"),
		now:           opts.Clock,
	}
}

// Engine returns the engine the service evaluates with.
func (s *Service) Engine() *engagement.Engine { return s.engine }

// Notifications returns the notification service.
func (s *Service) Notifications() *engagement.NotificationService { return s.notifications }

// ─── Writes ─────────────────────────────────────────────────────────────────

// Record validates and persists a draft, then refreshes the engine.
func (s *Service) Record(ctx context.Context, userID string, draft domain.EntryDraft) (domain.EmotionEntry, engagement.Result, error) {
	now := s.now()
	entry, err := Validate(userID, draft, now)
	if err != nil {
		metrics.EntriesRejected.WithLabelValues(rejectReason(err)).Inc()
		return domain.EmotionEntry{}, engagement.Result{}, err
	}
	entry.ID = uuid.NewString()

	if err := s.store.InsertEntry(ctx, entry); err != nil {
		return domain.EmotionEntry{}, engagement.Result{}, fmt.Errorf("insert entry: %w", err)
	}
	metrics.EntriesRecorded.WithLabelValues(entry.Emotion).Inc()
	s.log.Info("entry recorded",
		zap.String("user_id", userID),
		zap.String("entry_id", entry.ID),
		zap.String("emotion", entry.Emotion),
		zap.Int("intensity", entry.Intensity),
	)

	result, err := s.Refresh(ctx, userID)
	if err != nil {
		return entry, engagement.Result{}, err
	}
	return entry, result, nil
}

// Delete removes an entry and refreshes. Unlocked achievements stay
// unlocked.
func (s *Service) Delete(ctx context.Context, userID, id string) (engagement.Result, error) {
	if userID == "" {
		return engagement.Result{}, domain.ErrMissingUser
	}
	if err := s.store.DeleteEntry(ctx, userID, id); err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return engagement.Result{}, err
		}
		return engagement.Result{}, fmt.Errorf("delete entry: %w", err)
	}
	metrics.EntriesDeleted.Inc()
	s.log.Info("entry deleted", zap.String("user_id", userID), zap.String("entry_id", id))
	return s.Refresh(ctx, userID)
}

// SetCounters stores the community counters and refreshes.
func (s *Service) SetCounters(ctx context.Context, userID string, c domain.EngagementCounters) (engagement.Result, error) {
	if userID == "" {
		return engagement.Result{}, domain.ErrMissingUser
	}
	if err := s.store.SetCounters(ctx, userID, c.Normalized()); err != nil {
		return engagement.Result{}, fmt.Errorf("set counters: %w", err)
	}
	return s.Refresh(ctx, userID)
}

// ─── Reads ──────────────────────────────────────────────────────────────────

// List returns the user's entries, newest first. limit <= 0 means all.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]domain.EmotionEntry, error) {
	if userID == "" {
		return nil, domain.ErrMissingUser
	}
	entries, err := s.store.ListEntries(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// Evaluate runs the engine over the stored state without persisting
// anything.
func (s *Service) Evaluate(ctx context.Context, userID string) (engagement.Result, error) {
	in, err := s.load(ctx, userID)
	if err != nil {
		return engagement.Result{}, err
	}
	return s.engine.Evaluate(in), nil
}

// ─── Refresh ────────────────────────────────────────────────────────────────

// Refresh loads the log, counters and unlocked set, runs the engine,
// persists new unlocks and raises notifications. Refreshes of one user are
// serialized in-process; across processes the store's insert-or-ignore
// keeps the unlocked set a union.
func (s *Service) Refresh(ctx context.Context, userID string) (engagement.Result, error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	start := time.Now()
	defer func() { metrics.RefreshDuration.Observe(time.Since(start).Seconds()) }()

	in, err := s.load(ctx, userID)
	if err != nil {
		return engagement.Result{}, err
	}
	result := s.engine.Evaluate(in)
	if len(result.NewlyUnlocked) == 0 {
		return result, nil
	}

	inserted, err := s.achievements.Unlock(ctx, userID, result.NewlyUnlocked)
	if err != nil {
		return engagement.Result{}, fmt.Errorf("persist unlocks: %w", err)
	}
	if len(inserted) < len(result.NewlyUnlocked) {
		// Another writer persisted part of the batch first.
		result.NewlyUnlocked = inserted
		result.LeveledUp = result.LeveledUp && len(inserted) > 0
	}

	for _, u := range inserted {
		metrics.AchievementsUnlocked.WithLabelValues(string(u.Category)).Inc()
		s.log.Info("achievement unlocked",
			zap.String("user_id", userID),
			zap.String("achievement", u.ID),
			zap.Int64("experience", u.Reward.Experience),
		)
		if s.notify(ctx, engagement.AchievementNotification(userID, u, in.Now)) {
			if err := s.store.MarkAchievementNotified(ctx, userID, u.ID); err != nil {
				s.log.Warn("mark notified", zap.String("user_id", userID), zap.Error(err))
			}
		}
	}
	if result.LeveledUp {
		metrics.LevelUps.WithLabelValues(strconv.Itoa(result.Level.Level)).Inc()
		s.log.Info("level up",
			zap.String("user_id", userID),
			zap.Int("from", result.PreviousLevel.Level),
			zap.Int("to", result.Level.Level),
		)
		s.notify(ctx, engagement.LevelUpNotification(userID, result.Level, in.Now))
	}
	return result, nil
}

// notify stores n if policy allows. Unlocks are already durable, so a
// failed notification is logged and dropped.
func (s *Service) notify(ctx context.Context, n domain.Notification) bool {
	id, err := s.notifications.Create(ctx, n)
	if err != nil {
		s.log.Warn("create notification", zap.String("user_id", n.UserID), zap.Error(err))
		return false
	}
	if id == 0 {
		return false
	}
	metrics.NotificationsSent.WithLabelValues(string(n.Type)).Inc()
	return true
}

func (s *Service) load(ctx context.Context, userID string) (engagement.Input, error) {
	if userID == "" {
		return engagement.Input{}, domain.ErrMissingUser
	}
	entries, err := s.store.ListEntries(ctx, userID, 0)
	if err != nil {
		return engagement.Input{}, fmt.Errorf("load entries: %w", err)
	}
	counters, err := s.store.GetCounters(ctx, userID)
	if err != nil {
		return engagement.Input{}, fmt.Errorf("load counters: %w", err)
	}
	unlocked, err := s.store.ListUnlockedAchievements(ctx, userID)
	if err != nil {
		return engagement.Input{}, fmt.Errorf("load unlocked: %w", err)
	}
	return engagement.Input{
		Entries:  entries,
		Counters: counters,
		Unlocked: unlocked,
		Now:      s.now(),
	}, nil
}

func (s *Service) userLock(userID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
