package engagement

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/moodtrail/moodtrail/internal/domain"
)

// UnlockedIDs indexes an unlocked list by achievement id.
func UnlockedIDs(unlocked []domain.UnlockedAchievement) map[string]bool {
	ids := make(map[string]bool, len(unlocked))
	for _, u := range unlocked {
		ids[u.ID] = true
	}
	return ids
}

// Evaluate returns the achievements whose condition now holds and whose id
// is not in unlocked, in catalog order. It never returns an id twice and
// never returns one already unlocked, so feeding the result back into
// unlocked makes the next call return nothing new.
func (c Catalog) Evaluate(stats domain.UserStats, entries []domain.EmotionEntry, unlocked map[string]bool, cal Calendar, now time.Time) []domain.UnlockedAchievement {
	in := ruleInput{stats: stats, entries: entries, cal: cal, now: now}
	var newly []domain.UnlockedAchievement
	for _, a := range c.achievements {
		if unlocked[a.ID] {
			continue
		}
		if satisfied(a.Condition, in) {
			newly = append(newly, domain.UnlockedAchievement{Achievement: a, UnlockedAt: now})
		}
	}
	return newly
}

// Hydrate fills catalog metadata into stored unlock records. Records for
// ids no longer in the catalog keep their id and carry no reward.
func (c Catalog) Hydrate(stored []domain.UnlockedAchievement) []domain.UnlockedAchievement {
	out := make([]domain.UnlockedAchievement, 0, len(stored))
	for _, u := range stored {
		if a, ok := c.Lookup(u.ID); ok {
			u.Achievement = a
		}
		out = append(out, u)
	}
	return out
}

// Stats aggregates catalog progress. Ids outside the catalog are ignored,
// so Unlocked + Locked == Total holds overall and per category.
func (c Catalog) Stats(unlocked map[string]bool) domain.AchievementStats {
	stats := domain.AchievementStats{
		Total:      len(c.achievements),
		Categories: make(map[domain.AchievementCategory]domain.CategoryStats),
	}
	for _, a := range c.achievements {
		cat := stats.Categories[a.Category]
		cat.Total++
		if unlocked[a.ID] {
			cat.Unlocked++
			stats.Unlocked++
		} else {
			cat.Locked++
			stats.Locked++
		}
		stats.Categories[a.Category] = cat
	}
	if stats.Total > 0 {
		stats.ProgressPercent = int(math.Round(float64(stats.Unlocked) / float64(stats.Total) * 100))
	}
	return stats
}

// ─── Store-backed Service ───────────────────────────────────────────────────

// AchievementService persists unlocks for one catalog.
type AchievementService struct {
	store   domain.AchievementStore
	catalog Catalog
}

// NewAchievementService creates an achievement service.
func NewAchievementService(store domain.AchievementStore, catalog Catalog) *AchievementService {
	return &AchievementService{store: store, catalog: catalog}
}

// Unlock persists candidates and returns the ones this call inserted.
// Concurrent callers may race on the same id; the store's insert-or-ignore
// keeps the set a union and only one caller sees the id as new.
func (a *AchievementService) Unlock(ctx context.Context, userID string, candidates []domain.UnlockedAchievement) ([]domain.UnlockedAchievement, error) {
	var inserted []domain.UnlockedAchievement
	for _, c := range candidates {
		isNew, err := a.store.UnlockAchievement(ctx, userID, c.ID, c.UnlockedAt)
		if err != nil {
			return inserted, fmt.Errorf("unlock %s: %w", c.ID, err)
		}
		if isNew {
			inserted = append(inserted, c)
		}
	}
	return inserted, nil
}

// ListUnlocked returns every achievement the user has earned, with
// catalog metadata attached.
func (a *AchievementService) ListUnlocked(ctx context.Context, userID string) ([]domain.UnlockedAchievement, error) {
	stored, err := a.store.ListUnlockedAchievements(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list unlocked: %w", err)
	}
	return a.catalog.Hydrate(stored), nil
}

// Catalog returns the catalog the service evaluates against.
func (a *AchievementService) Catalog() Catalog {
	return a.catalog
}
