package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/moodtrail/moodtrail/internal/app/engagement"
	"github.com/moodtrail/moodtrail/internal/domain"
)

// Recent activity window.
const (
	RecentDays  = 7
	RecentLimit = 5
)

// RecentActivity is the last week of the log.
type RecentActivity struct {
	Entries     []domain.EmotionEntry `json:"entries"`      // newest first, at most RecentLimit
	WeeklyCount int                   `json:"weekly_count"` // entries in the last RecentDays days
}

// Summary is the one-call dashboard view of a user.
type Summary struct {
	Stats            domain.UserStats             `json:"stats"`
	Recent           RecentActivity               `json:"recent"`
	Level            domain.LevelInfo             `json:"level"`
	TotalExperience  int64                        `json:"total_experience"`
	AchievementStats domain.AchievementStats      `json:"achievement_stats"`
	Unlocked         []domain.UnlockedAchievement `json:"unlocked"`
	Recommended      []domain.Recommendation      `json:"recommended"`
	GeneratedAt      time.Time                    `json:"generated_at"`
}

// Summary builds the dashboard view. Read-only: nothing is unlocked here.
func (s *Service) Summary(ctx context.Context, userID string) (Summary, error) {
	in, err := s.load(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	result := s.engine.Evaluate(in)

	since := in.Now.AddDate(0, 0, -RecentDays)
	recent, err := s.store.ListEntriesSince(ctx, userID, since)
	if err != nil {
		return Summary{}, fmt.Errorf("recent entries: %w", err)
	}
	activity := RecentActivity{WeeklyCount: len(recent), Entries: recent}
	if len(activity.Entries) > RecentLimit {
		activity.Entries = activity.Entries[:RecentLimit]
	}

	// Only persisted unlocks belong in the summary.
	catalog := s.engine.Catalog()
	persisted := catalog.Hydrate(in.Unlocked)
	exp := engagement.TotalExperience(persisted)

	return Summary{
		Stats:            result.Stats,
		Recent:           activity,
		Level:            catalog.LevelForExp(exp),
		TotalExperience:  exp,
		AchievementStats: catalog.Stats(engagement.UnlockedIDs(persisted)),
		Unlocked:         persisted,
		Recommended:      result.Recommended,
		GeneratedAt:      in.Now,
	}, nil
}
