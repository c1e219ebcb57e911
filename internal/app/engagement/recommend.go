package engagement

import (
	"fmt"
	"math"
	"slices"

	"github.com/moodtrail/moodtrail/internal/domain"
)

// Recommendation defaults.
const (
	DefaultRecommendLimit       = 3
	DefaultMinRecommendProgress = 50
)

// RecommendOptions tunes Recommend. Zero values select the defaults.
type RecommendOptions struct {
	Limit       int // max results
	MinProgress int // inclusive, 0-100
}

func (o RecommendOptions) withDefaults() RecommendOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultRecommendLimit
	}
	if o.MinProgress <= 0 {
		o.MinProgress = DefaultMinRecommendProgress
	}
	return o
}

// Recommend lists locked achievements that are closest to unlocking.
// Only rules with a linear current/target measure take part; ties keep
// catalog order. Returns a new slice on every call.
func (c Catalog) Recommend(stats domain.UserStats, entries []domain.EmotionEntry, unlocked map[string]bool, opts RecommendOptions) []domain.Recommendation {
	opts = opts.withDefaults()
	distinct := -1

	var recs []domain.Recommendation
	for _, a := range c.achievements {
		if unlocked[a.ID] {
			continue
		}
		current, target, ok := linearProgress(a.Condition, stats, func() int {
			if distinct < 0 {
				distinct = DistinctEmotions(entries)
			}
			return distinct
		})
		if !ok {
			continue
		}
		progress := progressPercent(current, target)
		if progress < opts.MinProgress {
			continue
		}
		remaining := max(target-current, 0)
		recs = append(recs, domain.Recommendation{
			Achievement: a,
			Current:     current,
			Target:      target,
			Progress:    progress,
			Remaining:   remaining,
			Hint:        remainingHint(a.Condition, remaining),
		})
	}

	slices.SortStableFunc(recs, func(x, y domain.Recommendation) int {
		return y.Progress - x.Progress
	})
	if len(recs) > opts.Limit {
		recs = recs[:opts.Limit]
	}
	return recs
}

// linearProgress returns (current, target) for rules with a natural
// numerator and denominator.
func linearProgress(c domain.Condition, stats domain.UserStats, distinct func() int) (int, int, bool) {
	switch c := c.(type) {
	case domain.RecordCount:
		return stats.TotalRecords, c.N, true
	case domain.Streak:
		return stats.CurrentStreak, c.Days, true
	case domain.EmotionTypes:
		return distinct(), c.N, true
	case domain.PostCount:
		return stats.PostCount, c.N, true
	case domain.CommentCount:
		return stats.CommentCount, c.N, true
	default:
		return 0, 0, false
	}
}

// progressPercent is round(current/target*100) clamped to [0,100].
func progressPercent(current, target int) int {
	if target <= 0 {
		return 100
	}
	p := finite(float64(current) / float64(target) * 100)
	return int(math.Round(clamp(p, 0, 100)))
}

func remainingHint(c domain.Condition, remaining int) string {
	switch c.(type) {
	case domain.RecordCount:
		return fmt.Sprintf("record %d more times", remaining)
	case domain.Streak:
		return fmt.Sprintf("keep the streak for %d more days", remaining)
	case domain.EmotionTypes:
		return fmt.Sprintf("record %d more kinds of emotion", remaining)
	case domain.PostCount:
		return fmt.Sprintf("publish %d more posts", remaining)
	case domain.CommentCount:
		return fmt.Sprintf("write %d more comments", remaining)
	default:
		return "keep going!"
	}
}
