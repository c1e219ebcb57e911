package engagement

import (
	"time"

	"github.com/moodtrail/moodtrail/internal/domain"
)

// ruleInput is everything a condition may look at.
type ruleInput struct {
	stats   domain.UserStats
	entries []domain.EmotionEntry
	cal     Calendar
	now     time.Time
}

// satisfied evaluates one condition. Unknown or nil conditions are false.
func satisfied(c domain.Condition, in ruleInput) bool {
	switch c := c.(type) {
	case domain.RecordCount:
		return in.stats.TotalRecords >= c.N
	case domain.Streak:
		return in.stats.CurrentStreak >= c.Days
	case domain.EmotionTypes:
		return DistinctEmotions(in.entries) >= c.N
	case domain.PositiveRatio:
		ratio, ok := positiveRatio(in, c.PeriodDays)
		return ok && ratio >= c.Ratio
	case domain.EmotionStreak:
		return emotionStreak(in, c.Emotion) >= c.Days
	case domain.PostCount:
		return in.stats.PostCount >= c.N
	case domain.CommentCount:
		return in.stats.CommentCount >= c.N
	case domain.PostLikes:
		return in.stats.MaxPostLikes >= c.N
	case domain.TimePattern:
		return timePatternCount(in, c.Bucket) >= c.N
	case domain.SeasonalRecord:
		return seasonCount(in) >= c.N
	default:
		return false
	}
}

// recentEntries returns entries at or after now minus periodDays.
func recentEntries(in ruleInput, periodDays int) []domain.EmotionEntry {
	cutoff := in.cal.In(in.now).AddDate(0, 0, -periodDays)
	var out []domain.EmotionEntry
	for _, e := range in.entries {
		t, ok := e.Time()
		if !ok || t.Before(cutoff) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// positiveRatio is the share of positive entries in the period.
// ok is false when the period holds no entries.
func positiveRatio(in ruleInput, periodDays int) (ratio float64, ok bool) {
	recent := recentEntries(in, periodDays)
	if len(recent) == 0 {
		return 0, false
	}
	positive := 0
	for _, e := range recent {
		if domain.IsPositive(e.Emotion) {
			positive++
		}
	}
	return finite(float64(positive) / float64(len(recent))), true
}

// emotionStreak is the longest run of consecutive days that each contain
// the emotion. Other emotions on the same day do not matter.
func emotionStreak(in ruleInput, emotion string) int {
	days := activeDays(in.cal, in.entries, func(e domain.EmotionEntry) bool {
		return e.Emotion == emotion
	})
	return longestRun(days)
}

// timePatternCount counts entries whose local hour falls in the bucket.
func timePatternCount(in ruleInput, bucket domain.TimeBucket) int {
	n := 0
	for _, e := range in.entries {
		t, ok := e.Time()
		if !ok {
			continue
		}
		if bucket.Contains(in.cal.In(t).Hour()) {
			n++
		}
	}
	return n
}

// seasonCount counts distinct meteorological seasons in the log.
func seasonCount(in ruleInput) int {
	seen := make(map[domain.Season]bool, 4)
	for _, e := range in.entries {
		t, ok := e.Time()
		if !ok {
			continue
		}
		seen[domain.SeasonOf(in.cal.In(t).Month())] = true
	}
	return len(seen)
}
