package engagement

import (
	"math"
	"time"

	"github.com/moodtrail/moodtrail/internal/domain"
)

// ComputeStats derives UserStats from the full current entry log.
// Deterministic and side-effect free; now decides what "today" is.
//
// Entries without a timestamp count toward totals, distribution and
// intensity but not toward day-based metrics. Intensities outside [1,10]
// contribute 0 to the sum.
func ComputeStats(entries []domain.EmotionEntry, counters domain.EngagementCounters, cal Calendar, now time.Time) domain.UserStats {
	counters = counters.Normalized()
	stats := domain.UserStats{
		EmotionDistribution: make(map[string]int),
		PostCount:           counters.PostCount,
		CommentCount:        counters.CommentCount,
		MaxPostLikes:        counters.MaxPostLikes,
	}
	if len(entries) == 0 {
		return stats
	}

	var intensitySum int64
	for _, e := range entries {
		stats.TotalRecords++
		stats.EmotionDistribution[e.Emotion]++
		if e.ValidIntensity() {
			intensitySum += int64(e.Intensity)
		}
		if e.Timestamp > 0 {
			if stats.FirstRecordAt == 0 || e.Timestamp < stats.FirstRecordAt {
				stats.FirstRecordAt = e.Timestamp
			}
			if e.Timestamp > stats.LastRecordAt {
				stats.LastRecordAt = e.Timestamp
			}
		}
	}

	days := activeDays(cal, entries, nil)
	stats.ActiveDays = len(days)
	stats.LongestStreak = longestRun(days)
	stats.CurrentStreak = currentRun(days, cal.DayNumber(now))

	stats.AverageIntensity = round1(float64(intensitySum) / float64(stats.TotalRecords))
	stats.DominantEmotion, stats.DominantPercentage = dominant(stats.EmotionDistribution, stats.TotalRecords)
	return stats
}

// DistinctEmotions counts the distinct emotion names in the log.
func DistinctEmotions(entries []domain.EmotionEntry) int {
	seen := make(map[string]bool)
	for _, e := range entries {
		seen[e.Emotion] = true
	}
	return len(seen)
}

// dominant returns the most frequent emotion and its share in percent.
// Ties go to the alphabetically first name.
func dominant(dist map[string]int, total int) (string, float64) {
	var name string
	best := 0
	for emotion, n := range dist {
		if n > best || (n == best && emotion < name) {
			name, best = emotion, n
		}
	}
	if total == 0 || best == 0 {
		return "", 0
	}
	return name, round1(float64(best) / float64(total) * 100)
}

// round1 rounds to one decimal place. Non-finite input yields 0.
func round1(v float64) float64 {
	v = finite(v)
	return math.Round(v*10) / 10
}

// finite maps NaN and ±Inf to 0.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
