// Package engagement implements the moodtrail engagement engine:
// statistics and streaks over the entry log, achievement rules, levels,
// recommendations and unlock notifications.
// Everything except the store-backed services is pure.
package engagement

import (
	"slices"

	"github.com/moodtrail/moodtrail/internal/domain"
)

// activeDays returns the sorted distinct day numbers that contain at least
// one entry accepted by keep. Entries without a timestamp are skipped.
func activeDays(cal Calendar, entries []domain.EmotionEntry, keep func(domain.EmotionEntry) bool) []int {
	seen := make(map[int]bool)
	days := make([]int, 0, len(entries))
	for _, e := range entries {
		if keep != nil && !keep(e) {
			continue
		}
		t, ok := e.Time()
		if !ok {
			continue
		}
		d := cal.DayNumber(t)
		if seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, d)
	}
	slices.Sort(days)
	return days
}

// longestRun returns the longest run of consecutive day numbers.
// days must be sorted and distinct. 0 for an empty slice.
func longestRun(days []int) int {
	if len(days) == 0 {
		return 0
	}
	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i]-days[i-1] == 1 {
			run++
			longest = max(longest, run)
		} else {
			run = 1
		}
	}
	return longest
}

// currentRun counts consecutive days ending at today. 0 when today has no
// entry; a gap stops the walk.
func currentRun(days []int, today int) int {
	idx, found := slices.BinarySearch(days, today)
	if !found {
		return 0
	}
	run := 1
	for i := idx; i > 0; i-- {
		if days[i]-days[i-1] != 1 {
			break
		}
		run++
	}
	return run
}
