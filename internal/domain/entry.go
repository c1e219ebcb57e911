// Package domain holds the pure moodtrail types: entries, derived stats,
// achievement rules, levels and notifications. No infrastructure imports.
package domain

import (
	"slices"
	"strings"
	"time"
)

// ─── Emotion Vocabulary ─────────────────────────────────────────────────────

// Emotion names accepted by the recording flow.
const (
	EmotionHappy    = "happy"
	EmotionExcited  = "excited"
	EmotionGrateful = "grateful"
	EmotionCalm     = "calm"
	EmotionWarm     = "warm"
	EmotionSad      = "sad"
	EmotionAngry    = "angry"
	EmotionAnxious  = "anxious"
	EmotionTired    = "tired"
	EmotionConfused = "confused"
)

// Emotions is the fixed vocabulary, in display order.
var Emotions = []string{
	EmotionHappy, EmotionExcited, EmotionGrateful, EmotionCalm, EmotionWarm,
	EmotionSad, EmotionAngry, EmotionAnxious, EmotionTired, EmotionConfused,
}

// PositiveEmotions is the set counted by positive-ratio rules.
var PositiveEmotions = []string{
	EmotionHappy, EmotionExcited, EmotionGrateful, EmotionCalm, EmotionWarm,
}

// IsKnownEmotion reports whether name belongs to the vocabulary.
func IsKnownEmotion(name string) bool {
	return slices.Contains(Emotions, name)
}

// IsPositive reports whether name is in the positive set.
func IsPositive(name string) bool {
	return slices.Contains(PositiveEmotions, name)
}

// Intensity bounds for a single entry.
const (
	MinIntensity = 1
	MaxIntensity = 10
)

// ─── Entries ────────────────────────────────────────────────────────────────

// EmotionEntry is one user-submitted record. Immutable once created.
type EmotionEntry struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id,omitempty"`
	Emotion     string   `json:"emotion"`
	Intensity   int      `json:"intensity"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
	Timestamp   int64    `json:"timestamp"` // epoch milliseconds
}

// Time returns the entry timestamp as a time.Time.
// The boolean is false when the timestamp is missing.
func (e EmotionEntry) Time() (time.Time, bool) {
	if e.Timestamp <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(e.Timestamp), true
}

// ValidIntensity reports whether the intensity lies in [1,10].
func (e EmotionEntry) ValidIntensity() bool {
	return e.Intensity >= MinIntensity && e.Intensity <= MaxIntensity
}

// EntryDraft is the input of the recording flow.
type EntryDraft struct {
	Emotion     string   `json:"emotion"`
	Intensity   int      `json:"intensity"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
	Timestamp   int64    `json:"timestamp,omitempty"` // 0 = now
}

// NormalizeTags trims, drops empties and de-duplicates tags.
// Order of first occurrence is kept.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ─── Calendar Buckets ───────────────────────────────────────────────────────

// TimeBucket names a time-of-day window used by time-pattern rules.
type TimeBucket string

const (
	BucketNight     TimeBucket = "night"     // [23:00, 06:00)
	BucketMorning   TimeBucket = "morning"   // [05:00, 08:00)
	BucketAfternoon TimeBucket = "afternoon" // [12:00, 18:00)
	BucketEvening   TimeBucket = "evening"   // [18:00, 22:00)
)

// Contains reports whether the local hour falls inside the bucket.
// Night and morning overlap between 05:00 and 06:00.
func (b TimeBucket) Contains(hour int) bool {
	switch b {
	case BucketNight:
		return hour >= 23 || hour < 6
	case BucketMorning:
		return hour >= 5 && hour < 8
	case BucketAfternoon:
		return hour >= 12 && hour < 18
	case BucketEvening:
		return hour >= 18 && hour < 22
	default:
		return false
	}
}

// Season is a meteorological season.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// SeasonOf maps a month to its meteorological season.
func SeasonOf(m time.Month) Season {
	switch m {
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	case time.September, time.October, time.November:
		return SeasonAutumn
	default:
		return SeasonWinter
	}
}
