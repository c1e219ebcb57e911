package domain

import "time"

// ─── Derived Stats ──────────────────────────────────────────────────────────

// UserStats is derived from the entry log on demand. Never authoritative.
// Invariants: ActiveDays <= TotalRecords, CurrentStreak <= LongestStreak.
type UserStats struct {
	TotalRecords        int            `json:"total_records"`
	ActiveDays          int            `json:"active_days"`
	CurrentStreak       int            `json:"current_streak"`
	LongestStreak       int            `json:"longest_streak"`
	EmotionDistribution map[string]int `json:"emotion_distribution"`
	AverageIntensity    float64        `json:"average_intensity"`
	DominantEmotion     string         `json:"dominant_emotion,omitempty"`
	DominantPercentage  float64        `json:"dominant_percentage"`
	FirstRecordAt       int64          `json:"first_record_at,omitempty"`
	LastRecordAt        int64          `json:"last_record_at,omitempty"`

	// Supplied by the community feed, not derived from the log.
	PostCount    int `json:"post_count"`
	CommentCount int `json:"comment_count"`
	MaxPostLikes int `json:"max_post_likes"`
}

// EngagementCounters are the community counters fed into the evaluator.
// Absent values are zero.
type EngagementCounters struct {
	PostCount    int `json:"post_count"`
	CommentCount int `json:"comment_count"`
	MaxPostLikes int `json:"max_post_likes"`
}

// Normalized clamps negative counters to zero.
func (c EngagementCounters) Normalized() EngagementCounters {
	return EngagementCounters{
		PostCount:    max(c.PostCount, 0),
		CommentCount: max(c.CommentCount, 0),
		MaxPostLikes: max(c.MaxPostLikes, 0),
	}
}

// ─── Achievement Types ──────────────────────────────────────────────────────

// AchievementCategory groups achievements by theme.
type AchievementCategory string

const (
	CatRecord      AchievementCategory = "record"
	CatConsistency AchievementCategory = "consistency"
	CatDiversity   AchievementCategory = "diversity"
	CatPositive    AchievementCategory = "positive"
	CatCommunity   AchievementCategory = "community"
	CatTime        AchievementCategory = "time"
)

// Rarity only affects display priority.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Priority orders rarities for display, higher first.
func (r Rarity) Priority() int {
	switch r {
	case RarityLegendary:
		return 5
	case RarityEpic:
		return 4
	case RarityRare:
		return 3
	case RarityUncommon:
		return 2
	case RarityCommon:
		return 1
	default:
		return 0
	}
}

// Reward is granted once when an achievement unlocks.
// Title and Badge are cosmetic.
type Reward struct {
	Experience int64  `json:"experience" toml:"experience"`
	Title      string `json:"title,omitempty" toml:"title"`
	Badge      string `json:"badge,omitempty" toml:"badge"`
}

// Achievement is an immutable catalog entry.
type Achievement struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Icon        string              `json:"icon,omitempty"`
	Category    AchievementCategory `json:"category"`
	Rarity      Rarity              `json:"rarity"`
	Condition   Condition           `json:"-"` // see ConditionParams for a serializable form
	Reward      Reward              `json:"reward"`
}

// UnlockedAchievement records when an achievement was first earned.
// Append-only per user, keyed by achievement ID.
type UnlockedAchievement struct {
	Achievement
	UnlockedAt time.Time `json:"unlocked_at"`
	Notified   bool      `json:"notified"`
}

// ─── Level Types ────────────────────────────────────────────────────────────

// LevelDefinition is one tier of the level table.
// Tables are ordered by MinExp, contiguous; the last MaxExp is effectively unbounded.
type LevelDefinition struct {
	Level  int    `json:"level" toml:"level"`
	Name   string `json:"name" toml:"name"`
	MinExp int64  `json:"min_exp" toml:"min_exp"`
	MaxExp int64  `json:"max_exp" toml:"max_exp"`
	Badge  string `json:"badge" toml:"badge"`
}

// LevelInfo is the level view for a given total experience.
type LevelInfo struct {
	LevelDefinition
	TotalExp        int64 `json:"total_exp"`
	ProgressPercent int   `json:"progress_percent"`
	ExpToNext       int64 `json:"exp_to_next"`
}

// ─── Aggregates ─────────────────────────────────────────────────────────────

// CategoryStats counts one category. Unlocked + Locked == Total.
type CategoryStats struct {
	Total    int `json:"total"`
	Unlocked int `json:"unlocked"`
	Locked   int `json:"locked"`
}

// AchievementStats aggregates catalog progress for one user.
type AchievementStats struct {
	Total           int                                   `json:"total"`
	Unlocked        int                                   `json:"unlocked"`
	Locked          int                                   `json:"locked"`
	ProgressPercent int                                   `json:"progress_percent"`
	Categories      map[AchievementCategory]CategoryStats `json:"categories"`
}

// Recommendation is a locked achievement that is close to unlocking.
type Recommendation struct {
	Achievement
	Current   int    `json:"current"`
	Target    int    `json:"target"`
	Progress  int    `json:"progress"` // 0-100
	Remaining int    `json:"remaining"`
	Hint      string `json:"hint"`
}

// ─── Notification Types ─────────────────────────────────────────────────────

// NotificationType categorizes notifications.
type NotificationType string

const (
	NotifyAchievement NotificationType = "achievement"
	NotifyLevelUp     NotificationType = "level_up"
)

// Notification is a user-facing message.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	CreatedAt time.Time        `json:"created_at"`
	Shown     bool             `json:"shown"`
}

// NotificationPolicy governs how often notifications are sent.
type NotificationPolicy struct {
	MaxPerDay  int    `json:"max_per_day"`
	QuietStart string `json:"quiet_start"` // "23:00"
	QuietEnd   string `json:"quiet_end"`   // "07:00"
}

// DefaultNotificationPolicy allows a handful of unlock messages per day
// and stays silent overnight.
func DefaultNotificationPolicy() NotificationPolicy {
	return NotificationPolicy{
		MaxPerDay:  5,
		QuietStart: "23:00",
		QuietEnd:   "07:00",
	}
}
