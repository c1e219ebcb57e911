package engagement

import (
	"fmt"

	"github.com/moodtrail/moodtrail/internal/domain"
)

// Catalog is the immutable rule and level configuration handed to the
// engine. Build one with DefaultCatalog or LoadCatalogFile.
type Catalog struct {
	achievements []domain.Achievement
	levels       []domain.LevelDefinition
	index        map[string]int
}

// NewCatalog validates and freezes a catalog. Inputs are copied.
func NewCatalog(achievements []domain.Achievement, levels []domain.LevelDefinition) (Catalog, error) {
	c := Catalog{
		achievements: append([]domain.Achievement(nil), achievements...),
		levels:       append([]domain.LevelDefinition(nil), levels...),
		index:        make(map[string]int, len(achievements)),
	}
	for i, a := range c.achievements {
		if a.ID == "" {
			return Catalog{}, fmt.Errorf("%w: achievement #%d has no id", domain.ErrInvalidCatalog, i+1)
		}
		if _, dup := c.index[a.ID]; dup {
			return Catalog{}, fmt.Errorf("%w: %w %q", domain.ErrInvalidCatalog, domain.ErrDuplicateID, a.ID)
		}
		c.index[a.ID] = i
	}
	if err := validateLevels(c.levels); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// MustCatalog is NewCatalog for static tables; it panics on invalid input.
func MustCatalog(achievements []domain.Achievement, levels []domain.LevelDefinition) Catalog {
	c, err := NewCatalog(achievements, levels)
	if err != nil {
		panic(err)
	}
	return c
}

// Achievements returns the catalog in declaration order.
func (c Catalog) Achievements() []domain.Achievement {
	return append([]domain.Achievement(nil), c.achievements...)
}

// Levels returns the level table ascending by MinExp.
func (c Catalog) Levels() []domain.LevelDefinition {
	return append([]domain.LevelDefinition(nil), c.levels...)
}

// Lookup finds an achievement by id.
func (c Catalog) Lookup(id string) (domain.Achievement, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.Achievement{}, false
	}
	return c.achievements[i], true
}

// Len returns the number of achievements.
func (c Catalog) Len() int { return len(c.achievements) }

// validateLevels checks that ranges are ascending, contiguous and start at 0.
func validateLevels(levels []domain.LevelDefinition) error {
	if len(levels) == 0 {
		return fmt.Errorf("%w: empty", domain.ErrLevelTableInvalid)
	}
	if levels[0].MinExp != 0 {
		return fmt.Errorf("%w: first level starts at %d", domain.ErrLevelTableInvalid, levels[0].MinExp)
	}
	for i, l := range levels {
		if l.MaxExp <= l.MinExp {
			return fmt.Errorf("%w: level %d has empty range", domain.ErrLevelTableInvalid, l.Level)
		}
		if i > 0 && l.MinExp != levels[i-1].MaxExp {
			return fmt.Errorf("%w: gap between level %d and %d", domain.ErrLevelTableInvalid, levels[i-1].Level, l.Level)
		}
	}
	return nil
}

// ─── Default Catalog ────────────────────────────────────────────────────────
// 18 achievements across 6 categories, 10 levels.

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() Catalog {
	return MustCatalog(DefaultAchievements(), DefaultLevels())
}

// DefaultAchievements returns the built-in achievement list.
func DefaultAchievements() []domain.Achievement {
	return []domain.Achievement{
		// ── Records (4) ────────────────────────────────────────────────
		{
			ID: "first_record", Name: "First Entry", Description: "Record your first emotion",
			Icon: "🎯", Category: domain.CatRecord, Rarity: domain.RarityCommon,
			Condition: domain.RecordCount{N: 1},
			Reward:    domain.Reward{Experience: 10, Title: "Emotion Explorer"},
		},
		{
			ID: "ten_records", Name: "Ten Entries", Description: "Record 10 emotions",
			Icon: "🏃", Category: domain.CatRecord, Rarity: domain.RarityCommon,
			Condition: domain.RecordCount{N: 10},
			Reward:    domain.Reward{Experience: 25, Title: "Emotion Observer"},
		},
		{
			ID: "fifty_records", Name: "Fifty Entries", Description: "Record 50 emotions",
			Icon: "⭐", Category: domain.CatRecord, Rarity: domain.RarityUncommon,
			Condition: domain.RecordCount{N: 50},
			Reward:    domain.Reward{Experience: 100, Title: "Emotion Chronicler"},
		},
		{
			ID: "hundred_records", Name: "Hundred Entries", Description: "Record 100 emotions",
			Icon: "💎", Category: domain.CatRecord, Rarity: domain.RarityRare,
			Condition: domain.RecordCount{N: 100},
			Reward:    domain.Reward{Experience: 250, Title: "Emotion Master"},
		},

		// ── Consistency (4) ────────────────────────────────────────────
		{
			ID: "three_day_streak", Name: "Three in a Row", Description: "Record 3 days in a row",
			Icon: "🔥", Category: domain.CatConsistency, Rarity: domain.RarityCommon,
			Condition: domain.Streak{Days: 3},
			Reward:    domain.Reward{Experience: 30, Badge: "Persistent"},
		},
		{
			ID: "week_streak", Name: "Full Week", Description: "Record 7 days in a row",
			Icon: "🏆", Category: domain.CatConsistency, Rarity: domain.RarityUncommon,
			Condition: domain.Streak{Days: 7},
			Reward:    domain.Reward{Experience: 75, Badge: "Weekly Champion"},
		},
		{
			ID: "month_streak", Name: "Full Month", Description: "Record 30 days in a row",
			Icon: "👑", Category: domain.CatConsistency, Rarity: domain.RarityEpic,
			Condition: domain.Streak{Days: 30},
			Reward:    domain.Reward{Experience: 300, Badge: "Monthly Monarch"},
		},
		{
			ID: "hundred_day_streak", Name: "Hundred Days", Description: "Record 100 days in a row",
			Icon: "✨", Category: domain.CatConsistency, Rarity: domain.RarityLegendary,
			Condition: domain.Streak{Days: 100},
			Reward:    domain.Reward{Experience: 1000, Badge: "Legend of Persistence"},
		},

		// ── Diversity (2) ──────────────────────────────────────────────
		{
			ID: "emotion_explorer", Name: "Emotion Explorer", Description: "Record 5 different emotions",
			Icon: "🎨", Category: domain.CatDiversity, Rarity: domain.RarityUncommon,
			Condition: domain.EmotionTypes{N: 5},
			Reward:    domain.Reward{Experience: 50, Badge: "Colorful Mood"},
		},
		{
			ID: "emotion_master", Name: "Emotion Master", Description: "Record 8 different emotions",
			Icon: "🎭", Category: domain.CatDiversity, Rarity: domain.RarityRare,
			Condition: domain.EmotionTypes{N: 8},
			Reward:    domain.Reward{Experience: 150, Badge: "All-Round Feeler"},
		},

		// ── Positive (2) ───────────────────────────────────────────────
		{
			ID: "positive_week", Name: "Bright Week", Description: "80% positive entries within a week",
			Icon: "☀️", Category: domain.CatPositive, Rarity: domain.RarityRare,
			Condition: domain.PositiveRatio{Ratio: 0.8, PeriodDays: 7},
			Reward:    domain.Reward{Experience: 100, Badge: "Sunshine"},
		},
		{
			ID: "happiness_streak", Name: "Happy Combo", Description: "Feel happy 3 days in a row",
			Icon: "😊", Category: domain.CatPositive, Rarity: domain.RarityUncommon,
			Condition: domain.EmotionStreak{Emotion: domain.EmotionHappy, Days: 3},
			Reward:    domain.Reward{Experience: 60, Badge: "Joy Expert"},
		},

		// ── Community (3) ──────────────────────────────────────────────
		{
			ID: "first_post", Name: "First Share", Description: "Publish your first post",
			Icon: "📝", Category: domain.CatCommunity, Rarity: domain.RarityCommon,
			Condition: domain.PostCount{N: 1},
			Reward:    domain.Reward{Experience: 20, Badge: "Sharer"},
		},
		{
			ID: "popular_post", Name: "Crowd Favorite", Description: "Get 10 likes on a single post",
			Icon: "❤️", Category: domain.CatCommunity, Rarity: domain.RarityUncommon,
			Condition: domain.PostLikes{N: 10},
			Reward:    domain.Reward{Experience: 80, Badge: "Popular"},
		},
		{
			ID: "helpful_commenter", Name: "Helpful Commenter", Description: "Write 20 comments",
			Icon: "💬", Category: domain.CatCommunity, Rarity: domain.RarityRare,
			Condition: domain.CommentCount{N: 20},
			Reward:    domain.Reward{Experience: 120, Badge: "Conversationalist"},
		},

		// ── Time (3) ───────────────────────────────────────────────────
		{
			ID: "night_owl", Name: "Night Owl", Description: "Record 10 times late at night",
			Icon: "🌙", Category: domain.CatTime, Rarity: domain.RarityUncommon,
			Condition: domain.TimePattern{Bucket: domain.BucketNight, N: 10},
			Reward:    domain.Reward{Experience: 50, Badge: "Night Walker"},
		},
		{
			ID: "early_bird", Name: "Early Bird", Description: "Record 15 times early in the morning",
			Icon: "🌅", Category: domain.CatTime, Rarity: domain.RarityUncommon,
			Condition: domain.TimePattern{Bucket: domain.BucketMorning, N: 15},
			Reward:    domain.Reward{Experience: 60, Badge: "Dawn Messenger"},
		},
		{
			ID: "seasonal_recorder", Name: "Four Seasons", Description: "Record in all four seasons",
			Icon: "🍃", Category: domain.CatTime, Rarity: domain.RarityEpic,
			Condition: domain.SeasonalRecord{N: 4},
			Reward:    domain.Reward{Experience: 200, Badge: "Time Witness"},
		},
	}
}

// DefaultLevels returns the built-in level table.
func DefaultLevels() []domain.LevelDefinition {
	return []domain.LevelDefinition{
		{Level: 1, Name: "Newcomer", MinExp: 0, MaxExp: 100, Badge: "🌱"},
		{Level: 2, Name: "Explorer", MinExp: 100, MaxExp: 250, Badge: "🔍"},
		{Level: 3, Name: "Observer", MinExp: 250, MaxExp: 500, Badge: "👁️"},
		{Level: 4, Name: "Chronicler", MinExp: 500, MaxExp: 1000, Badge: "📝"},
		{Level: 5, Name: "Analyst", MinExp: 1000, MaxExp: 2000, Badge: "📊"},
		{Level: 6, Name: "Adept", MinExp: 2000, MaxExp: 4000, Badge: "🎓"},
		{Level: 7, Name: "Expert", MinExp: 4000, MaxExp: 8000, Badge: "⭐"},
		{Level: 8, Name: "Mentor", MinExp: 8000, MaxExp: 16000, Badge: "🏆"},
		{Level: 9, Name: "Grandmaster", MinExp: 16000, MaxExp: 32000, Badge: "💎"},
		{Level: 10, Name: "Legend", MinExp: 32000, MaxExp: 999999, Badge: "👑"},
	}
}
