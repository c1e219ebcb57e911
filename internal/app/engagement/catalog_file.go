package engagement

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/moodtrail/moodtrail/internal/domain"
)

// catalogFile is the TOML layout of a custom catalog:
//
//	[[achievement]]
//	id = "ten_records"
//	name = "Ten Entries"
//	category = "record"
//	rarity = "common"
//	condition = { type = "recordCount", value = 10 }
//	reward = { experience = 25 }
//
//	[[level]]
//	level = 1
//	min_exp = 0
//	max_exp = 100
type catalogFile struct {
	Achievements []fileAchievement       `toml:"achievement"`
	Levels       []domain.LevelDefinition `toml:"level"`
}

type fileAchievement struct {
	ID          string        `toml:"id"`
	Name        string        `toml:"name"`
	Description string        `toml:"description"`
	Icon        string        `toml:"icon"`
	Category    string        `toml:"category"`
	Rarity      string        `toml:"rarity"`
	Condition   fileCondition `toml:"condition"`
	Reward      domain.Reward `toml:"reward"`
}

type fileCondition struct {
	Type    string  `toml:"type"`
	Value   float64 `toml:"value"`
	Period  int     `toml:"period"`
	Emotion string  `toml:"emotion"`
	Time    string  `toml:"time"`
}

// LoadCatalogFile reads a TOML catalog. An empty path returns the default
// catalog. Missing [[level]] tables fall back to the default levels.
func LoadCatalogFile(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(string(data))
}

// ParseCatalog decodes a TOML catalog document.
func ParseCatalog(doc string) (Catalog, error) {
	var f catalogFile
	if _, err := toml.Decode(doc, &f); err != nil {
		return Catalog{}, fmt.Errorf("%w: %w", domain.ErrInvalidCatalog, err)
	}
	if len(f.Achievements) == 0 {
		return Catalog{}, fmt.Errorf("%w: no achievements", domain.ErrInvalidCatalog)
	}

	achievements := make([]domain.Achievement, 0, len(f.Achievements))
	for _, fa := range f.Achievements {
		achievements = append(achievements, domain.Achievement{
			ID:          fa.ID,
			Name:        fa.Name,
			Description: fa.Description,
			Icon:        fa.Icon,
			Category:    domain.AchievementCategory(fa.Category),
			Rarity:      domain.Rarity(fa.Rarity),
			Condition:   fa.Condition.toCondition(),
			Reward:      fa.Reward,
		})
	}

	levels := f.Levels
	if len(levels) == 0 {
		levels = DefaultLevels()
	}
	return NewCatalog(achievements, levels)
}

// toCondition maps the file form to a variant. Unrecognized types become
// domain.Unknown, which never unlocks.
func (fc fileCondition) toCondition() domain.Condition {
	n := int(fc.Value)
	switch domain.ConditionKind(fc.Type) {
	case domain.KindRecordCount:
		return domain.RecordCount{N: n}
	case domain.KindStreak:
		return domain.Streak{Days: n}
	case domain.KindEmotionTypes:
		return domain.EmotionTypes{N: n}
	case domain.KindPositiveRatio:
		return domain.PositiveRatio{Ratio: fc.Value, PeriodDays: fc.Period}
	case domain.KindEmotionStreak:
		return domain.EmotionStreak{Emotion: fc.Emotion, Days: n}
	case domain.KindPostCount:
		return domain.PostCount{N: n}
	case domain.KindCommentCount:
		return domain.CommentCount{N: n}
	case domain.KindPostLikes:
		return domain.PostLikes{N: n}
	case domain.KindTimePattern:
		return domain.TimePattern{Bucket: domain.TimeBucket(fc.Time), N: n}
	case domain.KindSeasonalRecord:
		return domain.SeasonalRecord{N: n}
	default:
		return domain.Unknown{Type: fc.Type}
	}
}
