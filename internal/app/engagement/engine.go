package engagement

import (
	"time"

	"github.com/moodtrail/moodtrail/internal/domain"
)

// Engine runs the full pipeline: entry log to stats, stats to unlocks,
// unlocks to experience and level. Pure; safe for concurrent use.
type Engine struct {
	catalog Catalog
	cal     Calendar
	opts    RecommendOptions
}

// NewEngine creates an engine over an immutable catalog and calendar.
func NewEngine(catalog Catalog, cal Calendar, opts RecommendOptions) *Engine {
	return &Engine{catalog: catalog, cal: cal, opts: opts.withDefaults()}
}

// Input is one evaluation request.
type Input struct {
	Entries  []domain.EmotionEntry
	Counters domain.EngagementCounters
	Unlocked []domain.UnlockedAchievement // previously persisted
	Now      time.Time
}

// Result is the outcome of one evaluation.
type Result struct {
	Stats            domain.UserStats             `json:"stats"`
	NewlyUnlocked    []domain.UnlockedAchievement `json:"newly_unlocked"`
	Unlocked         []domain.UnlockedAchievement `json:"unlocked"`
	TotalExperience  int64                        `json:"total_experience"`
	Level            domain.LevelInfo             `json:"level"`
	PreviousLevel    domain.LevelInfo             `json:"previous_level"`
	LeveledUp        bool                         `json:"leveled_up"`
	AchievementStats domain.AchievementStats      `json:"achievement_stats"`
	Recommended      []domain.Recommendation      `json:"recommended"`
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() Catalog { return e.catalog }

// Calendar returns the engine's calendar.
func (e *Engine) Calendar() Calendar { return e.cal }

// Evaluate runs the pipeline. Calling it again with Unlocked extended by
// NewlyUnlocked yields no new unlocks and the same level.
func (e *Engine) Evaluate(in Input) Result {
	stats := ComputeStats(in.Entries, in.Counters, e.cal, in.Now)

	prior := e.catalog.Hydrate(in.Unlocked)
	ids := UnlockedIDs(prior)
	previousExp := TotalExperience(prior)

	newly := e.catalog.Evaluate(stats, in.Entries, ids, e.cal, in.Now)
	all := make([]domain.UnlockedAchievement, 0, len(prior)+len(newly))
	all = append(all, prior...)
	for _, u := range newly {
		ids[u.ID] = true
		all = append(all, u)
	}

	totalExp := TotalExperience(all)
	level := e.catalog.LevelForExp(totalExp)
	previous := e.catalog.LevelForExp(previousExp)

	return Result{
		Stats:            stats,
		NewlyUnlocked:    newly,
		Unlocked:         all,
		TotalExperience:  totalExp,
		Level:            level,
		PreviousLevel:    previous,
		LeveledUp:        level.Level > previous.Level,
		AchievementStats: e.catalog.Stats(ids),
		Recommended:      e.catalog.Recommend(stats, in.Entries, ids, e.opts),
	}
}
