package engagement

import (
	"math"

	"github.com/moodtrail/moodtrail/internal/domain"
)

// TotalExperience sums the rewards of the unlocked achievements.
// Negative rewards count as zero so experience never decreases.
func TotalExperience(unlocked []domain.UnlockedAchievement) int64 {
	var total int64
	for _, u := range unlocked {
		if u.Reward.Experience > 0 {
			total += u.Reward.Experience
		}
	}
	return total
}

// LevelFor returns the highest level whose MinExp <= exp, with progress
// inside that level clamped to [0,100].
func LevelFor(levels []domain.LevelDefinition, exp int64) domain.LevelInfo {
	if exp < 0 {
		exp = 0
	}
	info := domain.LevelInfo{TotalExp: exp}
	if len(levels) == 0 {
		return info
	}

	def := levels[0]
	for i := len(levels) - 1; i >= 0; i-- {
		if exp >= levels[i].MinExp {
			def = levels[i]
			break
		}
	}
	info.LevelDefinition = def

	progress := 100.0
	if span := def.MaxExp - def.MinExp; span > 0 {
		progress = float64(exp-def.MinExp) / float64(span) * 100
	}
	info.ProgressPercent = int(math.Round(clamp(finite(progress), 0, 100)))

	info.ExpToNext = def.MaxExp - exp
	if info.ExpToNext < 0 {
		info.ExpToNext = 0
	}
	return info
}

// LevelForExp resolves exp against the catalog's level table.
func (c Catalog) LevelForExp(exp int64) domain.LevelInfo {
	return LevelFor(c.levels, exp)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
