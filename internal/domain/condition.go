package domain

import "fmt"

// ConditionKind names a rule variant. Values match the catalog file "type" key.
type ConditionKind string

const (
	KindRecordCount    ConditionKind = "recordCount"
	KindStreak         ConditionKind = "streak"
	KindEmotionTypes   ConditionKind = "emotionTypes"
	KindPositiveRatio  ConditionKind = "positiveRatio"
	KindEmotionStreak  ConditionKind = "emotionStreak"
	KindPostCount      ConditionKind = "postCount"
	KindCommentCount   ConditionKind = "commentCount"
	KindPostLikes      ConditionKind = "postLikes"
	KindTimePattern    ConditionKind = "timePattern"
	KindSeasonalRecord ConditionKind = "seasonalRecord"
)

// Condition is the closed set of unlock rules. Each variant carries only
// the fields it needs; the set is extended by adding a variant here and a
// case in the evaluator.
type Condition interface {
	Kind() ConditionKind
	isCondition()
}

// RecordCount holds when TotalRecords >= N.
type RecordCount struct{ N int }

// Streak holds when CurrentStreak >= Days.
type Streak struct{ Days int }

// EmotionTypes holds when the log contains at least N distinct emotions.
type EmotionTypes struct{ N int }

// PositiveRatio holds when, within the last PeriodDays, the share of
// positive entries is at least Ratio. An empty period never holds.
type PositiveRatio struct {
	Ratio      float64
	PeriodDays int
}

// EmotionStreak holds when some run of Days consecutive calendar days each
// has at least one entry with Emotion.
type EmotionStreak struct {
	Emotion string
	Days    int
}

// PostCount holds when the community post counter is at least N.
type PostCount struct{ N int }

// CommentCount holds when the community comment counter is at least N.
type CommentCount struct{ N int }

// PostLikes holds when the best post has at least N likes.
type PostLikes struct{ N int }

// TimePattern holds when at least N entries fall inside Bucket.
type TimePattern struct {
	Bucket TimeBucket
	N      int
}

// SeasonalRecord holds when the log spans at least N distinct seasons.
type SeasonalRecord struct{ N int }

// Unknown is a condition whose type was not recognized. Never satisfied.
type Unknown struct{ Type string }

func (RecordCount) Kind() ConditionKind    { return KindRecordCount }
func (Streak) Kind() ConditionKind         { return KindStreak }
func (EmotionTypes) Kind() ConditionKind   { return KindEmotionTypes }
func (PositiveRatio) Kind() ConditionKind  { return KindPositiveRatio }
func (EmotionStreak) Kind() ConditionKind  { return KindEmotionStreak }
func (PostCount) Kind() ConditionKind      { return KindPostCount }
func (CommentCount) Kind() ConditionKind   { return KindCommentCount }
func (PostLikes) Kind() ConditionKind      { return KindPostLikes }
func (TimePattern) Kind() ConditionKind    { return KindTimePattern }
func (SeasonalRecord) Kind() ConditionKind { return KindSeasonalRecord }
func (u Unknown) Kind() ConditionKind      { return ConditionKind(u.Type) }

func (RecordCount) isCondition()    {}
func (Streak) isCondition()         {}
func (EmotionTypes) isCondition()   {}
func (PositiveRatio) isCondition()  {}
func (EmotionStreak) isCondition()  {}
func (PostCount) isCondition()      {}
func (CommentCount) isCondition()   {}
func (PostLikes) isCondition()      {}
func (TimePattern) isCondition()    {}
func (SeasonalRecord) isCondition() {}
func (Unknown) isCondition()        {}

// ConditionParams renders a condition in the catalog file shape,
// e.g. {"type": "streak", "value": 7}.
func ConditionParams(c Condition) map[string]any {
	switch c := c.(type) {
	case RecordCount:
		return map[string]any{"type": c.Kind(), "value": c.N}
	case Streak:
		return map[string]any{"type": c.Kind(), "value": c.Days}
	case EmotionTypes:
		return map[string]any{"type": c.Kind(), "value": c.N}
	case PositiveRatio:
		return map[string]any{"type": c.Kind(), "value": c.Ratio, "period": c.PeriodDays}
	case EmotionStreak:
		return map[string]any{"type": c.Kind(), "value": c.Days, "emotion": c.Emotion}
	case PostCount:
		return map[string]any{"type": c.Kind(), "value": c.N}
	case CommentCount:
		return map[string]any{"type": c.Kind(), "value": c.N}
	case PostLikes:
		return map[string]any{"type": c.Kind(), "value": c.N}
	case TimePattern:
		return map[string]any{"type": c.Kind(), "value": c.N, "time": c.Bucket}
	case SeasonalRecord:
		return map[string]any{"type": c.Kind(), "value": c.N}
	case Unknown:
		return map[string]any{"type": c.Type}
	default:
		return map[string]any{"type": ""}
	}
}

// DescribeCondition returns a short human-readable rule.
func DescribeCondition(c Condition) string {
	switch c := c.(type) {
	case RecordCount:
		return fmt.Sprintf("record %d entries", c.N)
	case Streak:
		return fmt.Sprintf("record %d days in a row", c.Days)
	case EmotionTypes:
		return fmt.Sprintf("record %d different emotions", c.N)
	case PositiveRatio:
		return fmt.Sprintf("%.0f%% positive entries over %d days", c.Ratio*100, c.PeriodDays)
	case EmotionStreak:
		return fmt.Sprintf("record %q %d days in a row", c.Emotion, c.Days)
	case PostCount:
		return fmt.Sprintf("publish %d posts", c.N)
	case CommentCount:
		return fmt.Sprintf("write %d comments", c.N)
	case PostLikes:
		return fmt.Sprintf("get %d likes on one post", c.N)
	case TimePattern:
		return fmt.Sprintf("record %d entries in the %s", c.N, c.Bucket)
	case SeasonalRecord:
		return fmt.Sprintf("record in %d seasons", c.N)
	case Unknown:
		return fmt.Sprintf("unsupported rule %q", c.Type)
	default:
		return "no rule"
	}
}
