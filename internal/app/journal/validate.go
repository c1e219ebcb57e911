package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/moodtrail/moodtrail/internal/domain"
)

// MaxDescriptionRunes bounds the free-text description.
const MaxDescriptionRunes = 500

// Validate turns a draft into an entry ready to persist. The id is left
// empty; a zero draft timestamp becomes now. Every error wraps
// domain.ErrInvalidEntry.
func Validate(userID string, draft domain.EntryDraft, now time.Time) (domain.EmotionEntry, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.EmotionEntry{}, domain.ErrMissingUser
	}

	emotion := strings.ToLower(strings.TrimSpace(draft.Emotion))
	if emotion == "" {
		return domain.EmotionEntry{}, invalid(domain.ErrUnknownEmotion, "emotion is required")
	}
	if !domain.IsKnownEmotion(emotion) {
		return domain.EmotionEntry{}, invalid(domain.ErrUnknownEmotion, fmt.Sprintf("%q", emotion))
	}
	if draft.Intensity < domain.MinIntensity || draft.Intensity > domain.MaxIntensity {
		return domain.EmotionEntry{}, invalid(domain.ErrIntensityRange, fmt.Sprintf("got %d", draft.Intensity))
	}

	description := strings.TrimSpace(draft.Description)
	if n := utf8.RuneCountInString(description); n > MaxDescriptionRunes {
		return domain.EmotionEntry{}, invalid(domain.ErrDescriptionLong, fmt.Sprintf("%d characters", n))
	}

	ts := draft.Timestamp
	switch {
	case ts == 0:
		ts = now.UnixMilli()
	case ts < 0:
		return domain.EmotionEntry{}, fmt.Errorf("%w: negative timestamp", domain.ErrInvalidEntry)
	}

	return domain.EmotionEntry{
		UserID:      userID,
		Emotion:     emotion,
		Intensity:   draft.Intensity,
		Tags:        domain.NormalizeTags(draft.Tags),
		Description: description,
		Timestamp:   ts,
	}, nil
}

func invalid(reason error, detail string) error {
	return fmt.Errorf("%w: %w: %s", domain.ErrInvalidEntry, reason, detail)
}

// rejectReason labels a validation error for metrics.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingUser):
		return "user"
	case errors.Is(err, domain.ErrUnknownEmotion):
		return "emotion"
	case errors.Is(err, domain.ErrIntensityRange):
		return "intensity"
	case errors.Is(err, domain.ErrDescriptionLong):
		return "description"
	default:
		return "other"
	}
}
