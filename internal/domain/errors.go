package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors carry no infrastructure dependency.

var (
	// Entry errors
	ErrEntryNotFound   = errors.New("entry not found")
	ErrInvalidEntry    = errors.New("invalid entry")
	ErrUnknownEmotion  = errors.New("emotion is not in the vocabulary")
	ErrIntensityRange  = errors.New("intensity must be between 1 and 10")
	ErrDescriptionLong = errors.New("description exceeds 500 characters")
	ErrMissingUser     = errors.New("user id is required")

	// Catalog errors
	ErrInvalidCatalog    = errors.New("invalid achievement catalog")
	ErrDuplicateID       = errors.New("duplicate achievement id")
	ErrLevelTableInvalid = errors.New("level table must be contiguous and ascending")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")
)
