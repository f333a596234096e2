package domain

import "errors"

// Error kinds shared by every layer. Package-level sentinels wrap one of
// these so callers can match either the precise error or its kind.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrSlotConflict      = errors.New("slot conflict")
	ErrValidation        = errors.New("validation error")
)
