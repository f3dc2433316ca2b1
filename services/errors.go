package services

import (
	"errors"
)

// Error taxonomy surfaced to handlers. Registration errors are always
// returned distinctly — they are actionable by the caller.
var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyRegistered = errors.New("user already registered for event")
	ErrCapacityExceeded  = errors.New("event is full")
	ErrEventClosed       = errors.New("event is completed and closed for registration")
	ErrDuplicateBadge    = errors.New("badge already awarded")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnavailable       = errors.New("record store unavailable")
)
