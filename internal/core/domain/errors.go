package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalid            = errors.New("invalid value")
	ErrStoreUnavailable   = errors.New("store is not configured")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Outcome tells whether a mutation reached the backend.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeFailed
	// OutcomeUnknown means the call was abandoned before the backend
	// answered; the change may or may not be persisted.
	OutcomeUnknown
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeFailed:
		return "failed"
	case OutcomeUnknown:
		return "unknown"
	}
	return "invalid"
}

func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeApplied
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return OutcomeUnknown
	default:
		return OutcomeFailed
	}
}
