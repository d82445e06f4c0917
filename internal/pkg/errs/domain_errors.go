package errs

import "errors"

// Domain-specific sentinel errors for CQRS usecase layers
var (
	// Allocation input errors (non-retryable, surfaced verbatim)
	ErrInvalidSlot     = errors.New("invalid slot")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidProduct  = errors.New("invalid product")

	// Request state machine
	ErrAlreadyProcessed = errors.New("request already processed")
	ErrRequestNotFound  = errors.New("request not found")

	// Grant store
	ErrGrantNotFound = errors.New("grant not found")
	// ErrOverlapViolation signals a lost race on a slot's tail; callers may
	// retry after recomputing the candidate window from fresh state.
	ErrOverlapViolation = errors.New("grant overlap violation")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
