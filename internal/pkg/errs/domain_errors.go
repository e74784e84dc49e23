package errs

import "errors"

// Sentinel errors shared by the usecase layers. Handlers map these to HTTP
// statuses; nothing below the handler layer knows about status codes.
var (
	// Window / pricing errors
	ErrInvalidWindow = errors.New("invalid time window")

	// Resource errors
	ErrResourceNotFound    = errors.New("resource not found")
	ErrResourceUnavailable = errors.New("resource unavailable for the requested window")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrAlreadyConfirmed    = errors.New("reservation already confirmed")
	ErrAlreadyCancelled    = errors.New("reservation already cancelled")
	ErrTerminalState       = errors.New("reservation is in a terminal state")

	// Authorization errors
	ErrForbidden = errors.New("actor is not allowed to perform this operation")

	// Concurrency errors
	ErrBusy = errors.New("resource is busy, try again")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotent request in progress")
	ErrDuplicateRequest       = errors.New("idempotency key reused with a different payload")

	// Payment errors
	ErrPaymentNotFound = errors.New("payment not found")

	// Validation / operation errors
	ErrValidation      = errors.New("domain validation failed")
	ErrDatabaseFailure = errors.New("database operation failed")
)
