package errs

import "errors"

// Sentinel errors shared by the usecase and handler layers
var (
	// Draft errors
	ErrDraftNotFound      = errors.New("draft not found")
	ErrDraftConflict      = errors.New("draft modified concurrently")
	ErrDraftForbidden     = errors.New("draft belongs to another operator")
	ErrSubmitInProgress   = errors.New("draft submission in progress")
	ErrSlotNotSelectable  = errors.New("slot not selectable")
	ErrUnknownSlot        = errors.New("unknown slot")
	ErrInvalidUserType    = errors.New("invalid user type")
	ErrInvalidPaymentType = errors.New("invalid payment method")
	ErrInsufficientRole   = errors.New("operator role not permitted")

	// Booking record errors
	ErrBookingNotFound = errors.New("booking not found")

	// Upstream errors
	ErrUpstreamUnavailable  = errors.New("upstream unavailable")
	ErrUpstreamRejected     = errors.New("upstream rejected booking")
	ErrUpstreamUnauthorized = errors.New("upstream refused credentials")
	ErrUpstreamNotFound     = errors.New("upstream resource not found")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyInProgress  = errors.New("idempotency in progress")
	ErrIdempotencyKeyReused   = errors.New("idempotency key reused with different request")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrDraftStoreFailed        = errors.New("draft store operation failed")
)
