package domain

import "errors"

var (
	// Client errors, surfaced verbatim.
	ErrInvalidRoomType  = errors.New("invalid room type")
	ErrInvalidDateRange = errors.New("invalid dates")
	ErrMissingField     = errors.New("missing required fields")
	ErrInvalidContact   = errors.New("invalid input")

	// ErrProfileNotFound means the identity was never provisioned a loyalty
	// profile. Distinct from "has zero bookings" — that is a valid profile.
	ErrProfileNotFound = errors.New("profile not found")

	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("too many requests")

	// ErrProfileConflict: the conditional profile update matched zero rows
	// because another booking advanced the profile first. Retryable after a
	// fresh read.
	ErrProfileConflict = errors.New("profile version conflict")

	// ErrDuplicateBooking: idempotency key already used by this guest.
	ErrDuplicateBooking = errors.New("duplicate booking")

	// ErrNoBooking: no booking matched the lookup.
	ErrNoBooking = errors.New("booking not found")

	// ErrPersistence wraps transient storage failures.
	ErrPersistence = errors.New("persistence failure")
)
