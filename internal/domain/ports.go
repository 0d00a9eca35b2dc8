package domain

import "context"

type BookingRepository interface {
	// Write paths
	// CreateBooking persists b and advances the guest's profile from expect
	// to next in a single transaction. The profile write is conditional on
	// expect still being the stored state; a lost race returns
	// ErrProfileConflict and nothing is persisted. A reused idempotency key
	// returns ErrDuplicateBooking and nothing is persisted.
	CreateBooking(ctx context.Context, b Booking, expect, next LoyaltyProfile) error
	EnsureProfile(ctx context.Context, userID string) (LoyaltyProfile, error)
	SaveContactMessage(ctx context.Context, m ContactMessage) error

	// Read paths
	GetProfile(ctx context.Context, userID string) (LoyaltyProfile, error)
	GetBookingByIdempotencyKey(ctx context.Context, userID, key string) (Booking, error)
	ListBookings(ctx context.Context, userID string, limit int) ([]Booking, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// IdentityDirectory lists users known to the external identity provider.
// The provisioner uses it to backfill default loyalty profiles.
type IdentityDirectory interface {
	ListUsers(ctx context.Context, page, perPage int) ([]IdentityUser, error)
}

type IdentityUser struct {
	ID    string
	Email string
}
