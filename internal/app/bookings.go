package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"dora_paradise/internal/domain"
)

// maxConflictRetries bounds how often a booking is re-priced after losing
// the conditional profile update to a concurrent booking by the same guest.
const maxConflictRetries = 3

const (
	minGuests = 1
	maxGuests = 4
)

type BookingService struct {
	repo    domain.BookingRepository
	cache   domain.Cache
	catalog *domain.Catalog
}

func NewBookingService(r domain.BookingRepository, c domain.Cache, cat *domain.Catalog) *BookingService {
	return &BookingService{repo: r, cache: c, catalog: cat}
}

// CreateBooking validates the untrusted request, prices the stay from the
// catalog and the guest's server-side loyalty state, and persists booking +
// advanced profile atomically. idemKey may be empty; when present, a replay
// of the same key returns the original booking without booking twice or
// advancing loyalty twice.
func (s *BookingService) CreateBooking(ctx context.Context, userID string, req domain.BookingRequest, idemKey string) (domain.Booking, error) {
	if strings.TrimSpace(req.RoomType) == "" || strings.TrimSpace(req.CheckIn) == "" || strings.TrimSpace(req.CheckOut) == "" {
		return domain.Booking{}, domain.ErrMissingField
	}

	nightly, err := s.catalog.PriceOf(req.RoomType)
	if err != nil {
		return domain.Booking{}, err
	}
	checkIn, err := domain.ParseDate(req.CheckIn)
	if err != nil {
		return domain.Booking{}, err
	}
	checkOut, err := domain.ParseDate(req.CheckOut)
	if err != nil {
		return domain.Booking{}, err
	}

	// Defensive normalization, not an error.
	guests := clampGuests(req.Guests)

	if idemKey != "" {
		if prev, err := s.repo.GetBookingByIdempotencyKey(ctx, userID, idemKey); err == nil {
			return prev, nil
		} else if !errors.Is(err, domain.ErrNoBooking) {
			return domain.Booking{}, err
		}
	}

	var booking domain.Booking
	for attempt := 0; ; attempt++ {
		// Eligibility is read from the transactional store, never the cache,
		// and decides the discount for THIS booking before it is advanced.
		profile, err := s.repo.GetProfile(ctx, userID)
		if err != nil {
			return domain.Booking{}, err
		}

		quote, err := domain.QuoteStay(nightly, checkIn, checkOut, profile.DiscountRate())
		if err != nil {
			return domain.Booking{}, err
		}

		booking = domain.Booking{
			ID:              uuid.NewString(),
			UserID:          userID,
			RoomType:        req.RoomType,
			CheckIn:         checkIn,
			CheckOut:        checkOut,
			Guests:          guests,
			Nights:          quote.Nights,
			BaseAmount:      quote.BaseAmount,
			DiscountApplied: quote.DiscountApplied,
			DiscountAmount:  quote.DiscountAmount,
			GSTAmount:       quote.GSTAmount,
			TotalAmount:     quote.TotalAmount,
			Status:          domain.BookingStatusConfirmed,
			CreatedAt:       time.Now().UTC(),
		}
		if idemKey != "" {
			k := idemKey
			booking.IdempotencyKey = &k
		}

		err = s.repo.CreateBooking(ctx, booking, profile, profile.Advanced(quote.DiscountApplied))
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrDuplicateBooking) && idemKey != "" {
			// Concurrent replay of the same key: the first writer won.
			return s.repo.GetBookingByIdempotencyKey(ctx, userID, idemKey)
		}
		if errors.Is(err, domain.ErrProfileConflict) && attempt < maxConflictRetries {
			log.Debug().Str("user", userID).Int("attempt", attempt+1).Msg("profile conflict, re-pricing")
			continue
		}
		return domain.Booking{}, err
	}

	s.invalidateGuest(ctx, userID)
	return booking, nil
}

func clampGuests(g int) int {
	if g < minGuests {
		return minGuests
	}
	if g > maxGuests {
		return maxGuests
	}
	return g
}

// invalidateGuest evicts the guest's cached read models after a write.
func (s *BookingService) invalidateGuest(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, fmt.Sprintf("profile:%s", userID))
	// API default is limit=20; clear the other common page sizes too.
	for _, lim := range []int{20, 50, 100} {
		_ = s.cache.Del(ctx, fmt.Sprintf("bookings:%s:%d", userID, lim))
	}
}
