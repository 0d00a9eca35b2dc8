package app

import (
	"context"
	"fmt"
	"time"

	"dora_paradise/internal/domain"
)

type QueryService struct {
	repo     domain.BookingRepository
	cache    domain.Cache
	catalog  *domain.Catalog
	cacheTTL time.Duration
}

func NewQueryService(r domain.BookingRepository, c domain.Cache, cat *domain.Catalog, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, catalog: cat, cacheTTL: ttl}
}

// GetProfile returns the guest's loyalty snapshot, creating the default
// profile on a guest's first interaction. Booking creation deliberately does
// NOT go through here: pricing must read the transactional store directly.
func (s *QueryService) GetProfile(ctx context.Context, userID string) (domain.LoyaltyProfile, error) {
	key := fmt.Sprintf("profile:%s", userID)
	var p domain.LoyaltyProfile
	if ok, _ := s.cache.Get(ctx, key, &p); ok {
		return p, nil
	}
	p, err := s.repo.EnsureProfile(ctx, userID)
	if err != nil {
		return domain.LoyaltyProfile{}, err
	}
	_ = s.cache.Set(ctx, key, p, int(s.cacheTTL.Seconds()))
	return p, nil
}

func (s *QueryService) ListBookings(ctx context.Context, userID string, limit int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	key := fmt.Sprintf("bookings:%s:%d", userID, limit)
	var out []domain.Booking
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	bs, err := s.repo.ListBookings(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	// copy slice to avoid aliasing the repo's backing array
	cp := make([]domain.Booking, len(bs))
	copy(cp, bs)
	_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))
	return cp, nil
}

// ListRooms serves the fixed catalog; no cache needed for an in-memory table.
func (s *QueryService) ListRooms() []domain.RoomType {
	return s.catalog.Rooms()
}
