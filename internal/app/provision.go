package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"dora_paradise/internal/domain"
)

// ProvisionService backfills default loyalty profiles for every user the
// identity provider knows about. A guest hitting the booking endpoint with
// no profile row means this pipeline is broken, not that the guest is new.
type ProvisionService struct {
	dir  domain.IdentityDirectory
	repo domain.BookingRepository
}

func NewProvisionService(d domain.IdentityDirectory, r domain.BookingRepository) *ProvisionService {
	return &ProvisionService{dir: d, repo: r}
}

// ProvisionUser ensures a single user's profile exists. Idempotent: an
// existing profile is left untouched, bookings and eligibility included.
func (s *ProvisionService) ProvisionUser(ctx context.Context, u domain.IdentityUser) error {
	p, err := s.repo.EnsureProfile(ctx, u.ID)
	if err != nil {
		return err
	}
	log.Debug().Str("user", u.ID).Int("bookings", p.TotalBookings).Msg("profile ensured")
	return nil
}

// ListUsers pages through the directory until an empty page.
func (s *ProvisionService) ListUsers(ctx context.Context, perPage int) ([]domain.IdentityUser, error) {
	var all []domain.IdentityUser
	for page := 1; ; page++ {
		users, err := s.dir.ListUsers(ctx, page, perPage)
		if err != nil {
			return nil, err
		}
		if len(users) == 0 {
			return all, nil
		}
		all = append(all, users...)
	}
}
