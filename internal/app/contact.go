package app

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"dora_paradise/internal/domain"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactService stores contact-form enquiries. Submissions are rate
// limited per client IP; mail delivery happens out of band.
type ContactService struct {
	repo    domain.BookingRepository
	perHour int

	mu       sync.Mutex
	limiters map[string]*ipLimiter
}

type ipLimiter struct {
	lim  *rate.Limiter
	seen time.Time
}

func NewContactService(r domain.BookingRepository, perHour int) *ContactService {
	if perHour <= 0 {
		perHour = 3
	}
	return &ContactService{
		repo:     r,
		perHour:  perHour,
		limiters: make(map[string]*ipLimiter),
	}
}

func (s *ContactService) Submit(ctx context.Context, m domain.ContactMessage) error {
	if !s.allow(m.RemoteIP) {
		return domain.ErrRateLimited
	}

	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Message = strings.TrimSpace(m.Message)
	if m.Name == "" || len(m.Name) > 100 {
		return domain.ErrInvalidContact
	}
	if m.Email == "" || len(m.Email) > 255 || !emailRe.MatchString(m.Email) {
		return domain.ErrInvalidContact
	}
	if len(m.Message) < 10 || len(m.Message) > 2000 {
		return domain.ErrInvalidContact
	}
	m.CreatedAt = time.Now().UTC()

	return s.repo.SaveContactMessage(ctx, m)
}

func (s *ContactService) allow(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	l, ok := s.limiters[ip]
	if !ok {
		l = &ipLimiter{lim: rate.NewLimiter(rate.Every(time.Hour/time.Duration(s.perHour)), s.perHour)}
		s.limiters[ip] = l
	}
	l.seen = now

	// Opportunistic pruning keeps the map from growing unbounded.
	if len(s.limiters) > 10_000 {
		for k, v := range s.limiters {
			if now.Sub(v.seen) > time.Hour {
				delete(s.limiters, k)
			}
		}
	}
	return l.lim.Allow()
}
