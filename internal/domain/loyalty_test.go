package domain_test

import (
	"testing"

	"dora_paradise/internal/domain"
)

func TestLoyalty_Lifecycle(t *testing.T) {
	p := domain.NewLoyaltyProfile("u-1")
	if p.OfferEligible || p.TotalBookings != 0 {
		t.Fatalf("fresh profile should start ineligible: %+v", p)
	}
	if p.DiscountRate() != 0 {
		t.Fatalf("fresh profile must not discount")
	}

	// First confirmed booking: full price, unlocks the offer.
	used := p.DiscountRate() > 0
	p = p.Advanced(used)
	if p.TotalBookings != 1 || !p.OfferEligible {
		t.Fatalf("after first booking: %+v", p)
	}
	if p.DiscountRate() != domain.LoyaltyDiscountRate {
		t.Fatalf("second booking should see the 20%% rate")
	}

	// Second booking consumes the offer; the consume-reset wins over the
	// advance that would otherwise leave eligibility on.
	used = p.DiscountRate() > 0
	p = p.Advanced(used)
	if p.TotalBookings != 2 || p.OfferEligible {
		t.Fatalf("discount not consumed: %+v", p)
	}

	// Re-earned on the next full-price booking.
	p = p.Advanced(false)
	if p.TotalBookings != 3 || !p.OfferEligible {
		t.Fatalf("offer not re-earned: %+v", p)
	}
}

func TestLoyalty_FailedAttemptsDoNotAdvance(t *testing.T) {
	// Advanced is only called after a persisted booking; a profile passed
	// around through failed attempts is unchanged by construction.
	p := domain.LoyaltyProfile{UserID: "u-2", TotalBookings: 1, OfferEligible: true}
	q := p
	_ = q.DiscountRate() // reads must not mutate
	if p != q {
		t.Fatalf("profile mutated by read: %+v vs %+v", p, q)
	}
}
