package domain

// LoyaltyProfile tracks a guest's confirmed bookings and whether the
// one-time loyalty discount is currently unlocked. The server-side copy is
// the single source of truth; client-reported eligibility is never trusted.
type LoyaltyProfile struct {
	UserID        string
	TotalBookings int
	OfferEligible bool
}

// NewLoyaltyProfile is the state a guest starts in: no bookings, no offer.
func NewLoyaltyProfile(userID string) LoyaltyProfile {
	return LoyaltyProfile{UserID: userID}
}

// DiscountRate is read BEFORE advancing; it decides whether the booking
// currently being confirmed gets the discount.
func (p LoyaltyProfile) DiscountRate() float64 {
	if p.OfferEligible {
		return LoyaltyDiscountRate
	}
	return 0
}

// Advanced returns the profile state after one confirmed booking.
// Eligibility unlocks with the first confirmed booking; when the booking
// being confirmed consumed the discount, the consume-reset is the last
// write to win, so the flag ends false until re-earned.
func (p LoyaltyProfile) Advanced(usedDiscount bool) LoyaltyProfile {
	next := LoyaltyProfile{
		UserID:        p.UserID,
		TotalBookings: p.TotalBookings + 1,
	}
	next.OfferEligible = next.TotalBookings >= 1
	if usedDiscount {
		next.OfferEligible = false
	}
	return next
}
