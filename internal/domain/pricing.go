package domain

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the wire format for check-in/check-out dates.
const DateLayout = "2006-01-02"

// GSTRate is applied to the post-discount amount.
const GSTRate = 0.18

// LoyaltyDiscountRate is the one-time loyalty discount.
const LoyaltyDiscountRate = 0.20

// StayQuote is the server-computed price breakdown for a stay.
// All amounts are unrounded; rounding is a display concern of callers.
type StayQuote struct {
	Nights          int
	BaseAmount      float64
	DiscountApplied bool
	DiscountAmount  float64
	GSTAmount       float64
	TotalAmount     float64
}

// ParseDate parses an ISO date, mapping any parse failure to ErrInvalidDateRange.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateRange
	}
	return t, nil
}

// Nights derives the billable night count from a date range.
// checkOut must be strictly after checkIn; partial days round up, and a
// stay is never billed below one night.
func Nights(checkIn, checkOut time.Time) (int, error) {
	if !checkOut.After(checkIn) {
		return 0, ErrInvalidDateRange
	}
	days := math.Ceil(checkOut.Sub(checkIn).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return int(days), nil
}

// QuoteStay prices a stay. The discount is applied to the base amount and
// GST is computed on the discounted amount; that order is load-bearing.
// discountRate accepts any value in [0,1) to stay general.
func QuoteStay(nightlyPrice int64, checkIn, checkOut time.Time, discountRate float64) (StayQuote, error) {
	if nightlyPrice <= 0 {
		return StayQuote{}, fmt.Errorf("nightly price must be positive, got %d", nightlyPrice)
	}
	if discountRate < 0 || discountRate >= 1 {
		return StayQuote{}, fmt.Errorf("discount rate out of range [0,1): %v", discountRate)
	}
	nights, err := Nights(checkIn, checkOut)
	if err != nil {
		return StayQuote{}, err
	}

	base := float64(nightlyPrice) * float64(nights)
	discount := base * discountRate
	afterDiscount := base - discount
	gst := afterDiscount * GSTRate

	return StayQuote{
		Nights:          nights,
		BaseAmount:      base,
		DiscountApplied: discountRate > 0,
		DiscountAmount:  discount,
		GSTAmount:       gst,
		TotalAmount:     afterDiscount + gst,
	}, nil
}
