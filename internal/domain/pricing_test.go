package domain_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"dora_paradise/internal/domain"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestQuoteStay_TwoNightsNoDiscount(t *testing.T) {
	q, err := domain.QuoteStay(5500, date(t, "2024-01-01"), date(t, "2024-01-03"), 0)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if q.Nights != 2 {
		t.Fatalf("nights = %d, want 2", q.Nights)
	}
	if !approx(q.BaseAmount, 11000) || !approx(q.GSTAmount, 1980) || !approx(q.TotalAmount, 12980) {
		t.Fatalf("unexpected quote: %+v", q)
	}
	if q.DiscountApplied || q.DiscountAmount != 0 {
		t.Fatalf("discount should be absent: %+v", q)
	}
}

func TestQuoteStay_OneNightLoyaltyDiscount(t *testing.T) {
	q, err := domain.QuoteStay(5500, date(t, "2024-01-01"), date(t, "2024-01-02"), 0.20)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if q.Nights != 1 {
		t.Fatalf("nights = %d, want 1", q.Nights)
	}
	if !q.DiscountApplied {
		t.Fatalf("expected discount applied")
	}
	if !approx(q.BaseAmount, 5500) || !approx(q.DiscountAmount, 1100) ||
		!approx(q.GSTAmount, 792) || !approx(q.TotalAmount, 5192) {
		t.Fatalf("unexpected quote: %+v", q)
	}
}

// GST must be computed on the discounted amount, never the base.
func TestQuoteStay_DiscountBeforeTax(t *testing.T) {
	for _, nights := range []int{1, 2, 7, 30} {
		for _, rate := range []float64{0, 0.10, 0.20, 0.5} {
			out := date(t, "2024-03-01").AddDate(0, 0, nights)
			q, err := domain.QuoteStay(7500, date(t, "2024-03-01"), out, rate)
			if err != nil {
				t.Fatalf("nights=%d rate=%v: %v", nights, rate, err)
			}
			want := 7500 * float64(nights) * (1 - rate) * 1.18
			if !approx(q.TotalAmount, want) {
				t.Fatalf("nights=%d rate=%v: total=%v want %v", nights, rate, q.TotalAmount, want)
			}
		}
	}
}

func TestQuoteStay_InvalidRanges(t *testing.T) {
	cases := []struct{ in, out string }{
		{"2024-01-03", "2024-01-01"}, // reversed
		{"2024-01-01", "2024-01-01"}, // zero-length
	}
	for _, c := range cases {
		_, err := domain.QuoteStay(5500, date(t, c.in), date(t, c.out), 0)
		if !errors.Is(err, domain.ErrInvalidDateRange) {
			t.Fatalf("%s..%s: err = %v, want ErrInvalidDateRange", c.in, c.out, err)
		}
	}
}

func TestParseDate_Unparsable(t *testing.T) {
	for _, s := range []string{"", "not-a-date", "01/02/2024"} {
		if _, err := domain.ParseDate(s); !errors.Is(err, domain.ErrInvalidDateRange) {
			t.Fatalf("%q: err = %v, want ErrInvalidDateRange", s, err)
		}
	}
}

func TestQuoteStay_RejectsBadInputs(t *testing.T) {
	in, out := date(t, "2024-01-01"), date(t, "2024-01-02")
	if _, err := domain.QuoteStay(0, in, out, 0); err == nil {
		t.Fatalf("expected error for non-positive price")
	}
	if _, err := domain.QuoteStay(5500, in, out, 1.0); err == nil {
		t.Fatalf("expected error for rate >= 1")
	}
	if _, err := domain.QuoteStay(5500, in, out, -0.1); err == nil {
		t.Fatalf("expected error for negative rate")
	}
}

func TestCatalog_PriceOf(t *testing.T) {
	cat := domain.DefaultCatalog()

	price, err := cat.PriceOf("Deluxe Room")
	if err != nil || price != 5500 {
		t.Fatalf("Deluxe Room: price=%d err=%v", price, err)
	}
	price, err = cat.PriceOf("Presidential Suite")
	if err != nil || price != 25000 {
		t.Fatalf("Presidential Suite: price=%d err=%v", price, err)
	}

	// Close-but-wrong names must not resolve.
	if _, err := cat.PriceOf("Suite Deluxe"); !errors.Is(err, domain.ErrInvalidRoomType) {
		t.Fatalf("err = %v, want ErrInvalidRoomType", err)
	}
}
