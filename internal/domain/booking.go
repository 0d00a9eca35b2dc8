package domain

import "time"

// BookingStatusConfirmed is the only status in scope; there is no
// cancellation or refund state.
const BookingStatusConfirmed = "confirmed"

// BookingRequest is the caller-supplied shape. It carries no authority:
// everything in it is validated and the price is always recomputed
// server-side from the catalog and the loyalty ledger.
type BookingRequest struct {
	RoomType string `json:"room_type"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Guests   int    `json:"guests"`
}

// Booking is the persisted record. Created exactly once per successful
// transaction and immutable thereafter.
type Booking struct {
	ID              string
	UserID          string
	RoomType        string
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	Nights          int
	BaseAmount      float64
	DiscountApplied bool
	DiscountAmount  float64
	GSTAmount       float64
	TotalAmount     float64
	Status          string
	IdempotencyKey  *string
	CreatedAt       time.Time
}

// ContactMessage is a stored enquiry from the contact form. Delivery to the
// front desk mailbox happens out of band.
type ContactMessage struct {
	Name      string
	Email     string
	Message   string
	RemoteIP  string
	CreatedAt time.Time
}
