package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"dora_paradise/internal/app"
	"dora_paradise/internal/domain"
)

type Handlers struct {
	Bookings *app.BookingService
	Queries  *app.QueryService
	Contact  *app.ContactService
}

func (s *Server) MountHandlers(h *Handlers, auth func(http.Handler) http.Handler) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/rooms", h.listRooms)
	s.mux.Post("/v1/contact", h.submitContact)

	s.mux.Group(func(r chi.Router) {
		r.Use(auth)
		r.Post("/v1/bookings", h.createBooking)
		r.Get("/v1/me/profile", h.getProfile)
		r.Get("/v1/me/bookings", h.listBookings)
	})
}

// ---- JSON shapes ----

// receiptJSON mirrors the persisted booking's server-computed fields; the
// client-submitted amounts are never echoed because they are never read.
type receiptJSON struct {
	RoomType        string  `json:"room_type"`
	CheckIn         string  `json:"check_in"`
	CheckOut        string  `json:"check_out"`
	Guests          int     `json:"guests"`
	Nights          int     `json:"nights"`
	BaseAmount      float64 `json:"base_amount"`
	DiscountApplied bool    `json:"discount_applied"`
	DiscountAmount  float64 `json:"discount_amount"`
	GSTAmount       float64 `json:"gst_amount"`
	TotalAmount     float64 `json:"total_amount"`
}

type historyItemJSON struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	receiptJSON
}

type profileJSON struct {
	TotalBookings int  `json:"total_bookings"`
	OfferEligible bool `json:"offer_eligible"`
}

type roomJSON struct {
	Name         string   `json:"name"`
	NightlyPrice int64    `json:"nightly_price"`
	Size         string   `json:"size"`
	MaxGuests    int      `json:"max_guests"`
	Description  string   `json:"description"`
	Facilities   []string `json:"facilities"`
	Highlights   []string `json:"highlights"`
}

type contactJSON struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func receiptOf(b domain.Booking) receiptJSON {
	return receiptJSON{
		RoomType:        b.RoomType,
		CheckIn:         b.CheckIn.Format(domain.DateLayout),
		CheckOut:        b.CheckOut.Format(domain.DateLayout),
		Guests:          b.Guests,
		Nights:          b.Nights,
		BaseAmount:      b.BaseAmount,
		DiscountApplied: b.DiscountApplied,
		DiscountAmount:  b.DiscountAmount,
		GSTAmount:       b.GSTAmount,
		TotalAmount:     b.TotalAmount,
	}
}

// ---- handlers ----

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req domain.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	idemKey := r.Header.Get("Idempotency-Key")

	b, err := h.Bookings.CreateBooking(r.Context(), userID(r), req, idemKey)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"booking": receiptOf(b),
	})
}

func (h *Handlers) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.Queries.GetProfile(r.Context(), userID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileJSON{
		TotalBookings: p.TotalBookings,
		OfferEligible: p.OfferEligible,
	})
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 100 {
			writeError(w, http.StatusBadRequest, "limit must be an integer between 1 and 100")
			return
		}
		limit = l
	}
	bs, err := h.Queries.ListBookings(r.Context(), userID(r), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	items := make([]historyItemJSON, 0, len(bs))
	for _, b := range bs {
		items = append(items, historyItemJSON{
			ID:          b.ID,
			Status:      b.Status,
			CreatedAt:   b.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			receiptJSON: receiptOf(b),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": items})
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms := h.Queries.ListRooms()
	out := make([]roomJSON, 0, len(rooms))
	for _, rt := range rooms {
		out = append(out, roomJSON{
			Name:         rt.Name,
			NightlyPrice: rt.NightlyPrice,
			Size:         rt.Size,
			MaxGuests:    rt.MaxGuests,
			Description:  rt.Description,
			Facilities:   rt.Facilities,
			Highlights:   rt.Highlights,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": out})
}

func (h *Handlers) submitContact(w http.ResponseWriter, r *http.Request) {
	var req contactJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	err := h.Contact.Submit(r.Context(), domain.ContactMessage{
		Name:     req.Name,
		Email:    req.Email,
		Message:  req.Message,
		RemoteIP: remoteIP(r),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ---- response helpers ----

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps service errors to statuses; storage and unexpected
// failures are logged in full but surfaced without internals.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrMissingField):
		writeError(w, http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, domain.ErrInvalidRoomType):
		writeError(w, http.StatusBadRequest, "Invalid room type")
	case errors.Is(err, domain.ErrInvalidDateRange):
		writeError(w, http.StatusBadRequest, "Invalid dates")
	case errors.Is(err, domain.ErrInvalidContact):
		writeError(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, domain.ErrProfileNotFound):
		writeError(w, http.StatusNotFound, "Profile not found")
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
	case errors.Is(err, domain.ErrPersistence):
		log.Error().Err(err).Msg("persistence failure")
		writeError(w, http.StatusInternalServerError, "Failed to create booking")
	default:
		log.Error().Err(err).Msg("unexpected failure")
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
