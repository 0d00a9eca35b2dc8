package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	gomysql "github.com/go-sql-driver/mysql"

	"dora_paradise/internal/adapters/observability"
	"dora_paradise/internal/domain"
)

const mysqlErrDuplicateEntry = 1062

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// persistErr wraps transient storage failures so callers can classify them
// as retryable without seeing driver internals.
func persistErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, op, err)
}

func isDuplicateEntry(err error) bool {
	var me *gomysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry
}

func (r *Repo) EnsureProfile(ctx context.Context, userID string) (domain.LoyaltyProfile, error) {
	if _, err := r.db.ExecContext(ctx, ensureProfileSQL, userID); err != nil {
		return domain.LoyaltyProfile{}, persistErr("ensure profile", err)
	}
	return r.GetProfile(ctx, userID)
}

func (r *Repo) GetProfile(ctx context.Context, userID string) (domain.LoyaltyProfile, error) {
	var p domain.LoyaltyProfile
	err := r.db.QueryRowContext(ctx, getProfileSQL, userID).
		Scan(&p.UserID, &p.TotalBookings, &p.OfferEligible)
	if err == sql.ErrNoRows {
		return domain.LoyaltyProfile{}, domain.ErrProfileNotFound
	}
	if err != nil {
		return domain.LoyaltyProfile{}, persistErr("get profile", err)
	}
	return p, nil
}

// CreateBooking writes the booking row and the advanced profile in one
// transaction. The profile update is conditional on the snapshot that
// priced the booking, so two racing bookings by the same guest serialize:
// the loser rolls back with ErrProfileConflict having written nothing.
func (r *Repo) CreateBooking(ctx context.Context, b domain.Booking, expect, next domain.LoyaltyProfile) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return persistErr("begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	var idem any
	if b.IdempotencyKey != nil {
		idem = *b.IdempotencyKey
	}
	_, err = tx.ExecContext(ctx, insertBookingSQL,
		b.ID,
		b.UserID,
		b.RoomType,
		b.CheckIn.Format(domain.DateLayout),
		b.CheckOut.Format(domain.DateLayout),
		b.Guests,
		b.Nights,
		b.BaseAmount,
		b.DiscountApplied,
		b.DiscountAmount,
		b.GSTAmount,
		b.TotalAmount,
		b.Status,
		idem,
		b.CreatedAt,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return domain.ErrDuplicateBooking
		}
		return persistErr("insert booking", err)
	}

	res, err := tx.ExecContext(ctx, advanceProfileSQL,
		next.TotalBookings, next.OfferEligible,
		expect.UserID, expect.TotalBookings, expect.OfferEligible,
	)
	if err != nil {
		return persistErr("advance profile", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return persistErr("advance profile", err)
	}
	if affected == 0 {
		observability.ObserveProfileConflict()
		return domain.ErrProfileConflict
	}

	if err := tx.Commit(); err != nil {
		return persistErr("commit", err)
	}
	observability.ObserveBooking(b.RoomType, b.DiscountApplied)
	return nil
}

func (r *Repo) GetBookingByIdempotencyKey(ctx context.Context, userID, key string) (domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, getBookingByIdemSQL, userID, key)
	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return domain.Booking{}, domain.ErrNoBooking
	}
	if err != nil {
		return domain.Booking{}, persistErr("get booking by key", err)
	}
	return b, nil
}

func (r *Repo) ListBookings(ctx context.Context, userID string, limit int) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, listBookingsSQL, userID, limit)
	if err != nil {
		return nil, persistErr("list bookings", err)
	}
	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, persistErr("scan booking", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list bookings", err)
	}
	return out, nil
}

func (r *Repo) SaveContactMessage(ctx context.Context, m domain.ContactMessage) error {
	_, err := r.db.ExecContext(ctx, insertContactSQL,
		m.Name, m.Email, m.Message, m.RemoteIP, m.CreatedAt)
	if err != nil {
		return persistErr("save contact message", err)
	}
	return nil
}

type scanner interface{ Scan(dst ...any) error }

func scanBooking(s scanner) (domain.Booking, error) {
	var b domain.Booking
	var idem sql.NullString
	err := s.Scan(
		&b.ID,
		&b.UserID,
		&b.RoomType,
		&b.CheckIn,
		&b.CheckOut,
		&b.Guests,
		&b.Nights,
		&b.BaseAmount,
		&b.DiscountApplied,
		&b.DiscountAmount,
		&b.GSTAmount,
		&b.TotalAmount,
		&b.Status,
		&idem,
		&b.CreatedAt,
	)
	if err != nil {
		return domain.Booking{}, err
	}
	if idem.Valid {
		k := idem.String
		b.IdempotencyKey = &k
	}
	return b, nil
}
