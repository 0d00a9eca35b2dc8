//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"dora_paradise/internal/domain"
	mysqlrepo "dora_paradise/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string { return &s }

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=dora",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "dora")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func testBooking(userID string, discounted bool, key *string, at time.Time) domain.Booking {
	base := 11000.0
	total := 12980.0
	discount := 0.0
	if discounted {
		discount = 2200.0
		total = 10384.0
	}
	return domain.Booking{
		ID:              uuid.NewString(),
		UserID:          userID,
		RoomType:        "Deluxe Room",
		CheckIn:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:        time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		Guests:          2,
		Nights:          2,
		BaseAmount:      base,
		DiscountApplied: discounted,
		DiscountAmount:  discount,
		GSTAmount:       (base - discount) * 0.18,
		TotalAmount:     total,
		Status:          domain.BookingStatusConfirmed,
		IdempotencyKey:  key,
		CreatedAt:       at,
	}
}

// ---------- the tests ----------

func TestRepo_MySQL_ProfileAndBookingLifecycle(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()
	userID := uuid.NewString()

	// First ensure creates the default row; the second is a no-op.
	p, err := repo.EnsureProfile(ctx, userID)
	if err != nil {
		t.Fatalf("EnsureProfile: %v", err)
	}
	if p.TotalBookings != 0 || p.OfferEligible {
		t.Fatalf("unexpected default profile: %+v", p)
	}
	if _, err := repo.EnsureProfile(ctx, userID); err != nil {
		t.Fatalf("EnsureProfile (again): %v", err)
	}

	// Booking plus conditional profile advance in one transaction.
	now := time.Now().UTC().Truncate(time.Second)
	b1 := testBooking(userID, false, nil, now)
	next := p.Advanced(false)
	if err := repo.CreateBooking(ctx, b1, p, next); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	got, err := repo.GetProfile(ctx, userID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.TotalBookings != 1 || !got.OfferEligible {
		t.Fatalf("profile not advanced: %+v", got)
	}

	// A write against the stale snapshot must roll back entirely.
	b2 := testBooking(userID, true, nil, now.Add(time.Second))
	err = repo.CreateBooking(ctx, b2, p, p.Advanced(true))
	if !errors.Is(err, domain.ErrProfileConflict) {
		t.Fatalf("stale snapshot: err = %v, want ErrProfileConflict", err)
	}

	list, err := repo.ListBookings(ctx, userID, 20)
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	if len(list) != 1 || list[0].ID != b1.ID {
		t.Fatalf("conflict leaked a booking row: %+v", list)
	}
	if list[0].TotalAmount != 12980 || list[0].Nights != 2 || list[0].Status != domain.BookingStatusConfirmed {
		t.Fatalf("round-trip mismatch: %+v", list[0])
	}
}

func TestRepo_MySQL_IdempotencyKey(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()
	userID := uuid.NewString()

	p, err := repo.EnsureProfile(ctx, userID)
	if err != nil {
		t.Fatalf("EnsureProfile: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Second)
	b := testBooking(userID, false, pstr("retry-123"), now)
	if err := repo.CreateBooking(ctx, b, p, p.Advanced(false)); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// Same key again: the unique index rejects it before any profile change.
	fresh, err := repo.GetProfile(ctx, userID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	dup := testBooking(userID, false, pstr("retry-123"), now.Add(time.Second))
	err = repo.CreateBooking(ctx, dup, fresh, fresh.Advanced(false))
	if !errors.Is(err, domain.ErrDuplicateBooking) {
		t.Fatalf("duplicate key: err = %v, want ErrDuplicateBooking", err)
	}

	stored, err := repo.GetBookingByIdempotencyKey(ctx, userID, "retry-123")
	if err != nil {
		t.Fatalf("GetBookingByIdempotencyKey: %v", err)
	}
	if stored.ID != b.ID {
		t.Fatalf("stored booking %s, want %s", stored.ID, b.ID)
	}

	if _, err := repo.GetBookingByIdempotencyKey(ctx, userID, "never-used"); !errors.Is(err, domain.ErrNoBooking) {
		t.Fatalf("unknown key: err = %v, want ErrNoBooking", err)
	}

	after, err := repo.GetProfile(ctx, userID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if after.TotalBookings != 1 {
		t.Fatalf("duplicate advanced the ledger: %+v", after)
	}
}

func TestRepo_MySQL_ListBookingsNewestFirst(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()
	userID := uuid.NewString()

	p, err := repo.EnsureProfile(ctx, userID)
	if err != nil {
		t.Fatalf("EnsureProfile: %v", err)
	}

	base := time.Now().UTC().Truncate(time.Second).Add(-time.Hour)
	var ids []string
	for i := 0; i < 3; i++ {
		b := testBooking(userID, false, nil, base.Add(time.Duration(i)*time.Minute))
		if err := repo.CreateBooking(ctx, b, p, p.Advanced(false)); err != nil {
			t.Fatalf("CreateBooking %d: %v", i, err)
		}
		ids = append(ids, b.ID)
		p, err = repo.GetProfile(ctx, userID)
		if err != nil {
			t.Fatalf("GetProfile %d: %v", i, err)
		}
	}

	list, err := repo.ListBookings(ctx, userID, 2)
	if err != nil {
		t.Fatalf("ListBookings: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("limit not honored: got %d rows", len(list))
	}
	if list[0].ID != ids[2] || list[1].ID != ids[1] {
		t.Fatalf("not newest-first: got %s, %s", list[0].ID, list[1].ID)
	}
}

func TestRepo_MySQL_ContactMessages(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	msg := domain.ContactMessage{
		Name:      "Asha",
		Email:     "asha@example.com",
		Message:   "Do you have late checkout on weekends?",
		RemoteIP:  "203.0.113.7",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := repo.SaveContactMessage(ctx, msg); err != nil {
		t.Fatalf("SaveContactMessage: %v", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM contact_messages WHERE email = ?", msg.Email).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 stored message, got %d", n)
	}
}
