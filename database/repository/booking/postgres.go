package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookly/database"
	"bookly/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements create the bookings table. The exclusion constraint is the
// storage-level guarantee that blocking bookings of one provider never overlap.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		provider_id TEXT NOT NULL,
		service_id  TEXT NOT NULL,
		start_at    TIMESTAMPTZ NOT NULL,
		end_at      TIMESTAMPTZ NOT NULL,
		status      TEXT NOT NULL,
		address     TEXT NOT NULL DEFAULT '',
		notes       TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL,
		CHECK (start_at < end_at)
	)`,
	`DO $$ BEGIN
		ALTER TABLE bookings ADD CONSTRAINT bookings_provider_no_overlap
			EXCLUDE USING gist (provider_id WITH =, tstzrange(start_at, end_at, '[)') WITH &&)
			WHERE (status NOT IN ('rejected', 'cancelled'));
	EXCEPTION WHEN duplicate_object OR duplicate_table THEN NULL;
	END $$`,
	`CREATE INDEX IF NOT EXISTS bookings_provider_created_idx ON bookings (provider_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS bookings_user_created_idx ON bookings (user_id, created_at DESC)`,
}

const bookingColumns = `id, user_id, provider_id, service_id, start_at, end_at, status, address, notes, created_at, updated_at`

type postgresBookingRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresBookingRepo constructs a BookingRepository on PostgreSQL.
func NewPostgresBookingRepo(pool *pgxpool.Pool) BookingRepository {
	return &postgresBookingRepo{pool: pool}
}

// EnsurePostgresSchema creates the bookings table, its indexes and the
// overlap exclusion constraint if they are missing.
func EnsurePostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply bookings schema: %w", err)
		}
	}
	return nil
}

// isExclusionViolation reports SQLSTATE 23P01.
func isExclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}

func (r *postgresBookingRepo) CreateIfFree(ctx context.Context, b *models.Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin booking transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Serialise creators for this provider; the exclusion constraint backs it up.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, b.ProviderID); err != nil {
		return fmt.Errorf("acquire provider lock: %w", err)
	}

	var n int
	err = tx.QueryRow(ctx, `
		SELECT count(*) FROM bookings
		WHERE provider_id = $1
			AND status NOT IN ('rejected', 'cancelled')
			AND start_at < $3
			AND end_at > $2
	`, b.ProviderID, b.Start, b.End).Scan(&n)
	if err != nil {
		return fmt.Errorf("overlap check: %w", err)
	}
	if n > 0 {
		return database.ErrSlotTaken
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, b.ID, b.UserID, b.ProviderID, b.ServiceID, b.Start, b.End, string(b.Status), b.Address, b.Notes, b.CreatedAt, b.UpdatedAt)
	if isExclusionViolation(err) {
		return database.ErrSlotTaken
	}
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isExclusionViolation(err) {
			return database.ErrSlotTaken
		}
		return fmt.Errorf("commit booking: %w", err)
	}
	return nil
}

func (r *postgresBookingRepo) FindOverlapping(ctx context.Context, providerID string, start, end time.Time) ([]models.Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE provider_id = $1
			AND status NOT IN ('rejected', 'cancelled')
			AND start_at < $3
			AND end_at > $2
		ORDER BY start_at ASC
	`, providerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query overlapping bookings: %w", err)
	}
	return collectBookings(rows)
}

func (r *postgresBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch booking %s: %w", id, err)
	}
	return &b, nil
}

func (r *postgresBookingRepo) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, at time.Time) (*models.Booking, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE bookings SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
		RETURNING `+bookingColumns, id, string(from), string(to), at)
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, database.ErrStatusChanged
	}
	if err != nil {
		return nil, fmt.Errorf("update booking %s status: %w", id, err)
	}
	return &b, nil
}

func (r *postgresBookingRepo) List(ctx context.Context, f ListFilter) ([]models.Booking, error) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if f.ProviderID != "" {
		add("provider_id = $%d", f.ProviderID)
	}
	if f.UserID != "" {
		add("user_id = $%d", f.UserID)
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

func scanBooking(row pgx.Row) (models.Booking, error) {
	var (
		b      models.Booking
		status string
	)
	err := row.Scan(&b.ID, &b.UserID, &b.ProviderID, &b.ServiceID, &b.Start, &b.End,
		&status, &b.Address, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return models.Booking{}, err
	}
	b.Status = models.BookingStatus(status)
	b.Start, b.End = b.Start.UTC(), b.End.UTC()
	b.CreatedAt, b.UpdatedAt = b.CreatedAt.UTC(), b.UpdatedAt.UTC()
	return b, nil
}

func collectBookings(rows pgx.Rows) ([]models.Booking, error) {
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}
