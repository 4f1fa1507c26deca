package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/apacheair/seatbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = "seat, reference, passport, first_name, last_name, price"

type PGBookingStore struct {
	db *pgxpool.Pool
}

func NewPGBookingStore(db *pgxpool.Pool) *PGBookingStore {
	return &PGBookingStore{db: db}
}

// InitSchema creates the bookings table. The seat primary key and the
// reference unique constraint are the store's two uniqueness guarantees;
// Insert relies on their names to classify violations.
func (r *PGBookingStore) InitSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS bookings (
			seat       text PRIMARY KEY,
			reference  text NOT NULL CONSTRAINT bookings_reference_key UNIQUE,
			passport   text NOT NULL,
			first_name text NOT NULL,
			last_name  text NOT NULL,
			price      integer NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create bookings table: %w", err)
	}
	return nil
}

func (r *PGBookingStore) IsBooked(ctx context.Context, seat domain.SeatID) (bool, error) {
	var booked bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE seat=$1)`, seat.String()).Scan(&booked)
	return booked, err
}

func (r *PGBookingStore) CountBooked(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM bookings`).Scan(&count)
	return count, err
}

func (r *PGBookingStore) Insert(ctx context.Context, booking *domain.Booking) error {
	_, err := r.db.Exec(ctx, `INSERT INTO bookings (`+bookingColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		booking.Seat.String(), booking.Reference, booking.Passport, booking.FirstName, booking.LastName, booking.Price)
	if err == nil {
		return nil
	}

	// 23505 is unique_violation; the constraint name tells seat and
	// reference conflicts apart.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "reference") {
			return domain.ErrReferenceCollision
		}
		return domain.ErrSeatAlreadyBooked
	}
	return err
}

func (r *PGBookingStore) Remove(ctx context.Context, seat domain.SeatID, lastName, passport string) (bool, error) {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM bookings WHERE seat=$1 AND lower(last_name)=lower($2) AND passport=$3`,
		seat.String(), lastName, passport)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGBookingStore) FindByName(ctx context.Context, firstName, lastName string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE lower(first_name)=lower($1) AND lower(last_name)=lower($2) ORDER BY seat`,
		firstName, lastName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		var seat string
		if err := rows.Scan(&seat, &b.Reference, &b.Passport, &b.FirstName, &b.LastName, &b.Price); err != nil {
			return nil, err
		}
		if b.Seat, err = domain.ParseSeatID(seat); err != nil {
			return nil, fmt.Errorf("stored seat %q: %w", seat, err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingStore) AllBookedSeats(ctx context.Context) (map[domain.SeatID]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT seat FROM bookings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make(map[domain.SeatID]struct{})
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		id, err := domain.ParseSeatID(raw)
		if err != nil {
			return nil, fmt.Errorf("stored seat %q: %w", raw, err)
		}
		seats[id] = struct{}{}
	}
	return seats, rows.Err()
}

func (r *PGBookingStore) References(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT reference FROM bookings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	refs := make(map[string]struct{})
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, err
		}
		refs[ref] = struct{}{}
	}
	return refs, rows.Err()
}

var _ BookingStore = (*PGBookingStore)(nil)
