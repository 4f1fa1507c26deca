package repository

import (
	"context"

	"github.com/apacheair/seatbooking/internal/domain"
)

// BookingStore is the durable record of live bookings, keyed by seat with a
// secondary unique index on reference. Insert and Remove are atomic
// primitives: the uniqueness checks and the write never run as separate
// store calls, so the contract survives a future multi-actor deployment.
//
// Three backends satisfy it: Postgres, Redis and an in-memory map. They are
// interchangeable via config.
type BookingStore interface {
	IsBooked(ctx context.Context, seat domain.SeatID) (bool, error)
	CountBooked(ctx context.Context) (int, error)

	// Insert persists the booking, failing with domain.ErrSeatAlreadyBooked
	// or domain.ErrReferenceCollision when a uniqueness constraint trips.
	Insert(ctx context.Context, booking *domain.Booking) error

	// Remove deletes the booking only when the seat, last name
	// (case-insensitive) and passport (exact) all match, and reports
	// whether a deletion happened.
	Remove(ctx context.Context, seat domain.SeatID, lastName, passport string) (bool, error)

	// FindByName matches stored capitalized names case-insensitively.
	FindByName(ctx context.Context, firstName, lastName string) ([]domain.Booking, error)

	AllBookedSeats(ctx context.Context) (map[domain.SeatID]struct{}, error)

	// References returns every live booking reference, the exclusion set
	// for reference generation. Always read fresh, never cached.
	References(ctx context.Context) (map[string]struct{}, error)
}
