package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/apacheair/seatbooking/internal/domain"
)

// MemoryBookingStore keeps bookings in process memory behind a RWMutex. It
// backs the console session when no database is configured, and the engine
// tests. The mutex makes Insert and Remove single atomic primitives, same
// as the durable backends.
type MemoryBookingStore struct {
	mu     sync.RWMutex
	bySeat map[domain.SeatID]domain.Booking
	byRef  map[string]domain.SeatID
}

func NewMemoryBookingStore() *MemoryBookingStore {
	return &MemoryBookingStore{
		bySeat: make(map[domain.SeatID]domain.Booking),
		byRef:  make(map[string]domain.SeatID),
	}
}

func (s *MemoryBookingStore) IsBooked(_ context.Context, seat domain.SeatID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, booked := s.bySeat[seat]
	return booked, nil
}

func (s *MemoryBookingStore) CountBooked(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.bySeat), nil
}

func (s *MemoryBookingStore) Insert(_ context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.bySeat[booking.Seat]; taken {
		return domain.ErrSeatAlreadyBooked
	}
	if _, used := s.byRef[booking.Reference]; used {
		return domain.ErrReferenceCollision
	}

	s.bySeat[booking.Seat] = *booking
	s.byRef[booking.Reference] = booking.Seat
	return nil
}

func (s *MemoryBookingStore) Remove(_ context.Context, seat domain.SeatID, lastName, passport string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, booked := s.bySeat[seat]
	if !booked {
		return false, nil
	}
	// Last name case-insensitive, passport exact.
	if !strings.EqualFold(booking.LastName, lastName) || booking.Passport != passport {
		return false, nil
	}

	delete(s.bySeat, seat)
	delete(s.byRef, booking.Reference)
	return true, nil
}

func (s *MemoryBookingStore) FindByName(_ context.Context, firstName, lastName string) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var bookings []domain.Booking
	for _, b := range s.bySeat {
		if strings.EqualFold(b.FirstName, firstName) && strings.EqualFold(b.LastName, lastName) {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].Seat.Row != bookings[j].Seat.Row {
			return bookings[i].Seat.Row < bookings[j].Seat.Row
		}
		return bookings[i].Seat.Column < bookings[j].Seat.Column
	})
	return bookings, nil
}

func (s *MemoryBookingStore) AllBookedSeats(_ context.Context) (map[domain.SeatID]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seats := make(map[domain.SeatID]struct{}, len(s.bySeat))
	for seat := range s.bySeat {
		seats[seat] = struct{}{}
	}
	return seats, nil
}

func (s *MemoryBookingStore) References(_ context.Context) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	refs := make(map[string]struct{}, len(s.byRef))
	for ref := range s.byRef {
		refs[ref] = struct{}{}
	}
	return refs, nil
}

var _ BookingStore = (*MemoryBookingStore)(nil)
