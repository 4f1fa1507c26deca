package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/apacheair/seatbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	redisBookingsKey = "bookings:by_seat"
	redisRefsKey     = "bookings:refs"
)

// RedisBookingStore keeps the booking set in a hash keyed by seat plus a
// reference membership set. Insert and Remove run their checks and writes
// under WATCH so each stays one atomic primitive.
type RedisBookingStore struct {
	client *redis.Client
}

func NewRedisBookingStore(client *redis.Client) *RedisBookingStore {
	return &RedisBookingStore{client: client}
}

type redisBooking struct {
	Reference string `json:"reference"`
	Passport  string `json:"passport"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Seat      string `json:"seat"`
	Price     int    `json:"price"`
}

func encodeBooking(b *domain.Booking) ([]byte, error) {
	return json.Marshal(redisBooking{
		Reference: b.Reference,
		Passport:  b.Passport,
		FirstName: b.FirstName,
		LastName:  b.LastName,
		Seat:      b.Seat.String(),
		Price:     b.Price,
	})
}

func decodeBooking(data string) (domain.Booking, error) {
	var rb redisBooking
	if err := json.Unmarshal([]byte(data), &rb); err != nil {
		return domain.Booking{}, err
	}
	seat, err := domain.ParseSeatID(rb.Seat)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("stored seat %q: %w", rb.Seat, err)
	}
	return domain.Booking{
		Reference: rb.Reference,
		Passport:  rb.Passport,
		FirstName: rb.FirstName,
		LastName:  rb.LastName,
		Seat:      seat,
		Price:     rb.Price,
	}, nil
}

func (r *RedisBookingStore) IsBooked(ctx context.Context, seat domain.SeatID) (bool, error) {
	return r.client.HExists(ctx, redisBookingsKey, seat.String()).Result()
}

func (r *RedisBookingStore) CountBooked(ctx context.Context) (int, error) {
	n, err := r.client.HLen(ctx, redisBookingsKey).Result()
	return int(n), err
}

func (r *RedisBookingStore) Insert(ctx context.Context, booking *domain.Booking) error {
	payload, err := encodeBooking(booking)
	if err != nil {
		return err
	}
	seat := booking.Seat.String()

	txf := func(tx *redis.Tx) error {
		taken, err := tx.HExists(ctx, redisBookingsKey, seat).Result()
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrSeatAlreadyBooked
		}
		used, err := tx.SIsMember(ctx, redisRefsKey, booking.Reference).Result()
		if err != nil {
			return err
		}
		if used {
			return domain.ErrReferenceCollision
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, redisBookingsKey, seat, payload)
			pipe.SAdd(ctx, redisRefsKey, booking.Reference)
			return nil
		})
		return err
	}

	return r.watch(ctx, txf)
}

func (r *RedisBookingStore) Remove(ctx context.Context, seat domain.SeatID, lastName, passport string) (bool, error) {
	removed := false

	txf := func(tx *redis.Tx) error {
		data, err := tx.HGet(ctx, redisBookingsKey, seat.String()).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		booking, err := decodeBooking(data)
		if err != nil {
			return err
		}
		if !strings.EqualFold(booking.LastName, lastName) || booking.Passport != passport {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HDel(ctx, redisBookingsKey, seat.String())
			pipe.SRem(ctx, redisRefsKey, booking.Reference)
			return nil
		})
		if err == nil {
			removed = true
		}
		return err
	}

	if err := r.watch(ctx, txf); err != nil {
		return false, err
	}
	return removed, nil
}

func (r *RedisBookingStore) FindByName(ctx context.Context, firstName, lastName string) ([]domain.Booking, error) {
	all, err := r.client.HGetAll(ctx, redisBookingsKey).Result()
	if err != nil {
		return nil, err
	}

	var bookings []domain.Booking
	for _, data := range all {
		b, err := decodeBooking(data)
		if err != nil {
			return nil, err
		}
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

func (r *RedisBookingStore) AllBookedSeats(ctx context.Context) (map[domain.SeatID]struct{}, error) {
	keys, err := r.client.HKeys(ctx, redisBookingsKey).Result()
	if err != nil {
		return nil, err
	}
	seats := make(map[domain.SeatID]struct{}, len(keys))
	for _, raw := range keys {
		id, err := domain.ParseSeatID(raw)
		if err != nil {
			return nil, fmt.Errorf("stored seat %q: %w", raw, err)
		}
		seats[id] = struct{}{}
	}
	return seats, nil
}

func (r *RedisBookingStore) References(ctx context.Context) (map[string]struct{}, error) {
	members, err := r.client.SMembers(ctx, redisRefsKey).Result()
	if err != nil {
		return nil, err
	}
	refs := make(map[string]struct{}, len(members))
	for _, ref := range members {
		refs[ref] = struct{}{}
	}
	return refs, nil
}

// watch retries on write conflicts, which a single-session deployment never
// produces but a shared Redis might.
func (r *RedisBookingStore) watch(ctx context.Context, txf func(tx *redis.Tx) error) error {
	for {
		err := r.client.Watch(ctx, txf, redisBookingsKey, redisRefsKey)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
}

var _ BookingStore = (*RedisBookingStore)(nil)
