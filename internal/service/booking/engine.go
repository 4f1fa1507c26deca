package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/apacheair/seatbooking/internal/domain"
	"github.com/apacheair/seatbooking/internal/kafka"
	"github.com/apacheair/seatbooking/internal/pricing"
	"github.com/apacheair/seatbooking/internal/refgen"
	"github.com/apacheair/seatbooking/internal/repository"
	"github.com/apacheair/seatbooking/internal/seatmap"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	CheckAvailability(ctx context.Context, seatStr string) (*Availability, error)
	Book(ctx context.Context, input BookInput) (*domain.Booking, error)
	Cancel(ctx context.Context, seatStr, lastName, passport string) error
	Lookup(ctx context.Context, firstName, lastName string) ([]domain.Booking, error)
	SeatMapSnapshot(ctx context.Context) (Snapshot, error)
}

type SeatState string

const (
	SeatAvailable SeatState = "AVAILABLE"
	SeatReserved  SeatState = "RESERVED"
	SeatStorage   SeatState = "STORAGE"
)

// Availability answers a single-seat query. FareClass and Price are only
// set when the seat is available.
type Availability struct {
	Seat      domain.SeatID
	State     SeatState
	FareClass domain.FareClass
	Price     int
}

type BookInput struct {
	Seat      string `json:"seat"`
	Passport  string `json:"passport"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SeatStatus is one snapshot cell: a state, plus fare class and price when
// the seat is available.
type SeatStatus struct {
	State     SeatState
	FareClass domain.FareClass
	Price     int
}

// Snapshot is a read-consistent view of the whole layout, built from one
// store read combined with static layout data.
type Snapshot map[domain.SeatID]SeatStatus

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// BookingEngine owns all booking business rules. It caches nothing between
// calls: every operation re-reads the store, so it never observes stale
// occupancy.
type BookingEngine struct {
	store         repository.BookingStore
	layout        *seatmap.Layout
	prices        pricing.Table
	refs          *refgen.Generator
	producer      Producer
	bookingTopic  string
	log           *zap.Logger
	totalBookable int
}

type BookingEngineOption func(*BookingEngine)

// WithProducer enables the booking event stream. The engine stays fully
// functional without one; publish failures are logged and never affect the
// booking outcome.
func WithProducer(producer Producer, topic string) BookingEngineOption {
	return func(e *BookingEngine) {
		e.producer = producer
		e.bookingTopic = topic
	}
}

func NewBookingEngine(
	store repository.BookingStore,
	layout *seatmap.Layout,
	prices pricing.Table,
	refs *refgen.Generator,
	log *zap.Logger,
	opts ...BookingEngineOption,
) *BookingEngine {
	engine := &BookingEngine{
		store:  store,
		layout: layout,
		prices: prices,
		refs:   refs,
		log:    log.With(zap.String("component", "booking_engine")),
		// Computed once so the full-plane check cannot drift from the layout.
		totalBookable: layout.TotalBookable(),
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

func (e *BookingEngine) CheckAvailability(ctx context.Context, seatStr string) (*Availability, error) {
	seat, err := domain.ParseSeatID(seatStr)
	if err != nil {
		return nil, err
	}

	booked, err := e.store.IsBooked(ctx, seat)
	if err != nil {
		return nil, fmt.Errorf("check seat %s: %w", seat, err)
	}
	if booked {
		return &Availability{Seat: seat, State: SeatReserved}, nil
	}
	if e.layout.IsStorage(seat) {
		return &Availability{Seat: seat, State: SeatStorage}, nil
	}

	class := e.layout.FareClass(seat)
	return &Availability{
		Seat:      seat,
		State:     SeatAvailable,
		FareClass: class,
		Price:     e.prices.PriceFor(class),
	}, nil
}

func (e *BookingEngine) Book(ctx context.Context, input BookInput) (*domain.Booking, error) {
	// The full-plane check comes before any per-seat validation.
	count, err := e.store.CountBooked(ctx)
	if err != nil {
		return nil, fmt.Errorf("count booked: %w", err)
	}
	if count >= e.totalBookable {
		return nil, domain.ErrPlaneFullyBooked
	}

	seat, err := domain.ParseSeatID(input.Seat)
	if err != nil {
		return nil, err
	}
	if e.layout.IsStorage(seat) {
		return nil, domain.ErrSeatIsStorage
	}
	if input.Passport == "" {
		return nil, errors.New("passport is required")
	}
	if input.FirstName == "" || input.LastName == "" {
		return nil, errors.New("passenger name is required")
	}

	class := e.layout.FareClass(seat)
	booking := &domain.Booking{
		Passport:  input.Passport,
		FirstName: domain.CapitalizeName(input.FirstName),
		LastName:  domain.CapitalizeName(input.LastName),
		Seat:      seat,
		// Snapshotted here; never recomputed if the table later changes.
		Price: e.prices.PriceFor(class),
	}

	// Generate against the live reference set and insert. The store's own
	// reference constraint backstops the exclusion check, so a stale set
	// only costs another loop iteration, never a duplicate.
	for {
		existing, err := e.store.References(ctx)
		if err != nil {
			return nil, fmt.Errorf("read references: %w", err)
		}
		booking.Reference = e.refs.Generate(existing)

		err = e.store.Insert(ctx, booking)
		if errors.Is(err, domain.ErrReferenceCollision) {
			e.log.Debug("reference collision, regenerating", zap.String("reference", booking.Reference))
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	e.log.Info("seat booked",
		zap.String("seat", seat.String()),
		zap.String("reference", booking.Reference),
		zap.Int("price", booking.Price))
	e.publish(ctx, "booking_created", booking)
	return booking, nil
}

func (e *BookingEngine) Cancel(ctx context.Context, seatStr, lastName, passport string) error {
	seat, err := domain.ParseSeatID(seatStr)
	if err != nil {
		return err
	}

	removed, err := e.store.Remove(ctx, seat, lastName, passport)
	if err != nil {
		return fmt.Errorf("remove booking %s: %w", seat, err)
	}
	if !removed {
		// One answer for "not booked" and "wrong name or passport".
		return domain.ErrBookingNotFound
	}

	e.log.Info("booking cancelled", zap.String("seat", seat.String()))
	e.publish(ctx, "booking_cancelled", &domain.Booking{
		Seat:     seat,
		LastName: domain.CapitalizeName(lastName),
	})
	return nil
}

func (e *BookingEngine) Lookup(ctx context.Context, firstName, lastName string) ([]domain.Booking, error) {
	return e.store.FindByName(ctx, domain.CapitalizeName(firstName), domain.CapitalizeName(lastName))
}

func (e *BookingEngine) SeatMapSnapshot(ctx context.Context) (Snapshot, error) {
	booked, err := e.store.AllBookedSeats(ctx)
	if err != nil {
		return nil, fmt.Errorf("read booked seats: %w", err)
	}

	snapshot := make(Snapshot, e.layout.TotalSeats())
	for _, seat := range e.layout.AllSeats() {
		_, isBooked := booked[seat]
		switch {
		case isBooked:
			snapshot[seat] = SeatStatus{State: SeatReserved}
		case e.layout.IsStorage(seat):
			snapshot[seat] = SeatStatus{State: SeatStorage}
		default:
			class := e.layout.FareClass(seat)
			snapshot[seat] = SeatStatus{
				State:     SeatAvailable,
				FareClass: class,
				Price:     e.prices.PriceFor(class),
			}
		}
	}
	return snapshot, nil
}

func (e *BookingEngine) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if e.producer == nil || e.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		EventID:   kafka.NewEventID(),
		Type:      eventType,
		Reference: booking.Reference,
		Seat:      booking.Seat.String(),
		FirstName: booking.FirstName,
		LastName:  booking.LastName,
		FareClass: string(e.layout.FareClass(booking.Seat)),
		Price:     booking.Price,
	}
	if err := e.producer.Publish(ctx, e.bookingTopic, booking.Seat.String(), event); err != nil {
		e.log.Warn("publish booking event failed",
			zap.String("type", eventType),
			zap.String("seat", booking.Seat.String()),
			zap.Error(err))
	}
}

var _ BookingUseCase = (*BookingEngine)(nil)
