package console

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"

	"github.com/apacheair/seatbooking/internal/pricing"
	"github.com/apacheair/seatbooking/internal/refgen"
	"github.com/apacheair/seatbooking/internal/repository"
	"github.com/apacheair/seatbooking/internal/seatmap"
	"github.com/apacheair/seatbooking/internal/service/booking"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newEngine() *booking.BookingEngine {
	return booking.NewBookingEngine(
		repository.NewMemoryBookingStore(),
		seatmap.NewLayout(),
		pricing.DefaultTable(),
		refgen.NewWithSource(rand.NewSource(1)),
		zap.NewNop(),
	)
}

// run feeds the scripted lines to a fresh console and returns everything it
// printed.
func run(t *testing.T, engine booking.BookingUseCase, lines ...string) string {
	t.Helper()
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer
	c := New(engine, in, &out)
	assert.NoError(t, c.Run(context.Background()))
	return out.String()
}

func TestMenuExit(t *testing.T) {
	out := run(t, newEngine(), "6")
	assert.Contains(t, out, "| Apache Airlines Booking System |")
	assert.Contains(t, out, "Exiting Program")
}

func TestCheckAvailability(t *testing.T) {
	out := run(t, newEngine(),
		"1", "1A",
		"1", "77D",
		"1", "banana",
		"6")

	assert.Contains(t, out, "Seat 1A: Available (Window Seat - $50)")
	assert.Contains(t, out, "Seat 77D: Storage (Not Bookable)")
	assert.Contains(t, out, "Invalid seat! Format must be 1A-80F.")
}

func TestBookAndFreeSeat(t *testing.T) {
	engine := newEngine()

	out := run(t, engine,
		"2", "1A", "X1234567", "john", "smith", "Y",
		"1", "1A",
		"3", "1A", "SMITH", "X1234567",
		"1", "1A",
		"6")

	assert.Contains(t, out, "Price: $50 (Window seat). Confirm? (Y/N):")
	assert.Contains(t, out, "Booked 1A for $50! Reference: ")
	assert.Contains(t, out, "Seat 1A: Reserved")
	assert.Contains(t, out, "Freed 1A!")
	// After freeing, the seat reads available again.
	assert.Contains(t, out, "Seat 1A: Available (Window Seat - $50)")
}

func TestBookDeclinedAtConfirmation(t *testing.T) {
	engine := newEngine()

	out := run(t, engine,
		"2", "2C", "X1234567", "John", "Smith", "N",
		"1", "2C",
		"6")

	assert.Contains(t, out, "Booking cancelled.")
	assert.Contains(t, out, "Seat 2C: Available (Aisle Seat - $40)")
}

func TestFreeSeatWrongPassport(t *testing.T) {
	engine := newEngine()

	out := run(t, engine,
		"2", "1A", "X1234567", "John", "Smith", "Y",
		"3", "1A", "Smith", "WRONG",
		"1", "1A",
		"6")

	assert.Contains(t, out, "No matching booking found. Check seat, last name and passport.")
	assert.Contains(t, out, "Seat 1A: Reserved")
}

func TestShowBookingStatus(t *testing.T) {
	engine := newEngine()

	out := run(t, engine,
		"2", "1A", "X1234567", "John", "Smith", "Y",
		"4",
		"6")

	lines := strings.Split(out, "\n")
	var first, storageRow string
	for _, line := range lines {
		if strings.HasPrefix(line, "R   1B") {
			first = line
		}
		if strings.HasPrefix(line, "77A") {
			storageRow = line
		}
	}
	// Row 1: booked 1A shows R, the rest show their labels around the aisle.
	assert.Equal(t, "R   1B  1C   X  1D  1E  1F", strings.TrimRight(first, " "))
	// Row 77: D-F are the storage block.
	assert.Equal(t, "77A 77B 77C  X  S   S   S", strings.TrimRight(storageRow, " "))
}

func TestFindBookings(t *testing.T) {
	engine := newEngine()

	out := run(t, engine,
		"2", "1A", "X1234567", "John", "Smith", "Y",
		"5", "JOHN", "smith",
		"5", "Jane", "Doe",
		"6")

	assert.Contains(t, out, "Seat 1A   Reference ")
	assert.Contains(t, out, "No bookings found.")
}

func TestInvalidMenuChoice(t *testing.T) {
	out := run(t, newEngine(), "9", "6")
	assert.Contains(t, out, "Invalid choice. Try again.")
}
