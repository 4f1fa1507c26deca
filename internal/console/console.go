// Package console is the interactive text front end: a numbered menu, free
// text prompts and an ASCII seat map. It owns no booking state; every
// screen is rendered from a fresh engine query, and every engine error
// becomes a message followed by the menu again.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/apacheair/seatbooking/internal/domain"
	"github.com/apacheair/seatbooking/internal/service/booking"
)

type Console struct {
	engine booking.BookingUseCase
	in     *bufio.Scanner
	out    io.Writer
}

func New(engine booking.BookingUseCase, in io.Reader, out io.Writer) *Console {
	return &Console{
		engine: engine,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run drives the menu until the user exits or input runs out.
func (c *Console) Run(ctx context.Context) error {
	for {
		c.printMenu()
		choice, ok := c.prompt("Select an option (1-6): ")
		if !ok {
			return nil
		}
		switch strings.TrimSpace(choice) {
		case "1":
			c.checkAvailability(ctx)
		case "2":
			c.bookSeat(ctx)
		case "3":
			c.freeSeat(ctx)
		case "4":
			c.showBookingStatus(ctx)
		case "5":
			c.findBookings(ctx)
		case "6":
			fmt.Fprintln(c.out, "Exiting Program")
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid choice. Try again.")
		}
	}
}

func (c *Console) printMenu() {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "| Apache Airlines Booking System |")
	fmt.Fprintln(c.out, "1. Check availability of seat")
	fmt.Fprintln(c.out, "2. Book a seat")
	fmt.Fprintln(c.out, "3. Free a seat")
	fmt.Fprintln(c.out, "4. Show booking status")
	fmt.Fprintln(c.out, "5. Find my bookings")
	fmt.Fprintln(c.out, "6. Exit program")
}

func (c *Console) checkAvailability(ctx context.Context) {
	seat, ok := c.prompt("\nEnter seat number (e.g., 1A): ")
	if !ok {
		return
	}

	avail, err := c.engine.CheckAvailability(ctx, seat)
	if err != nil {
		c.printError(err)
		return
	}
	switch avail.State {
	case booking.SeatReserved:
		fmt.Fprintf(c.out, "Seat %s: Reserved\n", avail.Seat)
	case booking.SeatStorage:
		fmt.Fprintf(c.out, "Seat %s: Storage (Not Bookable)\n", avail.Seat)
	default:
		fmt.Fprintf(c.out, "Seat %s: Available (%s Seat - $%d)\n",
			avail.Seat, fareLabel(avail.FareClass), avail.Price)
	}
}

func (c *Console) bookSeat(ctx context.Context) {
	seat, ok := c.prompt("\nEnter seat to book (Window: 50$, Aisle: 40$, Middle: 30$) (eg. 1F): ")
	if !ok {
		return
	}

	// Quote the price before collecting passenger details.
	avail, err := c.engine.CheckAvailability(ctx, seat)
	if err != nil {
		c.printError(err)
		return
	}
	if avail.State != booking.SeatAvailable {
		if avail.State == booking.SeatStorage {
			c.printError(domain.ErrSeatIsStorage)
		} else {
			c.printError(domain.ErrSeatAlreadyBooked)
		}
		return
	}

	passport, ok := c.prompt("Passport number: ")
	if !ok {
		return
	}
	first, ok := c.prompt("First name: ")
	if !ok {
		return
	}
	last, ok := c.prompt("Last name: ")
	if !ok {
		return
	}

	confirm, ok := c.prompt(fmt.Sprintf("Price: $%d (%s seat). Confirm? (Y/N): ", avail.Price, fareLabel(avail.FareClass)))
	if !ok || !strings.EqualFold(strings.TrimSpace(confirm), "Y") {
		fmt.Fprintln(c.out, "Booking cancelled.")
		return
	}

	booked, err := c.engine.Book(ctx, booking.BookInput{
		Seat:      seat,
		Passport:  strings.TrimSpace(passport),
		FirstName: domain.CapitalizeName(first),
		LastName:  domain.CapitalizeName(last),
	})
	if err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintf(c.out, "Booked %s for $%d! Reference: %s\n", booked.Seat, booked.Price, booked.Reference)
}

func (c *Console) freeSeat(ctx context.Context) {
	seat, ok := c.prompt("\nEnter seat to free (e.g., 1A): ")
	if !ok {
		return
	}
	last, ok := c.prompt("Last name: ")
	if !ok {
		return
	}
	passport, ok := c.prompt("Passport number: ")
	if !ok {
		return
	}

	err := c.engine.Cancel(ctx, seat, domain.CapitalizeName(last), strings.TrimSpace(passport))
	if err != nil {
		c.printError(err)
		return
	}
	fmt.Fprintf(c.out, "Freed %s!\n", strings.ToUpper(strings.TrimSpace(seat)))
}

// showBookingStatus prints the plane row by row: columns A-F with an X
// marker for the aisle, R for reserved, S for storage, and the seat label
// when free. Cells are padded to four characters to keep columns aligned.
func (c *Console) showBookingStatus(ctx context.Context) {
	snapshot, err := c.engine.SeatMapSnapshot(ctx)
	if err != nil {
		c.printError(err)
		return
	}

	fmt.Fprintln(c.out)
	for row := domain.MinRow; row <= domain.MaxRow; row++ {
		var line strings.Builder
		for _, col := range []byte("ABCXDEF") {
			if col == 'X' {
				line.WriteString(fmt.Sprintf("%-4s", " X"))
				continue
			}
			seat := domain.SeatID{Row: row, Column: col}
			var cell string
			switch snapshot[seat].State {
			case booking.SeatReserved:
				cell = "R"
			case booking.SeatStorage:
				cell = "S"
			default:
				cell = seat.String()
			}
			line.WriteString(fmt.Sprintf("%-4s", cell))
		}
		fmt.Fprintln(c.out, line.String())
	}
}

func (c *Console) findBookings(ctx context.Context) {
	first, ok := c.prompt("\nFirst name: ")
	if !ok {
		return
	}
	last, ok := c.prompt("Last name: ")
	if !ok {
		return
	}

	bookings, err := c.engine.Lookup(ctx, first, last)
	if err != nil {
		c.printError(err)
		return
	}
	if len(bookings) == 0 {
		fmt.Fprintln(c.out, "No bookings found.")
		return
	}
	for _, b := range bookings {
		fmt.Fprintf(c.out, "Seat %-4s Reference %s  $%d\n", b.Seat, b.Reference, b.Price)
	}
}

func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

func (c *Console) printError(err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidSeatFormat):
		fmt.Fprintln(c.out, "Invalid seat! Format must be 1A-80F. Try again.")
	case errors.Is(err, domain.ErrSeatIsStorage):
		fmt.Fprintln(c.out, "Cannot book storage area (S). Try again.")
	case errors.Is(err, domain.ErrSeatAlreadyBooked):
		fmt.Fprintln(c.out, "Seat already booked. Try again.")
	case errors.Is(err, domain.ErrPlaneFullyBooked):
		fmt.Fprintln(c.out, "Airplane is fully booked. No seats available.")
	case errors.Is(err, domain.ErrBookingNotFound):
		fmt.Fprintln(c.out, "No matching booking found. Check seat, last name and passport.")
	default:
		fmt.Fprintf(c.out, "Something went wrong: %v\n", err)
	}
}

func fareLabel(class domain.FareClass) string {
	return domain.CapitalizeName(string(class))
}
