package email

import (
	"context"
	"fmt"

	"github.com/apacheair/seatbooking/internal/kafka"
)

// Sender turns booking events into passenger notifications. The transport
// is a stand-in: it formats the message and prints it, which is where an
// SMTP client would slot in.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(_ context.Context, event kafka.BookingEvent) error {
	switch event.Type {
	case "booking_created":
		fmt.Printf("notify %s %s: seat %s confirmed, reference %s, price $%d\n",
			event.FirstName, event.LastName, event.Seat, event.Reference, event.Price)
	case "booking_cancelled":
		fmt.Printf("notify %s: booking for seat %s cancelled\n", event.LastName, event.Seat)
	}
	return nil
}
