package domain

import "errors"

// Every failure the engine can answer with. BookingNotFound deliberately
// covers both "that seat has no booking" and "wrong last name or passport",
// so a cancellation attempt leaks nothing about other passengers' bookings.
var (
	ErrInvalidSeatFormat  = errors.New("invalid seat format")
	ErrSeatIsStorage      = errors.New("seat is a storage area")
	ErrSeatAlreadyBooked  = errors.New("seat already booked")
	ErrPlaneFullyBooked   = errors.New("airplane is fully booked")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrReferenceCollision = errors.New("booking reference already in use")
)
