package domain

import (
	"strings"
	"unicode"
)

// Booking is one live reservation. Price is snapshotted at booking time and
// never recomputed. Bookings are never mutated in place: cancellation
// deletes the record, rebooking creates a fresh one under a new reference.
type Booking struct {
	Reference string
	Passport  string
	FirstName string
	LastName  string
	Seat      SeatID
	Price     int
}

// CapitalizeName normalizes a free-text name to stored form: first letter
// upper, the rest lower ("sMITH" -> "Smith"). Lookups capitalize the same
// way, so name matching stays case-insensitive end to end.
func CapitalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	runes := []rune(strings.ToLower(name))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
