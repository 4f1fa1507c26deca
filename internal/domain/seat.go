package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MinRow = 1
	MaxRow = 80

	// Columns is the fixed cabin layout, three seats either side of the aisle.
	Columns = "ABCDEF"
)

type FareClass string

const (
	FareWindow FareClass = "WINDOW"
	FareAisle  FareClass = "AISLE"
	FareMiddle FareClass = "MIDDLE"
)

// SeatID identifies one seat on the fixed layout, e.g. row 12 column C.
type SeatID struct {
	Row    int
	Column byte
}

func (s SeatID) String() string {
	return fmt.Sprintf("%d%c", s.Row, s.Column)
}

// ParseSeatID parses identifiers like "1A" or "80F", tolerating lowercase
// and surrounding whitespace. Anything outside row 1-80 / column A-F is
// ErrInvalidSeatFormat.
func ParseSeatID(raw string) (SeatID, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if len(raw) < 2 {
		return SeatID{}, ErrInvalidSeatFormat
	}
	col := raw[len(raw)-1]
	if !strings.Contains(Columns, string(col)) {
		return SeatID{}, ErrInvalidSeatFormat
	}
	row, err := strconv.Atoi(raw[:len(raw)-1])
	if err != nil || row < MinRow || row > MaxRow {
		return SeatID{}, ErrInvalidSeatFormat
	}
	return SeatID{Row: row, Column: col}, nil
}
