package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeatID(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want SeatID
		ok   bool
	}{
		{name: "first seat", raw: "1A", want: SeatID{Row: 1, Column: 'A'}, ok: true},
		{name: "last seat", raw: "80F", want: SeatID{Row: 80, Column: 'F'}, ok: true},
		{name: "lowercase", raw: "12c", want: SeatID{Row: 12, Column: 'C'}, ok: true},
		{name: "surrounding spaces", raw: "  7d ", want: SeatID{Row: 7, Column: 'D'}, ok: true},
		{name: "row zero", raw: "0A", ok: false},
		{name: "row too high", raw: "81A", ok: false},
		{name: "unknown column", raw: "10G", ok: false},
		{name: "column only", raw: "A", ok: false},
		{name: "row only", raw: "12", ok: false},
		{name: "empty", raw: "", ok: false},
		{name: "garbage", raw: "seat 1A please", ok: false},
		{name: "negative row", raw: "-1A", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSeatID(tc.raw)
			if !tc.ok {
				assert.ErrorIs(t, err, ErrInvalidSeatFormat)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSeatIDString(t *testing.T) {
	assert.Equal(t, "42B", SeatID{Row: 42, Column: 'B'}.String())
}

func TestCapitalizeName(t *testing.T) {
	assert.Equal(t, "Smith", CapitalizeName("sMITH"))
	assert.Equal(t, "Smith", CapitalizeName("  smith "))
	assert.Equal(t, "O'brien", CapitalizeName("O'BRIEN"))
	assert.Equal(t, "", CapitalizeName("   "))
}
