// Package seatmap holds the static cabin layout: which seats exist, which
// belong to the rear storage block, and how columns map to fare classes.
// Everything here is derived from fixed constants at startup; nothing is
// persisted.
package seatmap

import (
	"github.com/apacheair/seatbooking/internal/domain"
)

// Layout describes the single fixed aircraft: 80 rows by 6 columns, with a
// storage block at rows 77-78, columns D-F, that is never bookable.
type Layout struct {
	storage map[domain.SeatID]struct{}
}

func NewLayout() *Layout {
	storage := make(map[domain.SeatID]struct{})
	for row := 77; row <= 78; row++ {
		for _, col := range []byte{'D', 'E', 'F'} {
			storage[domain.SeatID{Row: row, Column: col}] = struct{}{}
		}
	}
	return &Layout{storage: storage}
}

func (l *Layout) IsValidSeat(id domain.SeatID) bool {
	return id.Row >= domain.MinRow && id.Row <= domain.MaxRow &&
		containsColumn(id.Column)
}

func (l *Layout) IsStorage(id domain.SeatID) bool {
	_, ok := l.storage[id]
	return ok
}

// FareClass derives the seat's fare class from its column: the two outer
// columns are window, the two flanking the aisle are aisle, the rest middle.
func (l *Layout) FareClass(id domain.SeatID) domain.FareClass {
	switch id.Column {
	case 'A', 'F':
		return domain.FareWindow
	case 'C', 'D':
		return domain.FareAisle
	default:
		return domain.FareMiddle
	}
}

// TotalSeats counts every addressable seat, storage included.
func (l *Layout) TotalSeats() int {
	return (domain.MaxRow - domain.MinRow + 1) * len(domain.Columns)
}

// TotalBookable is TotalSeats minus the storage block. The full-plane check
// in the engine compares against this once-computed figure.
func (l *Layout) TotalBookable() int {
	return l.TotalSeats() - len(l.storage)
}

// AllSeats lists the whole layout in row-major order, for rendering.
func (l *Layout) AllSeats() []domain.SeatID {
	seats := make([]domain.SeatID, 0, l.TotalSeats())
	for row := domain.MinRow; row <= domain.MaxRow; row++ {
		for i := 0; i < len(domain.Columns); i++ {
			seats = append(seats, domain.SeatID{Row: row, Column: domain.Columns[i]})
		}
	}
	return seats
}

func containsColumn(col byte) bool {
	for i := 0; i < len(domain.Columns); i++ {
		if domain.Columns[i] == col {
			return true
		}
	}
	return false
}
