// Package pricing maps fare classes to fixed ticket prices.
package pricing

import (
	"fmt"

	"github.com/apacheair/seatbooking/internal/domain"
)

// Table prices every fare class. There is no fallback: a missing entry is a
// programming error, not a runtime condition callers can hit.
type Table map[domain.FareClass]int

// DefaultTable is the published pricing, in whole dollars.
func DefaultTable() Table {
	return Table{
		domain.FareWindow: 50,
		domain.FareAisle:  40,
		domain.FareMiddle: 30,
	}
}

func (t Table) PriceFor(class domain.FareClass) int {
	price, ok := t[class]
	if !ok {
		panic(fmt.Sprintf("pricing: no entry for fare class %q", class))
	}
	return price
}
