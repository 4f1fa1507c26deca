package pricing

import (
	"testing"

	"github.com/apacheair/seatbooking/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()

	assert.Equal(t, 50, table.PriceFor(domain.FareWindow))
	assert.Equal(t, 40, table.PriceFor(domain.FareAisle))
	assert.Equal(t, 30, table.PriceFor(domain.FareMiddle))
}

func TestPriceForMissingEntryPanics(t *testing.T) {
	table := Table{domain.FareWindow: 50}

	assert.Panics(t, func() {
		table.PriceFor(domain.FareMiddle)
	})
}
