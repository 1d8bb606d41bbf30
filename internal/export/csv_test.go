package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rkeulen/autokosten/internal/models"
)

func TestWriteCSV(t *testing.T) {
	breakdowns := []models.CostBreakdown{
		{
			Plate:           "12AB34",
			Brand:           "VOLKSWAGEN",
			Model:           "GOLF",
			FuelType:        "Benzine",
			PurchasePrice:   20000,
			DepreciationPct: 12,
			Consumption:     6.5,
			ConsumptionUnit: "L/100km",
			Depreciation:    200,
			RoadTax:         80,
			Energy:          146.25,
			Interest:        83.33,
			Insurance:       100,
			Maintenance:     50,
			TotalExclEnergy: 513.33,
			TotalInclEnergy: 659.58,
			LeasePrice:      450,
			LeaseInclEnergy: 596.25,
			LeaseDelta:      -63.33,
		},
	}

	var buf bytes.Buffer
	assert.NoError(t, WriteCSV(&buf, breakdowns))
	out := buf.String()

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, header, rows[0])
	assert.Len(t, rows[1], len(header))

	assert.Equal(t, "12AB34", rows[1][0])
	assert.Equal(t, "20000.00", rows[1][4])
	assert.Equal(t, "6.5", rows[1][6])
	assert.Equal(t, "L/100km", rows[1][7])
	assert.Equal(t, "146.25", rows[1][10])
	assert.Equal(t, "659.58", rows[1][15])
	assert.Equal(t, "-63.33", rows[1][18])

	// Plain numbers only, no currency or locale formatting.
	assert.NotContains(t, out, "€")
	assert.NotContains(t, strings.Split(out, "\n")[1], ",00")
}

func TestWriteCSV_EmptyInput(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}
