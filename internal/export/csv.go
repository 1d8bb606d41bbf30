// Package export renders computed breakdowns as machine-readable
// delimited text. Monetary values are plain numbers; currency symbols
// and locale formatting belong to presentation, not to the export.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rkeulen/autokosten/internal/models"
)

var header = []string{
	"plate",
	"brand",
	"model",
	"fuel_type",
	"purchase_price",
	"depreciation_pct",
	"consumption",
	"consumption_unit",
	"depreciation_month",
	"road_tax_month",
	"energy_month",
	"interest_month",
	"insurance_month",
	"maintenance_month",
	"total_excl_energy_month",
	"total_incl_energy_month",
	"lease_price_month",
	"lease_incl_energy_month",
	"lease_delta_month",
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WriteCSV writes one row per breakdown, preceded by a header row.
func WriteCSV(w io.Writer, breakdowns []models.CostBreakdown) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, b := range breakdowns {
		row := []string{
			b.Plate,
			b.Brand,
			b.Model,
			b.FuelType,
			money(b.PurchasePrice),
			strconv.FormatFloat(b.DepreciationPct, 'f', -1, 64),
			strconv.FormatFloat(b.Consumption, 'f', -1, 64),
			b.ConsumptionUnit,
			money(b.Depreciation),
			money(b.RoadTax),
			money(b.Energy),
			money(b.Interest),
			money(b.Insurance),
			money(b.Maintenance),
			money(b.TotalExclEnergy),
			money(b.TotalInclEnergy),
			money(b.LeasePrice),
			money(b.LeaseInclEnergy),
			money(b.LeaseDelta),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
