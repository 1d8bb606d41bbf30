// Package costs derives a consumption figure from registry data and
// turns vehicle, tax and parameter inputs into a monthly cost breakdown.
package costs

import "github.com/rkeulen/autokosten/internal/models"

// Unit is the unit of a resolved consumption figure.
type Unit string

const (
	UnitLitersPer100KM Unit = "L/100km"
	UnitKWHPer100KM    Unit = "kWh/100km"
)

// The registry stores WLTP electric consumption in tenths of kWh/100km.
// When the field is missing this raw value stands in, matching a typical
// mid-size EV (17.0 kWh/100km).
const fallbackElectricTenths = 170

// ResolveConsumption picks a single consumption figure for a vehicle.
// Electric vehicles use the WLTP electric field (tenths, converted
// here); others prefer WLTP combined over the legacy combined figure.
// A result of 0 means unknown, never confirmed zero consumption.
func ResolveConsumption(rec *models.VehicleRecord) (float64, Unit) {
	if rec.IsElectric() {
		raw := float64(fallbackElectricTenths)
		if rec.WLTPElectric != nil {
			raw = *rec.WLTPElectric
		}
		return raw / 10, UnitKWHPer100KM
	}

	switch {
	case rec.WLTPFuelCombined != nil:
		return *rec.WLTPFuelCombined, UnitLitersPer100KM
	case rec.LegacyFuelCombined != nil:
		return *rec.LegacyFuelCombined, UnitLitersPer100KM
	}
	return 0, UnitLitersPer100KM
}
