package models

import (
	"strings"
	"time"
)

// FuelTypeUnknown is reported when the registry's fuel dataset has no
// record for a plate. The base record is still usable without it.
const FuelTypeUnknown = "Onbekend"

// VehicleRecord holds the registry attributes for one vehicle. Optional
// numeric attributes are pointers: nil means the registry did not return
// the field (or returned something unparseable), which must never be
// confused with a real zero.
type VehicleRecord struct {
	Plate            string   `json:"plate" bson:"plate"`
	Brand            string   `json:"brand" bson:"brand"`
	Model            string   `json:"model" bson:"model"`
	ListPrice        *float64 `json:"list_price,omitempty" bson:"list_price,omitempty"`
	CurbWeightKG     *float64 `json:"curb_weight_kg,omitempty" bson:"curb_weight_kg,omitempty"`
	FuelType         string   `json:"fuel_type" bson:"fuel_type"`
	Color            string   `json:"color,omitempty" bson:"color,omitempty"`
	BuildYear        int      `json:"build_year,omitempty" bson:"build_year,omitempty"`
	FirstAdmission   string   `json:"first_admission,omitempty" bson:"first_admission,omitempty"`
	InspectionExpiry string   `json:"inspection_expiry,omitempty" bson:"inspection_expiry,omitempty"`
	CO2GramsPerKM    *float64 `json:"co2_grams_per_km,omitempty" bson:"co2_grams_per_km,omitempty"`

	// Consumption figures. WLTPElectric is stored by the registry in
	// tenths of kWh/100km, kept raw here; the resolver converts it.
	WLTPFuelCombined   *float64 `json:"wltp_fuel_combined,omitempty" bson:"wltp_fuel_combined,omitempty"`
	WLTPElectric       *float64 `json:"wltp_electric,omitempty" bson:"wltp_electric,omitempty"`
	LegacyFuelCombined *float64 `json:"legacy_fuel_combined,omitempty" bson:"legacy_fuel_combined,omitempty"`

	FetchedAt time.Time `json:"fetched_at" bson:"fetched_at"`
}

// IsElectric reports whether the fuel-type description marks an electric
// drivetrain. The registry uses variants like "Elektriciteit", so this is
// a case-insensitive substring match.
func (v *VehicleRecord) IsElectric() bool {
	return strings.Contains(strings.ToLower(v.FuelType), "elektr")
}

// NormalizePlate strips separators and whitespace from a plate and
// uppercases it. Every lookup and cache key uses the normalized form.
func NormalizePlate(plate string) string {
	plate = strings.TrimSpace(plate)
	plate = strings.ReplaceAll(plate, "-", "")
	plate = strings.ReplaceAll(plate, " ", "")
	return strings.ToUpper(plate)
}
