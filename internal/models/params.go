package models

// Params are the session-wide cost assumptions. A change applies to every
// vehicle that does not override the corresponding value.
type Params struct {
	AnnualKM               float64 `json:"annual_km" bson:"annual_km" yaml:"annual_km"`
	FuelPricePerLiter      float64 `json:"fuel_price_per_liter" bson:"fuel_price_per_liter" yaml:"fuel_price_per_liter"`
	ElectricityPricePerKWH float64 `json:"electricity_price_per_kwh" bson:"electricity_price_per_kwh" yaml:"electricity_price_per_kwh"`
	InterestRatePct        float64 `json:"interest_rate_pct" bson:"interest_rate_pct" yaml:"interest_rate_pct"`
	// NoClaimYears feeds the insurance no-claims discount: 3% per
	// claim-free year, capped at 30%. Zero leaves premiums untouched.
	NoClaimYears int `json:"no_claim_years" bson:"no_claim_years" yaml:"no_claim_years"`
}

// DefaultParams returns the assumptions used until the user edits them.
func DefaultParams() Params {
	return Params{
		AnnualKM:               15000,
		FuelPricePerLiter:      1.80,
		ElectricityPricePerKWH: 0.30,
		InterestRatePct:        5.0,
		NoClaimYears:           0,
	}
}

// Recognized per-vehicle override parameter names. Any other name is
// accepted but never read.
const (
	OverridePurchasePrice    = "purchase-price"
	OverrideDepreciationPct  = "depreciation-rate-pct"
	OverrideInsuranceMonth   = "insurance-per-month"
	OverrideLeasePriceMonth  = "lease-price-per-month"
	OverrideMaintenanceMonth = "maintenance-per-month"
)

// Overrides maps a normalized plate to parameter-name/value pairs that
// replace the global defaults for that vehicle only.
type Overrides map[string]map[string]float64

// Value returns the override for (plate, name) if one is set.
func (o Overrides) Value(plate, name string) (float64, bool) {
	if o == nil {
		return 0, false
	}
	params, ok := o[NormalizePlate(plate)]
	if !ok {
		return 0, false
	}
	v, ok := params[name]
	return v, ok
}

// Set stores an override, replacing any previous value.
func (o Overrides) Set(plate, name string, value float64) {
	plate = NormalizePlate(plate)
	if o[plate] == nil {
		o[plate] = make(map[string]float64)
	}
	o[plate][name] = value
}

// Remove drops a single override. Removing the last override for a plate
// drops the plate entry entirely.
func (o Overrides) Remove(plate, name string) {
	plate = NormalizePlate(plate)
	if params, ok := o[plate]; ok {
		delete(params, name)
		if len(params) == 0 {
			delete(o, plate)
		}
	}
}

// RemovePlate drops every override for a plate.
func (o Overrides) RemovePlate(plate string) {
	delete(o, NormalizePlate(plate))
}

// Clone returns a deep copy. Readers take a clone so the original and
// its inner maps can keep being mutated behind a lock.
func (o Overrides) Clone() Overrides {
	copied := make(Overrides, len(o))
	for plate, params := range o {
		inner := make(map[string]float64, len(params))
		for name, v := range params {
			inner[name] = v
		}
		copied[plate] = inner
	}
	return copied
}
