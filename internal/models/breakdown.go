package models

// CostBreakdown is the computed monthly cost picture for one vehicle. It
// echoes every input the engine used, so a row is auditable on its own,
// and is recomputed in full on every request.
type CostBreakdown struct {
	Plate    string `json:"plate"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	FuelType string `json:"fuel_type"`

	// Inputs as resolved (override, else global, else fallback).
	PurchasePrice    float64  `json:"purchase_price"`
	DepreciationPct  float64  `json:"depreciation_pct"`
	AnnualKM         float64  `json:"annual_km"`
	Consumption      float64  `json:"consumption"`
	ConsumptionUnit  string   `json:"consumption_unit"`
	EnergyPrice      float64  `json:"energy_price"`
	InterestRatePct  float64  `json:"interest_rate_pct"`
	InsuranceBase    float64  `json:"insurance_base"`
	NoClaimYears     int      `json:"no_claim_years"`
	TaxFound         bool     `json:"tax_found"`
	EstimatedRoadTax *float64 `json:"estimated_road_tax,omitempty"`

	// Derived monthly amounts.
	Depreciation    float64 `json:"depreciation"`
	RoadTax         float64 `json:"road_tax"`
	Energy          float64 `json:"energy"`
	Interest        float64 `json:"interest"`
	Insurance       float64 `json:"insurance"`
	Maintenance     float64 `json:"maintenance"`
	TotalExclEnergy float64 `json:"total_excl_energy"`
	TotalInclEnergy float64 `json:"total_incl_energy"`

	// Lease comparison. LeaseDelta = LeaseInclEnergy - TotalInclEnergy:
	// positive means leasing costs more than owning.
	LeasePrice      float64 `json:"lease_price"`
	LeaseInclEnergy float64 `json:"lease_incl_energy"`
	LeaseDelta      float64 `json:"lease_delta"`

	// Annual totals for the same figures.
	TotalExclEnergyYear float64 `json:"total_excl_energy_year"`
	TotalInclEnergyYear float64 `json:"total_incl_energy_year"`
}
