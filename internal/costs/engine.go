package costs

import (
	"math"

	"github.com/rkeulen/autokosten/internal/models"
	"github.com/rkeulen/autokosten/internal/roadtax"
)

// Fixed fallbacks used when neither an override nor another source
// provides a value.
const (
	FallbackPurchasePrice    = 15000.0
	FallbackDepreciationPct  = 12.0
	FallbackInsuranceMonth   = 100.0
	FallbackMaintenanceMonth = 75.0
	FallbackLeaseMonth       = 450.0
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// noClaimFactor discounts the insurance premium by 3% per claim-free
// year, capped at 30%.
func noClaimFactor(years int) float64 {
	if years < 0 {
		years = 0
	}
	return 1 - math.Min(float64(years)*0.03, 0.30)
}

// Compute produces the full monthly breakdown for one vehicle. It is a
// pure function of its inputs: the only precedence is per-plate override,
// else global default, else fixed fallback. Missing external data
// degrades to a documented default; negative results pass through
// unclamped.
func Compute(rec *models.VehicleRecord, tax models.TaxAmount, consumption float64, unit Unit, params models.Params, overrides models.Overrides) models.CostBreakdown {
	plate := models.NormalizePlate(rec.Plate)

	resolve := func(name string, fallback float64) float64 {
		if v, ok := overrides.Value(plate, name); ok {
			return v
		}
		return fallback
	}

	purchaseFallback := FallbackPurchasePrice
	if rec.ListPrice != nil {
		purchaseFallback = *rec.ListPrice
	}
	purchase := resolve(models.OverridePurchasePrice, purchaseFallback)
	depPct := resolve(models.OverrideDepreciationPct, FallbackDepreciationPct)
	insuranceBase := resolve(models.OverrideInsuranceMonth, FallbackInsuranceMonth)
	maintenance := round2(resolve(models.OverrideMaintenanceMonth, FallbackMaintenanceMonth))
	leasePrice := round2(resolve(models.OverrideLeasePriceMonth, FallbackLeaseMonth))

	energyPrice := params.FuelPricePerLiter
	if unit == UnitKWHPer100KM {
		energyPrice = params.ElectricityPricePerKWH
	}
	energyYear := (params.AnnualKM / 100) * consumption * energyPrice

	depreciation := round2(purchase * (depPct / 100) / 12)
	interest := round2(purchase * (params.InterestRatePct / 100) / 12)
	insurance := round2(insuranceBase * noClaimFactor(params.NoClaimYears))
	energy := round2(energyYear / 12)
	roadTax := round2(tax.MonthlyAmount)
	if !tax.Found {
		roadTax = 0
	}

	totalExcl := depreciation + interest + insurance + maintenance + roadTax
	totalIncl := totalExcl + energy
	leaseIncl := leasePrice + energy

	b := models.CostBreakdown{
		Plate:    plate,
		Brand:    rec.Brand,
		Model:    rec.Model,
		FuelType: rec.FuelType,

		PurchasePrice:   purchase,
		DepreciationPct: depPct,
		AnnualKM:        params.AnnualKM,
		Consumption:     consumption,
		ConsumptionUnit: string(unit),
		EnergyPrice:     energyPrice,
		InterestRatePct: params.InterestRatePct,
		InsuranceBase:   insuranceBase,
		NoClaimYears:    params.NoClaimYears,
		TaxFound:        tax.Found,

		Depreciation:    depreciation,
		RoadTax:         roadTax,
		Energy:          energy,
		Interest:        interest,
		Insurance:       insurance,
		Maintenance:     maintenance,
		TotalExclEnergy: totalExcl,
		TotalInclEnergy: totalIncl,

		LeasePrice:      leasePrice,
		LeaseInclEnergy: leaseIncl,
		LeaseDelta:      leaseIncl - totalIncl,

		TotalExclEnergyYear: round2(totalExcl * 12),
		TotalInclEnergyYear: round2(totalIncl * 12),
	}

	// When the lookup had no row for the jurisdiction, attach the
	// weight-band estimate for reference. The totals stay on the
	// looked-up amount.
	if !tax.Found && rec.CurbWeightKG != nil {
		estimate := roadtax.EstimateMonthly(*rec.CurbWeightKG, rec.FuelType)
		b.EstimatedRoadTax = &estimate
	}

	return b
}
