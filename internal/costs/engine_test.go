package costs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rkeulen/autokosten/internal/models"
)

func testParams() models.Params {
	return models.Params{
		AnnualKM:          15000,
		FuelPricePerLiter: 1.80,
		InterestRatePct:   5.0,
	}
}

// Matches the worked example: purchase 20000, depreciation 12%, interest
// 5%, zero tax, insurance 150, maintenance 80, 15000 km at 6.5 L/100km
// and 1.80/L.
func TestCompute_WorkedExample(t *testing.T) {
	rec := &models.VehicleRecord{Plate: "12AB34", FuelType: "Benzine"}
	overrides := make(models.Overrides)
	overrides.Set("12AB34", models.OverridePurchasePrice, 20000)
	overrides.Set("12AB34", models.OverrideDepreciationPct, 12)
	overrides.Set("12AB34", models.OverrideInsuranceMonth, 150)
	overrides.Set("12AB34", models.OverrideMaintenanceMonth, 80)

	tax := models.TaxAmount{Found: true, MonthlyAmount: 0}
	b := Compute(rec, tax, 6.5, UnitLitersPer100KM, testParams(), overrides)

	assert.Equal(t, 200.00, b.Depreciation)
	assert.Equal(t, 146.25, b.Energy)
	assert.Equal(t, 83.33, b.Interest)
	assert.Equal(t, 150.0, b.Insurance)
	assert.Equal(t, 80.0, b.Maintenance)
	assert.Equal(t, 0.0, b.RoadTax)
	assert.InDelta(t, 513.33, b.TotalExclEnergy, 1e-9)
	assert.InDelta(t, 659.58, b.TotalInclEnergy, 1e-9)
}

func TestCompute_TotalInvariant(t *testing.T) {
	rec := &models.VehicleRecord{Plate: "12AB34", FuelType: "Benzine", ListPrice: f(28500)}
	tax := models.TaxAmount{Found: true, MonthlyAmount: 56}
	b := Compute(rec, tax, 6.2, UnitLitersPer100KM, testParams(), nil)

	// Exact, not approximate: incl is computed as excl + energy.
	assert.Equal(t, b.TotalExclEnergy+b.Energy, b.TotalInclEnergy)
	assert.Equal(t, b.Depreciation+b.Interest+b.Insurance+b.Maintenance+b.RoadTax, b.TotalExclEnergy)
}

func TestCompute_OverridePrecedenceAndRevert(t *testing.T) {
	rec := &models.VehicleRecord{Plate: "12AB34", FuelType: "Benzine", ListPrice: f(30000)}
	tax := models.TaxAmount{Found: true}

	overrides := make(models.Overrides)
	overrides.Set("12-AB-34", models.OverridePurchasePrice, 10000)

	withOverride := Compute(rec, tax, 6.5, UnitLitersPer100KM, testParams(), overrides)
	assert.Equal(t, 10000.0, withOverride.PurchasePrice)

	overrides.Remove("12AB34", models.OverridePurchasePrice)
	reverted := Compute(rec, tax, 6.5, UnitLitersPer100KM, testParams(), overrides)
	assert.Equal(t, 30000.0, reverted.PurchasePrice)
}

func TestCompute_Idempotent(t *testing.T) {
	rec := &models.VehicleRecord{Plate: "12AB34", FuelType: "Benzine", ListPrice: f(28500)}
	tax := models.TaxAmount{Found: true, MonthlyAmount: 56}

	a := Compute(rec, tax, 6.2, UnitLitersPer100KM, testParams(), nil)
	b := Compute(rec, tax, 6.2, UnitLitersPer100KM, testParams(), nil)
	assert.Equal(t, a, b)
}

func TestCompute_ElectricUsesElectricityPrice(t *testing.T) {
	rec := &models.VehicleRecord{Plate: "12AB34", FuelType: "Elektriciteit", ListPrice: f(40000)}
	params := testParams()
	params.ElectricityPricePerKWH = 0.30

	b := Compute(rec, models.TaxAmount{Found: true}, 17.0, UnitKWHPer100KM, params, nil)
	assert.Equal(t, 0.30, b.EnergyPrice)
	// 15000/100 * 17.0 * 0.30 / 12 = 63.75
	assert.Equal(t, 63.75, b.Energy)
}

func TestCompute_PurchasePriceFallback(t *testing.T) {
	rec := &models.VehicleRecord{Plate: "12AB34", FuelType: "Benzine"}
	b := Compute(rec, models.TaxAmount{Found: true}, 6.5, UnitLitersPer100KM, testParams(), nil)
	assert.Equal(t, FallbackPurchasePrice, b.PurchasePrice)
}

func TestCompute_TaxNotFoundIsZeroWithEstimate(t *testing.T) {
	rec := &models.VehicleRecord{Plate: "12AB34", FuelType: "Diesel", CurbWeightKG: f(1500)}
	b := Compute(rec, models.TaxAmount{Found: false, MonthlyAmount: 0}, 5.0, UnitLitersPer100KM, testParams(), nil)

	assert.False(t, b.TaxFound)
	assert.Equal(t, 0.0, b.RoadTax)
	if assert.NotNil(t, b.EstimatedRoadTax) {
		assert.Equal(t, 160.0, *b.EstimatedRoadTax)
	}
}

func TestCompute_LeaseDeltaSign(t *testing.T) {
	rec := &models.VehicleRecord{Plate: "12AB34", FuelType: "Benzine", ListPrice: f(20000)}
	overrides := make(models.Overrides)
	overrides.Set("12AB34", models.OverrideLeasePriceMonth, 10000)

	b := Compute(rec, models.TaxAmount{Found: true}, 6.5, UnitLitersPer100KM, testParams(), overrides)
	// An absurdly expensive lease must yield a positive delta.
	assert.Greater(t, b.LeaseDelta, 0.0)
	assert.Equal(t, b.LeaseInclEnergy-b.TotalInclEnergy, b.LeaseDelta)
}

func TestCompute_NegativeTotalPassesThrough(t *testing.T) {
	rec := &models.VehicleRecord{Plate: "12AB34", FuelType: "Benzine"}
	overrides := make(models.Overrides)
	overrides.Set("12AB34", models.OverridePurchasePrice, 0)
	overrides.Set("12AB34", models.OverrideInsuranceMonth, -500)
	overrides.Set("12AB34", models.OverrideMaintenanceMonth, 0)

	b := Compute(rec, models.TaxAmount{Found: true}, 0, UnitLitersPer100KM, testParams(), overrides)
	assert.Less(t, b.TotalExclEnergy, 0.0)
}

func TestNoClaimFactor(t *testing.T) {
	assert.Equal(t, 1.0, noClaimFactor(0))
	assert.InDelta(t, 0.85, noClaimFactor(5), 1e-9)
	assert.InDelta(t, 0.70, noClaimFactor(10), 1e-9)
	// Capped at 30%.
	assert.InDelta(t, 0.70, noClaimFactor(25), 1e-9)
	assert.Equal(t, 1.0, noClaimFactor(-3))
}

func TestCompute_UnrecognizedOverrideIsInert(t *testing.T) {
	rec := &models.VehicleRecord{Plate: "12AB34", FuelType: "Benzine", ListPrice: f(20000)}
	overrides := make(models.Overrides)
	overrides.Set("12AB34", "fuel-price-per-liter", 99)

	plain := Compute(rec, models.TaxAmount{Found: true}, 6.5, UnitLitersPer100KM, testParams(), nil)
	with := Compute(rec, models.TaxAmount{Found: true}, 6.5, UnitLitersPer100KM, testParams(), overrides)
	assert.Equal(t, plain, with)
}
