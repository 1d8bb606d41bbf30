package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePlate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12-AB-34", "12AB34"},
		{"12ab34", "12AB34"},
		{"  12 AB 34  ", "12AB34"},
		{"G-001-BB", "G001BB"},
		{"", ""},
		{" - ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePlate(tt.in))
	}
}

func TestVehicleRecord_IsElectric(t *testing.T) {
	tests := []struct {
		fuelType string
		want     bool
	}{
		{"Elektriciteit", true},
		{"ELEKTRICITEIT", true},
		{"elektrisch", true},
		{"Benzine", false},
		{"Diesel", false},
		{FuelTypeUnknown, false},
		{"", false},
	}
	for _, tt := range tests {
		v := &VehicleRecord{FuelType: tt.fuelType}
		assert.Equal(t, tt.want, v.IsElectric(), tt.fuelType)
	}
}

func TestOverrides(t *testing.T) {
	o := make(Overrides)

	// Set and read back through different plate spellings.
	o.Set("12-AB-34", OverridePurchasePrice, 20000)
	v, ok := o.Value("12ab34", OverridePurchasePrice)
	assert.True(t, ok)
	assert.Equal(t, 20000.0, v)

	// Unset name on a known plate.
	_, ok = o.Value("12AB34", OverrideInsuranceMonth)
	assert.False(t, ok)

	// Unknown plate.
	_, ok = o.Value("ZZ99ZZ", OverridePurchasePrice)
	assert.False(t, ok)

	// Replacing a value.
	o.Set("12AB34", OverridePurchasePrice, 25000)
	v, _ = o.Value("12AB34", OverridePurchasePrice)
	assert.Equal(t, 25000.0, v)

	// Removing the last override drops the plate entry.
	o.Remove("12AB34", OverridePurchasePrice)
	assert.NotContains(t, o, "12AB34")

	// RemovePlate clears everything for the plate.
	o.Set("12AB34", OverridePurchasePrice, 20000)
	o.Set("12AB34", OverrideLeasePriceMonth, 400)
	o.RemovePlate("12-AB-34")
	assert.NotContains(t, o, "12AB34")

	// A nil map reads as empty.
	var nilOverrides Overrides
	_, ok = nilOverrides.Value("12AB34", OverridePurchasePrice)
	assert.False(t, ok)
}
