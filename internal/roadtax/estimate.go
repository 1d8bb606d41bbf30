package roadtax

import "strings"

// EstimateMonthly approximates the monthly road tax from curb weight and
// fuel type, for plates the lookup site has no row for. Electric vehicles
// are exempt; diesel and LPG carry a surcharge on the weight band.
func EstimateMonthly(curbWeightKG float64, fuelType string) float64 {
	fuel := strings.ToLower(fuelType)
	if strings.Contains(fuel, "elektr") {
		return 0
	}

	var base float64
	switch {
	case curbWeightKG <= 950:
		base = 30
	case curbWeightKG <= 2050:
		base = 80
	default:
		base = 100
	}

	switch fuel {
	case "diesel":
		return base * 2
	case "lpg":
		return base * 1.5
	default:
		return base
	}
}
