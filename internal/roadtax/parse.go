package roadtax

import (
	"strconv"
	"strings"
)

// ParseAmount extracts a monetary value from a scraped cell. Accepted
// shapes include "123", "123.45", "123,45", "€ 123,45", "€1.234,56" and
// "1 234,56". Anything that still fails to parse yields 0; the caller
// treats that as unknown, not as a confirmed zero.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "€")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0
	}

	if strings.Contains(s, ",") {
		// Comma is the decimal separator; dots are thousands.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
