package util

import (
	"fmt"
	"math"
)

// FormatTemperature renders a T9 value with a readable unit, GK above 0.1 and
// MK below.
func FormatTemperature(t9 float64) string {
	switch {
	case t9 >= 0.1:
		return fmt.Sprintf("%7.3f GK", t9)
	default:
		return fmt.Sprintf("%7.3f MK", t9*1e3)
	}
}

// FormatEnergy renders an energy given in MeV with a scaled unit.
func FormatEnergy(e float64) string {
	absE := math.Abs(e)
	switch {
	case absE >= 1:
		return fmt.Sprintf("%.3f MeV", e)
	case absE >= 1e-3:
		return fmt.Sprintf("%.3f keV", e*1e3)
	default:
		return fmt.Sprintf("%.3f eV", e*1e6)
	}
}

// FormatRate renders a reaction rate in REACLIB units.
func FormatRate(v float64) string {
	return fmt.Sprintf("%12.5e cm^3/s/mol", v)
}
