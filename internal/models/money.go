package models

import "math"

// TaxRate is the fixed tax rate applied to every order subtotal.
const TaxRate = 0.05

// Round2 rounds a money amount to whole cents, half away from zero.
// All monetary computation in the engine goes through this before the
// value is stored or compared.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
