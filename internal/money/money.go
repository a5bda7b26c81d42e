package money

import "github.com/shopspring/decimal"

// Round2 rounds an amount to two decimal places, half away from zero.
//
// Monetary values are carried as float64 throughout the application, so
// every comparison boundary must round to the cent first; dividing a total
// by a participant count reliably produces non-terminating binary fractions.
func Round2(x float64) float64 {
	f, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return f
}

// EqualsAtCent reports whether two amounts agree once rounded to the cent.
// This is the only equality used for monetary validation; raw float
// equality is never trusted.
func EqualsAtCent(a, b float64) bool {
	return Round2(a) == Round2(b)
}
