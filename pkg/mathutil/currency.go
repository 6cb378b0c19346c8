// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// Percentage returns what percent value is of total, rounded to two
// decimals. A non-positive total yields 0 rather than dividing by zero.
func Percentage(value, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return Round(value / total * constants.PercentageMultiplier)
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
