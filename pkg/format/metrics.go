// Package format renders derived budget numbers for UI-facing display.
// Display rounding (one decimal for rates and runway) is applied on top of
// the two-decimal computation semantics, never instead of them.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Rupees returns a whole-rupee string with thousands separators
// (e.g., "-₹1,234").
func Rupees(amount float64) string {
	formatted := groupDigits(fmt.Sprintf("%.0f", math.Abs(amount)))
	if amount < 0 {
		return "-₹" + formatted
	}
	return "₹" + formatted
}

// RupeesExact returns a two-decimal rupee string with thousands separators
// (e.g., "₹3,333.33").
func RupeesExact(amount float64) string {
	formatted := fmt.Sprintf("%.2f", math.Abs(amount))
	parts := strings.SplitN(formatted, ".", 2)
	grouped := groupDigits(parts[0]) + "." + parts[1]
	if amount < 0 {
		return "-₹" + grouped
	}
	return "₹" + grouped
}

// Rate renders a savings rate with one decimal (e.g., "20.0%").
func Rate(percent float64) string {
	return fmt.Sprintf("%.1f%%", percent)
}

// Months renders an emergency-fund runway with one decimal (e.g., "3.0 mo").
func Months(months float64) string {
	return fmt.Sprintf("%.1f mo", months)
}

func groupDigits(intPart string) string {
	if len(intPart) <= 3 {
		return intPart
	}
	var builder strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			builder.WriteByte(',')
		}
		builder.WriteRune(digit)
	}
	return builder.String()
}
