package format

import "testing"

func TestRupees(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{name: "small amount", amount: 500, expected: "₹500"},
		{name: "thousands grouping", amount: 60000, expected: "₹60,000"},
		{name: "lakhs grouping", amount: 1234567, expected: "₹1,234,567"},
		{name: "negative amount", amount: -3300, expected: "-₹3,300"},
		{name: "zero", amount: 0, expected: "₹0"},
		{name: "rounds to whole rupees", amount: 1499.6, expected: "₹1,500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rupees(tt.amount); got != tt.expected {
				t.Errorf("Rupees(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestRupeesExact(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{name: "two decimals kept", amount: 3333.33, expected: "₹3,333.33"},
		{name: "whole amount padded", amount: 3000, expected: "₹3,000.00"},
		{name: "negative amount", amount: -1234.5, expected: "-₹1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RupeesExact(tt.amount); got != tt.expected {
				t.Errorf("RupeesExact(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestRateAndMonths(t *testing.T) {
	if got := Rate(20); got != "20.0%" {
		t.Errorf("Rate(20) = %q, expected \"20.0%%\"", got)
	}
	if got := Rate(33.33); got != "33.3%" {
		t.Errorf("Rate(33.33) = %q, expected \"33.3%%\"", got)
	}
	if got := Months(6.82); got != "6.8 mo" {
		t.Errorf("Months(6.82) = %q, expected \"6.8 mo\"", got)
	}
}
