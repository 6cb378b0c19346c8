// Package persona defines the user archetypes that drive default numbers,
// tone, and spending-cap thresholds throughout the application.
package persona

import "strings"

// Profile names. These are the only two archetypes.
const (
	Student      = "Student"
	Professional = "Professional"
)

// Profile is an immutable bundle of persona-specific configuration.
type Profile struct {
	Name              string
	Emoji             string
	Banner            string
	SpendingCaps      map[string]float64
	DefaultCategories []string
	DefaultAmounts    []float64
	DefaultIncome     float64
	DefaultSavings    float64
	ChatPresets       []string
	GoalHint          string
}

// defaultCategories is shared by both personas; only the amounts differ.
var defaultCategories = []string{
	"Rent", "Utilities", "Groceries", "Transport", "Dining",
	"Shopping", "Subscriptions", "Other", "Investments", "Taxes",
}

// Resolve maps a free-text persona label to a Profile. Matching is
// case-insensitive by prefix: anything starting with "stu" resolves to
// Student, everything else (including empty or unrecognized labels)
// resolves to Professional. Resolve is total and never fails.
func Resolve(label string) Profile {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(label)), "stu") {
		return studentProfile()
	}
	return professionalProfile()
}

func studentProfile() Profile {
	return Profile{
		Name:  Student,
		Emoji: "🎒",
		Banner: "Low-cost focus: hostel/PG rent, public transport, meal-prep, " +
			"student discounts, beginner SIPs (₹500–₹1000), and basic deductions (80C/80D).",
		SpendingCaps: map[string]float64{
			"Rent":          0.35,
			"Transport":     0.12,
			"Dining":        0.08,
			"Subscriptions": 0.04,
			"Taxes":         0.10,
		},
		DefaultCategories: append([]string(nil), defaultCategories...),
		DefaultAmounts:    []float64{9000, 1500, 4000, 1200, 1500, 1000, 300, 700, 1000, 0},
		DefaultIncome:     25000,
		DefaultSavings:    3000,
		ChatPresets: []string{
			"I'm a student — how do I save on food and commute?",
			"Best way to start a ₹1000 SIP?",
			"How much should my hostel rent be?",
			"Tips to build a small emergency fund?",
		},
		GoalHint: "For students, keep goals small and frequent (e.g., ₹5k–₹10k over 2–3 months).",
	}
}

func professionalProfile() Profile {
	return Profile{
		Name:  Professional,
		Emoji: "💼",
		Banner: "Action focus: regime choice (old vs new), 80C/80D planning, " +
			"emergency fund (3–6 months), automated SIPs/asset allocation, expense caps (rent ≤30%).",
		SpendingCaps: map[string]float64{
			"Rent":          0.30,
			"Transport":     0.15,
			"Dining":        0.10,
			"Subscriptions": 0.05,
			"Taxes":         0.15,
		},
		DefaultCategories: append([]string(nil), defaultCategories...),
		DefaultAmounts:    []float64{20000, 3000, 8000, 4000, 3000, 2000, 800, 1500, 5000, 4000},
		DefaultIncome:     60000,
		DefaultSavings:    12000,
		ChatPresets: []string{
			"How do I reduce taxes safely?",
			"Is 50/30/20 right for me?",
			"Best way to save ₹25k by December?",
			"Where am I overspending?",
		},
		GoalHint: "Aim for consistent SIPs + emergency fund before aggressive goals.",
	}
}
