package persona

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		expected string
	}{
		{name: "exact student", label: "Student", expected: Student},
		{name: "lowercase student", label: "student", expected: Student},
		{name: "prefix with suffix", label: "Student123", expected: Student},
		{name: "short prefix", label: "stu", expected: Student},
		{name: "leading whitespace", label: "  STUDENT ", expected: Student},
		{name: "professional", label: "Professional", expected: Professional},
		{name: "empty label", label: "", expected: Professional},
		{name: "unrecognized label", label: "retiree", expected: Professional},
		{name: "near miss", label: "st", expected: Professional},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.label).Name; got != tt.expected {
				t.Errorf("Resolve(%q).Name = %q, expected %q", tt.label, got, tt.expected)
			}
		})
	}
}

func TestProfileDefaultsAlign(t *testing.T) {
	for _, label := range []string{Student, Professional} {
		profile := Resolve(label)
		if len(profile.DefaultCategories) != len(profile.DefaultAmounts) {
			t.Errorf("%s: %d categories but %d amounts", label,
				len(profile.DefaultCategories), len(profile.DefaultAmounts))
		}
		if len(profile.ChatPresets) == 0 {
			t.Errorf("%s: no chat presets", label)
		}
		if profile.GoalHint == "" {
			t.Errorf("%s: empty goal hint", label)
		}
	}
}

func TestStudentCapsTighterThanProfessional(t *testing.T) {
	student := Resolve(Student)
	professional := Resolve(Professional)

	for _, category := range []string{"Transport", "Dining", "Subscriptions", "Taxes"} {
		if student.SpendingCaps[category] >= professional.SpendingCaps[category] {
			t.Errorf("%s: student cap %v not below professional cap %v",
				category, student.SpendingCaps[category], professional.SpendingCaps[category])
		}
	}
	// Rent is the exception: students get more headroom.
	if student.SpendingCaps["Rent"] <= professional.SpendingCaps["Rent"] {
		t.Errorf("Rent: student cap %v not above professional cap %v",
			student.SpendingCaps["Rent"], professional.SpendingCaps["Rent"])
	}
}

func TestResolveReturnsFreshProfile(t *testing.T) {
	first := Resolve(Student)
	first.SpendingCaps["Rent"] = 0.99
	first.DefaultCategories[0] = "Mutated"

	second := Resolve(Student)
	if second.SpendingCaps["Rent"] != 0.35 {
		t.Errorf("mutating one profile leaked into the next: Rent cap = %v", second.SpendingCaps["Rent"])
	}
	if second.DefaultCategories[0] != "Rent" {
		t.Errorf("mutating one profile leaked into the next: first category = %q", second.DefaultCategories[0])
	}
}
