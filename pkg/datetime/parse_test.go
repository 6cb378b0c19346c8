package datetime

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		until    string
		expected int
	}{
		{name: "same day", from: "2025-06-01", until: "2025-06-01", expected: 0},
		{name: "ninety days", from: "2025-01-01", until: "2025-04-01", expected: 90},
		{name: "one day", from: "2025-06-01", until: "2025-06-02", expected: 1},
		{name: "past deadline", from: "2025-06-10", until: "2025-06-01", expected: -9},
		{name: "across year boundary", from: "2024-12-25", until: "2025-01-05", expected: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from := MustParseTime(DateLayout, tt.from)
			until := MustParseTime(DateLayout, tt.until)
			if got := DaysBetween(from, until); got != tt.expected {
				t.Errorf("DaysBetween(%s, %s) = %d, expected %d", tt.from, tt.until, got, tt.expected)
			}
		})
	}
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	until := time.Date(2025, 6, 2, 0, 1, 0, 0, time.UTC)
	if got := DaysBetween(from, until); got != 1 {
		t.Errorf("DaysBetween across midnight = %d, expected 1", got)
	}
}

func TestMustParseTimePanicsOnBadInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected MustParseTime to panic on invalid input")
		}
	}()
	MustParseTime(DateLayout, "not-a-date")
}
