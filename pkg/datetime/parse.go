// Package datetime provides date and time utility functions.
package datetime

import (
	"time"

	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/constants"
)

const (
	// DateLayout is the format expected for goal deadlines and is also the
	// output date format.
	DateLayout = constants.DateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// DaysBetween returns the number of whole days from `from` until `until`.
// The result is negative when `until` is in the past relative to `from`.
func DaysBetween(from, until time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	untilDay := time.Date(until.Year(), until.Month(), until.Day(), 0, 0, 0, 0, time.UTC)
	return int(untilDay.Sub(fromDay).Hours() / 24)
}
