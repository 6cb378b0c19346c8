// Package constants provides shared constants for the BudgetBee application.
package constants

// DateLayout is the format expected for goal deadlines in requests and is
// also the output date format.
const DateLayout = "2006-01-02"

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DaysPerMonth is the day count used when converting a goal deadline
	// into whole months remaining
	DaysPerMonth = 30.0

	// EmergencyFundTargetMonths is the income multiple used for the
	// emergency fund runway heuristic
	EmergencyFundTargetMonths = 3.0

	// SavingsRateBenchmark is the savings rate (percent of income) below
	// which the savings advisory fires (50/30/20 rule)
	SavingsRateBenchmark = 20.0
)

// Advisory engine constants
const (
	// MaxAdvisoryTips is the maximum number of advisories returned per
	// evaluation; excess candidates are dropped from the end
	MaxAdvisoryTips = 6

	// TopCategoryCount is how many leading expense categories a summary ranks
	TopCategoryCount = 3
)

// Chat constants
const (
	// HistoryWindow is the number of most recent conversation turns
	// forwarded into a chat prompt
	HistoryWindow = 8
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "budgetbee.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"
)
