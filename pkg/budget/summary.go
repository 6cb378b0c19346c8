// Package budget implements the deterministic budget analysis engine: the
// summary computation, the advisory rule evaluator, and the savings goal
// planner. All functions are pure and total; invalid numeric input (zero or
// negative income, negative amounts) produces a representable result rather
// than an error, and callers validate upstream where rejection is desired.
package budget

import (
	"sort"

	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/constants"
	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/mathutil"
)

// ExpenseShare is one category's absolute spend and its share of income.
type ExpenseShare struct {
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
}

// Summary holds the derived numbers for one month's budget. It is computed
// once per analysis request and never mutated afterwards.
type Summary struct {
	Income              float64                 `json:"income"`
	TotalExpenses       float64                 `json:"totalExpenses"`
	SavingsGoal         float64                 `json:"savingsGoal"`
	SavingsRate         float64                 `json:"savingsRate"`
	ExpenseShares       map[string]ExpenseShare `json:"expenseShares"`
	TopCategories       []string                `json:"topCategories"`
	Surplus             float64                 `json:"surplus"`
	SurplusPositive     bool                    `json:"surplusPositive"`
	EmergencyFundMonths float64                 `json:"emergencyFundMonths"`
}

// Summarize computes the derived Summary for the given income, per-category
// expenses, and planned savings. Monetary values and percentages are rounded
// to two decimals. Zero income forces a zero savings rate and zero emergency
// fund runway; a negative surplus is a valid result signalling infeasibility.
func Summarize(income float64, expenses map[string]float64, savingsGoal float64) Summary {
	total := 0.0
	for _, amount := range expenses {
		total += amount
	}
	total = mathutil.Round(total)

	shares := make(map[string]ExpenseShare, len(expenses))
	for category, amount := range expenses {
		shares[category] = ExpenseShare{
			Amount:  mathutil.Round(amount),
			Percent: mathutil.Percentage(amount, income),
		}
	}

	surplus := mathutil.Round(income - total - savingsGoal)

	runway := 0.0
	if income > total {
		runway = mathutil.Round(constants.EmergencyFundTargetMonths * income / (income - total))
	}

	return Summary{
		Income:              income,
		TotalExpenses:       total,
		SavingsGoal:         savingsGoal,
		SavingsRate:         mathutil.Percentage(savingsGoal, income),
		ExpenseShares:       shares,
		TopCategories:       topCategories(expenses, constants.TopCategoryCount),
		Surplus:             surplus,
		SurplusPositive:     surplus >= 0,
		EmergencyFundMonths: runway,
	}
}

// topCategories ranks categories by amount descending and returns the first n.
// Categories with zero amounts remain eligible; filtering for display happens
// in UI-facing derivations only. Ties break alphabetically so the ranking is
// deterministic for identical inputs.
func topCategories(expenses map[string]float64, n int) []string {
	categories := make([]string, 0, len(expenses))
	for category := range expenses {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	sort.SliceStable(categories, func(i, j int) bool {
		return expenses[categories[i]] > expenses[categories[j]]
	})

	if len(categories) > n {
		categories = categories[:n]
	}
	return categories
}
