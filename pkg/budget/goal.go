package budget

import (
	"math"
	"time"

	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/constants"
	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/datetime"
	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/mathutil"
)

// GoalPlan is the derived plan for reaching a savings target by a deadline.
type GoalPlan struct {
	MonthsLeft    int     `json:"monthsLeft"`
	NeededMonthly float64 `json:"neededMonthly"`
	Feasible      bool    `json:"feasible"`
}

// PlanGoal computes the monthly savings required to reach target by deadline
// given the amount already saved, and whether the supplied typical monthly
// surplus covers it.
func PlanGoal(target float64, deadline time.Time, currentSavings, monthlySurplus float64) GoalPlan {
	return PlanGoalAt(target, deadline, currentSavings, monthlySurplus, time.Now())
}

// PlanGoalAt is PlanGoal with an injectable current time for testing.
//
// Deadlines in the past or today collapse to a single month via the
// max(1, ...) floor; a goal already met yields a zero monthly requirement and
// is feasible by construction. Negative targets or savings are not rejected
// here; callers constrain inputs upstream.
func PlanGoalAt(target float64, deadline time.Time, currentSavings, monthlySurplus float64, now time.Time) GoalPlan {
	daysLeft := datetime.DaysBetween(now, deadline)
	monthsLeft := int(math.Round(float64(daysLeft) / constants.DaysPerMonth))
	if monthsLeft < 1 {
		monthsLeft = 1
	}

	needed := mathutil.Max(0, mathutil.Round((target-currentSavings)/float64(monthsLeft)))

	return GoalPlan{
		MonthsLeft:    monthsLeft,
		NeededMonthly: needed,
		Feasible:      monthlySurplus >= needed,
	}
}
