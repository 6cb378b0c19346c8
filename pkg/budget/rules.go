package budget

import (
	"fmt"

	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/constants"
	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/persona"
)

// literalCaps are the hardcoded fallback thresholds used when a persona
// profile does not define a cap for a category. Shopping and Groceries are
// never persona-configurable and always use these literals; keeping the two
// cap sources separate preserves long-standing behavior.
var literalCaps = map[string]float64{
	"Rent":          0.30,
	"Transport":     0.15,
	"Dining":        0.10,
	"Subscriptions": 0.05,
	"Taxes":         0.15,
	"Shopping":      0.10,
	"Groceries":     0.15,
}

// capRule is one ordered threshold check against a category's spend.
type capRule struct {
	category     string
	personaAware bool
	tip          func(capFraction float64) string
}

// capRules is the fixed evaluation order. Rule order is the only tie-break;
// there is no reordering or shuffling of the output.
var capRules = []capRule{
	{"Rent", true, func(fraction float64) string {
		return fmt.Sprintf("Rent >%d%% of income — consider renegotiating, sharing, or relocating.", int(fraction*100))
	}},
	{"Transport", true, func(float64) string {
		return "Transport high — use passes/pooling or WFH where possible."
	}},
	{"Dining", true, func(float64) string {
		return "Dining high — set a weekly cap and meal-prep twice a week."
	}},
	{"Subscriptions", true, func(float64) string {
		return "Subscriptions high — cancel duplicates or annualize for discounts."
	}},
	{"Taxes", true, func(float64) string {
		return "Taxes high — review regime choice and eligible deductions/exemptions."
	}},
	{"Shopping", false, func(float64) string {
		return "Shopping >10% — move impulse buys to a monthly wishlist before purchase."
	}},
	{"Groceries", false, func(float64) string {
		return "Groceries >15% — weekly list + bulk staples can cut 5–10%."
	}},
}

// Evaluate applies the persona-aware threshold rules to a summary and returns
// the ordered advisory tips, capped at MaxAdvisoryTips. The cap fraction for
// each category comes from the persona profile where defined, otherwise from
// the literal fallback. Callers must not assume every applicable rule is
// represented when more than MaxAdvisoryTips trigger; excess tips (including
// the persona closing tip) are dropped from the end.
func Evaluate(summary Summary, profile persona.Profile) []string {
	tips := []string{}

	for _, rule := range capRules {
		fraction := literalCaps[rule.category]
		if rule.personaAware {
			if personaCap, ok := profile.SpendingCaps[rule.category]; ok {
				fraction = personaCap
			}
		}
		if summary.ExpenseShares[rule.category].Amount > fraction*summary.Income {
			tips = append(tips, rule.tip(fraction))
		}
	}

	if summary.SavingsRate < constants.SavingsRateBenchmark {
		tips = append(tips, "Increase savings rate toward 20% (50/30/20 rule). Automate transfers on payday.")
	}

	if !summary.SurplusPositive {
		tips = append(tips, "Negative surplus — pause wants for a month and sell one unused item to plug the gap.")
	}

	tips = append(tips, closingTip(profile))

	if len(tips) > constants.MaxAdvisoryTips {
		tips = tips[:constants.MaxAdvisoryTips]
	}
	return tips
}

func closingTip(profile persona.Profile) string {
	if profile.Name == persona.Student {
		return "Student tip: use student IDs for transit/OTT discounts and library resources."
	}
	return "Pro tip: set up salary auto-sweep into liquid fund for idle cash."
}
