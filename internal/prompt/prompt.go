// Package prompt assembles persona-toned text prompts for the language-model
// backends. Both builders are pure string construction: given identical
// inputs they produce byte-identical output, with no timestamps, randomness,
// or I/O.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/budget"
	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/constants"
	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/persona"
)

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in a conversation, ordered and append-only per session.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// guidelines is the fixed behavioral block appended to every chat prompt.
const guidelines = `Guidelines:
- If the user greets you, greet back briefly and ask one relevant question about their goal.
- If the user asks a finance question, answer directly and concisely.
- Use bullets only when it helps clarity (don't force them).
- Ask at most one short follow-up when information is missing.
- Keep answers within 5-8 short sentences unless the user asks for detail.`

// SystemRole returns the persona-toned system directive for a profile.
func SystemRole(profile persona.Profile) string {
	var role string
	if profile.Name == persona.Student {
		role = "You are BudgetBee, a friendly finance coach for a COLLEGE STUDENT in India (₹). " +
			"Use simple sentences and low-cost ideas (student discounts, shared housing, public transport, " +
			"meal prep, beginner SIPs, basic tax deductions 80C)."
	} else {
		role = "You are BudgetBee, a concise finance coach for a WORKING PROFESSIONAL in India (₹). " +
			"Be direct and action-oriented: tax regime choice, 80C/80D planning, emergency fund sizing, " +
			"automated SIPs/asset allocation, and expense caps. No product endorsements."
	}
	return role +
		" Keep answers safe and general (not legal/tax advice). " +
		"When user gives numbers, use them. Prefer 3-5 crisp bullets and a 1-line Next step."
}

// BuildChatPrompt renders the persona system directive, the most recent
// conversation turns (a sliding window of HistoryWindow, oldest dropped
// first), and the fixed guideline block into one prompt.
func BuildChatPrompt(profile persona.Profile, history []Turn) string {
	turns := history
	if len(turns) > constants.HistoryWindow {
		turns = turns[len(turns)-constants.HistoryWindow:]
	}

	lines := make([]string, 0, len(turns))
	for _, turn := range turns {
		if turn.Role == RoleUser {
			lines = append(lines, "User: "+turn.Content)
		} else {
			lines = append(lines, "Assistant: "+turn.Content)
		}
	}

	return fmt.Sprintf("%s\n\nConversation:\n%s\n\n%s\n", SystemRole(profile), strings.Join(lines, "\n"), guidelines)
}

// BuildSummaryPrompt renders the persona tone plus the numeric budget
// snapshot and a fixed instruction asking for five suggestions and one
// tax/investment remark. The savings rate is displayed with one decimal to
// match the UI metric cards.
func BuildSummaryPrompt(summary budget.Summary, profile persona.Profile) string {
	return fmt.Sprintf(`%s

Monthly snapshot (₹):
- Income: %s
- Total expenses: %s
- Planned savings: %s (%.1f%% of income)
- Surplus after savings: %s
- Top categories: %s

Give 5 tailored suggestions to improve savings next month (≤120 words), then 1 line on taxes & investments.
`,
		SystemRole(profile),
		formatAmount(summary.Income),
		formatAmount(summary.TotalExpenses),
		formatAmount(summary.SavingsGoal),
		summary.SavingsRate,
		formatAmount(summary.Surplus),
		strings.Join(summary.TopCategories, ", "),
	)
}

// formatAmount renders a monetary value without trailing zeros so prompts
// stay compact (60000 rather than 60000.00).
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
