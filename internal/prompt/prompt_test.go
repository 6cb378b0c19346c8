package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/budget"
	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/constants"
	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/persona"
)

func TestSystemRoleTone(t *testing.T) {
	student := SystemRole(persona.Resolve(persona.Student))
	if !strings.Contains(student, "COLLEGE STUDENT") {
		t.Errorf("student role missing student tone: %q", student)
	}

	professional := SystemRole(persona.Resolve(persona.Professional))
	if !strings.Contains(professional, "WORKING PROFESSIONAL") {
		t.Errorf("professional role missing professional tone: %q", professional)
	}

	for _, role := range []string{student, professional} {
		if !strings.Contains(role, "not legal/tax advice") {
			t.Errorf("role missing shared safety clause: %q", role)
		}
	}
}

func TestBuildChatPromptDeterministic(t *testing.T) {
	profile := persona.Resolve(persona.Professional)
	history := []Turn{
		{Role: RoleUser, Content: "How do I reduce taxes safely?"},
		{Role: RoleAssistant, Content: "Compare regimes first."},
	}

	first := BuildChatPrompt(profile, history)
	second := BuildChatPrompt(profile, history)
	if first != second {
		t.Error("identical inputs produced different prompts")
	}

	if !strings.Contains(first, "User: How do I reduce taxes safely?") {
		t.Errorf("prompt missing user turn:\n%s", first)
	}
	if !strings.Contains(first, "Assistant: Compare regimes first.") {
		t.Errorf("prompt missing assistant turn:\n%s", first)
	}
	if !strings.Contains(first, "Guidelines:") {
		t.Errorf("prompt missing guideline block:\n%s", first)
	}
}

func TestBuildChatPromptWindow(t *testing.T) {
	profile := persona.Resolve(persona.Student)

	var history []Turn
	for i := 0; i < constants.HistoryWindow+4; i++ {
		history = append(history, Turn{Role: RoleUser, Content: fmt.Sprintf("message %d", i)})
	}

	prompt := BuildChatPrompt(profile, history)

	if strings.Contains(prompt, "message 3\n") {
		t.Error("prompt contains a turn older than the sliding window")
	}
	for i := 4; i < constants.HistoryWindow+4; i++ {
		if !strings.Contains(prompt, fmt.Sprintf("message %d", i)) {
			t.Errorf("prompt missing in-window turn %d", i)
		}
	}
}

func TestBuildSummaryPrompt(t *testing.T) {
	summary := budget.Summarize(60000, map[string]float64{
		"Rent":   20000,
		"Dining": 5000,
	}, 12000)
	prompt := BuildSummaryPrompt(summary, persona.Resolve(persona.Professional))

	for _, fragment := range []string{
		"- Income: 60000",
		"- Total expenses: 25000",
		"- Planned savings: 12000 (20.0% of income)",
		"- Surplus after savings: 23000",
		"- Top categories: Rent, Dining",
		"Give 5 tailored suggestions",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("summary prompt missing %q:\n%s", fragment, prompt)
		}
	}
}
