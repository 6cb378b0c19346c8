// Package backend selects among the configured AI text-generation providers
// in fixed priority order (OpenRouter primary, Granite fallback), applies
// the fallback's bounded retry, and degrades to a static deterministic tip
// list when no backend is usable. No backend-related condition ever
// propagates as an error to the caller: every failure path terminates in a
// returned text message.
package backend

import (
	"context"
	"fmt"

	"github.com/Sanjana-2906/BudgetBee-ChatBot/internal/config"
	"go.uber.org/zap"
)

// Generator is the capability shape shared by both providers.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Kind tags a dispatch outcome.
type Kind string

const (
	// Success is a structural success from the highest-priority configured
	// backend.
	Success Kind = "success"

	// Degraded means the primary backend failed; Text carries either the
	// fallback's answer or the primary's diagnostic when no fallback exists.
	Degraded Kind = "degraded"

	// Unavailable means no backend is configured; Text carries the static
	// tip paragraph.
	Unavailable Kind = "unavailable"
)

// Response is the tagged result of a dispatch.
type Response struct {
	Kind   Kind   `json:"kind"`
	Text   string `json:"text"`
	Reason string `json:"reason,omitempty"`
}

// StaticTips is the deterministic last-resort response returned when no AI
// backend is configured. It is reproduced verbatim every time.
const StaticTips = "AI is not configured (no OpenRouter or Granite). Quick tips:\n" +
	"• Track expenses weekly and keep 3–6 months of emergency fund\n" +
	"• Use SIPs for long-term goals\n" +
	"• Compare old vs new tax regimes annually\n" +
	"• Avoid high-interest debt\n"

// Dispatcher routes prompts to the configured backends. Backend availability
// is read from the configuration on every call rather than cached, so a key
// added or removed between calls takes effect immediately.
type Dispatcher struct {
	cfg    *config.Configuration
	logger *zap.Logger

	// Factories are injection points for tests; the defaults build the real
	// HTTP clients.
	newPrimary  func(cfg *config.Configuration) Generator
	newFallback func(cfg *config.Configuration) Generator
}

// NewDispatcher creates a dispatcher over the given configuration. A nil
// logger is replaced with a no-op logger.
func NewDispatcher(cfg *config.Configuration, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		cfg:    cfg,
		logger: logger,
		newPrimary: func(cfg *config.Configuration) Generator {
			return NewOpenRouterClient(cfg.OpenRouter.APIKey, cfg.OpenRouter.Model, cfg.SystemPrompt)
		},
		newFallback: func(cfg *config.Configuration) Generator {
			return NewGraniteClient(cfg.Granite.APIToken, cfg.Granite.Model)
		},
	}
}

// Dispatch sends the prompt to the highest-priority configured backend.
// The two outbound calls are strictly sequential; the fallback decision
// depends on observing the primary's outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, prompt string) Response {
	if d.cfg.OpenRouter.Configured() {
		text, err := d.newPrimary(d.cfg).Generate(ctx, prompt)
		if err == nil {
			return Response{Kind: Success, Text: text}
		}

		d.logger.Warn("primary backend failed",
			zap.String("op", "backend.Dispatch"),
			zap.Error(err),
		)

		if d.cfg.Granite.Configured() {
			fallbackText, fallbackErr := d.newFallback(d.cfg).Generate(ctx, prompt)
			if fallbackErr != nil {
				d.logger.Warn("fallback backend failed",
					zap.String("op", "backend.Dispatch"),
					zap.Error(fallbackErr),
				)
				fallbackText = userMessage(fallbackErr)
			}
			return Response{
				Kind:   Degraded,
				Text:   fmt.Sprintf("(OpenRouter error, used Granite fallback)\n\n%s", fallbackText),
				Reason: "primary failed",
			}
		}

		return Response{
			Kind:   Degraded,
			Text:   userMessage(err),
			Reason: "primary failed, fallback not configured",
		}
	}

	if d.cfg.Granite.Configured() {
		text, err := d.newFallback(d.cfg).Generate(ctx, prompt)
		if err != nil {
			d.logger.Warn("fallback backend failed",
				zap.String("op", "backend.Dispatch"),
				zap.Error(err),
			)
			text = userMessage(err)
		}
		return Response{Kind: Success, Text: text}
	}

	return Response{
		Kind:   Unavailable,
		Text:   StaticTips,
		Reason: "no backend configured",
	}
}

// BackendName reports which backend the next Dispatch call would prefer.
func (d *Dispatcher) BackendName() string {
	if d.cfg.OpenRouter.Configured() {
		return fmt.Sprintf("OpenRouter · %s", d.cfg.OpenRouter.Model)
	}
	if d.cfg.Granite.Configured() {
		return fmt.Sprintf("Hugging Face (IBM Granite) · %s", d.cfg.Granite.Model)
	}
	return "Demo Mode (rule-based)"
}
