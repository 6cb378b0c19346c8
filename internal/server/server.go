// Package server exposes the budget engine, goal planner, chat, and account
// store over a JSON HTTP API consumed by the web UI.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Sanjana-2906/BudgetBee-ChatBot/internal/backend"
	"github.com/Sanjana-2906/BudgetBee-ChatBot/internal/config"
	"github.com/Sanjana-2906/BudgetBee-ChatBot/internal/prompt"
	"github.com/Sanjana-2906/BudgetBee-ChatBot/internal/session"
	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/budget"
	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/datetime"
	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/format"
	"github.com/Sanjana-2906/BudgetBee-ChatBot/pkg/persona"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// Dispatcher is the slice of the backend dispatcher the handlers need.
type Dispatcher interface {
	Dispatch(ctx context.Context, prompt string) backend.Response
	BackendName() string
}

type handler struct {
	logger     *zap.Logger
	cfg        *config.Configuration
	dispatcher Dispatcher
	store      *session.FileStore
	history    *session.History
	version    string
}

// NewHandler constructs the HTTP handler that serves the BudgetBee API.
func NewHandler(logger *zap.Logger, cfg *config.Configuration, dispatcher Dispatcher, store *session.FileStore, history *session.History, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:     logger,
		cfg:        cfg,
		dispatcher: dispatcher,
		store:      store,
		history:    history,
		version:    trimmedVersion,
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/chat", h.handleChat).Methods(http.MethodPost)
	router.HandleFunc("/api/budget/analyze", h.handleAnalyze).Methods(http.MethodPost)
	router.HandleFunc("/api/goal/plan", h.handleGoalPlan).Methods(http.MethodPost)
	router.HandleFunc("/api/personas/{label}", h.handlePersona).Methods(http.MethodGet)
	router.HandleFunc("/api/backend", h.handleBackend).Methods(http.MethodGet)
	router.HandleFunc("/api/version", h.handleVersion).Methods(http.MethodGet)
	router.HandleFunc("/api/auth/register", h.handleRegister).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", h.handleLogin).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/logout", h.handleLogout).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/me", h.handleMe).Methods(http.MethodGet)

	origins := cfg.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	return corsMiddleware.Handler(router)
}

type chatRequest struct {
	Message   string `json:"message"`
	Persona   string `json:"persona"`
	SessionID string `json:"sessionId"`
}

type chatResponse struct {
	Reply   string `json:"reply"`
	Kind    string `json:"kind"`
	Reason  string `json:"reason,omitempty"`
	Backend string `json:"backend"`
}

func (h *handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleChat")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		h.respondError(w, http.StatusBadRequest, "message is required", "server.handleChat")
		return
	}

	profile := persona.Resolve(req.Persona)
	sessionID := h.sessionID(r, req.SessionID)

	h.history.SetPersona(sessionID, profile.Name)
	h.history.Append(sessionID, prompt.Turn{Role: prompt.RoleUser, Content: req.Message})

	start := time.Now()
	chatPrompt := prompt.BuildChatPrompt(profile, h.history.Turns(sessionID))
	response := h.dispatcher.Dispatch(r.Context(), chatPrompt)

	h.history.Append(sessionID, prompt.Turn{Role: prompt.RoleAssistant, Content: response.Text})

	h.logger.Info("chat dispatched",
		zap.String("op", "server.handleChat"),
		zap.String("persona", profile.Name),
		zap.String("kind", string(response.Kind)),
		zap.Duration("duration", time.Since(start)),
	)

	h.writeJSON(w, http.StatusOK, chatResponse{
		Reply:   response.Text,
		Kind:    string(response.Kind),
		Reason:  response.Reason,
		Backend: h.dispatcher.BackendName(),
	})
}

type analyzeRequest struct {
	Persona       string             `json:"persona"`
	Income        float64            `json:"income"`
	Expenses      map[string]float64 `json:"expenses"`
	SavingsGoal   float64            `json:"savingsGoal"`
	AISuggestions bool               `json:"aiSuggestions"`
}

type displayMetrics struct {
	Income        string `json:"income"`
	Expenses      string `json:"expenses"`
	SavingsRate   string `json:"savingsRate"`
	EmergencyFund string `json:"emergencyFund"`
}

type analyzeResponse struct {
	Persona string            `json:"persona"`
	Summary budget.Summary    `json:"summary"`
	Tips    []string          `json:"tips"`
	Alerts  []string          `json:"alerts,omitempty"`
	Display displayMetrics    `json:"display"`
	AI      *backend.Response `json:"ai,omitempty"`
}

func (h *handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleAnalyze")
		return
	}
	if req.Income < 0 || req.SavingsGoal < 0 {
		h.respondError(w, http.StatusBadRequest, "income and savingsGoal must be non-negative", "server.handleAnalyze")
		return
	}
	for category, amount := range req.Expenses {
		if amount < 0 {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("expense %q must be non-negative", category), "server.handleAnalyze")
			return
		}
	}

	start := time.Now()
	profile := persona.Resolve(req.Persona)
	summary := budget.Summarize(req.Income, req.Expenses, req.SavingsGoal)
	tips := budget.Evaluate(summary, profile)

	var alerts []string
	if req.SavingsGoal > req.Income {
		alerts = append(alerts, "Not feasible: planned savings exceed income. Lower the savings goal.")
	}
	if !summary.SurplusPositive {
		alerts = append(alerts, fmt.Sprintf("Not feasible this month: shortfall of %s. "+
			"Reduce expenses, lower savings goal, or increase income.", format.Rupees(-summary.Surplus)))
	}

	response := analyzeResponse{
		Persona: profile.Name,
		Summary: summary,
		Tips:    tips,
		Alerts:  alerts,
		Display: displayMetrics{
			Income:        format.Rupees(summary.Income),
			Expenses:      format.Rupees(summary.TotalExpenses),
			SavingsRate:   format.Rate(summary.SavingsRate),
			EmergencyFund: format.Months(summary.EmergencyFundMonths),
		},
	}

	if req.AISuggestions {
		ai := h.dispatcher.Dispatch(r.Context(), prompt.BuildSummaryPrompt(summary, profile))
		response.AI = &ai
	}

	h.logger.Info("budget analyzed",
		zap.String("op", "server.handleAnalyze"),
		zap.String("persona", profile.Name),
		zap.Int("tips", len(tips)),
		zap.Duration("duration", time.Since(start)),
	)

	h.writeJSON(w, http.StatusOK, response)
}

type goalPlanRequest struct {
	Persona        string  `json:"persona"`
	Target         float64 `json:"target"`
	Deadline       string  `json:"deadline"`
	CurrentSavings float64 `json:"currentSavings"`
	MonthlySurplus float64 `json:"monthlySurplus"`
}

type goalPlanResponse struct {
	budget.GoalPlan
	NeededMonthlyDisplay string `json:"neededMonthlyDisplay"`
	GoalHint             string `json:"goalHint"`
	Tip                  string `json:"tip,omitempty"`
}

func (h *handler) handleGoalPlan(w http.ResponseWriter, r *http.Request) {
	var req goalPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleGoalPlan")
		return
	}
	if req.Target < 0 || req.CurrentSavings < 0 || req.MonthlySurplus < 0 {
		h.respondError(w, http.StatusBadRequest, "target, currentSavings, and monthlySurplus must be non-negative", "server.handleGoalPlan")
		return
	}

	deadline, err := time.Parse(datetime.DateLayout, req.Deadline)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid deadline %q, expected %s", req.Deadline, datetime.DateLayout), "server.handleGoalPlan")
		return
	}

	profile := persona.Resolve(req.Persona)
	plan := budget.PlanGoal(req.Target, deadline, req.CurrentSavings, req.MonthlySurplus)

	response := goalPlanResponse{
		GoalPlan:             plan,
		NeededMonthlyDisplay: format.RupeesExact(plan.NeededMonthly),
		GoalHint:             profile.GoalHint,
	}
	if !plan.Feasible {
		response.Tip = "Tip: Increase surplus (cut top leak categories) or extend the deadline."
	}

	h.writeJSON(w, http.StatusOK, response)
}

type personaResponse struct {
	Name              string             `json:"name"`
	Emoji             string             `json:"emoji"`
	Banner            string             `json:"banner"`
	SpendingCaps      map[string]float64 `json:"spendingCaps"`
	DefaultCategories []string           `json:"defaultCategories"`
	DefaultAmounts    []float64          `json:"defaultAmounts"`
	DefaultIncome     float64            `json:"defaultIncome"`
	DefaultSavings    float64            `json:"defaultSavings"`
	ChatPresets       []string           `json:"chatPresets"`
	GoalHint          string             `json:"goalHint"`
}

func (h *handler) handlePersona(w http.ResponseWriter, r *http.Request) {
	profile := persona.Resolve(mux.Vars(r)["label"])
	h.writeJSON(w, http.StatusOK, personaResponse{
		Name:              profile.Name,
		Emoji:             profile.Emoji,
		Banner:            profile.Banner,
		SpendingCaps:      profile.SpendingCaps,
		DefaultCategories: profile.DefaultCategories,
		DefaultAmounts:    profile.DefaultAmounts,
		DefaultIncome:     profile.DefaultIncome,
		DefaultSavings:    profile.DefaultSavings,
		ChatPresets:       profile.ChatPresets,
		GoalHint:          profile.GoalHint,
	})
}

func (h *handler) handleBackend(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":               h.dispatcher.BackendName(),
		"primaryConfigured":  h.cfg.OpenRouter.Configured(),
		"fallbackConfigured": h.cfg.Granite.Configured(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Persona  string `json:"persona"`
}

type userResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Persona string `json:"persona"`
}

func (h *handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleRegister")
		return
	}

	user, err := h.store.Register(req.Name, req.Email, req.Password, req.Persona)
	switch {
	case errors.Is(err, session.ErrEmailExists):
		h.respondError(w, http.StatusConflict, err.Error(), "server.handleRegister")
		return
	case errors.Is(err, session.ErrInvalidEmail), errors.Is(err, session.ErrPasswordTooShort):
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleRegister")
		return
	case err != nil:
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to register: %v", err), "server.handleRegister")
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Account created successfully.",
		"user":    userResponse{Name: user.Name, Email: user.Email, Persona: user.Persona},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), "server.handleLogin")
		return
	}

	user, ok, err := h.store.Authenticate(req.Email, req.Password)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to authenticate: %v", err), "server.handleLogin")
		return
	}
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "invalid email or password", "server.handleLogin")
		return
	}

	token, err := h.store.CreateSession(user.Email)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to create session: %v", err), "server.handleLogin")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  userResponse{Name: user.Name, Email: user.Email, Persona: user.Persona},
	})
}

func (h *handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		h.respondError(w, http.StatusUnauthorized, "missing session token", "server.handleLogout")
		return
	}
	if err := h.store.RevokeSession(token); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to revoke session: %v", err), "server.handleLogout")
		return
	}
	h.history.Reset(token)
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *handler) handleMe(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		h.respondError(w, http.StatusUnauthorized, "missing session token", "server.handleMe")
		return
	}
	user, ok, err := h.store.UserFromSession(token)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to resolve session: %v", err), "server.handleMe")
		return
	}
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "invalid or expired session", "server.handleMe")
		return
	}
	h.writeJSON(w, http.StatusOK, userResponse{Name: user.Name, Email: user.Email, Persona: user.Persona})
}

// sessionID picks the conversation key for a chat request: the session token
// when the caller is logged in, the explicit sessionId field otherwise, and
// a shared local key as the last resort for the single-user case.
func (h *handler) sessionID(r *http.Request, explicit string) string {
	if token := bearerToken(r); token != "" {
		return token
	}
	if strings.TrimSpace(explicit) != "" {
		return strings.TrimSpace(explicit)
	}
	return "local"
}

func bearerToken(r *http.Request) string {
	value := r.Header.Get("Authorization")
	if strings.HasPrefix(value, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(value, "Bearer "))
	}
	return ""
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
