package session

import (
	"sync"

	"github.com/Sanjana-2906/BudgetBee-ChatBot/internal/prompt"
)

// History keeps per-session conversation turns in memory. Turns are
// append-only; switching a session's persona clears its transcript so the
// new tone starts fresh.
type History struct {
	mu       sync.RWMutex
	turns    map[string][]prompt.Turn
	personas map[string]string
}

// NewHistory creates an empty conversation history.
func NewHistory() *History {
	return &History{
		turns:    make(map[string][]prompt.Turn),
		personas: make(map[string]string),
	}
}

// Append adds one turn to a session's transcript.
func (h *History) Append(sessionID string, turn prompt.Turn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns[sessionID] = append(h.turns[sessionID], turn)
}

// Turns returns a copy of a session's transcript.
func (h *History) Turns(sessionID string) []prompt.Turn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]prompt.Turn(nil), h.turns[sessionID]...)
}

// SetPersona records the active persona for a session and clears the
// transcript when it changes.
func (h *History) SetPersona(sessionID, personaName string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if current, ok := h.personas[sessionID]; ok && current == personaName {
		return
	}
	h.personas[sessionID] = personaName
	delete(h.turns, sessionID)
}

// Reset drops a session's transcript and persona.
func (h *History) Reset(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.turns, sessionID)
	delete(h.personas, sessionID)
}
