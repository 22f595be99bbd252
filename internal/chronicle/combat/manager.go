package combat

import (
	"fmt"
	"sync"

	"github.com/nocturne-rpg/nocturne/internal/core/dice"
	"github.com/nocturne-rpg/nocturne/internal/platform/errors"
)

// Manager maps hosting-context ids (a channel, a table, a session) to
// encounters. Exactly one encounter may be active per context.
type Manager struct {
	mu         sync.Mutex
	encounters map[string]*Encounter
}

// NewManager returns an empty encounter registry.
func NewManager() *Manager {
	return &Manager{encounters: make(map[string]*Encounter)}
}

// Start creates an encounter for a context. Starting a second one in
// the same context fails until the first is ended.
func (m *Manager) Start(contextID string, r dice.Roller) (*Encounter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.encounters[contextID]; ok {
		return nil, errors.WithMetadata(errors.CodeEncounterExists,
			fmt.Sprintf("context %q already has an encounter", contextID),
			map[string]string{"context": contextID})
	}
	e := NewEncounter(contextID, r)
	m.encounters[contextID] = e
	return e, nil
}

// Get returns the context's encounter.
func (m *Manager) Get(contextID string) (*Encounter, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.encounters[contextID]
	if !ok {
		return nil, errors.WithMetadata(errors.CodeEncounterNotFound,
			fmt.Sprintf("context %q has no encounter", contextID),
			map[string]string{"context": contextID})
	}
	return e, nil
}

// End closes and removes the context's encounter.
func (m *Manager) End(contextID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.encounters[contextID]
	if !ok {
		return errors.WithMetadata(errors.CodeEncounterNotFound,
			fmt.Sprintf("context %q has no encounter", contextID),
			map[string]string{"context": contextID})
	}
	e.End()
	delete(m.encounters, contextID)
	return nil
}
