package session

import (
	"sync"

	"github.com/lembra-app/lembra/internal/errors"
)

// Manager tracks at most one active session per deck. Starting a new
// session for a deck discards the previous one, matching the navigate-away
// semantics of the study screen: in-memory session state is simply dropped,
// while answers already written back stay persisted.
type Manager struct {
	mu       sync.Mutex
	store    Store
	clock    Clock
	sessions map[string]*Runner
}

// NewManager creates a session manager over the given store. A nil clock
// means time.Now.
func NewManager(store Store, clock Clock) *Manager {
	return &Manager{
		store:    store,
		clock:    clock,
		sessions: make(map[string]*Runner),
	}
}

// Start begins a session for the deck, replacing any existing one.
func (m *Manager) Start(deckID string) (*Runner, error) {
	r, err := Start(m.store, m.clock, deckID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[deckID] = r
	m.mu.Unlock()
	return r, nil
}

// Get returns the session for the deck, or ErrNoSession.
func (m *Manager) Get(deckID string) (*Runner, error) {
	m.mu.Lock()
	r, ok := m.sessions[deckID]
	m.mu.Unlock()
	if !ok {
		return nil, errors.NewNoSession(deckID)
	}
	return r, nil
}

// End discards the session for the deck, if any.
func (m *Manager) End(deckID string) {
	m.mu.Lock()
	delete(m.sessions, deckID)
	m.mu.Unlock()
}
