// Package session holds the per-session mutable slice of the application.
// Everything else in the service is read-only after startup.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/randomtoy/volva-go/internal/domain"
)

// State is one session's view: the current draws keyed by spread type, the
// daily rune, the last prophecy and the API credential. A new draw replaces
// the previous one for its spread type wholesale. State is never shared
// between sessions.
type State struct {
	mu         sync.Mutex
	draws      map[domain.SpreadType]domain.Spread
	daily      *domain.DrawnRune
	prophecy   string
	credential string
}

func newState() *State {
	return &State{draws: make(map[domain.SpreadType]domain.Spread)}
}

// Draw returns the stored draw for a spread type, if one exists.
func (s *State) Draw(t domain.SpreadType) (domain.Spread, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, ok := s.draws[t]
	return sp, ok
}

// SetDraw replaces the stored draw for the spread's type.
func (s *State) SetDraw(sp domain.Spread) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draws[sp.Type] = sp
}

// DailyRune returns the session's rune of the day, if drawn.
func (s *State) DailyRune() (domain.DrawnRune, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.daily == nil {
		return domain.DrawnRune{}, false
	}
	return *s.daily, true
}

func (s *State) SetDailyRune(r domain.DrawnRune) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.daily = &r
}

// Prophecy returns the most recent prophecy text.
func (s *State) Prophecy() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prophecy
}

func (s *State) SetProphecy(p string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prophecy = p
}

// Credential returns the session's API key. It is never logged or persisted.
func (s *State) Credential() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential
}

func (s *State) SetCredential(c string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = c
}

// Manager hands out session state keyed by opaque IDs.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*State
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*State)}
}

// Get returns the state for id, minting a fresh session when the id is empty
// or unknown. The returned id is the one the caller should hand back to the
// client.
func (m *Manager) Get(id string) (*State, string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if st, ok := m.sessions[id]; ok {
			return st, id
		}
	}

	id = uuid.NewString()
	st := newState()
	m.sessions[id] = st
	return st, id
}
