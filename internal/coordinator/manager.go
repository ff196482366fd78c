package coordinator

import (
	"sync"

	"go.uber.org/zap"
)

// SessionManager tracks the live edit sessions of the service. The API
// layer opens a session per editing surface and closes it when the
// surface goes away.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	cfg     SessionConfig
	store   ContentStore
	policy  Policy
	signals Signals
	logger  *zap.Logger
}

func NewSessionManager(cfg SessionConfig, store ContentStore, policy Policy, signals Signals, logger *zap.Logger) *SessionManager {
	if policy == nil {
		policy = TitlePolicy{}
	}
	if signals == nil {
		signals = NopSignals{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		store:    store,
		policy:   policy,
		signals:  signals,
		logger:   logger,
	}
}

// Open creates a new edit session.
func (m *SessionManager) Open() *Session {
	s := NewSession(m.cfg, m.store, m.policy, m.signals, m.logger)
	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	return s
}

// Get returns a live session by id.
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Close tears down a session and forgets it. Returns false when the id
// is unknown.
func (m *SessionManager) Close(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return false
	}
	s.Close()
	return true
}

// DiscardItem drops the draft for a deleted item from every live
// session so no flush targets a gone item.
func (m *SessionManager) DiscardItem(itemID string) {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()
	for _, s := range sessions {
		s.Discard(itemID)
	}
}

// CloseAll tears down every live session, flushing their drafts. Used
// on graceful shutdown.
func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	for _, s := range sessions {
		s.Close()
	}
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
