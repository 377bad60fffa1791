package handlers

import (
	"sync"

	"github.com/google/uuid"

	"github.com/vaani-ai/vaani/pkg/models"
)

// DefaultSourceLang and DefaultTargetLang are the language selection new
// sessions start with.
const (
	DefaultSourceLang = "english"
	DefaultTargetLang = "hindi"
)

// sessionEntry pairs a session with the mutex that serializes requests
// against it. Session state is single-owner: two concurrent requests for the
// same session take turns instead of interleaving pipeline stages.
type sessionEntry struct {
	mu   sync.Mutex
	sess *models.Session
}

// SessionStore keeps the live sessions in memory. Sessions are created on
// first use and vanish with the process; there is no persistence.
type SessionStore struct {
	mu              sync.Mutex
	entries         map[string]*sessionEntry
	maxHistoryItems int
}

// NewSessionStore creates an empty store.
func NewSessionStore(maxHistoryItems int) *SessionStore {
	if maxHistoryItems <= 0 {
		maxHistoryItems = models.DefaultMaxHistoryItems
	}
	return &SessionStore{
		entries:         make(map[string]*sessionEntry),
		maxHistoryItems: maxHistoryItems,
	}
}

// Acquire returns the session for the ID, creating it when absent, with its
// lock held. The caller must call the returned release function when done.
// An empty ID gets a fresh session under a generated ID.
func (s *SessionStore) Acquire(id string) (*models.Session, func()) {
	if id == "" {
		id = uuid.New().String()
	}

	s.mu.Lock()
	entry, ok := s.entries[id]
	if !ok {
		sess := models.NewSession(id, DefaultSourceLang, DefaultTargetLang)
		sess.MaxHistoryItems = s.maxHistoryItems
		entry = &sessionEntry{sess: sess}
		s.entries[id] = entry
	}
	s.mu.Unlock()

	entry.mu.Lock()
	return entry.sess, entry.mu.Unlock
}

// Remove drops a session from the store.
func (s *SessionStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
