// Package session provides the in-process conversation session store.
//
// Sessions are keyed by the customer's bare phone number and live for the
// process lifetime; there is no expiry and no persistence across restarts.
// The store is safe for concurrent use across conversations, and exposes a
// per-conversation lock so the dispatcher can serialize bursts of messages
// from a single sender. A multi-process deployment would need an external
// shared store behind the same interface.
package session

import (
	"log/slog"
	"sync"

	"github.com/lasenhorita/pizzabot/internal/models"
)

// Store defines the session storage contract used by the flow engine and
// the transport dispatcher.
type Store interface {
	// Get returns the session for the conversation, or nil when absent.
	Get(phone string) *models.Session

	// GetOrCreate returns the existing session or creates one in the START
	// state bound to the given transport thread.
	GetOrCreate(phone, chatID string) *models.Session

	// Set stores the session under the conversation key.
	Set(phone string, sess *models.Session)

	// Lock returns the serialization lock for one conversation. Callers
	// hold it across a full handle-and-reply cycle.
	Lock(phone string) *sync.Mutex

	// Range calls fn for each stored session until fn returns false.
	Range(fn func(sess *models.Session) bool)
}

type entry struct {
	sess *models.Session
	mu   sync.Mutex
}

// InMemoryStore is the reference Store implementation: a mutex-guarded map.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

// NewInMemoryStore creates an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*entry)}
}

// Get returns the session for the conversation, or nil when absent.
func (s *InMemoryStore) Get(phone string) *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.sessions[phone]; ok {
		return e.sess
	}
	return nil
}

// GetOrCreate returns the existing session or creates a fresh one.
func (s *InMemoryStore) GetOrCreate(phone, chatID string) *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[phone]; ok {
		if e.sess.ChatID == "" && chatID != "" {
			e.sess.ChatID = chatID
		}
		return e.sess
	}
	sess := models.NewSession(phone, chatID)
	s.sessions[phone] = &entry{sess: sess}
	slog.Debug("SessionStore created session", "phone", phone)
	return sess
}

// Set stores the session under the conversation key.
func (s *InMemoryStore) Set(phone string, sess *models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[phone]; ok {
		e.sess = sess
		return
	}
	s.sessions[phone] = &entry{sess: sess}
}

// Lock returns the per-conversation serialization lock, creating the entry
// when the conversation is not yet known.
func (s *InMemoryStore) Lock(phone string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[phone]
	if !ok {
		e = &entry{sess: models.NewSession(phone, "")}
		s.sessions[phone] = e
	}
	return &e.mu
}

// Range calls fn for each stored session until fn returns false.
func (s *InMemoryStore) Range(fn func(sess *models.Session) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.sessions {
		if !fn(e.sess) {
			return
		}
	}
}
