package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNoSession indica que el id de sesión no está vinculado a ninguna
// identidad (nunca existió, fue destruido o superó su vida máxima).
var ErrNoSession = errors.New("no active session")

// Store vincula un id de sesión opaco con el email autenticado. La
// vida máxima de login se fija al crear la sesión y no se renueva en
// cada acceso.
type Store interface {
	Login(ctx context.Context, email string) (string, error)
	Current(ctx context.Context, sid string) (string, error)
	Logout(ctx context.Context, sid string) error
}

type memoryEntry struct {
	email     string
	expiresAt time.Time
}

// MemoryStore es una implementación en memoria para desarrollo y tests.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memoryEntry
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Login(_ context.Context, email string) (string, error) {
	sid := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = memoryEntry{
		email:     email,
		expiresAt: s.now().Add(s.ttl),
	}
	return sid, nil
}

func (s *MemoryStore) Current(_ context.Context, sid string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[sid]
	if !ok {
		return "", ErrNoSession
	}
	if s.now().After(entry.expiresAt) {
		delete(s.sessions, sid)
		return "", ErrNoSession
	}
	return entry.email, nil
}

func (s *MemoryStore) Logout(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sid]; !ok {
		return ErrNoSession
	}
	delete(s.sessions, sid)
	return nil
}
