// Package memory is the in-memory store backend: the default at runtime and
// the deterministic fake in tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/LorenzoOliveira534/youpagev1/internal/core"
)

type Store struct {
	mu       sync.Mutex
	snap     core.Snapshot
	saved    bool
	sessions map[string]struct{}
}

func New() *Store {
	return &Store{sessions: make(map[string]struct{})}
}

// Load returns a copy of the last saved aggregate, or the default one if
// nothing has been saved yet.
func (s *Store) Load(_ context.Context) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return core.DefaultSnapshot(), nil
	}
	return s.snap.Clone(), nil
}

func (s *Store) Save(_ context.Context, snap core.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap.Clone()
	s.saved = true
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = core.Snapshot{}
	s.saved = false
	return nil
}

func (s *Store) Start(_ context.Context) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = struct{}{}
	return token, nil
}

func (s *Store) Active(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[token]
	return ok, nil
}

// End removes only the session flag; the snapshot stays untouched so a later
// login restores the same tasks and transactions.
func (s *Store) End(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
