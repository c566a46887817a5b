package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LorenzoOliveira534/youpagev1/internal/core"
	"github.com/LorenzoOliveira534/youpagev1/internal/store"
)

// ErrUnknownFlow means the flow token expired or never existed; the caller
// restarts from the registration form.
var ErrUnknownFlow = errors.New("unknown or expired flow")

type pendingFlow struct {
	flow      *Flow
	expiresAt time.Time
}

// Service drives flows across requests. Registrations waiting for their
// verification code are kept in memory keyed by a flow token with a TTL;
// sessions and the aggregate live behind the store ports.
type Service struct {
	snapshots store.SnapshotStore
	sessions  store.SessionStore
	code      string
	ttl       time.Duration

	mu      sync.Mutex
	pending map[string]pendingFlow
}

func NewService(snapshots store.SnapshotStore, sessions store.SessionStore, acceptCode string, pendingTTL time.Duration) *Service {
	return &Service{
		snapshots: snapshots,
		sessions:  sessions,
		code:      acceptCode,
		ttl:       pendingTTL,
		pending:   make(map[string]pendingFlow),
	}
}

// Register starts a registration flow and returns the token to carry through
// the verification form.
func (s *Service) Register(ctx context.Context, name, email, password string) (string, error) {
	flow := NewFlow(s.code)
	if err := flow.BeginRegister(name, email, password); err != nil {
		return "", err
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.pending[token] = pendingFlow{flow: flow, expiresAt: time.Now().Add(s.ttl)}
	s.pruneLocked()
	s.mu.Unlock()

	slog.InfoContext(ctx, "Registration pending verification", "flow", token)
	return token, nil
}

// Verify submits the joined digits for a pending registration. On a mismatch
// the flow stays pending so the user can retry with the same token.
func (s *Service) Verify(ctx context.Context, token, code string) (sessionToken string, err error) {
	s.mu.Lock()
	p, ok := s.pending[token]
	if ok && time.Now().After(p.expiresAt) {
		delete(s.pending, token)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return "", ErrUnknownFlow
	}

	if err := p.flow.SubmitCode(code); err != nil {
		return "", err
	}

	s.mu.Lock()
	delete(s.pending, token)
	s.mu.Unlock()

	return s.Establish(ctx, p.flow.Name())
}

// Login authenticates any non-empty submission under the placeholder name.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	flow := NewFlow(s.code)
	if err := flow.BeginLogin(email, password); err != nil {
		return "", err
	}
	return s.Establish(ctx, "")
}

// Social is the third-party identity shortcut.
func (s *Service) Social(ctx context.Context) (string, error) {
	flow := NewFlow(s.code)
	if err := flow.Social(); err != nil {
		return "", err
	}
	return s.Establish(ctx, "")
}

// Establish merges the display name into whatever aggregate is already
// stored, keeping existing tasks and transactions, persists it and starts a
// session.
func (s *Service) Establish(ctx context.Context, name string) (string, error) {
	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load snapshot: %w", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		if snap.Name == "" {
			name = core.PlaceholderName
		} else {
			name = snap.Name
		}
	}
	snap.Name = name
	if err := s.snapshots.Save(ctx, snap); err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}

	token, err := s.sessions.Start(ctx)
	if err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}

	slog.InfoContext(ctx, "Session established", "name", name)
	return token, nil
}

// Active reports whether the session flag exists for the token.
func (s *Service) Active(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	return s.sessions.Active(ctx, token)
}

// Logout removes only the session flag. The aggregate stays in the store so
// the next login restores the same lists.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.End(ctx, token); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	slog.InfoContext(ctx, "Session ended")
	return nil
}

// pruneLocked drops expired pending flows. Caller holds the mutex.
func (s *Service) pruneLocked() {
	now := time.Now()
	for token, p := range s.pending {
		if now.After(p.expiresAt) {
			delete(s.pending, token)
		}
	}
}
