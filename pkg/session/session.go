package session

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/stickyboard/pkg/adapters/memory"
	"github.com/aretw0/stickyboard/pkg/core"
)

const authenticated = "true"

// Session is one visitor's session-scoped storage plus the gate it logs in
// through. Only the exact value "true" under core.AuthFlagKey counts as
// authenticated.
type Session struct {
	ID string

	store  core.Store
	gate   *Gate
	logger *slog.Logger
}

// New creates a session over its own empty session-scoped storage.
func New(id string, gate *Gate, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{ID: id, store: memory.New(), gate: gate, logger: logger}
}

// IsAuthenticated reports whether the session has logged in.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	v, err := s.store.Read(ctx, core.AuthFlagKey)
	if err != nil {
		return false
	}
	return string(v) == authenticated
}

// Login checks c and marks the session authenticated.
// A failed attempt returns core.ErrAuth and leaves the session unchanged.
func (s *Session) Login(ctx context.Context, c Credentials) error {
	if err := s.gate.Check(c); err != nil {
		s.logger.Info("login rejected", "session", s.ID)
		return err
	}
	if err := s.store.Write(ctx, core.AuthFlagKey, []byte(authenticated)); err != nil {
		return err
	}
	s.logger.Info("login succeeded", "session", s.ID)
	return nil
}

// Logout clears the authenticated flag.
func (s *Session) Logout(ctx context.Context) error {
	err := s.store.Remove(ctx, core.AuthFlagKey)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return err
	}
	return nil
}
