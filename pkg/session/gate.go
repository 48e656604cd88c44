// Package session implements the login gate: a credential check and
// explicit per-visitor session objects holding the authenticated flag.
package session

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/aretw0/stickyboard/pkg/core"
)

// Credentials is a login attempt.
type Credentials struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Gate checks credentials against the single configured account.
// The password is kept only as a bcrypt hash.
type Gate struct {
	username string
	hash     []byte
}

// NewGate hashes password and returns a gate for username.
func NewGate(username, password string) (*Gate, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &Gate{username: strings.TrimSpace(username), hash: hash}, nil
}

// Check returns core.ErrAuth unless c matches. The username is trimmed.
func (g *Gate) Check(c Credentials) error {
	if strings.TrimSpace(c.Username) != g.username {
		return core.ErrAuth
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(c.Password)); err != nil {
		return core.ErrAuth
	}
	return nil
}
