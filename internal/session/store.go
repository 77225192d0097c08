package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/voyara/voyara-client/internal/models"
)

// ErrNotAuthenticated is returned when an operation requires a stored
// identity and none is present
var ErrNotAuthenticated = errors.New("no authenticated session")

// Store is the single identity provider for the client. Every component
// reads the stored user and token through it instead of re-parsing the
// session file ad hoc.
type Store struct {
	path string

	mu    sync.RWMutex
	user  *models.User
	token string
}

// persisted is the on-disk session shape: the "user" object and the
// bearer "token" string, the only durable client-side state.
type persisted struct {
	User  *models.User `json:"user,omitempty"`
	Token string       `json:"token,omitempty"`
}

// NewStore creates a session store backed by the given file. A missing
// file is not an error; it means no one is logged in yet.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	s.mu.Lock()
	s.user = p.User
	s.token = p.Token
	s.mu.Unlock()
	return nil
}

func (s *Store) save() error {
	s.mu.RLock()
	p := persisted{User: s.user, Token: s.token}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// SetIdentity stores the logged-in user and bearer token
func (s *Store) SetIdentity(user models.User, token string) error {
	s.mu.Lock()
	user.IsLoggedIn = true
	s.user = &user
	s.token = token
	s.mu.Unlock()
	return s.save()
}

// Clear removes the stored identity
func (s *Store) Clear() error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
	return s.save()
}

// User returns the stored user, or ErrNotAuthenticated if none is stored
func (s *Store) User() (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil || !s.user.IsLoggedIn {
		return models.User{}, ErrNotAuthenticated
	}
	return *s.user, nil
}

// Token returns the stored bearer token, or ErrNotAuthenticated if empty
func (s *Store) Token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return "", ErrNotAuthenticated
	}
	return s.token, nil
}

// TokenExpiresWithin reports whether the stored bearer token expires within
// the given duration. Tokens without an exp claim, or tokens that do not
// parse as JWTs, are treated as non-expiring.
func (s *Store) TokenExpiresWithin(d time.Duration) bool {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	// Expiry inspection only; signature verification belongs to the server.
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) < d
}
