// Package session holds the authenticated state of the client: the bearer
// token and the signed-in profile. It replaces ambient global auth state with
// an explicit object that is hydrated once at startup, injected where needed,
// and cleared on logout.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"

	"lawconnect/models"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// Session is the client's authenticated state, persisted as a JSON blob.
type Session struct {
	mu    sync.RWMutex
	path  string
	token string
	user  models.User
}

type sessionBlob struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// New returns an empty session backed by the given file path.
func New(path string) *Session {
	return &Session{path: path}
}

// Hydrate loads a previously persisted session from disk. A missing file is
// not an error; it simply leaves the session unauthenticated.
func (s *Session) Hydrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var blob sessionBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	s.token = blob.Token
	s.user = blob.User
	return nil
}

// Set stores the token and profile received at login and persists them.
func (s *Session) Set(token string, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.user = user
	return s.persistLocked()
}

// Clear wipes the session state and removes the persisted file (logout).
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = models.User{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// Token returns the bearer token, or an empty string when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the signed-in profile.
func (s *Session) User() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// UpdateUser replaces the cached profile after a profile update and persists.
func (s *Session) UpdateUser(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	return s.persistLocked()
}

// Authenticated reports whether a token is present and not expired. The
// expiry claim is inspected without signature verification; the backend is
// the authority and rejects bad tokens regardless.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	parser := jwt.Parser{}
	if _, _, err := parser.ParseUnverified(s.token, claims); err != nil {
		// Opaque (non-JWT) tokens are treated as valid until the backend
		// says otherwise.
		return true
	}
	if exp, ok := claims["exp"].(float64); ok {
		return time.Now().Before(time.Unix(int64(exp), 0))
	}
	return true
}

func (s *Session) persistLocked() error {
	blob := sessionBlob{Token: s.token, User: s.user}
	data, err := json.Marshal(blob)
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
