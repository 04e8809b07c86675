// Package session holds the authenticated-user context derived from the
// backend's bearer credential.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/khadamat/webgate/internal/backend"
	"github.com/khadamat/webgate/internal/domain"
	"github.com/khadamat/webgate/internal/domain/entity"
	"github.com/khadamat/webgate/internal/storage"
	"github.com/khadamat/webgate/pkg/logger"
)

// Credentials is the login form payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the backend's successful login body.
type loginResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// Store is the session store. The user is never set without a token;
// a verification failure clears both in one critical section.
type Store struct {
	client *backend.Client
	state  storage.StateStore
	log    *logger.Logger

	mu    sync.RWMutex
	token string
	user  *entity.User
	err   string
}

// New creates the store, hydrating the token from the persisted state.
// Verifying it against the backend is the caller's job (CheckAuth).
func New(client *backend.Client, state storage.StateStore, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		client: client,
		state:  state,
		log:    log,
		token:  state.Read(storage.KeyAuthToken),
	}
}

// Token returns the held credential, or "" when absent.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the verified profile, or nil.
func (s *Store) User() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated is true iff both token and user are present.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// IsAdmin reports whether the verified user carries admin privileges.
func (s *Store) IsAdmin() bool {
	return s.User().IsAdmin()
}

// Error returns the last login error message, or "".
func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Login exchanges credentials for a token and profile. On success the
// token is persisted and installed on the API client so every following
// request carries it. On failure the prior session is left untouched
// and the backend's message (when present) is kept for the views.
func (s *Store) Login(ctx context.Context, creds Credentials) error {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()

	var out loginResponse
	if err := s.client.Post(ctx, "/auth/login/", creds, &out); err != nil {
		msg := loginErrorMessage(err)
		s.mu.Lock()
		s.err = msg
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.token = out.Token
	s.user = out.User
	s.mu.Unlock()

	if err := s.state.Write(storage.KeyAuthToken, out.Token); err != nil {
		s.log.Error().Err(err).Msg("persist auth token")
	}
	s.client.SetAuthToken(out.Token)
	return nil
}

// Logout invalidates the session remotely on a best-effort basis and
// unconditionally clears all local credential state. It never fails
// observably.
func (s *Store) Logout(ctx context.Context) {
	if s.Token() != "" {
		if err := s.client.Post(ctx, "/auth/logout/", nil, nil); err != nil {
			s.log.Error().Err(err).Msg("remote logout failed")
		}
	}
	s.clearLocked()
}

// CheckAuth verifies the held token against the backend. With no token
// it returns false without a network call. On success the profile is
// stored; on any failure the whole session is cleared. Idempotent and
// safe to call on every navigation.
func (s *Store) CheckAuth(ctx context.Context) bool {
	tok := s.Token()
	if tok == "" {
		return false
	}

	s.client.SetAuthToken(tok)

	var user entity.User
	if err := s.client.Get(ctx, "/auth/me/", &user); err != nil {
		s.log.Warn().Err(err).Msg("session verification failed, clearing session")
		s.clearLocked()
		return false
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return true
}

// RefreshUser re-fetches the profile without touching the token.
// Failures are logged and otherwise ignored; only CheckAuth tears the
// session down.
func (s *Store) RefreshUser(ctx context.Context) {
	if s.Token() == "" {
		return
	}
	var user entity.User
	if err := s.client.Get(ctx, "/auth/me/", &user); err != nil {
		s.log.Error().Err(err).Msg("refresh user profile")
		return
	}
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
}

// clearLocked drops token and user atomically, the persisted token and
// the client's default credential.
func (s *Store) clearLocked() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.state.Delete(storage.KeyAuthToken); err != nil {
		s.log.Error().Err(err).Msg("drop persisted token")
	}
	s.client.ClearAuthToken()
}

// loginErrorMessage extracts a human-readable message from a classified
// login failure.
func loginErrorMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var valErr *domain.ValidationError
	if errors.As(err, &valErr) && valErr.Message != "" {
		return valErr.Message
	}
	return "Login failed"
}
