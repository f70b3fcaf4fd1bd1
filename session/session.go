// Package session holds the client-side authentication state: the access
// token, the refresh token, and the cached user profile. It is the single
// place that mutates that state; the HTTP transport and the auth manager
// both go through it.
//
// State is persisted through a sessionstore.Store under fixed, versioned
// keys, so a session survives process restarts when a durable backend is
// used. Absence of all keys is the normal logged-out state.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/developer9560/devigo-go/pkg/sessionstore"
)

// Storage keys for the three persisted session fields. The trailing version
// segment allows a future format change without misreading old entries.
const (
	keyAccessToken  = "devigo:session:access_token:v1"
	keyRefreshToken = "devigo:session:refresh_token:v1"
	keyUserProfile  = "devigo:session:user_profile:v1"
)

// UserProfile is the cached, denormalized record of the logged-in admin user
// as returned by the login and whoami endpoints.
type UserProfile struct {
	ID        int64  `json:"id"`                   // Server-assigned user identifier
	Username  string `json:"username"`             // Login name
	Email     string `json:"email"`                // Contact email
	FirstName string `json:"first_name,omitempty"` // Optional given name
	LastName  string `json:"last_name,omitempty"`  // Optional family name
	AvatarURL string `json:"avatar_url,omitempty"` // Optional profile image URL
	IsStaff   bool   `json:"is_staff,omitempty"`   // Backend staff flag
}

// Session is the process-wide authentication state. All reads and writes go
// through an internal mutex, so a Session is safe for concurrent use by
// multiple in-flight requests.
//
// An access token being present means the caller is optimistically treated
// as authenticated; no local expiry check is performed. Expiry is only ever
// discovered by a request failing with 401, at which point the transport
// refreshes or clears the session.
type Session struct {
	mu    sync.Mutex
	store sessionstore.Store
}

// New creates a Session backed by the given store. The store may already
// contain a persisted session from a previous run; nothing is read eagerly.
func New(store sessionstore.Store) *Session {
	return &Session{store: store}
}

// AccessToken returns the stored access token, or "" when logged out.
// Store read failures are logged and reported as an absent token so a
// broken storage backend degrades to "logged out" rather than panicking
// every request.
func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(keyAccessToken)
}

// RefreshToken returns the stored refresh token, or "" when none is held.
// Without a refresh token a 401 can never be recovered.
func (s *Session) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(keyRefreshToken)
}

// User returns the cached user profile, or nil when none is cached.
func (s *Session) User() *UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := s.get(keyUserProfile)
	if raw == "" {
		return nil
	}

	var profile UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		log.Warn().Err(err).Msg("Cached user profile is corrupt, ignoring")
		return nil
	}
	return &profile
}

// SetAll persists a complete session in one call: both tokens and the
// optional user profile. This is the login path. Tokens must be non-empty;
// the profile may be nil when the server did not return one.
//
// Writes happen under the session lock so no concurrent reader observes a
// half-written session. If any write fails, the session is cleared before
// the error is returned, so state is never left partially mutated.
func (s *Session) SetAll(accessToken, refreshToken string, user *UserProfile) error {
	if accessToken == "" || refreshToken == "" {
		return errors.New("session: both tokens are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()
	if err := s.store.Set(ctx, keyAccessToken, accessToken); err != nil {
		s.clearLocked()
		return err
	}
	if err := s.store.Set(ctx, keyRefreshToken, refreshToken); err != nil {
		s.clearLocked()
		return err
	}

	if user == nil {
		if err := s.store.Delete(ctx, keyUserProfile); err != nil {
			s.clearLocked()
			return err
		}
		return nil
	}

	data, err := json.Marshal(user)
	if err != nil {
		s.clearLocked()
		return err
	}
	if err := s.store.Set(ctx, keyUserProfile, string(data)); err != nil {
		s.clearLocked()
		return err
	}
	return nil
}

// SetAccessToken replaces only the access token. This is the token-refresh
// path: the refresh token and cached profile remain untouched.
func (s *Session) SetAccessToken(accessToken string) error {
	if accessToken == "" {
		return errors.New("session: access token is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Set(context.Background(), keyAccessToken, accessToken)
}

// SetUser replaces only the cached user profile.
func (s *Session) SetUser(user *UserProfile) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Set(context.Background(), keyUserProfile, string(data))
}

// Clear removes all three session fields. It is unconditional and
// idempotent: clearing an already-cleared session is a no-op, and storage
// errors are logged rather than returned so logout can never fail.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// clearLocked deletes all session keys. Callers must hold s.mu.
func (s *Session) clearLocked() {
	ctx := context.Background()
	for _, key := range []string{keyAccessToken, keyRefreshToken, keyUserProfile} {
		if err := s.store.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to delete session key")
		}
	}
}

// get reads one key, mapping both "not found" and storage failures to "".
// Callers must hold s.mu.
func (s *Session) get(key string) string {
	value, err := s.store.Get(context.Background(), key)
	if err != nil {
		if !errors.Is(err, sessionstore.ErrNotFound) {
			log.Warn().Err(err).Str("key", key).Msg("Failed to read session key")
		}
		return ""
	}
	return value
}
