// Package auth implements the login/logout lifecycle for the Devigo admin
// API. The Manager is the only component that establishes or tears down a
// session; the transport layer consumes the session state it maintains and
// clears it when an unrecoverable 401 is encountered.
//
// The observable state machine has exactly two states: Unauthenticated (no
// tokens) and Authenticated (tokens plus an optional cached profile). Token
// refresh happens transparently inside the transport and is never visible
// here.
package auth

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/developer9560/devigo-go/session"
	"github.com/developer9560/devigo-go/transport"
)

// Endpoint paths owned by the manager. Trailing slashes are significant to
// the backend and must be preserved.
const (
	loginPath  = "/auth/admin/login/"
	whoamiPath = "/auth/admin/check/"
)

// Credentials are the admin login inputs.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	User         *session.UserProfile // May be nil when the server omits it
	AccessToken  string
	RefreshToken string
}

// Manager owns the authentication lifecycle. It is safe for concurrent use.
type Manager struct {
	transport *transport.Client
	session   *session.Session
	logger    zerolog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for auth lifecycle events.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates an auth manager using t for API calls and sess as the
// session state it governs.
func NewManager(t *transport.Client, sess *session.Session, opts ...Option) *Manager {
	m := &Manager{
		transport: t,
		session:   sess,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login authenticates against the admin login endpoint and, on success,
// persists the complete session (both tokens and whatever profile the
// server returned) in one atomic step.
//
// A 2xx response missing either token fails with ErrInvalidServerResponse
// and persists nothing - the session is left exactly as it was before the
// call. Server rejections (wrong credentials and so on) propagate as
// *transport.APIError with the payload intact.
func (m *Manager) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	if creds.Username == "" || creds.Password == "" {
		return nil, ErrMissingCredentials
	}

	var resp struct {
		Access  string               `json:"access"`
		Refresh string               `json:"refresh"`
		User    *session.UserProfile `json:"user"`
	}
	if err := m.transport.Do(ctx, http.MethodPost, loginPath, creds, &resp); err != nil {
		return nil, err
	}

	if resp.Access == "" || resp.Refresh == "" {
		m.logger.Warn().Str("username", creds.Username).Msg("Login response missing tokens")
		return nil, ErrInvalidServerResponse
	}

	if err := m.session.SetAll(resp.Access, resp.Refresh, resp.User); err != nil {
		return nil, err
	}

	m.logger.Info().Str("username", creds.Username).Msg("Logged in")
	return &LoginResult{
		User:         resp.User,
		AccessToken:  resp.Access,
		RefreshToken: resp.Refresh,
	}, nil
}

// Logout clears the session unconditionally. It is synchronous, idempotent,
// and never fails; logging out twice leaves the same cleared state.
//
// No server call is made: the backend's tokens simply age out, and the
// client forgetting them is what "logged out" means here.
func (m *Manager) Logout() {
	m.session.Clear()
	m.logger.Info().Msg("Logged out")
}

// IsAuthenticated reports whether an access token is present. This is a
// presence check only, not a validity check: a token already expired on the
// server still reports true until a request fails with 401 and the
// transport's refresh path settles the matter. That staleness window is
// deliberate - the alternative (local expiry checks) would just disagree
// with the server in the other direction.
func (m *Manager) IsAuthenticated() bool {
	return m.session.AccessToken() != ""
}

// User returns the cached profile from the session, or nil when none is
// cached. It never calls the server; use RefreshUserProfile for that.
func (m *Manager) User() *session.UserProfile {
	return m.session.User()
}

// RefreshUserProfile re-fetches the current user from the whoami endpoint
// and overwrites the cached profile. When logged out it is a no-op
// returning (nil, nil).
//
// On failure the cached profile is left untouched and the error surfaces to
// the caller; clearing the session on auth failures is the transport's
// responsibility, not this method's.
func (m *Manager) RefreshUserProfile(ctx context.Context) (*session.UserProfile, error) {
	if !m.IsAuthenticated() {
		return nil, nil
	}

	var profile session.UserProfile
	if err := m.transport.Do(ctx, http.MethodGet, whoamiPath, nil, &profile); err != nil {
		return nil, err
	}

	if err := m.session.SetUser(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
