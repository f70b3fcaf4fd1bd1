package auth

import "errors"

// Common authentication errors
var (
	// ErrInvalidServerResponse indicates the login endpoint answered with
	// 2xx but the payload was missing the access or refresh token. No
	// session state is persisted when this is returned.
	ErrInvalidServerResponse = errors.New("auth: server response missing required tokens")

	// ErrNotAuthenticated indicates an operation that needs a session was
	// called while logged out.
	ErrNotAuthenticated = errors.New("auth: not authenticated")

	// ErrMissingCredentials indicates Login was called without a username
	// or password. Raised locally, before any network I/O.
	ErrMissingCredentials = errors.New("auth: username and password are required")
)
