// Package sessionstore provides durable key-value storage backends for the
// client session state (tokens and the cached user profile).
//
// The SDK persists three keyed entries; where they live depends on the host
// application. Three backends are provided:
//   - Memory: ephemeral, for tests and short-lived processes
//   - File: a JSON file on disk, the usual choice for CLI and desktop apps
//   - Redis: shared storage for multi-instance server-side consumers
//
// Absence of a key is a valid state (a logged-out session), reported as
// ErrNotFound rather than treated as a failure.
package sessionstore

import "context"

// Store is the interface all session storage backends implement.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound if the key
	// does not exist.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
