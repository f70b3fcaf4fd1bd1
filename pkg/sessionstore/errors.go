package sessionstore

import "errors"

// Common session store errors
var (
	// ErrNotFound indicates the requested key was not found in the store.
	// This is not necessarily an error condition - a missing key is the
	// normal representation of a logged-out session.
	//
	// Example usage:
	//
	//	value, err := store.Get(ctx, key)
	//	if errors.Is(err, sessionstore.ErrNotFound) {
	//	    // No session persisted yet
	//	} else if err != nil {
	//	    // Handle other errors
	//	}
	ErrNotFound = errors.New("session store: key not found")
)
