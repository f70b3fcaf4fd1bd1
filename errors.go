package devigo

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidID indicates a resource operation was given an identifier that
// cannot belong to a persisted record: empty, the "new" form-draft
// placeholder, a stringified JS nil, or something that is not a plausible
// path segment. The operation is rejected locally, before any network I/O.
var ErrInvalidID = errors.New("devigo: invalid resource id")

// idPlaceholders are identifier values that denote an unsaved form draft
// rather than a persisted record.
var idPlaceholders = map[string]bool{
	"new":       true,
	"undefined": true,
	"null":      true,
}

// validateID rejects identifiers that must never reach the network.
func validateID(id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" || trimmed != id {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if idPlaceholders[strings.ToLower(trimmed)] {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if strings.ContainsAny(trimmed, "/?#%") {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
