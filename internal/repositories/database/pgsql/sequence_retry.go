package pgsql

import (
	"errors"
	"fmt"

	"github.com/siamerp/finpost/internal/apperrors"
)

// maxSequenceRetries bounds the transparent retries after a sequence conflict.
const maxSequenceRetries = 3

// allocateNumbered runs save, retrying while it reports a sequence conflict.
// Conflicts happen when two transactions race to seed a new scope or to
// commit the same number; any other error aborts immediately.
func allocateNumbered(what string, save func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxSequenceRetries; attempt++ {
		number, err := save()
		if err == nil {
			return number, nil
		}
		if !errors.Is(err, apperrors.ErrSequenceConflict) {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("%s allocation failed after %d attempts: %w", what, maxSequenceRetries, lastErr)
}
