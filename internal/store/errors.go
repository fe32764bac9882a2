package store

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every backend. Read misses are not errors: every
// get-by-id returns a nil result for a missing row. These sentinels cover the
// write paths and backend probing.
var (
	// ErrConflict is returned when creating an entity whose id already exists.
	ErrConflict = errors.New("entity already exists")

	// ErrInvalidArgument is returned before any I/O when an id or required
	// field is empty or malformed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingReference is returned when a write names a parent entity that
	// does not exist (e.g. a unit whose series is missing).
	ErrMissingReference = errors.New("referenced entity does not exist")

	// ErrBackendUnavailable wraps connection and initialization failures. The
	// switcher converts it into a fallback-tier transition during startup and
	// never surfaces it to callers while probing.
	ErrBackendUnavailable = errors.New("storage backend unavailable")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidArgument}, args...)...)
}

// ValidateID rejects empty ids before any backend work happens.
func ValidateID(id string) error {
	if id == "" {
		return invalidf("empty id")
	}
	return nil
}
