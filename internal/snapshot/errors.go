package snapshot

import (
	"errors"
	"fmt"
)

// ErrCorrupt matches every error returned for a snapshot that fails
// validation. Use errors.Is(err, snapshot.ErrCorrupt) to tell an unusable
// snapshot apart from an I/O failure.
var ErrCorrupt = errors.New("snapshot: corrupt")

// CorruptError describes why a snapshot was rejected.
type CorruptError struct {
	Reason string
	Err    error
}

func (e *CorruptError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("snapshot: corrupt: %s: %v", e.Reason, e.Err)
	}
	return "snapshot: corrupt: " + e.Reason
}

func (e *CorruptError) Unwrap() error { return e.Err }

func (e *CorruptError) Is(target error) bool { return target == ErrCorrupt }

func corrupt(reason string, err error) error {
	return &CorruptError{Reason: reason, Err: err}
}
