package session

import (
	"errors"
	"fmt"
)

// Sentinel errors for the session package.
var (
	ErrOutOfRange = errors.New("session: no current card")
	ErrInvariant  = errors.New("session: state invariant violated")
)

// OutOfRangeError reports an accessor call with no valid current card, either
// because the deck is empty or the cursor is past its end.
type OutOfRangeError struct {
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("session: no current card (index %d, deck length %d)", e.Index, e.Len)
}

func (e *OutOfRangeError) Is(target error) bool { return target == ErrOutOfRange }

// InvariantError reports a session state that cannot be driven safely.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return "session: invalid state: " + e.Reason
}

func (e *InvariantError) Is(target error) bool { return target == ErrInvariant }

func invariantf(format string, args ...any) error {
	return &InvariantError{Reason: fmt.Sprintf(format, args...)}
}
