package session

import (
	"fmt"

	"github.com/abhisek/marusora/internal/deck"
)

// Mode is the presentation state of a session.
type Mode int

const (
	ModeQuestion Mode = iota // Prompt shown, response hidden
	ModeAnswer               // Response revealed
	ModeDone                 // Deck exhausted; terminal
)

// String returns the text form used in snapshots and logs.
func (m Mode) String() string {
	switch m {
	case ModeQuestion:
		return "question"
	case ModeAnswer:
		return "answer"
	case ModeDone:
		return "done"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Valid reports whether m is one of the three known modes.
func (m Mode) Valid() bool {
	return m == ModeQuestion || m == ModeAnswer || m == ModeDone
}

// ParseMode parses the text form of a mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "question":
		return ModeQuestion, nil
	case "answer":
		return ModeAnswer, nil
	case "done":
		return ModeDone, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("marshal mode: invalid value %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// State is the mutable part of a session.
type State struct {
	// Deck is the ordered queue of entry indices. It only grows, at the tail,
	// when a card is requeued.
	Deck deck.Deck

	// TargetIndex is the zero-based cursor into Deck.
	TargetIndex int

	// TargetCount is the number of cards to study. It starts at the drawn deck
	// size and grows by one per requeue.
	TargetCount int

	// Mode is the current presentation mode.
	Mode Mode
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	s.Deck = s.Deck.Clone()
	return s
}

// Validate checks the state against a store of the given size.
func (s State) Validate(storeSize int) error {
	if !s.Mode.Valid() {
		return invariantf("mode %d is not a valid mode", int(s.Mode))
	}
	if s.TargetIndex < 0 {
		return invariantf("target index %d is negative", s.TargetIndex)
	}
	if s.TargetCount < 0 {
		return invariantf("target count %d is negative", s.TargetCount)
	}
	if s.TargetIndex > len(s.Deck) {
		return invariantf("target index %d past deck length %d", s.TargetIndex, len(s.Deck))
	}
	if s.TargetIndex == len(s.Deck) && s.Mode != ModeDone {
		return invariantf("cursor at deck end in %s mode", s.Mode)
	}
	if s.Mode == ModeDone && s.TargetIndex < len(s.Deck) {
		return invariantf("done mode with %d cards left", len(s.Deck)-s.TargetIndex)
	}
	for i, idx := range s.Deck {
		if idx < 0 || idx >= storeSize {
			return invariantf("deck[%d] = %d outside store of %d entries", i, idx, storeSize)
		}
	}
	return nil
}
