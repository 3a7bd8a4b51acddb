// Package session implements the flashcard session engine: the
// Question/Answer/Done state machine over a drawn deck, requeueing, and
// progress reporting.
//
// An Engine owns its State exclusively. Callers drive it one command at a time
// and read it back through accessors; nothing outside the engine mutates the
// deck, cursor or mode.
package session

import (
	"math/rand/v2"

	"github.com/abhisek/marusora/internal/deck"
)

// Engine drives a single study session.
type Engine struct {
	store *deck.Store
	state State
}

// NewEngine starts a fresh session over store, drawing requested cards with r.
// A negative or oversized request studies every entry. An empty draw starts
// the session in ModeDone.
func NewEngine(store *deck.Store, requested int, r *rand.Rand) *Engine {
	d := deck.Draw(r, store.Size(), requested)
	state := State{
		Deck:        d,
		TargetCount: len(d),
		Mode:        ModeQuestion,
	}
	if len(d) == 0 {
		state.Mode = ModeDone
	}
	return &Engine{store: store, state: state}
}

// Restore rebuilds an engine from a previously captured state. The state is
// validated against the store; an inconsistent state is rejected with an
// error matching ErrInvariant rather than being repaired.
func Restore(store *deck.Store, state State) (*Engine, error) {
	if err := state.Validate(store.Size()); err != nil {
		return nil, err
	}
	return &Engine{store: store, state: state.Clone()}, nil
}

// Advance performs one presentation step:
//
//	Question -> Answer            (cursor unchanged)
//	Answer   -> Question, cursor+1 (or Done once the deck is exhausted)
//	Done     -> Done              (no-op)
func (e *Engine) Advance() {
	switch e.state.Mode {
	case ModeQuestion:
		e.state.Mode = ModeAnswer
	case ModeAnswer:
		e.state.TargetIndex++
		if e.state.TargetIndex >= len(e.state.Deck) {
			e.state.Mode = ModeDone
		} else {
			e.state.Mode = ModeQuestion
		}
	}
}

// RequeueCurrent appends the current card to the tail of the deck and grows
// the target count by one. It only acts in ModeAnswer, once the card has been
// seen; in any other mode it does nothing and returns false.
func (e *Engine) RequeueCurrent() bool {
	if e.state.Mode != ModeAnswer || e.state.TargetIndex >= len(e.state.Deck) {
		return false
	}
	e.state.Deck = append(e.state.Deck, e.state.Deck[e.state.TargetIndex])
	e.state.TargetCount++
	return true
}

// Apply runs one user command and reports whether the session should stop.
// Requeue marks the card for another pass and then moves on, like any other
// non-quit key. Quit leaves the state untouched so it can be saved as is.
func (e *Engine) Apply(cmd Command) (quit bool) {
	switch cmd {
	case CommandAdvance:
		e.Advance()
	case CommandRequeue:
		e.RequeueCurrent()
		e.Advance()
	case CommandQuit:
		return true
	}
	return false
}

// Mode returns the current presentation mode.
func (e *Engine) Mode() Mode { return e.state.Mode }

// Done reports whether the session has no cards left.
func (e *Engine) Done() bool { return e.state.Mode == ModeDone }

// QuestionNumber returns the 1-based ordinal of the current card. Requeued
// cards are numbered by their position in the deck.
func (e *Engine) QuestionNumber() int { return e.state.TargetIndex + 1 }

// TargetCount returns the number of cards the session currently expects to
// study, including requeues.
func (e *Engine) TargetCount() int { return e.state.TargetCount }

// Prompt returns the current card's prompt.
func (e *Engine) Prompt() (string, error) {
	entry, err := e.current()
	if err != nil {
		return "", err
	}
	return entry.Prompt, nil
}

// Response returns the current card's response. Callers rendering a card in
// ModeQuestion must not display it.
func (e *Engine) Response() (string, error) {
	entry, err := e.current()
	if err != nil {
		return "", err
	}
	return entry.Response, nil
}

func (e *Engine) current() (deck.Entry, error) {
	i := e.state.TargetIndex
	if i < 0 || i >= len(e.state.Deck) {
		return deck.Entry{}, &OutOfRangeError{Index: i, Len: len(e.state.Deck)}
	}
	entry, err := e.store.Entry(e.state.Deck[i])
	if err != nil {
		// Restore validates every index, so this is a construction bug.
		return deck.Entry{}, &InvariantError{Reason: err.Error()}
	}
	return entry, nil
}

// State returns a copy of the session state, suitable for snapshotting.
func (e *Engine) State() State { return e.state.Clone() }

// Store returns the entry store the session draws from.
func (e *Engine) Store() *deck.Store { return e.store }
