// Package deck holds the flashcard entries loaded for a session and draws
// randomized study decks from them.
package deck

import (
	"errors"
	"fmt"
)

// ErrIndex is returned when an entry is looked up outside the store bounds.
var ErrIndex = errors.New("deck: entry index out of range")

// Entry is one prompt/response flashcard pair.
type Entry struct {
	Prompt   string
	Response string
}

// Store is the ordered, append-only collection of entries for a process.
// Entries are identified by their position; insertion order is preserved.
type Store struct {
	entries []Entry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// NewStoreFrom creates a store holding a copy of entries, in order.
func NewStoreFrom(entries []Entry) *Store {
	s := &Store{entries: make([]Entry, len(entries))}
	copy(s.entries, entries)
	return s
}

// Add appends one entry. Entries are never deduplicated.
func (s *Store) Add(prompt, response string) {
	s.entries = append(s.entries, Entry{Prompt: prompt, Response: response})
}

// Size returns the number of entries.
func (s *Store) Size() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Entry returns the entry at position i.
func (s *Store) Entry(i int) (Entry, error) {
	if i < 0 || i >= s.Size() {
		return Entry{}, fmt.Errorf("%w: %d (size %d)", ErrIndex, i, s.Size())
	}
	return s.entries[i], nil
}

// Entries returns a copy of all entries in insertion order.
func (s *Store) Entries() []Entry {
	out := make([]Entry, s.Size())
	if s != nil {
		copy(out, s.entries)
	}
	return out
}
