package session

import "time"

// Stats describes how far a session has got.
type Stats struct {
	Reviewed int // Cards moved past so far
	Requeues int // Cards sent back for another pass
	Unique   int // Distinct entries in the deck
	Target   int // Current target count
}

// Stats computes session statistics from the current state. The initial draw
// holds distinct indices and every requeue appends an index already present,
// so the requeue count is the number of repeated deck slots.
func (e *Engine) Stats() Stats {
	seen := make(map[int]struct{}, len(e.state.Deck))
	for _, idx := range e.state.Deck {
		seen[idx] = struct{}{}
	}
	reviewed := e.state.TargetIndex
	if reviewed > len(e.state.Deck) {
		reviewed = len(e.state.Deck)
	}
	return Stats{
		Reviewed: reviewed,
		Requeues: len(e.state.Deck) - len(seen),
		Unique:   len(seen),
		Target:   e.state.TargetCount,
	}
}

// Summary holds the data displayed on the summary screen.
type Summary struct {
	Stats
	Duration time.Duration
	Resumed  bool
}

// BuildSummary creates a Summary from the engine and the time spent in this
// process.
func BuildSummary(e *Engine, elapsed time.Duration, resumed bool) *Summary {
	return &Summary{
		Stats:    e.Stats(),
		Duration: elapsed,
		Resumed:  resumed,
	}
}
