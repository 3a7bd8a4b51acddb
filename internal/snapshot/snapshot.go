// Package snapshot serializes a complete session (entry store plus session
// state) to a JSON document and restores it, rejecting anything that does not
// describe a drivable session.
package snapshot

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"

	"github.com/abhisek/marusora/internal/deck"
	"github.com/abhisek/marusora/internal/session"
)

// FormatVersion is written into every snapshot. Snapshots with a different
// major version are rejected.
const FormatVersion = "v1.0.0"

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://marusora/snapshot.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Snapshot is a full, restorable capture of a session.
type Snapshot struct {
	Version   string
	SessionID string
	SavedAt   time.Time
	Store     *deck.Store
	State     session.State
}

// New captures the engine's store and state.
func New(e *session.Engine, sessionID string, now time.Time) *Snapshot {
	return &Snapshot{
		Version:   FormatVersion,
		SessionID: sessionID,
		SavedAt:   now.UTC(),
		Store:     e.Store(),
		State:     e.State(),
	}
}

// Engine rebuilds a session engine from the snapshot.
func (s *Snapshot) Engine() (*session.Engine, error) {
	return session.Restore(s.Store, s.State)
}

type entryDoc struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

type document struct {
	Version     string     `json:"version"`
	SessionID   string     `json:"session_id,omitempty"`
	SavedAt     time.Time  `json:"saved_at"`
	Entries     []entryDoc `json:"entries"`
	Deck        []int      `json:"deck"`
	TargetIndex int        `json:"target_index"`
	TargetCount int        `json:"target_count"`
	Mode        string     `json:"mode"`
}

// Marshal encodes a snapshot as an indented JSON document.
func Marshal(s *Snapshot) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("marshal snapshot: nil snapshot")
	}
	if !s.State.Mode.Valid() {
		return nil, fmt.Errorf("marshal snapshot: invalid mode %d", int(s.State.Mode))
	}

	version := s.Version
	if version == "" {
		version = FormatVersion
	}

	entries := s.Store.Entries()
	doc := document{
		Version:     version,
		SessionID:   s.SessionID,
		SavedAt:     s.SavedAt,
		Entries:     make([]entryDoc, len(entries)),
		Deck:        make([]int, len(s.State.Deck)),
		TargetIndex: s.State.TargetIndex,
		TargetCount: s.State.TargetCount,
		Mode:        s.State.Mode.String(),
	}
	for i, e := range entries {
		doc.Entries[i] = entryDoc{Prompt: e.Prompt, Response: e.Response}
	}
	copy(doc.Deck, s.State.Deck)

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return append(b, '\n'), nil
}

// Unmarshal decodes and validates a snapshot document. Any structural or
// semantic problem yields an error matching ErrCorrupt and a nil snapshot;
// out-of-range values are never clamped.
func Unmarshal(data []byte) (*Snapshot, error) {
	raw, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, corrupt("invalid JSON", err)
	}

	sch, err := schema()
	if err != nil {
		return nil, fmt.Errorf("compile snapshot schema: %w", err)
	}
	if err := sch.Validate(raw); err != nil {
		return nil, corrupt("schema validation failed", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, corrupt("decode document", err)
	}

	if !semver.IsValid(doc.Version) {
		return nil, corrupt(fmt.Sprintf("invalid version %q", doc.Version), nil)
	}
	if semver.Major(doc.Version) != semver.Major(FormatVersion) {
		return nil, corrupt(fmt.Sprintf("unsupported version %s", doc.Version), nil)
	}

	mode, err := session.ParseMode(doc.Mode)
	if err != nil {
		return nil, corrupt("mode", err)
	}

	entries := make([]deck.Entry, len(doc.Entries))
	for i, e := range doc.Entries {
		entries[i] = deck.Entry{Prompt: e.Prompt, Response: e.Response}
	}
	d := make(deck.Deck, len(doc.Deck))
	copy(d, doc.Deck)

	state := session.State{
		Deck:        d,
		TargetIndex: doc.TargetIndex,
		TargetCount: doc.TargetCount,
		Mode:        mode,
	}
	if err := state.Validate(len(entries)); err != nil {
		return nil, corrupt("inconsistent session state", err)
	}

	return &Snapshot{
		Version:   doc.Version,
		SessionID: doc.SessionID,
		SavedAt:   doc.SavedAt,
		Store:     deck.NewStoreFrom(entries),
		State:     state,
	}, nil
}

// schema compiles the embedded snapshot schema once.
func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}
