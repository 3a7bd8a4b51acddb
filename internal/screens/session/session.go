package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/marusora/internal/router"
	"github.com/abhisek/marusora/internal/screen"
	"github.com/abhisek/marusora/internal/screens/summary"
	sess "github.com/abhisek/marusora/internal/session"
	"github.com/abhisek/marusora/internal/snapshot"
	"github.com/abhisek/marusora/internal/store"
	"github.com/abhisek/marusora/internal/ui/layout"

	"github.com/google/uuid"
)

// Options configures a SessionScreen.
type Options struct {
	Engine    *sess.Engine
	Repo      store.SnapshotRepo
	SessionID string // empty starts a new session ID
	Resumed   bool
	Logger    *slog.Logger
	Keys      *KeyMap
	Now       func() time.Time
}

// SessionScreen implements screen.Screen for the active study session.
type SessionScreen struct {
	engine    *sess.Engine
	repo      store.SnapshotRepo
	sessionID string
	resumed   bool
	logger    *slog.Logger
	keys      KeyMap
	now       func() time.Time
	started   time.Time
	saving    bool
	errMsg    string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)

// New creates a new SessionScreen over an engine.
func New(opts Options) *SessionScreen {
	s := &SessionScreen{
		engine:    opts.Engine,
		repo:      opts.Repo,
		sessionID: opts.SessionID,
		resumed:   opts.Resumed,
		logger:    opts.Logger,
		keys:      DefaultKeyMap,
		now:       opts.Now,
	}
	if opts.Keys != nil {
		s.keys = *opts.Keys
	}
	if s.sessionID == "" {
		s.sessionID = uuid.New().String()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.started = s.now()
	if s.engine == nil {
		s.errMsg = "no session to run"
	}
	return s
}

// NewFailed creates a SessionScreen that only reports err. Any key exits.
func NewFailed(err error) *SessionScreen {
	s := New(Options{})
	s.errMsg = err.Error()
	return s
}

// SessionID returns the identifier written into saved snapshots.
func (s *SessionScreen) SessionID() string {
	return s.sessionID
}

// Init finishes immediately when the engine starts out exhausted, as it does
// for an empty entry store.
func (s *SessionScreen) Init() tea.Cmd {
	if s.errMsg == "" && s.engine.Done() {
		s.logger.Info("session has no cards", "session_id", s.sessionID)
		return s.finish()
	}
	return nil
}

func (s *SessionScreen) Title() string {
	return "Study"
}

func (s *SessionScreen) Status() string {
	if s.engine == nil {
		return ""
	}
	status := fmt.Sprintf("%d%%", s.engine.ProgressPercent())
	if s.resumed {
		status = "resumed  " + status
	}
	return status
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Exit"}}
	}
	if s.saving {
		return nil
	}
	hints := []layout.KeyHint{hint(s.keys.Advance)}
	if s.engine.Mode() == sess.ModeQuestion {
		hints[0].Description = "Reveal"
	} else {
		hints = append(hints, hint(s.keys.Requeue))
	}
	return append(hints, hint(s.keys.Quit))
}

func (s *SessionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.saving {
		return renderSaving(width)
	}
	return s.renderCard(width, height)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotSavedMsg:
		return s.handleSaved(msg)

	case snapshotClearedMsg:
		return s.handleCleared(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, tea.Quit
	}
	if s.saving || s.engine.Done() {
		return s, nil
	}

	cmd := s.keys.Command(msg)
	if cmd == sess.CommandNone {
		return s, nil
	}

	s.logger.Debug("session command",
		"session_id", s.sessionID,
		"command", cmd.String(),
		"question", s.engine.QuestionNumber(),
	)

	if s.engine.Apply(cmd) {
		s.saving = true
		return s, s.saveSnapshot()
	}
	if s.engine.Done() {
		return s, s.finish()
	}
	return s, nil
}

func (s *SessionScreen) handleSaved(msg snapshotSavedMsg) (screen.Screen, tea.Cmd) {
	s.saving = false
	if msg.Err != nil {
		s.logger.Error("save snapshot", "session_id", s.sessionID, "error", msg.Err)
		s.errMsg = fmt.Sprintf("could not save session: %v", msg.Err)
		return s, nil
	}
	s.logger.Info("session saved",
		"session_id", s.sessionID,
		"path", s.repo.Location(),
		"question", s.engine.QuestionNumber(),
		"target", s.engine.TargetCount(),
	)
	return s, tea.Quit
}

func (s *SessionScreen) handleCleared(msg snapshotClearedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		// The session is finished either way; a stale snapshot only means the
		// next run offers to resume a completed session.
		s.logger.Warn("clear snapshot", "session_id", s.sessionID, "error", msg.Err)
	}

	sum := sess.BuildSummary(s.engine, s.now().Sub(s.started), s.resumed)
	s.logger.Info("session complete",
		"session_id", s.sessionID,
		"reviewed", sum.Reviewed,
		"requeues", sum.Requeues,
		"duration", sum.Duration.String(),
	)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

// saveSnapshot persists the current session state.
func (s *SessionScreen) saveSnapshot() tea.Cmd {
	if s.repo == nil {
		return func() tea.Msg { return snapshotSavedMsg{Err: fmt.Errorf("no save location configured")} }
	}
	snap := snapshot.New(s.engine, s.sessionID, s.now())
	repo := s.repo
	return func() tea.Msg {
		return snapshotSavedMsg{Err: repo.Save(context.Background(), snap)}
	}
}

// finish removes the saved snapshot, since a completed session has nothing
// left to resume.
func (s *SessionScreen) finish() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		if repo == nil {
			return snapshotClearedMsg{}
		}
		return snapshotClearedMsg{Err: repo.Clear(context.Background())}
	}
}
