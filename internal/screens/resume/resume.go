// Package resume implements the startup prompt offered when a saved session
// exists.
package resume

import (
	"fmt"
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/marusora/internal/router"
	"github.com/abhisek/marusora/internal/screen"
	"github.com/abhisek/marusora/internal/snapshot"
	"github.com/abhisek/marusora/internal/ui/components"
	"github.com/abhisek/marusora/internal/ui/layout"
	"github.com/abhisek/marusora/internal/ui/theme"
)

var (
	yesKey  = key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("Y", "Resume"))
	noKey   = key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "Start over"))
	quitKey = key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("Q", "Quit"))
)

// Options configures a ResumeScreen.
type Options struct {
	// Location names the save file shown in the prompt.
	Location string
	// Snapshot is the saved session, nil when LoadErr is set.
	Snapshot *snapshot.Snapshot
	// LoadErr is the error from reading the save file, typically a
	// snapshot.ErrCorrupt.
	LoadErr  error
	OnResume func(*snapshot.Snapshot) screen.Screen
	OnFresh  func() screen.Screen
	Logger   *slog.Logger
}

// ResumeScreen asks whether to continue the saved session.
type ResumeScreen struct {
	opts   Options
	menu   components.Menu
	logger *slog.Logger
}

var _ screen.Screen = (*ResumeScreen)(nil)
var _ screen.KeyHintProvider = (*ResumeScreen)(nil)

// New creates a new ResumeScreen.
func New(opts Options) *ResumeScreen {
	s := &ResumeScreen{opts: opts, logger: opts.Logger}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: s.resumeLabel(), Action: s.resume, Disabled: !s.canResume()},
		{Label: "Start a new session", Action: s.fresh},
	})
	return s
}

func (s *ResumeScreen) canResume() bool {
	return s.opts.LoadErr == nil && s.opts.Snapshot != nil && s.opts.OnResume != nil
}

func (s *ResumeScreen) resumeLabel() string {
	snap := s.opts.Snapshot
	if snap == nil {
		return "Resume saved session"
	}
	total := snap.State.TargetCount
	current := min(snap.State.TargetIndex+1, total)
	return fmt.Sprintf("Resume saved session (card %d of %d)", current, total)
}

func (s *ResumeScreen) resume() tea.Cmd {
	if !s.canResume() {
		return nil
	}
	s.logger.Info("resuming session", "session_id", s.opts.Snapshot.SessionID, "path", s.opts.Location)
	next := s.opts.OnResume(s.opts.Snapshot)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *ResumeScreen) fresh() tea.Cmd {
	if s.opts.OnFresh == nil {
		return nil
	}
	s.logger.Info("starting new session", "path", s.opts.Location)
	next := s.opts.OnFresh()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *ResumeScreen) Init() tea.Cmd {
	return nil
}

func (s *ResumeScreen) Title() string {
	return "Saved Session"
}

func (s *ResumeScreen) KeyHints() []layout.KeyHint {
	bindings := []key.Binding{noKey, quitKey}
	if s.canResume() {
		bindings = append([]key.Binding{yesKey}, bindings...)
	}
	hints := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return hints
}

func (s *ResumeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(kmsg, yesKey):
		return s, s.resume()
	case key.Matches(kmsg, noKey):
		return s, s.fresh()
	case key.Matches(kmsg, quitKey):
		return s, tea.Quit
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ResumeScreen) View(width, height int) string {
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder
	b.WriteString("\n")

	if s.opts.LoadErr != nil {
		b.WriteString(center(theme.ErrorText, fmt.Sprintf("Saved session '%s' cannot be loaded.", s.opts.Location)))
		b.WriteString("\n")
		b.WriteString(center(theme.Hint, s.opts.LoadErr.Error()))
		b.WriteString("\n\n")
	} else {
		b.WriteString(center(theme.Title, fmt.Sprintf("Load saved session '%s'? [Y/n]", s.opts.Location)))
		b.WriteString("\n")
		if snap := s.opts.Snapshot; snap != nil && !snap.SavedAt.IsZero() {
			b.WriteString(center(theme.Subtitle, "Saved "+snap.SavedAt.Local().Format("2006-01-02 15:04")))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))
	return b.String()
}
