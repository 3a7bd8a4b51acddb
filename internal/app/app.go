package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/marusora/internal/deck"
	"github.com/abhisek/marusora/internal/router"
	"github.com/abhisek/marusora/internal/screen"
	"github.com/abhisek/marusora/internal/screens/resume"
	sessionscreen "github.com/abhisek/marusora/internal/screens/session"
	"github.com/abhisek/marusora/internal/session"
	"github.com/abhisek/marusora/internal/snapshot"
	"github.com/abhisek/marusora/internal/store"
	"github.com/abhisek/marusora/internal/ui/layout"
)

// Resume policies.
const (
	ResumeAsk = "ask"
	ResumeYes = "yes"
	ResumeNo  = "no"
)

// Options configures a study run.
type Options struct {
	Repo store.SnapshotRepo
	// Entries loads the entry store for a fresh session. It is not called
	// when a saved session is resumed.
	Entries func() (*deck.Store, error)
	// Number is the requested deck size; negative studies every entry.
	Number int
	// Seed seeds the deck draw. Zero picks a random seed.
	Seed   uint64
	Resume string
	Logger *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel showing initial.
func newAppModel(initial screen.Screen) AppModel {
	return AppModel{
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render draws the frame for the current window size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var (
		title  string
		status string
		hints  []layout.KeyHint
	)
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			hints = kp.KeyHints()
		}
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Abort"})

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// launcher builds the screens a run can start with.
type launcher struct {
	opts   Options
	logger *slog.Logger
}

func newLauncher(opts Options) *launcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &launcher{opts: opts, logger: logger}
}

// fresh starts a new session over freshly loaded entries.
func (l *launcher) fresh() screen.Screen {
	if l.opts.Entries == nil {
		return sessionscreen.NewFailed(errors.New("no entry source configured"))
	}
	entries, err := l.opts.Entries()
	if err != nil {
		return sessionscreen.NewFailed(err)
	}

	seed := l.opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	engine := session.NewEngine(entries, l.opts.Number, deck.NewRand(seed))

	s := sessionscreen.New(sessionscreen.Options{
		Engine: engine,
		Repo:   l.opts.Repo,
		Logger: l.logger,
	})
	l.logger.Info("session started",
		"session_id", s.SessionID(),
		"entries", entries.Size(),
		"requested", l.opts.Number,
		"target", engine.TargetCount(),
		"seed", seed,
	)
	return s
}

// resumed continues a saved session.
func (l *launcher) resumed(snap *snapshot.Snapshot) screen.Screen {
	engine, err := snap.Engine()
	if err != nil {
		return sessionscreen.NewFailed(fmt.Errorf("restore session: %w", err))
	}
	l.logger.Info("session resumed",
		"session_id", snap.SessionID,
		"question", engine.QuestionNumber(),
		"target", engine.TargetCount(),
	)
	return sessionscreen.New(sessionscreen.Options{
		Engine:    engine,
		Repo:      l.opts.Repo,
		SessionID: snap.SessionID,
		Resumed:   true,
		Logger:    l.logger,
	})
}

// initialScreen picks the first screen from the saved snapshot and the resume
// policy. I/O failures other than a corrupt snapshot abort the run.
func initialScreen(ctx context.Context, opts Options) (screen.Screen, error) {
	l := newLauncher(opts)
	logger := l.logger

	if opts.Repo == nil {
		return nil, errors.New("no snapshot store configured")
	}
	snap, err := opts.Repo.Load(ctx)
	if err != nil && !errors.Is(err, snapshot.ErrCorrupt) {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if err != nil {
		logger.Warn("saved session is corrupt", "path", opts.Repo.Location(), "error", err)
	}

	switch {
	case snap == nil && err == nil:
		return l.fresh(), nil
	case opts.Resume == ResumeNo:
		return l.fresh(), nil
	case opts.Resume == ResumeYes && err == nil:
		return l.resumed(snap), nil
	case opts.Resume == ResumeYes:
		return l.fresh(), nil
	}

	return resume.New(resume.Options{
		Location: opts.Repo.Location(),
		Snapshot: snap,
		LoadErr:  err,
		OnResume: l.resumed,
		OnFresh:  l.fresh,
		Logger:   logger,
	}), nil
}

// Run starts the Bubble Tea program.
func Run(ctx context.Context, opts Options) error {
	initial, err := initialScreen(ctx, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newAppModel(initial), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
