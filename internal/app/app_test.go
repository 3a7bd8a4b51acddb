package app

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/marusora/internal/deck"
	"github.com/abhisek/marusora/internal/router"
	"github.com/abhisek/marusora/internal/screen"
	"github.com/abhisek/marusora/internal/screens/resume"
	sessionscreen "github.com/abhisek/marusora/internal/screens/session"
	"github.com/abhisek/marusora/internal/session"
	"github.com/abhisek/marusora/internal/snapshot"
)

type fakeRepo struct {
	snap    *snapshot.Snapshot
	loadErr error
}

func (f *fakeRepo) Save(_ context.Context, snap *snapshot.Snapshot) error {
	f.snap = snap
	return nil
}
func (f *fakeRepo) Load(context.Context) (*snapshot.Snapshot, error) { return f.snap, f.loadErr }
func (f *fakeRepo) Clear(context.Context) error                      { f.snap = nil; return nil }
func (f *fakeRepo) Location() string                                 { return "test.save" }
func (f *fakeRepo) Close() error                                     { return nil }

func testEntries() (*deck.Store, error) {
	return deck.NewStoreFrom([]deck.Entry{
		{Prompt: "alpha", Response: "1"},
		{Prompt: "beta", Response: "2"},
		{Prompt: "gamma", Response: "3"},
	}), nil
}

func savedSnapshot() *snapshot.Snapshot {
	store, _ := testEntries()
	return &snapshot.Snapshot{
		Version:   snapshot.FormatVersion,
		SessionID: "saved-id",
		SavedAt:   time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
		Store:     store,
		State: session.State{
			Deck:        deck.Deck{1, 2},
			TargetIndex: 1,
			TargetCount: 2,
			Mode:        session.ModeQuestion,
		},
	}
}

func TestInitialScreen(t *testing.T) {
	corrupt := &snapshot.CorruptError{Reason: "bad json"}

	tests := []struct {
		name      string
		snap      *snapshot.Snapshot
		loadErr   error
		policy    string
		wantType  screen.Screen
		wantResum bool
	}{
		{"no snapshot starts fresh", nil, nil, ResumeAsk, &sessionscreen.SessionScreen{}, false},
		{"ask prompts", savedSnapshot(), nil, ResumeAsk, &resume.ResumeScreen{}, false},
		{"yes resumes", savedSnapshot(), nil, ResumeYes, &sessionscreen.SessionScreen{}, true},
		{"no starts fresh", savedSnapshot(), nil, ResumeNo, &sessionscreen.SessionScreen{}, false},
		{"corrupt asks", nil, corrupt, ResumeAsk, &resume.ResumeScreen{}, false},
		{"corrupt with yes starts fresh", nil, corrupt, ResumeYes, &sessionscreen.SessionScreen{}, false},
		{"corrupt with no starts fresh", nil, corrupt, ResumeNo, &sessionscreen.SessionScreen{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{snap: tt.snap, loadErr: tt.loadErr}
			s, err := initialScreen(context.Background(), Options{
				Repo:    repo,
				Entries: testEntries,
				Number:  -1,
				Seed:    7,
				Resume:  tt.policy,
			})
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, s)

			if ss, ok := s.(*sessionscreen.SessionScreen); ok {
				if tt.wantResum {
					assert.Equal(t, "saved-id", ss.SessionID())
				} else {
					assert.NotEqual(t, "saved-id", ss.SessionID())
				}
			}
		})
	}
}

func TestInitialScreen_LoadFailure(t *testing.T) {
	repo := &fakeRepo{loadErr: errors.New("permission denied")}
	_, err := initialScreen(context.Background(), Options{Repo: repo, Entries: testEntries})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load snapshot")
}

func TestInitialScreen_NoRepo(t *testing.T) {
	_, err := initialScreen(context.Background(), Options{Entries: testEntries})
	assert.Error(t, err)
}

func TestLauncher_FreshEntriesError(t *testing.T) {
	l := newLauncher(Options{
		Repo:    &fakeRepo{},
		Entries: func() (*deck.Store, error) { return nil, errors.New("no input files") },
	})
	s := l.fresh()
	assert.Contains(t, s.View(80, 20), "no input files")
}

func TestLauncher_FreshSeedIsDeterministic(t *testing.T) {
	draw := func() string {
		l := newLauncher(Options{Repo: &fakeRepo{}, Entries: testEntries, Number: -1, Seed: 99})
		return l.fresh().View(80, 20)
	}
	assert.Equal(t, draw(), draw())
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	s, _ := initialScreen(context.Background(), Options{Repo: &fakeRepo{}, Entries: testEntries, Seed: 1})
	m := newAppModel(s)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppModel_ReplaceScreen(t *testing.T) {
	repo := &fakeRepo{snap: savedSnapshot()}
	s, err := initialScreen(context.Background(), Options{Repo: repo, Entries: testEntries, Resume: ResumeAsk})
	require.NoError(t, err)
	m := newAppModel(s)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, router.ReplaceScreenMsg{}, msg)

	updated, _ := m.Update(msg)
	am := updated.(AppModel)
	assert.Equal(t, "Study", am.router.Active().Title())
	assert.Equal(t, 1, am.router.Depth())
}

func TestAppModel_View(t *testing.T) {
	s, _ := initialScreen(context.Background(), Options{Repo: &fakeRepo{}, Entries: testEntries, Seed: 1})
	m := newAppModel(s)

	assert.Empty(t, m.render(), "nothing is drawn before the first resize")

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	am := updated.(AppModel)
	assert.True(t, am.View().AltScreen)
	frame := am.render()
	assert.Contains(t, frame, "Marusora")
	assert.Contains(t, frame, "Save & quit")
	assert.Contains(t, frame, "Ctrl+C")

	small, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	assert.Contains(t, small.(AppModel).render(), "Terminal too small")
}
