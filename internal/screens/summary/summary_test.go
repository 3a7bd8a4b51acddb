package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/marusora/internal/session"
)

func testSummary() *session.Summary {
	return &session.Summary{
		Stats: session.Stats{
			Reviewed: 7,
			Requeues: 2,
			Unique:   5,
			Target:   7,
		},
		Duration: 3*time.Minute + 5*time.Second,
		Resumed:  true,
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Session Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Session Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)
	for _, want := range []string{"Session complete!", "3:05", "Cards reviewed: 7", "Study again: 2", "saved session"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_NilSummary(t *testing.T) {
	if v := New(nil).View(80, 24); v != "" {
		t.Errorf("expected empty view, got %q", v)
	}
}

func TestSummaryScreen_QuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyPressMsg{
		{Code: tea.KeyEnter},
		{Code: tea.KeyEscape},
		{Code: 'q', Text: "q"},
	} {
		s := New(testSummary())
		_, cmd := s.Update(msg)
		if cmd == nil {
			t.Fatalf("expected quit command for %q", msg.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("expected tea.QuitMsg for %q", msg.String())
		}
	}
}

func TestSummaryScreen_OtherKeysIgnored(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if cmd != nil {
		t.Error("expected no command for unbound key")
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		0:                            "0:00",
		-time.Second:                 "0:00",
		59 * time.Second:             "0:59",
		61 * time.Second:             "1:01",
		12*time.Minute + time.Second: "12:01",
	}
	for d, want := range cases {
		if got := FormatDuration(d); got != want {
			t.Errorf("FormatDuration(%v) = %q, want %q", d, got, want)
		}
	}
}
