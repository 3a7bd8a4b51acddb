package summary

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/marusora/internal/screen"
	"github.com/abhisek/marusora/internal/session"
	"github.com/abhisek/marusora/internal/ui/layout"
	"github.com/abhisek/marusora/internal/ui/theme"
)

var exitKeys = key.NewBinding(
	key.WithKeys("enter", "esc", "q", "space"),
	key.WithHelp("Enter", "Exit"),
)

// SummaryScreen displays the end-of-session summary.
type SummaryScreen struct {
	summary *session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	h := exitKeys.Help()
	return []layout.KeyHint{{Key: h.Key, Description: h.Desc}}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && key.Matches(kmsg, exitKeys) {
		return s, tea.Quit
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	b.WriteString(center(theme.Title, "Session complete!"))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		"Duration: "+FormatDuration(sum.Duration)))
	b.WriteString("\n\n")

	b.WriteString(center(theme.Body, fmt.Sprintf("Cards reviewed: %d        Study again: %d",
		sum.Reviewed, sum.Requeues)))
	b.WriteString("\n")
	b.WriteString(center(theme.Body, fmt.Sprintf("Distinct entries: %d", sum.Unique)))
	b.WriteString("\n")

	if sum.Resumed {
		b.WriteString("\n")
		b.WriteString(center(theme.Hint, "Continued from a saved session"))
		b.WriteString("\n")
	}

	return b.String()
}

// FormatDuration renders d as m:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}
