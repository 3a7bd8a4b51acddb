package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/marusora/internal/session"
	"github.com/abhisek/marusora/internal/ui/components"
	"github.com/abhisek/marusora/internal/ui/theme"
)

// hiddenResponse stands in for the response until the card is flipped.
const hiddenResponse = "-"

// renderCard renders the progress gauge, the prompt and the response.
func (s *SessionScreen) renderCard(width, height int) string {
	var b strings.Builder

	label := fmt.Sprintf("%d/%d", min(s.engine.QuestionNumber(), s.engine.TargetCount()), s.engine.TargetCount())
	gaugeWidth := max(width-4, 4)
	b.WriteString("  ")
	b.WriteString(components.NewGauge(label, s.engine.ProgressPercent(), gaugeWidth).View())
	b.WriteString("\n\n")

	if s.engine.Done() {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("All cards studied."))
		return b.String()
	}

	prompt, err := s.engine.Prompt()
	if err != nil {
		return renderError(width, err.Error())
	}
	response := hiddenResponse
	responseStyle := theme.Hidden
	if s.engine.Mode() == sess.ModeAnswer {
		if response, err = s.engine.Response(); err != nil {
			return renderError(width, err.Error())
		}
		responseStyle = theme.Response
	}

	cardWidth := max(width-8, 10)
	card := theme.Card.Width(cardWidth).Render(
		theme.Prompt.Render(fmt.Sprintf("%d. %s", s.engine.QuestionNumber(), prompt)) +
			"\n\n" +
			responseStyle.Render(response),
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))

	return b.String()
}

func renderSaving(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Saving session...")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to exit.", errMsg))
}
