package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/marusora/internal/ui/theme"
)

// Gauge is a horizontal progress bar followed by a label and percentage.
type Gauge struct {
	Label   string
	Percent int
	Width   int
}

// NewGauge creates a gauge. Percent is clamped to 0..100.
func NewGauge(label string, percent, width int) Gauge {
	return Gauge{
		Label:   label,
		Percent: min(max(percent, 0), 100),
		Width:   width,
	}
}

func (g Gauge) text() string {
	if g.Label == "" {
		return fmt.Sprintf("%d%%", g.Percent)
	}
	return fmt.Sprintf("%s %d%%", g.Label, g.Percent)
}

// BarWidth returns the number of cells left for the bar itself.
func (g Gauge) BarWidth() int {
	return max(g.Width-lipgloss.Width(g.text())-2, 4)
}

// Filled returns the number of filled bar cells.
func (g Gauge) Filled() int {
	w := g.BarWidth()
	return min(w*g.Percent/100, w)
}

// View renders the gauge.
func (g Gauge) View() string {
	filled := g.Filled()
	empty := g.BarWidth() - filled

	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty)) +
		"  " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(g.text())
}
