package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kdnguyen/gogaku/internal/ui/theme"
)

// ProgressBar is a labeled horizontal bar. Percent is in [0,1].
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the bar. The label and optional percentage readout eat
// into Width; the bar itself never drops below 4 cells.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	reserved := lipgloss.Width(b.String())
	if p.ShowPercent {
		reserved += 6 // "  100%"
	}

	cells := p.Width - reserved
	if cells < 4 {
		cells = 4
	}

	filled := int(float64(cells) * p.Percent)
	filled = min(max(filled, 0), cells)

	b.WriteString(lipgloss.NewStyle().
		Background(theme.Secondary).
		Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", cells-filled)))

	if p.ShowPercent {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100))))
	}

	return b.String()
}
