package theme

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
)

// Theme holds the styles used to print todo lines. Styles are bound to the
// renderer of the output writer, so output that is not a terminal carries no
// escape sequences.
type Theme struct {
	ID          lipgloss.Style
	Topic       lipgloss.Style
	DueDate     lipgloss.Style
	Description lipgloss.Style
	Separator   lipgloss.Style

	done lipgloss.Style
	open lipgloss.Style
}

// New builds a Theme rendering for w.
func New(w io.Writer) Theme {
	r := lipgloss.NewRenderer(w)
	return Theme{
		ID:          r.NewStyle().Foreground(ColorGray),
		Topic:       r.NewStyle().Bold(true),
		DueDate:     r.NewStyle().Foreground(ColorBlue),
		Description: r.NewStyle(),
		Separator:   r.NewStyle().Foreground(ColorGray),
		done:        r.NewStyle().Foreground(ColorGreen),
		open:        r.NewStyle().Foreground(ColorYellow),
	}
}

// DoneStyle returns a color-coded style for the done flag.
func (t Theme) DoneStyle(done bool) lipgloss.Style {
	if done {
		return t.done
	}
	return t.open
}
