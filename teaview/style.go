package teaview

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Style controls the host's rendering.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style
	// Fold styles the placeholder drawn in place of folded text.
	Fold    lipgloss.Style
	Tooltip lipgloss.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:          lipgloss.NewStyle(),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		Fold:          lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		Tooltip:       lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("60")),
	}
}

// StyleForProfile returns DefaultStyle adjusted to what the terminal can
// show. Without colors, selection and tooltips fall back to reverse video.
func StyleForProfile(p termenv.Profile) Style {
	st := DefaultStyle()
	if p == termenv.Ascii {
		st.Selection = lipgloss.NewStyle().Reverse(true)
		st.Cursor = lipgloss.NewStyle().Underline(true)
		st.Tooltip = lipgloss.NewStyle().Reverse(true)
		st.Fold = lipgloss.NewStyle()
	}
	return st
}
