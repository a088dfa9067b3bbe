package scppm

import "github.com/charmbracelet/lipgloss"

// Status coloring for the cmd/ tools' per-codeword progress output.
// Adapted from the teacher's textcolor.go (itself a reimplementation of
// Dire Wolf's text_color_set/DW_COLOR_* scheme): the same small enum of
// status colors, rendered here with lipgloss instead of raw ANSI escapes.

type StatusColor int

const (
	StatusOK StatusColor = iota
	StatusError
	StatusDecoded
	StatusUncorrectable
)

var statusStyles = map[StatusColor]lipgloss.Style{
	StatusOK:            lipgloss.NewStyle().Foreground(lipgloss.Color("2")), // green
	StatusError:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")), // red
	StatusDecoded:       lipgloss.NewStyle().Foreground(lipgloss.Color("4")), // blue
	StatusUncorrectable: lipgloss.NewStyle().Foreground(lipgloss.Color("3")), // yellow
}

// Colorize renders text in the style associated with c, for terminals that
// support it; lipgloss degrades to plain text automatically otherwise.
func Colorize(c StatusColor, text string) string {
	style, ok := statusStyles[c]
	if !ok {
		return text
	}
	return style.Render(text)
}
