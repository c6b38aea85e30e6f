package picker

import "github.com/charmbracelet/lipgloss"

// columnWidth is the width of one wheel in cells.
const columnWidth = 10

// Styles holds the Lip Gloss styles used to draw the picker.
type Styles struct {
	Frame   lipgloss.Style
	Item    lipgloss.Style
	Faded   lipgloss.Style
	Focused lipgloss.Style
	Readout lipgloss.Style
	Unit    lipgloss.Style
}

// DefaultStyles builds the picker styles around an accent color.
func DefaultStyles(accent lipgloss.Color) Styles {
	readoutBg := lipgloss.Color("0")
	return Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Item:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Faded:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Focused: lipgloss.NewStyle().Foreground(accent),
		Readout: lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(readoutBg).
			Bold(true).
			PaddingRight(1),
		Unit: lipgloss.NewStyle().
			Foreground(lipgloss.Color("246")).
			Background(readoutBg),
	}
}
