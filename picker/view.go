package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders both columns inside the frame. The middle line of each
// column is the readout of the selected value.
func (m Model) View() string {
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.columnView(minutesColumn),
		m.columnView(secondsColumn),
	)
	return m.styles.Frame.Render(body)
}

func (m Model) columnView(col int) string {
	c := m.cols[col]
	center := c.visible / 2
	lines := make([]string, c.visible)
	for j := range lines {
		if j == center {
			lines[j] = m.readout(col)
			continue
		}

		style := m.styles.Item
		dist := j - center
		if dist < 0 {
			dist = -dist
		}
		switch {
		case dist > 1:
			style = m.styles.Faded
		case col == m.focus && !m.static:
			style = m.styles.Focused
		}

		var text string
		if label, ok := c.labelAtLine(j); ok {
			text = fmt.Sprintf("%d", label)
		}
		lines[j] = style.Width(columnWidth).Align(lipgloss.Center).Render(text)
	}
	return strings.Join(lines, "\n")
}

func (m Model) readout(col int) string {
	c := m.cols[col]
	text := fmt.Sprintf("%d %s", c.value, m.styles.Unit.Render(c.unit))
	return m.styles.Readout.Width(columnWidth).Align(lipgloss.Right).Render(text)
}
