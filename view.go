package main

import (
	"github.com/charmbracelet/lipgloss"
)

func (m model) View() string {
	if m.quitting {
		return ""
	}

	color := lipgloss.Color(m.color)
	titleStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	title := titleStyle.Render("󰔛 Duration")
	if m.picker.Static() {
		title += mutedStyle.Render("  (fixed)")
	}

	fullUI := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		m.picker.View(),
		"",
		m.help.View(m.keys),
	)

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		fullUI,
	)
}
