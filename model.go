package main

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbletea"

	"timepick/picker"
)

// keyMap adds the host's bindings to the picker's.
type keyMap struct {
	picker.KeyMap
	Confirm key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap(pk picker.KeyMap) keyMap {
	return keyMap{
		KeyMap: pk,
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "cancel"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return append(k.KeyMap.ShortHelp(), k.Confirm, k.Help, k.Quit)
}

func (k keyMap) FullHelp() [][]key.Binding {
	return append(k.KeyMap.FullHelp(), []key.Binding{k.Confirm, k.Help, k.Quit})
}

// model is the Bubble Tea model for the host shell
type model struct {
	picker picker.Model
	keys   keyMap
	help   help.Model
	color  string
	width  int
	height int

	confirmed bool
	quitting  bool
}

func newModel(p picker.Model, cfg Config) model {
	h := help.New()
	h.ShowAll = cfg.UI.ShowHelp
	return model{
		picker: p,
		keys:   newKeyMap(p.KeyMap),
		help:   h,
		color:  cfg.UI.Color,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.picker.Init(),
		watchConfigCmd(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.confirmed = true
			m.quitting = true
			m.picker.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.picker.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case configReloadMsg:
		// Config file changed, restyle the picker
		cfg := config.Get()
		m.color = cfg.UI.Color
		m.picker.SetStyles(pickerStyles(cfg))
		// Continue watching for more config changes
		return m, watchConfigCmd()
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

// selection returns the confirmed minutes and seconds, if any.
func (m model) selection() (minutes, seconds int, ok bool) {
	if !m.confirmed {
		return 0, 0, false
	}
	minutes, seconds = m.picker.Value()
	return minutes, seconds, true
}
