// Package picker provides a two-column minutes/seconds scroll picker for
// Bubble Tea programs.
//
// Each column shows 0-59 on an endless loop. Scrolling moves the column
// freely; once it has been idle for the settle delay the row nearest the
// center becomes the selection and the column springs into place on it.
package picker

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

const (
	minutesColumn = iota
	secondsColumn
)

// snapEpsilon is how close, in units, the animation must get before it
// lands on the target.
const snapEpsilon = 0.5

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// layoutMsg triggers the one-time initial centering.
type layoutMsg struct {
	id int
}

// settleMsg fires when a column may have stopped scrolling.
type settleMsg struct {
	id  int
	col int
	gen uint64
}

// frameMsg advances a snap animation by one frame.
type frameMsg struct {
	id  int
	col int
	gen uint64
}

// Model is the Bubble Tea model of the picker.
type Model struct {
	KeyMap KeyMap

	id       int
	cols     [2]column
	focus    int
	static   bool
	onChange func(minutes, seconds int)

	scrollStep    float64
	settleDelay   time.Duration
	frameInterval time.Duration
	spring        harmonica.Spring
	styles        Styles

	laidOut  bool
	reported bool
	last     [2]int
	closed   bool
}

// New builds a picker. With both values fixed (WithFixed) the picker is a
// static display.
func New(opts ...Option) (Model, error) {
	s := settings{
		visibleRows:   defaultVisibleRows,
		scrollStep:    defaultScrollStep,
		settleDelay:   defaultSettleDelay,
		frameInterval: defaultFrameInterval,
		frequency:     defaultFrequency,
		damping:       defaultDamping,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.validate(); err != nil {
		return Model{}, err
	}

	var minutes, seconds int
	if s.minutes != nil {
		minutes = *s.minutes
	}
	if s.seconds != nil {
		seconds = *s.seconds
	}

	styles := DefaultStyles(lipgloss.Color("2"))
	if s.styles != nil {
		styles = *s.styles
	}

	m := Model{
		KeyMap: DefaultKeyMap(),
		id:     nextID(),
		cols: [2]column{
			newColumn("Min", s.visibleRows, minutes),
			newColumn("Sec", s.visibleRows, seconds),
		},
		static:        s.minutes != nil && s.seconds != nil,
		onChange:      s.onChange,
		scrollStep:    s.scrollStep,
		settleDelay:   s.settleDelay,
		frameInterval: s.frameInterval,
		spring:        harmonica.NewSpring(s.frameInterval.Seconds(), s.frequency, s.damping),
		styles:        styles,
	}
	if m.static {
		m.KeyMap.SetEnabled(false)
	}
	return m, nil
}

// Init defers the initial centering to the first update after the program
// has started.
func (m Model) Init() tea.Cmd {
	id := m.id
	return func() tea.Msg {
		return layoutMsg{id: id}
	}
}

// Update handles layout, scrolling, settling and animation frames.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case layoutMsg:
		if msg.id != m.id || m.laidOut {
			return m, nil
		}
		m.layout()
		return m, nil

	case settleMsg:
		if msg.id != m.id || !m.interactive() || msg.gen != m.cols[msg.col].settleGen {
			return m, nil
		}
		cmd := m.settle(msg.col)
		m.notify()
		return m, cmd

	case frameMsg:
		if msg.id != m.id || m.closed {
			return m, nil
		}
		c := &m.cols[msg.col]
		if !c.animating || msg.gen != c.animGen {
			return m, nil
		}
		if m.stepAnimation(msg.col) {
			return m, nil
		}
		return m, m.frameCmd(msg.col, msg.gen)

	case tea.KeyMsg:
		if !m.interactive() {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.KeyMap.Up):
			return m, m.scroll(m.focus, -ItemHeight)
		case key.Matches(msg, m.KeyMap.Down):
			return m, m.scroll(m.focus, ItemHeight)
		case key.Matches(msg, m.KeyMap.PageUp):
			return m, m.scroll(m.focus, -pageItems*ItemHeight)
		case key.Matches(msg, m.KeyMap.PageDown):
			return m, m.scroll(m.focus, pageItems*ItemHeight)
		case key.Matches(msg, m.KeyMap.Left):
			m.focus = minutesColumn
		case key.Matches(msg, m.KeyMap.Right):
			m.focus = secondsColumn
		case key.Matches(msg, m.KeyMap.Switch):
			m.focus = 1 - m.focus
		}

	case tea.MouseMsg:
		if !m.interactive() || msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m, m.scroll(m.focus, -m.scrollStep)
		case tea.MouseButtonWheelDown:
			return m, m.scroll(m.focus, m.scrollStep)
		}
	}

	return m, nil
}

// interactive reports whether scroll input should be handled.
func (m Model) interactive() bool {
	return !m.static && !m.closed && m.laidOut
}

func (m *Model) layout() {
	m.laidOut = true
	if !m.static {
		for i := range m.cols {
			c := &m.cols[i]
			c.offset = c.initialOffset()
			c.velocity = 0
			m.settle(i)
		}
	}
	m.notify()
}

// scroll moves a column by delta, cancels any running snap and restarts the
// settle timer.
func (m *Model) scroll(col int, delta float64) tea.Cmd {
	c := &m.cols[col]
	c.animGen++
	c.animating = false
	c.velocity = 0
	c.scrollBy(delta)
	c.settleGen++
	return m.settleCmd(col, c.settleGen)
}

// settle snaps col to the row nearest the viewport center. It is the only
// place the selected value of an interactive column changes.
func (m *Model) settle(col int) tea.Cmd {
	c := &m.cols[col]
	k, ok := c.nearest()
	if !ok {
		return nil
	}
	c.value = c.labels[k]
	c.target = c.snapTarget(k)

	// The nearest row can sit just past a boundary; move both ends of the
	// animation one period so it runs inside the safe band.
	if d := c.wrapDelta(c.target); d != 0 {
		c.target += d
		c.offset += d
	}

	if math.Abs(c.target-c.offset) < snapEpsilon {
		c.offset = c.target
		c.velocity = 0
		c.animating = false
		return nil
	}
	c.animGen++
	c.animating = true
	return m.frameCmd(col, c.animGen)
}

// stepAnimation advances one frame and reports whether the column landed.
func (m *Model) stepAnimation(col int) bool {
	c := &m.cols[col]
	c.offset, c.velocity = m.spring.Update(c.offset, c.velocity, c.target)
	if math.Abs(c.offset-c.target) < snapEpsilon && math.Abs(c.velocity) < snapEpsilon {
		c.offset = c.target
		c.velocity = 0
		c.animating = false
		return true
	}
	return false
}

func (m *Model) notify() {
	pair := [2]int{m.cols[minutesColumn].value, m.cols[secondsColumn].value}
	if m.reported && pair == m.last {
		return
	}
	m.reported = true
	m.last = pair
	if m.onChange != nil {
		m.onChange(pair[0], pair[1])
	}
}

func (m Model) settleCmd(col int, gen uint64) tea.Cmd {
	id := m.id
	return tea.Tick(m.settleDelay, func(time.Time) tea.Msg {
		return settleMsg{id: id, col: col, gen: gen}
	})
}

func (m Model) frameCmd(col int, gen uint64) tea.Cmd {
	id := m.id
	return tea.Tick(m.frameInterval, func(time.Time) tea.Msg {
		return frameMsg{id: id, col: col, gen: gen}
	})
}

// Close stops the picker. Timers still in flight become no-ops.
func (m *Model) Close() {
	m.closed = true
	for i := range m.cols {
		m.cols[i].settleGen++
		m.cols[i].animGen++
		m.cols[i].animating = false
	}
}

// SetStyles replaces the styles, e.g. after a config reload.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// Value returns the selected minutes and seconds.
func (m Model) Value() (minutes, seconds int) {
	return m.cols[minutesColumn].value, m.cols[secondsColumn].value
}

// Duration returns the selection as a time.Duration.
func (m Model) Duration() time.Duration {
	minutes, seconds := m.Value()
	return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
}

// Static reports whether the picker is a fixed display.
func (m Model) Static() bool {
	return m.static
}
