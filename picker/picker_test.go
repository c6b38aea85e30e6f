package picker

import (
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type change struct{ minutes, seconds int }

// recorder collects change notifications.
type recorder struct {
	changes []change
}

func (r *recorder) option() Option {
	return WithOnChange(func(minutes, seconds int) {
		r.changes = append(r.changes, change{minutes, seconds})
	})
}

// newLaidOut builds a picker and runs its deferred initial centering.
func newLaidOut(t *testing.T, opts ...Option) Model {
	t.Helper()
	m, err := New(opts...)
	require.NoError(t, err)
	m, _ = m.Update(m.Init()())
	return m
}

var (
	wheelDown = tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}
	wheelUp   = tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}
	keyDown   = tea.KeyMsg{Type: tea.KeyDown}
	keyRight  = tea.KeyMsg{Type: tea.KeyRight}
	keyPgUp   = tea.KeyMsg{Type: tea.KeyPgUp}
)

// runAnimation feeds frames until the column lands.
func runAnimation(t *testing.T, m Model, col int) Model {
	t.Helper()
	for i := 0; i < 1000; i++ {
		var cmd tea.Cmd
		m, cmd = m.Update(frameMsg{id: m.id, col: col, gen: m.cols[col].animGen})
		if cmd == nil {
			return m
		}
	}
	t.Fatal("animation did not land")
	return m
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"minutes too large", WithMinutes(60)},
		{"seconds negative", WithSeconds(-1)},
		{"fixed out of range", WithFixed(3, 75)},
		{"even visible rows", WithVisibleRows(8)},
		{"visible rows past buffer", WithVisibleRows(11)},
		{"zero visible rows", WithVisibleRows(0)},
		{"zero scroll step", WithScrollStep(0)},
		{"zero settle delay", WithSettleDelay(0)},
		{"negative frame interval", WithFrameInterval(-time.Millisecond)},
		{"zero spring frequency", WithSpring(0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			assert.ErrorIs(t, err, ErrInvalidOption)
		})
	}
}

func TestNewDefaults(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	assert.False(t, m.Static())
	assert.False(t, m.laidOut)
	assert.Equal(t, defaultSettleDelay, m.settleDelay)
	assert.Equal(t, defaultVisibleRows, m.cols[minutesColumn].visible)
	assert.Equal(t, "Min", m.cols[minutesColumn].unit)
	assert.Equal(t, "Sec", m.cols[secondsColumn].unit)
}

func TestInitialSettleReportsOnce(t *testing.T) {
	var rec recorder
	m := newLaidOut(t, rec.option())

	require.Len(t, rec.changes, 1)
	assert.Equal(t, change{0, 0}, rec.changes[0])

	// A second layout message is ignored.
	m, cmd := m.Update(layoutMsg{id: m.id})
	assert.Nil(t, cmd)
	assert.Len(t, rec.changes, 1)

	for _, c := range m.cols {
		label, ok := c.centeredLabel()
		require.True(t, ok)
		assert.Equal(t, 0, label)
		assert.Equal(t, c.initialOffset(), c.offset)
	}
}

func TestInitialSettleFromStartValue(t *testing.T) {
	var rec recorder
	m := newLaidOut(t, rec.option(), WithSeconds(42))

	assert.False(t, m.Static())
	require.Len(t, rec.changes, 1)
	assert.Equal(t, change{0, 42}, rec.changes[0])

	label, ok := m.cols[secondsColumn].centeredLabel()
	require.True(t, ok)
	assert.Equal(t, 42, label)
}

func TestNoReportBeforeLayout(t *testing.T) {
	var rec recorder
	m, err := New(rec.option())
	require.NoError(t, err)

	m, cmd := m.Update(keyDown)
	assert.Nil(t, cmd)
	assert.Empty(t, rec.changes)
	assert.Zero(t, m.cols[minutesColumn].settleGen)
}

func TestStaticModeIgnoresScrolling(t *testing.T) {
	var rec recorder
	m := newLaidOut(t, rec.option(), WithFixed(5, 30))
	require.True(t, m.Static())

	offsets := [2]float64{m.cols[0].offset, m.cols[1].offset}
	for _, msg := range []tea.Msg{
		keyDown,
		keyPgUp,
		wheelDown,
		wheelUp,
		settleMsg{id: m.id, col: minutesColumn},
		frameMsg{id: m.id, col: secondsColumn},
	} {
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		assert.Nil(t, cmd, "%T", msg)
	}

	minutes, seconds := m.Value()
	assert.Equal(t, 5, minutes)
	assert.Equal(t, 30, seconds)
	assert.Equal(t, offsets, [2]float64{m.cols[0].offset, m.cols[1].offset})
	assert.Zero(t, m.cols[0].settleGen)
	assert.Zero(t, m.cols[1].settleGen)

	require.Len(t, rec.changes, 1)
	assert.Equal(t, change{5, 30}, rec.changes[0])

	view := m.View()
	assert.Contains(t, view, "5 Min")
	assert.Contains(t, view, "30 Sec")
}

func TestSettleDebouncesBurst(t *testing.T) {
	var rec recorder
	m := newLaidOut(t, rec.option())
	rec.changes = nil

	for i := 0; i < 3; i++ {
		var cmd tea.Cmd
		m, cmd = m.Update(wheelDown)
		require.NotNil(t, cmd)
	}
	require.Equal(t, uint64(3), m.cols[minutesColumn].settleGen)

	// Timers from earlier in the burst are stale.
	for gen := uint64(1); gen < 3; gen++ {
		var cmd tea.Cmd
		m, cmd = m.Update(settleMsg{id: m.id, col: minutesColumn, gen: gen})
		assert.Nil(t, cmd)
	}
	minutes, _ := m.Value()
	assert.Equal(t, 0, minutes)
	assert.Empty(t, rec.changes)

	// The last timer snaps. Three half-item notches leave the center on the
	// boundary between 1 and 2; the earlier row wins.
	m, cmd := m.Update(settleMsg{id: m.id, col: minutesColumn, gen: 3})
	assert.NotNil(t, cmd, "snap should animate")
	minutes, seconds := m.Value()
	assert.Equal(t, 1, minutes)
	assert.Equal(t, 0, seconds)
	require.Len(t, rec.changes, 1)
	assert.Equal(t, change{1, 0}, rec.changes[0])
}

func TestSnapAnimationLandsOnRowCenter(t *testing.T) {
	m := newLaidOut(t)
	m, _ = m.Update(wheelDown)
	m, _ = m.Update(settleMsg{id: m.id, col: minutesColumn, gen: 1})
	require.True(t, m.cols[minutesColumn].animating)

	m = runAnimation(t, m, minutesColumn)

	c := m.cols[minutesColumn]
	assert.False(t, c.animating)
	assert.Equal(t, c.target, c.offset)
	k, ok := c.nearest()
	require.True(t, ok)
	assert.Equal(t, c.snapTarget(k), c.offset)
	assert.Equal(t, 0, c.labels[k])
}

func TestSettleIsIdempotent(t *testing.T) {
	m := newLaidOut(t)
	for i := 0; i < 5; i++ {
		m, _ = m.Update(wheelUp)
	}

	m.settle(minutesColumn)
	first, _ := m.Value()
	m.settle(minutesColumn)
	second, _ := m.Value()

	assert.Equal(t, first, second)
	assert.Equal(t, 57, first)
}

func TestSettleWithoutRowsIsNoop(t *testing.T) {
	m := newLaidOut(t, WithMinutes(12))
	m.cols[minutesColumn].labels = nil

	cmd := m.settle(minutesColumn)
	assert.Nil(t, cmd)
	minutes, _ := m.Value()
	assert.Equal(t, 12, minutes)
}

func TestScrollInterruptsAnimation(t *testing.T) {
	m := newLaidOut(t)
	m, _ = m.Update(keyDown)
	m, _ = m.Update(wheelDown)
	m, _ = m.Update(settleMsg{id: m.id, col: minutesColumn, gen: 2})
	require.True(t, m.cols[minutesColumn].animating)
	staleGen := m.cols[minutesColumn].animGen

	m, _ = m.Update(wheelDown)
	assert.False(t, m.cols[minutesColumn].animating)

	offset := m.cols[minutesColumn].offset
	m, cmd := m.Update(frameMsg{id: m.id, col: minutesColumn, gen: staleGen})
	assert.Nil(t, cmd)
	assert.Equal(t, offset, m.cols[minutesColumn].offset)
}

func TestPageScrollWrapsAroundBothWays(t *testing.T) {
	m := newLaidOut(t)
	c := m.cols[minutesColumn]

	// Twenty pages back is 100 rows: more than a full loop.
	for n := 1; n <= 20; n++ {
		m, _ = m.Update(keyPgUp)
		c = m.cols[minutesColumn]
		label, ok := c.centeredLabel()
		require.True(t, ok)
		assert.Equal(t, ((-5*n)%Count+Count)%Count, label, "page %d", n)
		assert.Greater(t, c.offset, 0.0)
		assert.Less(t, c.offset, c.upperBound())
	}

	for n := 1; n <= 40; n++ {
		m, _ = m.Update(keyDown)
	}
	label, ok := m.cols[minutesColumn].centeredLabel()
	require.True(t, ok)
	assert.Equal(t, 0, label)
}

func TestFocusSelectsColumn(t *testing.T) {
	var rec recorder
	m := newLaidOut(t, rec.option())
	rec.changes = nil

	m, _ = m.Update(keyRight)
	assert.Equal(t, secondsColumn, m.focus)

	m, _ = m.Update(keyDown)
	assert.Zero(t, m.cols[minutesColumn].settleGen)
	assert.Equal(t, uint64(1), m.cols[secondsColumn].settleGen)

	m, _ = m.Update(settleMsg{id: m.id, col: secondsColumn, gen: 1})
	require.Len(t, rec.changes, 1)
	assert.Equal(t, change{0, 1}, rec.changes[0])

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, minutesColumn, m.focus)
}

func TestCloseOrphansPendingTimers(t *testing.T) {
	var rec recorder
	m := newLaidOut(t, rec.option())
	m, _ = m.Update(keyDown)
	gen := m.cols[minutesColumn].settleGen

	m.Close()

	m, cmd := m.Update(settleMsg{id: m.id, col: minutesColumn, gen: gen})
	assert.Nil(t, cmd)
	m, cmd = m.Update(keyDown)
	assert.Nil(t, cmd)

	minutes, _ := m.Value()
	assert.Equal(t, 0, minutes)
	assert.Len(t, rec.changes, 1)
}

func TestIgnoresOtherPickersMessages(t *testing.T) {
	a := newLaidOut(t)
	b := newLaidOut(t)
	require.NotEqual(t, a.id, b.id)

	a, _ = a.Update(keyDown)
	b, cmd := b.Update(settleMsg{id: a.id, col: minutesColumn, gen: 1})
	assert.Nil(t, cmd)

	minutes, _ := b.Value()
	assert.Equal(t, 0, minutes)
}

func TestDuration(t *testing.T) {
	m := newLaidOut(t, WithFixed(2, 30))
	assert.Equal(t, 2*time.Minute+30*time.Second, m.Duration())
}

func TestViewShowsWheelsAndReadout(t *testing.T) {
	m := newLaidOut(t, WithMinutes(10), WithSeconds(45))

	view := m.View()
	assert.Contains(t, view, "10 Min")
	assert.Contains(t, view, "45 Sec")
	for _, label := range []string{"7", "9", "11", "13", "42", "44", "46", "48"} {
		assert.Contains(t, view, label)
	}
	// Frame border plus seven rows.
	assert.Len(t, splitLines(view), 9)
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
