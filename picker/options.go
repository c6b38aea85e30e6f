package picker

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidOption is wrapped by every error New returns.
var ErrInvalidOption = errors.New("invalid picker option")

const (
	defaultVisibleRows = 7
	defaultScrollStep  = ItemHeight / 2
	defaultSettleDelay = 100 * time.Millisecond
	defaultFrequency   = 6.0
	defaultDamping     = 1.0
)

var defaultFrameInterval = time.Second / 60

type settings struct {
	minutes  *int
	seconds  *int
	onChange func(minutes, seconds int)

	visibleRows   int
	scrollStep    float64
	settleDelay   time.Duration
	frameInterval time.Duration
	frequency     float64
	damping       float64
	styles        *Styles
}

// Option configures a Model.
type Option func(*settings)

// WithFixed pins both columns. The picker becomes a static display and
// ignores all scrolling.
func WithFixed(minutes, seconds int) Option {
	return func(s *settings) {
		s.minutes = &minutes
		s.seconds = &seconds
	}
}

// WithMinutes starts the minutes column at the given value.
func WithMinutes(minutes int) Option {
	return func(s *settings) { s.minutes = &minutes }
}

// WithSeconds starts the seconds column at the given value.
func WithSeconds(seconds int) Option {
	return func(s *settings) { s.seconds = &seconds }
}

// WithOnChange registers fn to run whenever the selected pair changes,
// including the first settle after layout.
func WithOnChange(fn func(minutes, seconds int)) Option {
	return func(s *settings) { s.onChange = fn }
}

// WithVisibleRows sets how many lines each column shows. It must be odd and
// smaller than BufferItems.
func WithVisibleRows(n int) Option {
	return func(s *settings) { s.visibleRows = n }
}

// WithScrollStep sets how far one mouse wheel notch scrolls, in units.
func WithScrollStep(units float64) Option {
	return func(s *settings) { s.scrollStep = units }
}

// WithSettleDelay sets the idle time after the last scroll before the
// column snaps.
func WithSettleDelay(d time.Duration) Option {
	return func(s *settings) { s.settleDelay = d }
}

// WithFrameInterval sets the snap animation frame time.
func WithFrameInterval(d time.Duration) Option {
	return func(s *settings) { s.frameInterval = d }
}

// WithSpring tunes the snap animation.
func WithSpring(frequency, damping float64) Option {
	return func(s *settings) {
		s.frequency = frequency
		s.damping = damping
	}
}

// WithStyles replaces DefaultStyles.
func WithStyles(st Styles) Option {
	return func(s *settings) { s.styles = &st }
}

func (s settings) validate() error {
	for name, v := range map[string]*int{"minutes": s.minutes, "seconds": s.seconds} {
		if v != nil && (*v < 0 || *v >= Count) {
			return fmt.Errorf("%w: %s %d out of range 0-%d", ErrInvalidOption, name, *v, Count-1)
		}
	}
	if s.visibleRows < 1 || s.visibleRows >= BufferItems || s.visibleRows%2 == 0 {
		return fmt.Errorf("%w: visible rows must be odd and between 1 and %d, got %d", ErrInvalidOption, BufferItems-1, s.visibleRows)
	}
	if s.scrollStep <= 0 {
		return fmt.Errorf("%w: scroll step must be positive, got %v", ErrInvalidOption, s.scrollStep)
	}
	if s.settleDelay <= 0 {
		return fmt.Errorf("%w: settle delay must be positive, got %v", ErrInvalidOption, s.settleDelay)
	}
	if s.frameInterval <= 0 {
		return fmt.Errorf("%w: frame interval must be positive, got %v", ErrInvalidOption, s.frameInterval)
	}
	if s.frequency <= 0 || s.damping <= 0 {
		return fmt.Errorf("%w: spring frequency and damping must be positive", ErrInvalidOption)
	}
	return nil
}
