package picker

import "math"

// Geometry shared by both columns. Offsets are measured in scroll units; one
// item is ItemHeight units tall and is drawn on one terminal line.
const (
	Count       = 60
	BufferItems = 10
	ItemHeight  = 50.0
)

// Labels returns the labels of every rendered row: buffer duplicates, then
// the count real values, then buffer duplicates again. Row i (counting from
// -buffer) is labelled (i + count) mod count.
func Labels(count, buffer int) []int {
	if count <= 0 {
		return nil
	}
	labels := make([]int, 0, count+2*buffer)
	for i := -buffer; i < count+buffer; i++ {
		labels = append(labels, ((i%count)+count)%count)
	}
	return labels
}

// column is the scroll state of one wheel.
type column struct {
	unit    string
	labels  []int
	visible int

	offset   float64
	velocity float64
	target   float64

	value     int
	animating bool

	// settleGen identifies the pending settle timer; animGen the running
	// snap animation. Bumping either orphans older messages.
	settleGen uint64
	animGen   uint64
}

func newColumn(unit string, visible, value int) column {
	c := column{
		unit:    unit,
		labels:  Labels(Count, BufferItems),
		visible: visible,
		value:   value,
	}
	c.offset = c.initialOffset()
	c.target = c.offset
	return c
}

func (c column) viewportHeight() float64 { return float64(c.visible) * ItemHeight }

func (c column) contentHeight() float64 { return float64(len(c.labels)) * ItemHeight }

func (c column) maxScroll() float64 { return c.contentHeight() - c.viewportHeight() }

// upperBound is the offset at which the column has run into the trailing
// duplicates and must jump back.
func (c column) upperBound() float64 { return c.maxScroll() - ItemHeight*BufferItems }

func (c column) period() float64 { return Count * ItemHeight }

// initialOffset puts the center of the row holding c.value, inside the real
// range, on the center of the viewport.
func (c column) initialOffset() float64 {
	return float64(BufferItems+c.value)*ItemHeight - c.viewportHeight()/2 + ItemHeight/2
}

// wrapDelta reports the jump needed to bring offset back into the safe band,
// or 0 when it already is. The jump is a whole period so labels line up.
func (c column) wrapDelta(offset float64) float64 {
	switch {
	case offset <= 0:
		return c.period()
	case offset >= c.upperBound():
		return -c.period()
	}
	return 0
}

// scrollBy moves the column and silently relocates it when it crosses either
// boundary.
func (c *column) scrollBy(delta float64) {
	c.offset += delta
	for i := 0; i < 4; i++ {
		d := c.wrapDelta(c.offset)
		if d == 0 {
			return
		}
		c.offset += d
	}
}

// nearest returns the index of the row whose center is closest to the
// viewport center. On an exact tie the earlier row wins.
func (c column) nearest() (int, bool) {
	center := c.offset + c.viewportHeight()/2
	best := -1
	bestDist := math.Inf(1)
	for k := range c.labels {
		rowCenter := float64(k)*ItemHeight + ItemHeight/2
		if d := math.Abs(center - rowCenter); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best, best >= 0
}

// centeredLabel is the label under the viewport center.
func (c column) centeredLabel() (int, bool) {
	k, ok := c.nearest()
	if !ok {
		return 0, false
	}
	return c.labels[k], true
}

// snapTarget is the offset that centers row k.
func (c column) snapTarget(k int) float64 {
	return float64(k)*ItemHeight - c.viewportHeight()/2 + ItemHeight/2
}

// labelAtLine returns the label drawn on visible line j.
func (c column) labelAtLine(j int) (int, bool) {
	p := c.offset + float64(j)*ItemHeight + ItemHeight/2
	k := int(math.Floor(p / ItemHeight))
	if k < 0 || k >= len(c.labels) {
		return 0, false
	}
	return c.labels[k], true
}
