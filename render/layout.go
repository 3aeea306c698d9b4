package render

import (
	"math"

	"github.com/lixenwraith/stalker-eyes/vmath"
)

// Design dimensions in pointer units at scale 1
const (
	SocketSize   = 288.0
	PupilSize    = 128.0
	HeartSize    = 96.0
	EyeGap       = 96.0
	BrowWidth    = 224.0
	BrowHeight   = 20.0
	BrowLift     = 48.0  // Brow top sits this far above the socket
	BrowHeadroom = 120.0 // Space reserved above sockets for raised brows
	MarginX      = 32.0
)

// Rows reserved outside the eye block
const (
	topRows    = 1
	textRows   = 4 // gap, title, gap, status
	footerRows = 2
)

// Minimum socket size in cells before the layout is unmeasurable
const (
	minSocketCols = 6
	minSocketRows = 3
)

// Metrics is the size of one terminal cell in pointer units
type Metrics struct {
	CellW float64
	CellH float64
}

// DefaultMetrics approximates a typical 1:2 terminal cell
func DefaultMetrics() Metrics {
	return Metrics{CellW: 10, CellH: 20}
}

// CellCenter maps a cell coordinate to pointer units at the cell center
func (m Metrics) CellCenter(x, y int) vmath.Vec2 {
	return vmath.Vec2{X: (float64(x) + 0.5) * m.CellW, Y: (float64(y) + 0.5) * m.CellH}
}

// Layout places the two sockets on a screen of Cols x Rows cells
type Layout struct {
	Metrics    Metrics
	Cols, Rows int
	Scale      float64       // Design-to-screen factor, at most 1
	Sockets    [2]vmath.Rect // Left, right in pointer units
	TitleRow   int
	StatusRow  int
	FooterRow  int
	measurable bool
}

// NewLayout centers the eye block, shrinking it to fit small screens
func NewLayout(cols, rows int, m Metrics) Layout {
	l := Layout{
		Metrics:   m,
		Cols:      cols,
		Rows:      rows,
		FooterRow: rows - 1,
	}
	if cols <= 0 || rows <= 0 || m.CellW <= 0 || m.CellH <= 0 {
		return l
	}

	needW := 2*SocketSize + EyeGap
	needH := BrowHeadroom + SocketSize

	availW := float64(cols)*m.CellW - 2*MarginX
	availH := float64(rows-topRows-textRows-footerRows) * m.CellH

	scale := math.Min(1, math.Min(availW/needW, availH/needH))
	l.Scale = scale

	socket := SocketSize * scale
	if socket < minSocketCols*m.CellW || socket < minSocketRows*m.CellH {
		return l
	}

	blockW := needW * scale
	blockH := needH * scale
	x0 := (float64(cols)*m.CellW - blockW) / 2
	y0 := float64(topRows)*m.CellH + (availH-blockH)/2
	socketY := y0 + BrowHeadroom*scale

	l.Sockets[0] = vmath.Rect{X: x0, Y: socketY, W: socket, H: socket}
	l.Sockets[1] = vmath.Rect{X: x0 + (SocketSize+EyeGap)*scale, Y: socketY, W: socket, H: socket}

	blockBottom := int(math.Ceil((y0 + blockH) / m.CellH))
	l.TitleRow = blockBottom + 1
	l.StatusRow = blockBottom + 3
	l.measurable = true
	return l
}

// Measurable reports whether the sockets could be placed
func (l Layout) Measurable() bool {
	return l.measurable
}

// Container returns the box bounding both sockets, the gaze reference
func (l Layout) Container() (vmath.Rect, bool) {
	if !l.measurable {
		return vmath.Rect{}, false
	}
	return l.Sockets[0].Union(l.Sockets[1]), true
}

// Surface tracks the current layout of the terminal the eyes are drawn on
type Surface struct {
	metrics Metrics
	layout  Layout
}

// NewSurface creates a surface that is unmeasured until the first Resize
func NewSurface(m Metrics) *Surface {
	return &Surface{metrics: m}
}

// Resize recomputes the layout for a new screen size
func (s *Surface) Resize(cols, rows int) {
	s.layout = NewLayout(cols, rows, s.metrics)
}

// Layout returns the current layout
func (s *Surface) Layout() Layout {
	return s.layout
}

// Metrics returns the cell metrics
func (s *Surface) Metrics() Metrics {
	return s.metrics
}

// Bounds resolves the gaze-reference container
func (s *Surface) Bounds() (vmath.Rect, bool) {
	return s.layout.Container()
}
