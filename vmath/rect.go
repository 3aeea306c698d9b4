package vmath

// Rect is an axis-aligned box in pointer units
type Rect struct {
	X, Y, W, H float64
}

// Center returns the midpoint of the box
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.W/2, r.Y + r.H/2}
}

// Empty reports whether the box has no area
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains checks if p is within the box, right and bottom edges excluded
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Union returns the smallest box covering both r and o
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1 := max(r.X+r.W, o.X+o.W)
	y1 := max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
