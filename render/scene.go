// Package render projects controller state onto a terminal: a pure scene
// projection followed by a half-block rasterizer over tcell.
package render

import (
	"math"

	"github.com/lixenwraith/stalker-eyes/controller"
	"github.com/lixenwraith/stalker-eyes/core"
	"github.com/lixenwraith/stalker-eyes/expression"
	"github.com/lixenwraith/stalker-eyes/vmath"
)

// Eye is the projected geometry of one eye in pointer units
type Eye struct {
	Socket vmath.Rect
	Center vmath.Vec2
	Radius float64
	Fill   core.RGB

	// Lids cover [Socket.Y, LidTop) and [LidBottom, Socket.Y+Socket.H)
	LidTop    float64
	LidBottom float64

	BrowA, BrowB  vmath.Vec2 // Segment endpoints
	BrowThickness float64

	Pupil       vmath.Vec2 // Pupil center, socket center + scaled gaze
	PupilRadius float64
	Shape       expression.PupilShape
}

// Scene is a full projection of one state onto a layout
type Scene struct {
	Layout     Layout
	Expression expression.Expression
	Eyes       [2]Eye
}

// Project maps state through the pose table onto the layout
// Both pupils move by the same gaze vector
func Project(state controller.State, l Layout) Scene {
	pose := expression.Lookup(state.Expression)
	scene := Scene{Layout: l, Expression: state.Expression}
	if !l.Measurable() {
		return scene
	}

	s := l.Scale
	offset := vmath.V2Scale(state.Gaze, s)
	brows := [2]expression.BrowTransform{pose.BrowLeft, pose.BrowRight}

	fill := RgbSocket
	if pose.Tinted {
		fill = pose.Tint
	}

	for i, socket := range l.Sockets {
		center := socket.Center()
		e := Eye{
			Socket:      socket,
			Center:      center,
			Radius:      socket.W / 2,
			Fill:        fill,
			LidTop:      socket.Y + coverage(pose.EyelidTop)*socket.H,
			LidBottom:   socket.Y + socket.H - coverage(pose.EyelidBottom)*socket.H,
			Pupil:       vmath.V2Add(center, offset),
			PupilRadius: PupilSize / 2 * s,
			Shape:       pose.Pupil,
		}

		b := brows[i]
		browCenter := vmath.Vec2{
			X: center.X,
			Y: socket.Y - BrowLift*s + BrowHeight*s/2 + b.OffsetY*s,
		}
		half := vmath.V2FromAngle(b.RotateDeg*math.Pi/180, BrowWidth*s/2)
		e.BrowA = vmath.V2Sub(browCenter, half)
		e.BrowB = vmath.V2Add(browCenter, half)
		e.BrowThickness = BrowHeight * s * b.Scale()

		scene.Eyes[i] = e
	}
	return scene
}

// coverage converts a signed percentage to a covered fraction
// Negative coverage recedes past the socket edge and covers nothing
func coverage(pct float64) float64 {
	return math.Max(0, math.Min(1, pct/100))
}

// ColorAt returns the color visible at point p
// Brows sit above the sockets, lids above pupils, pupils clipped to sockets
func (sc Scene) ColorAt(p vmath.Vec2) core.RGB {
	for i := range sc.Eyes {
		e := &sc.Eyes[i]
		if e.Radius == 0 {
			continue
		}
		if segmentDist(p, e.BrowA, e.BrowB) <= e.BrowThickness/2 {
			return RgbBrow
		}
	}

	for i := range sc.Eyes {
		e := &sc.Eyes[i]
		if !e.Socket.Contains(p) || vmath.V2Mag(vmath.V2Sub(p, e.Center)) > e.Radius {
			continue
		}
		return e.colorInside(p, sc.Layout)
	}

	return sc.backgroundAt(p)
}

// colorInside resolves a point already known to lie in the socket
func (e *Eye) colorInside(p vmath.Vec2, l Layout) core.RGB {
	edge := l.Metrics.CellH / 2
	if p.Y < e.LidTop {
		if e.LidTop-p.Y <= edge {
			return RgbEyelidEdge
		}
		return RgbEyelid
	}
	if p.Y >= e.LidBottom {
		if p.Y-e.LidBottom <= edge {
			return RgbEyelidEdge
		}
		return RgbEyelid
	}

	d := vmath.V2Sub(p, e.Pupil)
	if vmath.V2Mag(d) <= e.PupilRadius {
		switch e.Shape {
		case expression.PupilHeart:
			if inHeart(d, HeartSize/2*l.Scale) {
				return RgbHeart
			}
			return RgbPupil
		default:
			return highlight(d, l.Scale)
		}
	}

	// Inset shadow darkens the lower rim
	rel := (p.Y - e.Center.Y) / e.Radius
	if rel > 0.5 {
		return e.Fill.Blend(core.RGBBlack, (rel-0.5)*0.3)
	}
	return e.Fill
}

// highlight returns the pupil color with its two static reflection dots
func highlight(d vmath.Vec2, scale float64) core.RGB {
	big := vmath.Vec2{X: -24 * scale, Y: -24 * scale}
	if vmath.V2Mag(vmath.V2Sub(d, big)) <= 16*scale {
		return RgbPupil.Blend(core.RGBWhite, 0.2)
	}
	small := vmath.Vec2{X: 24 * scale, Y: 24 * scale}
	if vmath.V2Mag(vmath.V2Sub(d, small)) <= 8*scale {
		return RgbPupil.Blend(core.RGBWhite, 0.1)
	}
	return RgbPupil
}

// inHeart tests the implicit heart curve (x²+y²-1)³ - x²y³ <= 0
func inHeart(d vmath.Vec2, radius float64) bool {
	if radius <= 0 {
		return false
	}
	// Curve spans roughly [-1.14, 1.14] x [-1, 1.2], y up
	x := d.X / radius * 1.15
	y := -d.Y/radius*1.15 + 0.1
	a := x*x + y*y - 1
	return a*a*a-x*x*y*y*y <= 0
}

// backgroundAt paints the ambience glows over the base color
func (sc Scene) backgroundAt(p vmath.Vec2) core.RGB {
	l := sc.Layout
	w := float64(l.Cols) * l.Metrics.CellW
	h := float64(l.Rows) * l.Metrics.CellH

	c := RgbBackground
	c = c.Add(glow(p, vmath.Vec2{X: w / 4, Y: h / 4}, 192, RgbGlowBlue))
	c = c.Add(glow(p, vmath.Vec2{X: w * 3 / 4, Y: h * 3 / 4}, 192, RgbGlowPurple))
	return c
}

// glow returns a blurred disc contribution with cubic falloff
func glow(p, center vmath.Vec2, radius float64, color core.RGB) core.RGB {
	dist := vmath.V2Mag(vmath.V2Sub(p, center)) / (radius * 1.6)
	if dist >= 1 {
		return core.RGBBlack
	}
	falloff := 1 - dist
	return color.Scale(falloff * falloff * falloff * 0.2)
}

// segmentDist returns the distance from p to segment ab
func segmentDist(p, a, b vmath.Vec2) float64 {
	ab := vmath.V2Sub(b, a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return vmath.V2Mag(vmath.V2Sub(p, a))
	}
	ap := vmath.V2Sub(p, a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / lenSq
	t = math.Max(0, math.Min(1, t))
	closest := vmath.V2Add(a, vmath.V2Scale(ab, t))
	return vmath.V2Mag(vmath.V2Sub(p, closest))
}
