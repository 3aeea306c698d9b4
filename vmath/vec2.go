package vmath

import "math"

// Vec2 is a float64 2D vector in pointer units
type Vec2 struct {
	X, Y float64
}

func V2Add(a, b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func V2Sub(a, b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func V2Scale(v Vec2, s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func V2Mag(v Vec2) float64 {
	return math.Hypot(v.X, v.Y)
}

// V2FromAngle returns the vector of length radius at angle radians
func V2FromAngle(angle, radius float64) Vec2 {
	return Vec2{math.Cos(angle) * radius, math.Sin(angle) * radius}
}

// Toward returns a vector of exactly radius length pointing from origin to target
// Coincident points yield angle 0 (atan2(0, 0) == 0)
func Toward(origin, target Vec2, radius float64) Vec2 {
	angle := math.Atan2(target.Y-origin.Y, target.X-origin.X)
	return V2FromAngle(angle, radius)
}


