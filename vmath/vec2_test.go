package vmath

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestTowardDirection(t *testing.T) {
	center := Vec2{100, 100}

	tests := []struct {
		name   string
		target Vec2
		want   Vec2
	}{
		{"right", Vec2{200, 100}, Vec2{35, 0}},
		{"down", Vec2{100, 200}, Vec2{0, 35}},
		{"left", Vec2{0, 100}, Vec2{-35, 0}},
		{"up", Vec2{100, 0}, Vec2{0, -35}},
		{"coincident", Vec2{100, 100}, Vec2{35, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Toward(center, tt.target, 35)
			if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) {
				t.Errorf("Toward(%v, %v) = %v, want %v", center, tt.target, got, tt.want)
			}
		})
	}
}

// TestTowardFixedMagnitude verifies distance never scales the result
func TestTowardFixedMagnitude(t *testing.T) {
	origin := Vec2{40, -12}
	targets := []Vec2{
		{40.5, -12}, {41, -11}, {1000, 3}, {-5000, 7000}, {40, 1e6}, {-0.001, -12},
	}
	for _, target := range targets {
		if mag := V2Mag(Toward(origin, target, 35)); !near(mag, 35) {
			t.Errorf("|Toward(%v)| = %v, want 35", target, mag)
		}
	}
}

func TestV2Arithmetic(t *testing.T) {
	a, b := Vec2{3, 4}, Vec2{1, -2}
	if got := V2Add(a, b); got != (Vec2{4, 2}) {
		t.Errorf("V2Add = %v", got)
	}
	if got := V2Sub(a, b); got != (Vec2{2, 6}) {
		t.Errorf("V2Sub = %v", got)
	}
	if got := V2Scale(a, 2); got != (Vec2{6, 8}) {
		t.Errorf("V2Scale = %v", got)
	}
	if got := V2Mag(a); got != 5 {
		t.Errorf("V2Mag = %v, want 5", got)
	}
}

func TestRectCenter(t *testing.T) {
	r := Rect{X: 50, Y: 80, W: 100, H: 40}
	if got := r.Center(); got != (Vec2{100, 100}) {
		t.Errorf("Center() = %v, want {100 100}", got)
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 2, Y: 3, W: 10, H: 5}
	b := Rect{X: 20, Y: 1, W: 4, H: 4}

	got := a.Union(b)
	want := Rect{X: 2, Y: 1, W: 22, H: 7}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}

	if got := (Rect{}).Union(b); got != b {
		t.Errorf("Union with empty = %+v, want %+v", got, b)
	}
	if got := b.Union(Rect{W: -1, H: 3}); got != b {
		t.Errorf("Union with negative = %+v, want %+v", got, b)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 1, W: 22, H: 7}

	tests := []struct {
		p    Vec2
		want bool
	}{
		{Vec2{2, 1}, true},
		{Vec2{23.9, 7.9}, true},
		{Vec2{24, 1}, false},
		{Vec2{2, 8}, false},
		{Vec2{1.9, 4}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}
