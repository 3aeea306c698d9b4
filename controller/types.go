package controller

import (
	"time"

	"github.com/lixenwraith/stalker-eyes/expression"
	"github.com/lixenwraith/stalker-eyes/vmath"
)

// Reference tuning
const (
	DefaultBaseDelay     = 10 * time.Second
	DefaultJitter        = 8 * time.Second
	DefaultSurpriseSpeed = 150.0
	DefaultGazeRadius    = 35.0
)

// Config tunes the state machine
type Config struct {
	BaseDelay     time.Duration // Minimum mood timer delay
	Jitter        time.Duration // Random extra delay drawn per cycle
	SurpriseSpeed float64       // Per-event displacement that triggers surprise, exclusive
	GazeRadius    float64       // Fixed pupil travel radius
}

// DefaultConfig returns the reference tuning
func DefaultConfig() Config {
	return Config{
		BaseDelay:     DefaultBaseDelay,
		Jitter:        DefaultJitter,
		SurpriseSpeed: DefaultSurpriseSpeed,
		GazeRadius:    DefaultGazeRadius,
	}
}

func (c Config) withDefaults() Config {
	if c.BaseDelay <= 0 {
		c.BaseDelay = DefaultBaseDelay
	}
	if c.Jitter < 0 {
		c.Jitter = 0
	}
	if c.SurpriseSpeed <= 0 {
		c.SurpriseSpeed = DefaultSurpriseSpeed
	}
	if c.GazeRadius <= 0 {
		c.GazeRadius = DefaultGazeRadius
	}
	return c
}

// State is the interaction state projected by the renderer
type State struct {
	Expression expression.Expression
	Pointer    vmath.Vec2 // Last pointer position
	Gaze       vmath.Vec2 // Shared pupil offset, magnitude GazeRadius once set
}

// Cause identifies which handler produced a change
type Cause uint8

const (
	CauseMood     Cause = iota // Mood timer firing
	CausePointer               // Pointer move below the surprise threshold
	CauseSurprise              // Pointer move that overrode the expression
)

func (c Cause) String() string {
	switch c {
	case CauseMood:
		return "mood"
	case CausePointer:
		return "pointer"
	case CauseSurprise:
		return "surprise"
	default:
		return "unknown"
	}
}

// Change is delivered to subscribers after every mutation
type Change struct {
	State State
	Cause Cause
	At    time.Time     // Scheduler time of the change
	Held  time.Duration // Time since the previous change
}
