// Package controller owns the interaction state of one pair of eyes: the
// current expression, the last pointer position and the shared gaze vector.
//
// Two event streams mutate the state: a self-rescheduling mood timer with a
// randomized delay, and pointer-move events which may override the
// expression with a reactive surprise. Both streams write the same field with
// no arbitration; the most recent write wins.
//
// A Controller is not safe for concurrent use. It must be driven from a single
// engine.Loop, which also delivers its timer callbacks.
package controller

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/stalker-eyes/engine"
	"github.com/lixenwraith/stalker-eyes/expression"
	"github.com/lixenwraith/stalker-eyes/vmath"
)

// Geometry resolves the gaze-reference container in pointer units
// Returns false while the container cannot be measured
type Geometry func() (vmath.Rect, bool)

// PointerSource delivers pointer positions in pointer units
type PointerSource interface {
	SubscribePointer(fn func(vmath.Vec2)) (cancel func())
}

// Rand is the randomness the mood timer draws from
// *rand.Rand from math/rand/v2 satisfies it
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type subscriber struct {
	id uint64
	fn func(Change)
}

// Controller is the gaze and mood state machine
type Controller struct {
	id     string
	cfg    Config
	sched  engine.Scheduler
	geom   Geometry
	rng    Rand
	logger *zap.Logger

	state      State
	lastChange time.Time

	active        bool
	moodTimer     engine.Timer
	cancelPointer func()

	subs    []subscriber
	nextSub uint64
}

// New creates an inactive controller in the neutral state
// nil geom is treated as never measurable; nil rng and logger get defaults
func New(cfg Config, sched engine.Scheduler, geom Geometry, rng Rand, logger *zap.Logger) *Controller {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	id := uuid.NewString()
	return &Controller{
		id:         id,
		cfg:        cfg.withDefaults(),
		sched:      sched,
		geom:       geom,
		rng:        rng,
		logger:     logger.With(zap.String("widget", id)),
		state:      State{Expression: expression.Neutral},
		lastChange: sched.Now(),
	}
}

// ID returns the instance identifier used in logs
func (c *Controller) ID() string {
	return c.id
}

// Active reports whether the controller is subscribed to its event sources
func (c *Controller) Active() bool {
	return c.active
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() State {
	return c.state
}

// Start arms the mood timer and subscribes to src, no-op when already active
// src may be nil when pointer events are fed through HandlePointer directly
func (c *Controller) Start(src PointerSource) {
	if c.active {
		return
	}
	c.active = true
	c.armMood()
	if src != nil {
		c.cancelPointer = src.SubscribePointer(c.HandlePointer)
	}
	c.logger.Info("controller started",
		zap.Duration("base_delay", c.cfg.BaseDelay),
		zap.Duration("jitter", c.cfg.Jitter),
		zap.Float64("surprise_speed", c.cfg.SurpriseSpeed),
		zap.Float64("gaze_radius", c.cfg.GazeRadius),
	)
}

// Stop revokes the timer and pointer subscriptions together, idempotent
// No state mutation happens after Stop returns
func (c *Controller) Stop() {
	if !c.active {
		return
	}
	c.active = false

	if c.moodTimer != nil {
		c.moodTimer.Stop()
		c.moodTimer = nil
	}
	if c.cancelPointer != nil {
		c.cancelPointer()
		c.cancelPointer = nil
	}
	c.logger.Info("controller stopped", zap.Stringer("expression", c.state.Expression))
}

// Subscribe registers fn to receive every state change
// Subscribers run synchronously on the loop, in registration order
func (c *Controller) Subscribe(fn func(Change)) (cancel func()) {
	c.nextSub++
	id := c.nextSub
	c.subs = append(c.subs, subscriber{id: id, fn: fn})

	return func() {
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// HandlePointer applies one pointer-move event
// Speed is the raw displacement since the previous event, not normalized by
// elapsed time, so the surprise trigger depends on host event frequency
func (c *Controller) HandlePointer(p vmath.Vec2) {
	if !c.active {
		return
	}

	speed := vmath.V2Mag(vmath.V2Sub(p, c.state.Pointer))
	c.state.Pointer = p

	cause := CausePointer
	if speed > c.cfg.SurpriseSpeed {
		c.state.Expression = expression.Surprise
		cause = CauseSurprise
		c.logger.Debug("reactive surprise", zap.Float64("speed", speed))
	}

	// Unmeasurable container suppresses only this gaze update
	if c.geom != nil {
		if rect, ok := c.geom(); ok {
			c.state.Gaze = vmath.Toward(rect.Center(), p, c.cfg.GazeRadius)
		}
	}

	c.notify(cause)
}

// NextMoodDelay draws one inter-fire delay in [BaseDelay, BaseDelay+Jitter)
func (c *Controller) NextMoodDelay() time.Duration {
	return c.cfg.BaseDelay + time.Duration(c.rng.Float64()*float64(c.cfg.Jitter))
}

// armMood schedules the next mood firing with a freshly drawn delay
func (c *Controller) armMood() {
	delay := c.NextMoodDelay()
	c.moodTimer = c.sched.AfterFunc(delay, c.fireMood)
	c.logger.Debug("mood armed", zap.Duration("delay", delay))
}

// fireMood applies a uniformly random expression, then re-arms
func (c *Controller) fireMood() {
	if !c.active {
		return
	}
	c.moodTimer = nil

	all := expression.All()
	c.state.Expression = all[c.rng.IntN(len(all))]
	c.logger.Debug("mood changed", zap.Stringer("expression", c.state.Expression))
	c.notify(CauseMood)

	// A subscriber may have stopped the controller
	if c.active {
		c.armMood()
	}
}

func (c *Controller) notify(cause Cause) {
	now := c.sched.Now()
	change := Change{
		State: c.state,
		Cause: cause,
		At:    now,
		Held:  now.Sub(c.lastChange),
	}
	c.lastChange = now

	subs := append([]subscriber(nil), c.subs...)
	for _, s := range subs {
		s.fn(change)
	}
}
