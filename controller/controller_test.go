package controller

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/stalker-eyes/engine"
	"github.com/lixenwraith/stalker-eyes/expression"
	"github.com/lixenwraith/stalker-eyes/vmath"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// fakePointer is a PointerSource driven by the test
type fakePointer struct {
	subs map[int]func(vmath.Vec2)
	next int
}

func newFakePointer() *fakePointer {
	return &fakePointer{subs: make(map[int]func(vmath.Vec2))}
}

func (f *fakePointer) SubscribePointer(fn func(vmath.Vec2)) func() {
	f.next++
	id := f.next
	f.subs[id] = fn
	return func() { delete(f.subs, id) }
}

func (f *fakePointer) Move(x, y float64) {
	for _, fn := range f.subs {
		fn(vmath.Vec2{X: x, Y: y})
	}
}

// scriptedRand returns queued values, falling back to fixed defaults
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

// fixedGeometry is a toggleable container measurement
type fixedGeometry struct {
	rect vmath.Rect
	ok   bool
}

func (g *fixedGeometry) Bounds() (vmath.Rect, bool) {
	return g.rect, g.ok
}

// centeredAt returns a measurable 100x100 container centered at (x, y)
func centeredAt(x, y float64) *fixedGeometry {
	return &fixedGeometry{rect: vmath.Rect{X: x - 50, Y: y - 50, W: 100, H: 100}, ok: true}
}

type harness struct {
	sched *engine.MockScheduler
	src   *fakePointer
	geom  *fixedGeometry
	ctl   *Controller
}

func newHarness(t *testing.T, rng Rand) *harness {
	t.Helper()
	h := &harness{
		sched: engine.NewMockScheduler(epoch),
		src:   newFakePointer(),
		geom:  centeredAt(100, 100),
	}
	h.ctl = New(DefaultConfig(), h.sched, h.geom.Bounds, rng, nil)
	h.ctl.Start(h.src)
	return h
}

func TestInitialState(t *testing.T) {
	sched := engine.NewMockScheduler(epoch)
	ctl := New(DefaultConfig(), sched, nil, nil, nil)

	s := ctl.Snapshot()
	assert.Equal(t, expression.Neutral, s.Expression)
	assert.Equal(t, vmath.Vec2{}, s.Pointer)
	assert.Equal(t, vmath.Vec2{}, s.Gaze)
	assert.False(t, ctl.Active())
	assert.NotEmpty(t, ctl.ID())
	assert.Equal(t, 0, sched.Pending(), "inactive controller must not arm the timer")
}

// TestMoodTimerJitterBounds verifies every redrawn delay stays in range and
// successive draws are independent
func TestMoodTimerJitterBounds(t *testing.T) {
	h := newHarness(t, rand.New(rand.NewPCG(7, 11)))

	const firings = 1000
	seen := make(map[expression.Expression]int)
	for i := 0; i < firings; i++ {
		delay, ok := h.sched.NextDelay()
		require.True(t, ok, "timer must be re-armed after firing %d", i)
		require.Equal(t, 1, h.sched.Pending(), "exactly one pending mood timer")
		h.sched.Advance(delay)
		seen[h.ctl.Snapshot().Expression]++
	}

	armed := h.sched.Armed()
	require.Len(t, armed, firings+1)

	distinct := make(map[time.Duration]bool)
	equalNeighbours := 0
	for i, d := range armed {
		assert.GreaterOrEqual(t, d, DefaultBaseDelay)
		assert.LessOrEqual(t, d, DefaultBaseDelay+DefaultJitter)
		distinct[d] = true
		if i > 0 && armed[i-1] == d {
			equalNeighbours++
		}
	}
	assert.Greater(t, len(distinct), firings*9/10, "delays should be redrawn every cycle")
	assert.Less(t, equalNeighbours, 5)

	// Uniform draw over the full set, including re-selection
	assert.Len(t, seen, int(expression.Count))
}

// TestMoodTimerDelayFormula verifies delay = base + random * jitter
func TestMoodTimerDelayFormula(t *testing.T) {
	rng := &scriptedRand{floats: []float64{0, 0.25, 0.999999}}
	sched := engine.NewMockScheduler(epoch)
	ctl := New(DefaultConfig(), sched, nil, rng, nil)

	assert.Equal(t, 10*time.Second, ctl.NextMoodDelay())
	assert.Equal(t, 12*time.Second, ctl.NextMoodDelay())
	assert.InDelta(t, float64(18*time.Second), float64(ctl.NextMoodDelay()), float64(10*time.Microsecond))
}

// TestMoodTimerSelectsExpression verifies a firing applies the drawn expression
func TestMoodTimerSelectsExpression(t *testing.T) {
	rng := &scriptedRand{
		floats: []float64{0, 0},
		ints:   []int{int(expression.Sleepy), int(expression.Sleepy)},
	}
	h := newHarness(t, rng)

	var causes []Cause
	h.ctl.Subscribe(func(c Change) { causes = append(causes, c.Cause) })

	h.sched.Advance(9 * time.Second)
	assert.Equal(t, expression.Neutral, h.ctl.Snapshot().Expression, "no firing before the base delay")

	h.sched.Advance(time.Second)
	assert.Equal(t, expression.Sleepy, h.ctl.Snapshot().Expression)

	// Re-selecting the current expression is allowed and still notifies
	h.sched.Advance(10 * time.Second)
	assert.Equal(t, expression.Sleepy, h.ctl.Snapshot().Expression)
	assert.Equal(t, []Cause{CauseMood, CauseMood}, causes)
}

// TestReactiveOverride verifies fast movement forces surprise regardless of prior state
func TestReactiveOverride(t *testing.T) {
	rng := &scriptedRand{floats: []float64{0}, ints: []int{int(expression.HeartEyes)}}
	h := newHarness(t, rng)

	h.sched.Advance(DefaultBaseDelay)
	require.Equal(t, expression.HeartEyes, h.ctl.Snapshot().Expression)

	h.src.Move(10, 10)
	assert.Equal(t, expression.HeartEyes, h.ctl.Snapshot().Expression)

	h.src.Move(200, 10) // displacement 190
	assert.Equal(t, expression.Surprise, h.ctl.Snapshot().Expression)
}

// TestSubThresholdStability verifies displacement <= threshold leaves the expression alone
func TestSubThresholdStability(t *testing.T) {
	rng := &scriptedRand{floats: []float64{0}, ints: []int{int(expression.Scheming)}}
	h := newHarness(t, rng)
	h.sched.Advance(DefaultBaseDelay)

	var causes []Cause
	h.ctl.Subscribe(func(c Change) { causes = append(causes, c.Cause) })

	moves := []vmath.Vec2{
		{X: 90, Y: 120},   // exactly 150 from origin
		{X: 240, Y: 120},  // exactly 150
		{X: 300, Y: 200},  // 100
		{X: 300, Y: 200},  // 0
		{X: 210, Y: 80},   // 150
		{X: 200.5, Y: 80}, // 9.5
	}
	for _, m := range moves {
		h.src.Move(m.X, m.Y)
		assert.Equal(t, expression.Scheming, h.ctl.Snapshot().Expression, "move to %v", m)
		assert.Equal(t, m, h.ctl.Snapshot().Pointer)
	}
	for _, c := range causes {
		assert.Equal(t, CausePointer, c)
	}
}

// TestSpeedIsPerEventDisplacement verifies many small steps never trigger surprise
func TestSpeedIsPerEventDisplacement(t *testing.T) {
	h := newHarness(t, nil)

	for x := 0.0; x <= 3000; x += 100 {
		h.src.Move(x, 0)
	}
	assert.Equal(t, expression.Neutral, h.ctl.Snapshot().Expression)
}

func TestGazeDirection(t *testing.T) {
	h := newHarness(t, nil)

	h.src.Move(200, 100)
	g := h.ctl.Snapshot().Gaze
	assert.InDelta(t, 35, g.X, 1e-9)
	assert.InDelta(t, 0, g.Y, 1e-9)

	h.src.Move(100, 200)
	g = h.ctl.Snapshot().Gaze
	assert.InDelta(t, 0, g.X, 1e-9)
	assert.InDelta(t, 35, g.Y, 1e-9)
}

// TestGazeMagnitudeInvariant verifies the gaze always has the fixed radius
func TestGazeMagnitudeInvariant(t *testing.T) {
	h := newHarness(t, nil)
	rng := rand.New(rand.NewPCG(3, 5))

	for i := 0; i < 500; i++ {
		x := rng.Float64()*4000 - 2000
		y := rng.Float64()*4000 - 2000
		h.src.Move(x, y)
		assert.InDelta(t, DefaultGazeRadius, vmath.V2Mag(h.ctl.Snapshot().Gaze), 1e-9)
	}

	// Pointer on the reference point: angle 0, still full radius
	h.src.Move(100, 100)
	g := h.ctl.Snapshot().Gaze
	assert.InDelta(t, 35, g.X, 1e-9)
	assert.InDelta(t, 0, g.Y, 1e-9)
}

// TestUnmeasurableContainer verifies a failed geometry query skips only the gaze update
func TestUnmeasurableContainer(t *testing.T) {
	h := newHarness(t, nil)

	h.geom.ok = false
	h.src.Move(300, 0) // displacement 300 from origin
	s := h.ctl.Snapshot()
	assert.Equal(t, vmath.Vec2{X: 300, Y: 0}, s.Pointer)
	assert.Equal(t, expression.Surprise, s.Expression)
	assert.Equal(t, vmath.Vec2{}, s.Gaze)

	h.geom.ok = true
	h.src.Move(300, 100)
	prior := h.ctl.Snapshot().Gaze
	assert.InDelta(t, 35, prior.X, 1e-9)

	h.geom.ok = false
	h.src.Move(100, 300)
	s = h.ctl.Snapshot()
	assert.Equal(t, vmath.Vec2{X: 100, Y: 300}, s.Pointer)
	assert.Equal(t, prior, s.Gaze, "gaze must keep its prior value")
}

// TestNilGeometry verifies a controller without geometry never moves the gaze
func TestNilGeometry(t *testing.T) {
	sched := engine.NewMockScheduler(epoch)
	ctl := New(DefaultConfig(), sched, nil, nil, nil)
	ctl.Start(nil)
	defer ctl.Stop()

	ctl.HandlePointer(vmath.Vec2{X: 40, Y: 40})
	assert.Equal(t, vmath.Vec2{}, ctl.Snapshot().Gaze)
	assert.Equal(t, vmath.Vec2{X: 40, Y: 40}, ctl.Snapshot().Pointer)
}

// TestLastWriteWins verifies the two sources race with no arbitration
func TestLastWriteWins(t *testing.T) {
	rng := &scriptedRand{
		floats: []float64{0, 0},
		ints:   []int{int(expression.Angry), int(expression.Content)},
	}
	h := newHarness(t, rng)

	h.sched.Advance(DefaultBaseDelay)
	assert.Equal(t, expression.Angry, h.ctl.Snapshot().Expression)

	h.src.Move(500, 500)
	assert.Equal(t, expression.Surprise, h.ctl.Snapshot().Expression)

	// Timer overwrites the reactive surprise immediately
	h.sched.Advance(DefaultBaseDelay)
	assert.Equal(t, expression.Content, h.ctl.Snapshot().Expression)

	h.src.Move(0, 0)
	assert.Equal(t, expression.Surprise, h.ctl.Snapshot().Expression)
}

// TestTeardown verifies no mutation after both subscriptions are revoked
func TestTeardown(t *testing.T) {
	h := newHarness(t, nil)
	h.src.Move(120, 40)

	notified := 0
	h.ctl.Subscribe(func(Change) { notified++ })

	before := h.ctl.Snapshot()
	h.ctl.Stop()

	assert.False(t, h.ctl.Active())
	assert.Empty(t, h.src.subs, "pointer subscription must be revoked")
	assert.Equal(t, 0, h.sched.Pending(), "mood timer must be revoked")

	h.sched.Advance(time.Hour)
	h.src.Move(900, 900)
	h.ctl.HandlePointer(vmath.Vec2{X: -900, Y: 900})

	assert.Equal(t, before, h.ctl.Snapshot())
	assert.Zero(t, notified)

	h.ctl.Stop() // Idempotent
}

// TestStopFromSubscriber verifies a stop during a mood firing does not re-arm
func TestStopFromSubscriber(t *testing.T) {
	h := newHarness(t, nil)
	h.ctl.Subscribe(func(c Change) {
		if c.Cause == CauseMood {
			h.ctl.Stop()
		}
	})

	h.sched.Advance(DefaultBaseDelay + DefaultJitter)
	assert.False(t, h.ctl.Active())
	assert.Equal(t, 0, h.sched.Pending())
}

// TestRestart verifies a stopped controller can be started again
func TestRestart(t *testing.T) {
	h := newHarness(t, nil)
	h.ctl.Stop()
	h.ctl.Start(h.src)
	h.ctl.Start(h.src) // No-op when active

	assert.Equal(t, 1, h.sched.Pending())
	assert.Len(t, h.src.subs, 1)
}

func TestSubscribeCancel(t *testing.T) {
	h := newHarness(t, nil)

	var a, b []Change
	cancelA := h.ctl.Subscribe(func(c Change) { a = append(a, c) })
	h.ctl.Subscribe(func(c Change) { b = append(b, c) })

	h.sched.Advance(3 * time.Second)
	h.src.Move(10, 0)
	cancelA()
	cancelA() // Idempotent
	h.src.Move(20, 0)

	require.Len(t, a, 1)
	require.Len(t, b, 2)
	assert.Equal(t, vmath.Vec2{X: 10, Y: 0}, a[0].State.Pointer)
	assert.Equal(t, epoch.Add(3*time.Second), a[0].At)
	assert.Equal(t, 3*time.Second, a[0].Held)
	assert.Equal(t, time.Duration(0), b[1].Held)
}

// TestIndependentInstances verifies controllers share no state
func TestIndependentInstances(t *testing.T) {
	a := newHarness(t, nil)
	b := newHarness(t, nil)

	a.src.Move(1000, 0)
	assert.Equal(t, expression.Surprise, a.ctl.Snapshot().Expression)
	assert.Equal(t, expression.Neutral, b.ctl.Snapshot().Expression)
	assert.NotEqual(t, a.ctl.ID(), b.ctl.ID())
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{Jitter: -time.Second}.withDefaults()
	assert.Equal(t, DefaultBaseDelay, cfg.BaseDelay)
	assert.Equal(t, time.Duration(0), cfg.Jitter)
	assert.Equal(t, DefaultSurpriseSpeed, cfg.SurpriseSpeed)
	assert.Equal(t, DefaultGazeRadius, cfg.GazeRadius)

	custom := Config{BaseDelay: time.Second, Jitter: 0, SurpriseSpeed: 40, GazeRadius: 2}.withDefaults()
	assert.Equal(t, time.Second, custom.BaseDelay)
	assert.Equal(t, 40.0, custom.SurpriseSpeed)
	assert.Equal(t, 2.0, custom.GazeRadius)
}

func TestCauseString(t *testing.T) {
	assert.Equal(t, "mood", CauseMood.String())
	assert.Equal(t, "pointer", CausePointer.String())
	assert.Equal(t, "surprise", CauseSurprise.String())
	assert.Equal(t, "unknown", Cause(99).String())
}
