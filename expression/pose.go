package expression

import "github.com/lixenwraith/stalker-eyes/core"

// PupilShape selects the pupil rendering variant
type PupilShape uint8

const (
	PupilDefault PupilShape = iota
	PupilHeart
)

// BrowTransform is the affine placement of one eyebrow
// OffsetY is in pointer units, positive moves down
// RotateDeg is clockwise degrees
// ScaleY stretches thickness, zero means unscaled
type BrowTransform struct {
	OffsetY   float64
	RotateDeg float64
	ScaleY    float64
}

// Scale returns the effective vertical scale
func (b BrowTransform) Scale() float64 {
	if b.ScaleY == 0 {
		return 1
	}
	return b.ScaleY
}

// Pose is the rendering parameter set of one expression
// Eyelid coverage is a signed percentage of socket height, negative recedes
type Pose struct {
	EyelidTop    float64
	EyelidBottom float64
	BrowLeft     BrowTransform
	BrowRight    BrowTransform
	Tint         core.RGB
	Tinted       bool
	Pupil        PupilShape
}

func brow(offsetY, rotateDeg float64) BrowTransform {
	return BrowTransform{OffsetY: offsetY, RotateDeg: rotateDeg}
}

// poses is indexed by Expression
var poses = [Count]Pose{
	Neutral: {
		BrowLeft:  brow(0, 0),
		BrowRight: brow(0, 0),
	},
	Confusion: {
		EyelidTop: 10, EyelidBottom: 10,
		BrowLeft:  brow(-25, -15),
		BrowRight: brow(15, 10),
	},
	Suspicion: {
		EyelidTop: 45, EyelidBottom: 45,
		BrowLeft:  brow(20, 20),
		BrowRight: brow(20, -20),
	},
	Delight: {
		EyelidBottom: 30,
		BrowLeft:     brow(-30, -10),
		BrowRight:    brow(-30, 10),
	},
	Surprise: {
		EyelidTop: -10, EyelidBottom: -10,
		BrowLeft:  BrowTransform{OffsetY: -50, ScaleY: 1.3},
		BrowRight: BrowTransform{OffsetY: -50, ScaleY: 1.3},
	},
	Content: {
		EyelidTop: 55,
		BrowLeft:  brow(-10, 0),
		BrowRight: brow(-10, 0),
	},
	Stoned: {
		EyelidTop: 75, EyelidBottom: 15,
		BrowLeft:  brow(10, -8),
		BrowRight: brow(10, 8),
		Tint:      core.Hex(0xfee2e2), Tinted: true,
	},
	Angry: {
		EyelidTop: 20,
		BrowLeft:  brow(15, 35),
		BrowRight: brow(15, -35),
		Tint:      core.Hex(0xffedd5), Tinted: true,
	},
	Sleepy: {
		EyelidTop: 80,
		BrowLeft:  brow(5, 0),
		BrowRight: brow(5, 0),
	},
	Excited: {
		BrowLeft:  brow(-40, -15),
		BrowRight: brow(-40, 15),
	},
	Skeptical: {
		EyelidTop: 40, EyelidBottom: 20,
		BrowLeft:  brow(10, 10),
		BrowRight: brow(-15, -5),
	},
	Scheming: {
		EyelidTop: 60,
		BrowLeft:  brow(25, 25),
		BrowRight: brow(25, -25),
	},
	HeartEyes: {
		EyelidBottom: 10,
		BrowLeft:     brow(-30, -5),
		BrowRight:    brow(-30, 5),
		Tint:         core.Hex(0xfce7f3), Tinted: true,
		Pupil:        PupilHeart,
	},
}

// Lookup returns the pose for e
// Out-of-set values fall back to the neutral pose
func Lookup(e Expression) Pose {
	if e >= Count {
		return poses[Neutral]
	}
	return poses[e]
}
