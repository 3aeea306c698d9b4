// Package audio plays short synthesized cues for expression changes
package audio

// Cue identifies a sound cue
type Cue int

const (
	CueSurprise Cue = iota // Rising chirp on a reactive override
	CueMood                // Soft bell on a timer mood change
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueSurprise:
		return "surprise"
	case CueMood:
		return "mood"
	default:
		return "unknown"
	}
}

// Player plays cues without blocking the caller
type Player interface {
	Play(c Cue)
	Close()
}

// Silent is a Player that discards every cue
type Silent struct{}

func (Silent) Play(Cue) {}
func (Silent) Close()   {}
