package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Cue timing
const (
	chirpNoteDuration = 45 * time.Millisecond
	chirpAttack       = 5 * time.Millisecond
	chirpRelease      = 20 * time.Millisecond

	bellDuration        = 600 * time.Millisecond
	bellAttack          = 5 * time.Millisecond
	bellFundRelease     = 550 * time.Millisecond
	bellOvertoneRelease = 250 * time.Millisecond
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// oscillator generates a wave gliding linearly from one frequency to another
type oscillator struct {
	from, to float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a fixed-pitch oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewGlide(freq, freq, duration, wave, rate)
}

// NewGlide creates an oscillator sweeping from one pitch to another
func NewGlide(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		from:     from,
		to:       to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.from + (o.to-o.from)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with an attack ramp and a release tail ending at duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	rel := min(rate.N(release), total)
	att := min(rate.N(attack), total-rel)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		totalSamples:   total,
	}
}

func (e *envelope) gain() float64 {
	if e.attackSamples > 0 && e.position < e.attackSamples {
		return float64(e.position) / float64(e.attackSamples)
	}
	releaseStart := e.totalSamples - e.releaseSamples
	if e.releaseSamples > 0 && e.position >= releaseStart {
		return float64(e.totalSamples-e.position) / float64(e.releaseSamples)
	}
	return 1
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if remaining := e.totalSamples - e.position; len(samples) > remaining {
		samples = samples[:remaining]
	}

	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain
// math.Log2(0) is -Inf, so zero volume is mapped to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateChirp generates three rising glides, the surprise cue
func CreateChirp(rate beep.SampleRate, volume float64) beep.Streamer {
	steps := [][2]float64{
		{660, 880},
		{880, 1175},
		{1175, 1568},
	}

	notes := make([]beep.Streamer, 0, len(steps))
	for _, s := range steps {
		osc := NewGlide(s[0], s[1], chirpNoteDuration, WaveTriangle, rate)
		notes = append(notes, NewEnvelope(osc, chirpNoteDuration, chirpAttack, chirpRelease, rate))
	}
	return newVolume(beep.Seq(notes...), volume)
}

// CreateBell generates a soft ding with an octave overtone, the mood cue
func CreateBell(rate beep.SampleRate, volume float64) beep.Streamer {
	// Fundamental (E5)
	fund := NewOscillator(659.25, bellDuration, WaveSine, rate)
	fundShaped := NewEnvelope(fund, bellDuration, bellAttack, bellFundRelease, rate)

	over := NewOscillator(1318.5, bellDuration, WaveSine, rate)
	overShaped := NewEnvelope(over, bellDuration, bellAttack, bellOvertoneRelease, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return newVolume(mixed, volume)
}

// CueStreamer returns the streamer for c, nil for unknown cues
func CueStreamer(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	switch c {
	case CueSurprise:
		return CreateChirp(rate, volume)
	case CueMood:
		return CreateBell(rate, volume)
	default:
		return nil
	}
}
