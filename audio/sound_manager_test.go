package audio

import (
	"testing"
)

// TestSoundManagerGracefulDegradation verifies cues are dropped without a speaker
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(DefaultVolume)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	sm.Play(CueSurprise)
	sm.Play(CueMood)
	sm.Play(Cue(99))
	sm.Close()

	if sm.Initialized() {
		t.Error("Manager should not report initialized")
	}
}

// TestSoundManagerInitialization verifies the speaker can be opened and released
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager(DefaultVolume)

	// Speaker may be unavailable in CI; audio is optional
	if err := sm.Initialize(); err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}

	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should be a no-op, got error: %v", err)
	}

	sm.Play(CueMood)
	sm.Close()
	if sm.Initialized() {
		t.Error("Manager should not report initialized after Close")
	}
	sm.Close()
}

func TestNegativeVolumeClamped(t *testing.T) {
	sm := NewSoundManager(-1)
	if sm.volume != 0 {
		t.Errorf("volume = %v, want 0", sm.volume)
	}
}

func TestSilentPlayer(t *testing.T) {
	var p Player = Silent{}
	p.Play(CueSurprise)
	p.Close()
}

func TestCueString(t *testing.T) {
	tests := []struct {
		cue  Cue
		want string
	}{
		{CueSurprise, "surprise"},
		{CueMood, "mood"},
		{cueCount, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.cue.String(); got != tt.want {
			t.Errorf("Cue(%d).String() = %q, want %q", tt.cue, got, tt.want)
		}
	}
}
