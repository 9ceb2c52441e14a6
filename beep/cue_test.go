package beep

import (
	"math"
	"testing"
)

// zeroCrossings estimates the pitch of a rendered tone.
func zeroCrossings(s []int16) int {
	n := 0
	for i := 1; i < len(s); i++ {
		if (s[i-1] < 0) != (s[i] < 0) {
			n++
		}
	}
	return n
}

func TestCueLength(t *testing.T) {
	got := len(errorCue.samples(sampleRate))
	want := int(sampleRate*0.08)*2 + int(sampleRate*0.05)
	if got != want {
		t.Errorf("error cue = %d samples, want %d", got, want)
	}
}

func TestAppendCueRisesWithLength(t *testing.T) {
	prev := 0
	for n := 1; n <= 5; n++ {
		z := zeroCrossings(appendCue(n).samples(sampleRate))
		if z <= prev {
			t.Fatalf("length %d: %d crossings, want more than %d", n, z, prev)
		}
		prev = z
	}
}

func TestAppendCueCapped(t *testing.T) {
	top := appendCue(appendMaxUp + 1)
	if got := appendCue(50)[0].from; got != top[0].from {
		t.Errorf("freq = %v, want capped at %v", got, top[0].from)
	}
	if got := appendCue(0)[0].from; got != appendBase {
		t.Errorf("freq for empty = %v, want %v", got, appendBase)
	}
}

func TestToggleCueDirection(t *testing.T) {
	on, off := toggleCue(true), toggleCue(false)
	if on[0].from >= on[2].from {
		t.Errorf("on cue not rising: %v -> %v", on[0].from, on[2].from)
	}
	if off[0].from <= off[2].from {
		t.Errorf("off cue not falling: %v -> %v", off[0].from, off[2].from)
	}
}

func TestCueGapIsSilent(t *testing.T) {
	s := toggleCue(true).samples(sampleRate)
	start := int(sampleRate * 0.05)
	for i := start; i < start+int(sampleRate*0.02); i++ {
		if s[i] != 0 {
			t.Fatalf("sample %d = %d, want silence", i, s[i])
		}
	}
}

func TestClearCueFalls(t *testing.T) {
	s := clearCue.samples(sampleRate)
	half := len(s) / 2
	first, second := zeroCrossings(s[:half]), zeroCrossings(s[half:])
	if first <= second {
		t.Errorf("crossings %d then %d, want falling pitch", first, second)
	}
}

func TestCueWithinRange(t *testing.T) {
	for _, c := range []cue{appendCue(3), clearCue, toggleCue(false), errorCue} {
		for _, v := range c.samples(sampleRate) {
			if math.Abs(float64(v)) > 32767*0.6+1 {
				t.Fatalf("sample %d exceeds cue volume", v)
			}
		}
	}
}

func TestEmitDisabled(t *testing.T) {
	enabled.Store(false)
	// must return without touching the audio backend
	PlayAppend(1)
	PlayToggle(true)
}
