package beep

import "math"

const sampleRate = 44100

// A tone sweeps from one frequency to another under an exponential decay.
// A tone with zero volume is a gap.
type tone struct {
	from, to float64 // Hz
	dur      float64 // seconds
	volume   float64
	decay    float64
}

type cue []tone

// Append cues climb a semitone per item so the length of the sequence can be
// heard, up to an octave above the base pitch.
const (
	appendBase   = 880
	appendMaxUp  = 12
	appendVolume = 0.35
)

func appendCue(length int) cue {
	step := min(max(length-1, 0), appendMaxUp)
	f := appendBase * math.Pow(2, float64(step)/12)
	return cue{{from: f, to: f, dur: 0.04, volume: appendVolume, decay: 60}}
}

var clearCue = cue{{from: 900, to: 450, dur: 0.12, volume: 0.4, decay: 20}}

// Toggle plays two notes, rising when the overlay comes back and falling when
// it goes away.
func toggleCue(on bool) cue {
	lo, hi := 660.0, 990.0
	if !on {
		lo, hi = hi, lo
	}
	return cue{
		{from: lo, to: lo, dur: 0.05, volume: 0.35, decay: 30},
		{dur: 0.02},
		{from: hi, to: hi, dur: 0.07, volume: 0.35, decay: 30},
	}
}

var errorCue = cue{
	{from: 350, to: 350, dur: 0.08, volume: 0.6, decay: 30},
	{dur: 0.05},
	{from: 350, to: 350, dur: 0.08, volume: 0.6, decay: 30},
}

// samples renders c as mono signed 16-bit PCM.
func (c cue) samples(rate int) []int16 {
	var out []int16
	for _, t := range c {
		n := int(float64(rate) * t.dur)
		if t.volume == 0 {
			out = append(out, make([]int16, n)...)
			continue
		}
		phase := 0.0
		for i := 0; i < n; i++ {
			sec := float64(i) / float64(rate)
			f := t.from + (t.to-t.from)*float64(i)/float64(n)
			phase += 2 * math.Pi * f / float64(rate)
			env := math.Exp(-sec * t.decay)
			out = append(out, int16(math.Sin(phase)*32767*t.volume*env))
		}
	}
	return out
}
