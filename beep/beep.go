// Package beep plays short audible cues for sequence changes. Cues are off
// until Enable is called.
package beep

import "sync/atomic"

var enabled atomic.Bool

func Enable() { enabled.Store(true) }

// PlayAppend is played when an item is added; length is the new sequence
// length.
func PlayAppend(length int) { emit(appendCue(length)) }

func PlayClear() { emit(clearCue) }

// PlayToggle is played when the overlay is switched on or off.
func PlayToggle(on bool) { emit(toggleCue(on)) }

func PlayError() { emit(errorCue) }

func emit(c cue) {
	if !enabled.Load() {
		return
	}
	play(c.samples(sampleRate))
}
