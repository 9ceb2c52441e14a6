package hotkey

import (
	"fmt"

	"maven/combo"
)

// PressState is the set of combos currently considered held. It exists only
// to make triggers edge-based: a combo fires when its chord becomes fully held
// and not again until some key of the chord is released.
type PressState struct {
	held map[combo.Combo]struct{}
}

func NewPressState() *PressState {
	return &PressState{held: make(map[combo.Combo]struct{})}
}

// Apply feeds one event through edge detection against the bound combos and
// returns the combos that were newly pressed, in the order of bound.
// Events for keys the parser cannot normalize are dropped without changing
// state and return an error wrapping combo.ErrInvalidKey.
func (p *PressState) Apply(ev Event, bound []combo.Combo) ([]combo.Combo, error) {
	if !combo.Known(ev.Key) {
		return nil, fmt.Errorf("%w: %q", combo.ErrInvalidKey, ev.Key)
	}

	switch ev.Transition {
	case Down:
		var fired []combo.Combo
		for _, c := range bound {
			if _, ok := p.held[c]; ok {
				continue
			}
			if ev.Held.HasChord(c) {
				p.held[c] = struct{}{}
				fired = append(fired, c)
			}
		}
		return fired, nil
	case Up:
		for c := range p.held {
			if !ev.Held.HasChord(c) {
				delete(p.held, c)
			}
		}
	}
	return nil, nil
}

// Held reports whether c is in the set.
func (p *PressState) Held(c combo.Combo) bool {
	_, ok := p.held[c]
	return ok
}

// Len returns the number of held combos.
func (p *PressState) Len() int { return len(p.held) }

// Reset forgets every held combo.
func (p *PressState) Reset() {
	clear(p.held)
}
