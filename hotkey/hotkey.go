package hotkey

import (
	"time"

	"maven/combo"
)

// Transition is the direction of a physical key change.
type Transition int

const (
	Down Transition = iota
	Up
)

func (t Transition) String() string {
	if t == Up {
		return "up"
	}
	return "down"
}

// KeySet is an immutable snapshot of the logical keys held at one instant.
type KeySet map[string]struct{}

// NewKeySet builds a KeySet from logical key names.
func NewKeySet(keys ...string) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether key is held.
func (s KeySet) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// HasChord reports whether every key of c is held.
func (s KeySet) HasChord(c combo.Combo) bool {
	for _, k := range c.Keys() {
		if !s.Has(k) {
			return false
		}
	}
	return true
}

// Event is one raw key transition from the OS. Held is the source's view of
// every key down at the moment of the event, including Key itself for Down.
type Event struct {
	Transition Transition
	Key        string
	Mods       combo.Modifier
	Time       time.Time
	Held       KeySet
}

// Source is an OS-wide keyboard subscription.
type Source interface {
	// Register subscribes to the key stream. combos lists the chords the
	// caller cares about; backends that can only watch registered chords use it.
	Register(combos []combo.Combo) error
	// Unregister tears the subscription down. Safe to call more than once.
	Unregister()
	Events() <-chan Event
	// Errors reports loss of the subscription after a successful Register.
	Errors() <-chan error
}

func modsOf(held KeySet) combo.Modifier {
	var m combo.Modifier
	if held.Has("ctrl") {
		m |= combo.ModCtrl
	}
	if held.Has("shift") {
		m |= combo.ModShift
	}
	if held.Has("alt") {
		m |= combo.ModAlt
	}
	if held.Has("meta") {
		m |= combo.ModMeta
	}
	return m
}
