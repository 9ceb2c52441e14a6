package hotkey

import (
	"sync"
	"time"

	"maven/combo"
)

// Fake is a Source driven by test code and the -test mode.
type Fake struct {
	mu          sync.Mutex
	held        KeySet
	events      chan Event
	errs        chan error
	registerErr error
	registered  []combo.Combo
	active      bool
}

func NewFake() *Fake {
	return &Fake{
		held:   make(KeySet),
		events: make(chan Event, 256),
		errs:   make(chan error, 1),
	}
}

// FailRegister makes the next Register calls return err (nil clears it).
func (f *Fake) FailRegister(err error) {
	f.mu.Lock()
	f.registerErr = err
	f.mu.Unlock()
}

func (f *Fake) Register(combos []combo.Combo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.registerErr != nil {
		return f.registerErr
	}
	f.registered = append([]combo.Combo(nil), combos...)
	f.active = true
	return nil
}

func (f *Fake) Unregister() {
	f.mu.Lock()
	f.active = false
	f.mu.Unlock()
}

func (f *Fake) Events() <-chan Event { return f.events }
func (f *Fake) Errors() <-chan error { return f.errs }

// Active reports whether the fake is registered.
func (f *Fake) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

// Registered returns the combos passed to the last Register.
func (f *Fake) Registered() []combo.Combo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]combo.Combo(nil), f.registered...)
}

// SimDown presses key (a physical name such as "rctrl" is folded). Pressing an
// already held key is an OS auto-repeat and is delivered as another Down.
func (f *Fake) SimDown(key string) { f.sim(Down, key) }

// SimUp releases key.
func (f *Fake) SimUp(key string) { f.sim(Up, key) }

// SimChord presses every key of c in order.
func (f *Fake) SimChord(c combo.Combo) {
	for _, k := range c.Keys() {
		f.SimDown(k)
	}
}

// ReleaseChord releases every key of c in reverse order.
func (f *Fake) ReleaseChord(c combo.Combo) {
	keys := c.Keys()
	for i := len(keys) - 1; i >= 0; i-- {
		f.SimUp(keys[i])
	}
}

// SimLost reports a lost subscription.
func (f *Fake) SimLost(err error) {
	select {
	case f.errs <- err:
	default:
	}
}

func (f *Fake) sim(t Transition, key string) {
	logical, ok := combo.LogicalKey(key)
	if !ok {
		logical = key
	}

	f.mu.Lock()
	if t == Down {
		f.held[logical] = struct{}{}
	} else {
		delete(f.held, logical)
	}
	held := make(KeySet, len(f.held))
	for k := range f.held {
		held[k] = struct{}{}
	}
	f.mu.Unlock()

	f.events <- Event{
		Transition: t,
		Key:        key,
		Mods:       modsOf(held),
		Time:       time.Now(),
		Held:       held,
	}
}
