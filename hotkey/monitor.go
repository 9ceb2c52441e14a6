package hotkey

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"maven/combo"
	"maven/log"
)

// ErrMonitorUnavailable reports that the OS key stream could not be
// subscribed or was lost. The monitor emits nothing until re-armed.
var ErrMonitorUnavailable = errors.New("keyboard monitor unavailable")

// Monitor turns a Source's raw key stream into one trigger per newly pressed
// bound combo. Processing runs on a dedicated listener goroutine and must
// never block, so emit has to hand the combo off without waiting.
type Monitor struct {
	src           Source
	emit          func(combo.Combo)
	onUnavailable func(error)

	mu    sync.Mutex // serializes Arm and Stop
	press *PressState
	bound []combo.Combo
	run   *listener
	armed atomic.Bool
}

type listener struct {
	stop chan struct{}
	done chan struct{}
}

// NewMonitor creates a disarmed monitor over src.
func NewMonitor(src Source, emit func(combo.Combo)) *Monitor {
	return &Monitor{
		src:   src,
		emit:  emit,
		press: NewPressState(),
	}
}

// OnUnavailable sets the callback invoked once when an armed subscription is
// lost. Set it before the first Arm.
func (m *Monitor) OnUnavailable(fn func(error)) {
	m.onUnavailable = fn
}

// Arm stops any running listener, forgets every held combo, installs combos
// as the bound set and subscribes again. A combo held across Arm fires as a
// fresh edge. On failure the monitor stays disarmed and the error wraps
// ErrMonitorUnavailable.
func (m *Monitor) Arm(combos []combo.Combo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()
	m.press.Reset()
	m.bound = sortedCombos(combos)

	if len(m.bound) == 0 {
		log.Warn("monitor_armed_without_hotkeys")
		return nil
	}

	if err := m.src.Register(m.bound); err != nil {
		return fmt.Errorf("%w: %v", ErrMonitorUnavailable, err)
	}

	l := &listener{stop: make(chan struct{}), done: make(chan struct{})}
	m.run = l
	m.armed.Store(true)
	go m.listen(l, m.src.Events(), m.src.Errors(), m.bound)
	log.Armed(len(m.bound))
	return nil
}

// Stop unsubscribes and returns once the listener goroutine has exited.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

// Armed reports whether triggers are currently being delivered.
func (m *Monitor) Armed() bool { return m.armed.Load() }

// Bound returns the combos installed by the last Arm.
func (m *Monitor) Bound() []combo.Combo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]combo.Combo(nil), m.bound...)
}

func (m *Monitor) stopLocked() {
	m.armed.Store(false)
	if m.run == nil {
		return
	}
	close(m.run.stop)
	<-m.run.done
	m.src.Unregister()
	m.run = nil
}

func (m *Monitor) listen(l *listener, events <-chan Event, errs <-chan error, bound []combo.Combo) {
	var lostErr error
	defer func() {
		close(l.done)
		// Reported after done is closed so the callback may re-arm.
		if lostErr != nil {
			m.lost(l, lostErr)
		}
	}()
	for {
		select {
		case <-l.stop:
			return
		case ev, ok := <-events:
			if !ok {
				lostErr = errors.New("key event stream closed")
				return
			}
			fired, err := m.press.Apply(ev, bound)
			if err != nil {
				log.Debugf("dropped key event: %v", err)
				continue
			}
			for _, c := range fired {
				m.emit(c)
			}
		case err := <-errs:
			lostErr = err
			return
		}
	}
}

func (m *Monitor) lost(l *listener, err error) {
	m.mu.Lock()
	if m.run != l {
		// superseded by Arm or Stop
		m.mu.Unlock()
		return
	}
	m.run = nil
	m.armed.Store(false)
	m.src.Unregister()
	m.mu.Unlock()

	err = fmt.Errorf("%w: %v", ErrMonitorUnavailable, err)
	log.MonitorUnavailable(err)
	if m.onUnavailable != nil {
		m.onUnavailable(err)
	}
}

func sortedCombos(combos []combo.Combo) []combo.Combo {
	out := make([]combo.Combo, 0, len(combos))
	seen := make(map[combo.Combo]struct{}, len(combos))
	for _, c := range combos {
		if c.IsZero() {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
