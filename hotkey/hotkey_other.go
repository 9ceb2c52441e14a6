//go:build darwin || windows

package hotkey

import (
	"fmt"
	"sync"
	"time"

	"golang.design/x/hotkey"

	"maven/combo"
	"maven/log"
)

// xSource registers one OS hotkey per bound combo. The OS only reports the
// registered chords, so Held is synthesized from the chord itself.
type xSource struct {
	mu      sync.Mutex
	held    KeySet
	hks     []*hotkey.Hotkey
	events  chan Event
	errs    chan error
	stop    chan struct{}
	workers sync.WaitGroup
	once    *sync.Once
}

// New returns the platform key source.
func New() Source {
	return &xSource{
		events: make(chan Event, 64),
		errs:   make(chan error, 1),
	}
}

func (s *xSource) Register(combos []combo.Combo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.held = make(KeySet)
	s.events = make(chan Event, 64)
	s.errs = make(chan error, 1)
	s.stop = make(chan struct{})
	s.once = &sync.Once{}
	s.hks = nil

	for _, c := range combos {
		mods, key, err := toHotkey(c)
		if err != nil {
			log.Warnf("skipping hotkey %s: %v", c, err)
			continue
		}
		hk := hotkey.New(mods, key)
		if err := hk.Register(); err != nil {
			log.Warnf("registering hotkey %s: %v", c, err)
			continue
		}
		s.hks = append(s.hks, hk)
		s.workers.Add(1)
		go s.watch(hk, c, s.stop, s.events)
	}
	if len(s.hks) == 0 {
		close(s.stop)
		s.once = nil
		return fmt.Errorf("none of %d hotkeys could be registered", len(combos))
	}
	return nil
}

func (s *xSource) watch(hk *hotkey.Hotkey, c combo.Combo, stop <-chan struct{}, events chan<- Event) {
	defer s.workers.Done()
	for {
		var t Transition
		select {
		case <-stop:
			return
		case <-hk.Keydown():
			t = Down
		case <-hk.Keyup():
			t = Up
		}
		ev := Event{
			Transition: t,
			Key:        c.Key(),
			Time:       time.Now(),
			Held:       s.update(c, t),
		}
		ev.Mods = modsOf(ev.Held)
		select {
		case events <- ev:
		case <-stop:
			return
		}
	}
}

func (s *xSource) update(c combo.Combo, t Transition) KeySet {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range c.Keys() {
		if t == Down {
			s.held[k] = struct{}{}
		} else {
			delete(s.held, k)
		}
	}
	held := make(KeySet, len(s.held))
	for k := range s.held {
		held[k] = struct{}{}
	}
	return held
}

func (s *xSource) Unregister() {
	s.mu.Lock()
	once, stop, hks := s.once, s.stop, s.hks
	s.mu.Unlock()
	if once == nil {
		return
	}
	once.Do(func() {
		close(stop)
		s.workers.Wait()
		for _, hk := range hks {
			if err := hk.Unregister(); err != nil {
				log.Warnf("unregistering hotkey: %v", err)
			}
		}
	})
}

func (s *xSource) Events() <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events
}

func (s *xSource) Errors() <-chan error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errs
}

func toHotkey(c combo.Combo) ([]hotkey.Modifier, hotkey.Key, error) {
	key, ok := xKeys[c.Key()]
	if !ok {
		return nil, 0, fmt.Errorf("key %q not supported on this platform", c.Key())
	}
	var mods []hotkey.Modifier
	if c.Mods()&combo.ModCtrl != 0 {
		mods = append(mods, hotkey.ModCtrl)
	}
	if c.Mods()&combo.ModShift != 0 {
		mods = append(mods, hotkey.ModShift)
	}
	if c.Mods()&combo.ModAlt != 0 {
		mods = append(mods, modAlt)
	}
	return mods, key, nil
}

var xKeys = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3, "f4": hotkey.KeyF4,
	"f5": hotkey.KeyF5, "f6": hotkey.KeyF6, "f7": hotkey.KeyF7, "f8": hotkey.KeyF8,
	"f9": hotkey.KeyF9, "f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
	"f13": hotkey.KeyF13, "f14": hotkey.KeyF14, "f15": hotkey.KeyF15, "f16": hotkey.KeyF16,
	"f17": hotkey.KeyF17, "f18": hotkey.KeyF18, "f19": hotkey.KeyF19, "f20": hotkey.KeyF20,
	"space":  hotkey.KeySpace,
	"enter":  hotkey.KeyReturn,
	"esc":    hotkey.KeyEscape,
	"tab":    hotkey.KeyTab,
	"delete": hotkey.KeyDelete,
	"up":     hotkey.KeyUp,
	"down":   hotkey.KeyDown,
	"left":   hotkey.KeyLeft,
	"right":  hotkey.KeyRight,
}

// Diagnose reports which bindable keys this platform supports.
func Diagnose() (string, error) {
	return fmt.Sprintf("global hotkeys available (%d bindable keys)", len(xKeys)), nil
}
