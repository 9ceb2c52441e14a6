//go:build linux

package hotkey

import (
	"fmt"
	"sync"
	"time"

	"github.com/holoplot/go-evdev"

	"maven/combo"
	"maven/log"
)

const (
	keyRelease = 0
	keyPress   = 1
	keyRepeat  = 2

	unregisterTimeout = 2 * time.Second
)

// evdevSource reads every keyboard under /dev/input. Requires the user to be
// in the 'input' group.
type evdevSource struct {
	mu      sync.Mutex
	down    map[evdev.EvCode]struct{}
	devices []*evdev.InputDevice
	events  chan Event
	errs    chan error
	stop    chan struct{}
	readers sync.WaitGroup
	alive   int
	once    *sync.Once
}

// New returns the platform key source.
func New() Source {
	return &evdevSource{
		events: make(chan Event, 64),
		errs:   make(chan error, 1),
	}
}

func (s *evdevSource) Register(_ []combo.Combo) error {
	keyboards, err := findKeyboards()
	if err != nil {
		return fmt.Errorf("finding keyboards: %w", err)
	}
	if len(keyboards) == 0 {
		return fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.down = make(map[evdev.EvCode]struct{})
	s.events = make(chan Event, 64)
	s.errs = make(chan error, 1)
	s.stop = make(chan struct{})
	s.once = &sync.Once{}
	s.devices = nil

	for _, path := range keyboards {
		dev, err := evdev.Open(path)
		if err != nil {
			continue
		}
		s.devices = append(s.devices, dev)
	}
	if len(s.devices) == 0 {
		return fmt.Errorf("could not open any keyboard device (run: sudo usermod -aG input $USER, then re-login)")
	}

	s.alive = len(s.devices)
	for _, dev := range s.devices {
		s.readers.Add(1)
		go s.readEvents(dev, s.stop, s.events, s.errs)
	}
	return nil
}

func (s *evdevSource) readEvents(dev *evdev.InputDevice, stop <-chan struct{}, events chan<- Event, errs chan<- error) {
	defer s.readers.Done()
	for {
		ev, err := dev.ReadOne()
		if err != nil {
			s.readerExited(stop, errs, err)
			return
		}
		if ev.Type != evdev.EV_KEY {
			continue
		}
		name, ok := keyNames[ev.Code]
		if !ok {
			// Unknown keys still reach the monitor, which drops them.
			name = fmt.Sprintf("code%d", ev.Code)
		}

		var t Transition
		switch ev.Value {
		case keyPress, keyRepeat:
			t = Down
		case keyRelease:
			t = Up
		default:
			continue
		}

		out := Event{
			Transition: t,
			Key:        name,
			Time:       time.Unix(int64(ev.Time.Sec), int64(ev.Time.Usec)*1000),
			Held:       s.update(ev.Code, t),
		}
		out.Mods = modsOf(out.Held)

		select {
		case events <- out:
		case <-stop:
			return
		}
	}
}

// update records the physical transition and returns the logical snapshot.
func (s *evdevSource) update(code evdev.EvCode, t Transition) KeySet {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t == Down {
		s.down[code] = struct{}{}
	} else {
		delete(s.down, code)
	}
	held := make(KeySet, len(s.down))
	for c := range s.down {
		if name, ok := keyNames[c]; ok {
			if logical, ok := combo.LogicalKey(name); ok {
				held[logical] = struct{}{}
			}
		}
	}
	return held
}

func (s *evdevSource) readerExited(stop <-chan struct{}, errs chan<- error, err error) {
	select {
	case <-stop:
		return
	default:
	}
	s.mu.Lock()
	s.alive--
	last := s.alive == 0
	s.mu.Unlock()
	if !last {
		log.Warnf("keyboard device read error: %v", err)
		return
	}
	select {
	case errs <- fmt.Errorf("all keyboard devices lost: %w", err):
	default:
	}
}

func (s *evdevSource) Unregister() {
	s.mu.Lock()
	once, stop, devices := s.once, s.stop, s.devices
	s.mu.Unlock()
	if once == nil {
		return
	}
	once.Do(func() {
		close(stop)
		for _, dev := range devices {
			dev.Close()
		}
		done := make(chan struct{})
		go func() {
			s.readers.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(unregisterTimeout):
			log.Warn("keyboard readers did not exit after unregister")
		}
	})
}

func (s *evdevSource) Events() <-chan Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events
}

func (s *evdevSource) Errors() <-chan error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errs
}

func findKeyboards() ([]string, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, err
	}

	var keyboards []string
	for _, p := range paths {
		if isKeyboard(p.Path) {
			keyboards = append(keyboards, p.Path)
		}
	}
	return keyboards, nil
}

// isKeyboard filters out mice and power buttons: real keyboards report the
// letter and function keys.
func isKeyboard(path string) bool {
	dev, err := evdev.Open(path)
	if err != nil {
		return false
	}
	defer dev.Close()

	var letters, fkeys bool
	for _, code := range dev.CapableEvents(evdev.EV_KEY) {
		switch code {
		case evdev.KEY_A, evdev.KEY_Z:
			letters = true
		case evdev.KEY_F1:
			fkeys = true
		}
	}
	return letters && fkeys
}

// Diagnose checks keyboard access and returns a status message.
func Diagnose() (string, error) {
	keyboards, err := findKeyboards()
	if err != nil {
		return "", fmt.Errorf("cannot scan input devices: %w", err)
	}
	if len(keyboards) == 0 {
		return "", fmt.Errorf("no keyboard devices found (is user in 'input' group?)")
	}

	var opened string
	for _, path := range keyboards {
		dev, err := evdev.Open(path)
		if err == nil {
			dev.Close()
			opened = path
			break
		}
	}
	if opened == "" {
		return "", fmt.Errorf("found %d keyboard(s) but cannot open any (run: sudo usermod -aG input $USER)", len(keyboards))
	}

	return fmt.Sprintf("%d keyboard(s) found, opened %s", len(keyboards), opened), nil
}
