package hotkey

import (
	"errors"
	"sync"
	"testing"
	"time"

	"maven/combo"
)

type recorder struct {
	mu    sync.Mutex
	got   []combo.Combo
	fired chan combo.Combo
}

func newRecorder() *recorder {
	return &recorder{fired: make(chan combo.Combo, 64)}
}

func (r *recorder) emit(c combo.Combo) {
	r.mu.Lock()
	r.got = append(r.got, c)
	r.mu.Unlock()
	r.fired <- c
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

func waitFire(t *testing.T, r *recorder, want combo.Combo) {
	t.Helper()
	select {
	case c := <-r.fired:
		if c != want {
			t.Fatalf("fired %s, want %s", c, want)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for %s", want)
	}
}

func expectQuiet(t *testing.T, r *recorder) {
	t.Helper()
	select {
	case c := <-r.fired:
		t.Fatalf("unexpected trigger %s", c)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMonitorEdgeTriggered(t *testing.T) {
	fk := NewFake()
	r := newRecorder()
	m := NewMonitor(fk, r.emit)
	f1 := combo.MustParse("f1")
	if err := m.Arm([]combo.Combo{f1}); err != nil {
		t.Fatal(err)
	}
	defer m.Stop()

	fk.SimDown("f1")
	waitFire(t, r, f1)
	for i := 0; i < 5; i++ {
		fk.SimDown("f1")
	}
	expectQuiet(t, r)

	fk.SimUp("f1")
	fk.SimDown("f1")
	waitFire(t, r, f1)
}

func TestMonitorRightModifierMatches(t *testing.T) {
	fk := NewFake()
	r := newRecorder()
	m := NewMonitor(fk, r.emit)
	c := combo.MustParse("ctrl+f3")
	if err := m.Arm([]combo.Combo{c}); err != nil {
		t.Fatal(err)
	}
	defer m.Stop()

	fk.SimDown("rctrl")
	fk.SimDown("f3")
	waitFire(t, r, c)
}

func TestMonitorUnboundIgnored(t *testing.T) {
	fk := NewFake()
	r := newRecorder()
	m := NewMonitor(fk, r.emit)
	if err := m.Arm([]combo.Combo{combo.MustParse("f1")}); err != nil {
		t.Fatal(err)
	}
	defer m.Stop()

	fk.SimDown("f2")
	fk.SimUp("f2")
	expectQuiet(t, r)
}

func TestMonitorRearmClearsPressState(t *testing.T) {
	fk := NewFake()
	r := newRecorder()
	m := NewMonitor(fk, r.emit)
	f1 := combo.MustParse("f1")
	if err := m.Arm([]combo.Combo{f1}); err != nil {
		t.Fatal(err)
	}
	defer m.Stop()

	fk.SimDown("f1")
	waitFire(t, r, f1)

	if err := m.Arm([]combo.Combo{f1}); err != nil {
		t.Fatal(err)
	}
	// Still physically held: the next repeat is a fresh edge.
	fk.SimDown("f1")
	waitFire(t, r, f1)
}

func TestMonitorRearmReplacesBound(t *testing.T) {
	fk := NewFake()
	r := newRecorder()
	m := NewMonitor(fk, r.emit)
	f1, f2 := combo.MustParse("f1"), combo.MustParse("f2")
	if err := m.Arm([]combo.Combo{f1}); err != nil {
		t.Fatal(err)
	}
	defer m.Stop()
	if err := m.Arm([]combo.Combo{f2, f2}); err != nil {
		t.Fatal(err)
	}
	if got := m.Bound(); len(got) != 1 || got[0] != f2 {
		t.Fatalf("bound = %v, want [f2]", got)
	}

	fk.SimDown("f1")
	fk.SimUp("f1")
	expectQuiet(t, r)
	fk.SimDown("f2")
	waitFire(t, r, f2)
}

func TestMonitorRegisterFailure(t *testing.T) {
	fk := NewFake()
	fk.FailRegister(errors.New("no keyboards"))
	r := newRecorder()
	m := NewMonitor(fk, r.emit)

	err := m.Arm([]combo.Combo{combo.MustParse("f1")})
	if !errors.Is(err, ErrMonitorUnavailable) {
		t.Fatalf("err = %v, want ErrMonitorUnavailable", err)
	}
	if m.Armed() {
		t.Fatal("monitor armed after failed register")
	}

	fk.FailRegister(nil)
	if err := m.Arm([]combo.Combo{combo.MustParse("f1")}); err != nil {
		t.Fatal(err)
	}
	defer m.Stop()
	if !m.Armed() {
		t.Fatal("monitor not armed after retry")
	}
}

func TestMonitorLostReportedOnce(t *testing.T) {
	fk := NewFake()
	r := newRecorder()
	m := NewMonitor(fk, r.emit)
	reports := make(chan error, 4)
	m.OnUnavailable(func(err error) { reports <- err })
	f1 := combo.MustParse("f1")
	if err := m.Arm([]combo.Combo{f1}); err != nil {
		t.Fatal(err)
	}
	defer m.Stop()

	fk.SimLost(errors.New("device gone"))
	select {
	case err := <-reports:
		if !errors.Is(err, ErrMonitorUnavailable) {
			t.Fatalf("reported %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("loss not reported")
	}

	fk.SimLost(errors.New("device gone again"))
	fk.SimDown("f1")
	expectQuiet(t, r)
	select {
	case err := <-reports:
		t.Fatalf("second report %v", err)
	default:
	}
	if m.Armed() || fk.Active() {
		t.Fatal("monitor still armed after loss")
	}
}

func TestMonitorRearmFromUnavailableCallback(t *testing.T) {
	fk := NewFake()
	r := newRecorder()
	m := NewMonitor(fk, r.emit)
	f1 := combo.MustParse("f1")
	rearmed := make(chan error, 1)
	m.OnUnavailable(func(error) { rearmed <- m.Arm([]combo.Combo{f1}) })
	if err := m.Arm([]combo.Combo{f1}); err != nil {
		t.Fatal(err)
	}
	defer m.Stop()

	fk.SimLost(errors.New("device gone"))
	select {
	case err := <-rearmed:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(time.Second):
		t.Fatal("callback did not re-arm")
	}
	fk.SimDown("f1")
	waitFire(t, r, f1)
}

func TestMonitorStopIsSynchronous(t *testing.T) {
	fk := NewFake()
	r := newRecorder()
	m := NewMonitor(fk, r.emit)
	if err := m.Arm([]combo.Combo{combo.MustParse("f1")}); err != nil {
		t.Fatal(err)
	}
	m.Stop()
	if m.Armed() || fk.Active() {
		t.Fatal("still active after Stop")
	}
	fk.SimDown("f1")
	time.Sleep(20 * time.Millisecond)
	if r.count() != 0 {
		t.Fatal("trigger delivered after Stop")
	}
	m.Stop()
}

func TestMonitorArmEmpty(t *testing.T) {
	fk := NewFake()
	m := NewMonitor(fk, func(combo.Combo) {})
	if err := m.Arm(nil); err != nil {
		t.Fatal(err)
	}
	if m.Armed() || fk.Active() {
		t.Fatal("armed with no hotkeys")
	}
}
