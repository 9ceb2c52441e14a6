package dispatch

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"maven/combo"
)

var bindings = map[string]string{
	"Sequence 1":     "f1",
	"Sequence 2":     "Shift+F2",
	"Clear Sequence": "f4",
	"Toggle Overlay": "f5",
	"Unbound":        "",
}

func TestBuild(t *testing.T) {
	tbl, err := Build(bindings)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Len() != 4 {
		t.Fatalf("len = %d, want 4", tbl.Len())
	}
	if got, ok := tbl.Resolve(combo.MustParse("shift+f2")); !ok || got != "Sequence 2" {
		t.Fatalf("resolve shift+f2 = %q, %v", got, ok)
	}
	if _, ok := tbl.Resolve(combo.MustParse("f2")); ok {
		t.Fatal("bare f2 should be unbound")
	}
	want := []string{"f1", "f4", "f5", "shift+f2"}
	for i, c := range tbl.Combos() {
		if c.String() != want[i] {
			t.Fatalf("combos[%d] = %s, want %s", i, c, want[i])
		}
	}
}

func TestBuildAmbiguous(t *testing.T) {
	_, err := Build(map[string]string{"A": "ctrl+f1", "B": "F1+Ctrl"})
	var amb *AmbiguousBindingError
	if !errors.As(err, &amb) {
		t.Fatalf("err = %v, want AmbiguousBindingError", err)
	}
	if amb.Combo.String() != "ctrl+f1" || amb.Actions[0] != "A" || amb.Actions[1] != "B" {
		t.Fatalf("got %+v", amb)
	}
}

func TestBuildInvalid(t *testing.T) {
	_, err := Build(map[string]string{"A": "ctrl+nosuchkey"})
	if !errors.Is(err, combo.ErrInvalidKey) {
		t.Fatalf("err = %v, want ErrInvalidKey", err)
	}
}

func TestRebuildIdempotent(t *testing.T) {
	d := New()
	if err := d.Rebuild(bindings); err != nil {
		t.Fatal(err)
	}
	first := d.Table().Bindings()
	if err := d.Rebuild(bindings); err != nil {
		t.Fatal(err)
	}
	second := d.Table().Bindings()
	if len(first) != len(second) {
		t.Fatalf("%v != %v", first, second)
	}
	for action, c := range first {
		if second[action] != c {
			t.Fatalf("%s: %s != %s", action, c, second[action])
		}
	}
}

func TestRebuildErrorKeepsTable(t *testing.T) {
	d := New()
	if err := d.Rebuild(bindings); err != nil {
		t.Fatal(err)
	}
	if err := d.Rebuild(map[string]string{"A": "f1", "B": "f1"}); err == nil {
		t.Fatal("expected error")
	}
	if got, _ := d.Resolve(combo.MustParse("f1")); got != "Sequence 1" {
		t.Fatalf("resolve f1 = %q after failed rebuild", got)
	}
}

func TestRebuildDiscardsOldMapping(t *testing.T) {
	d := New()
	d.Rebuild(bindings)
	d.Rebuild(map[string]string{"Sequence 1": "f9"})
	if _, ok := d.Resolve(combo.MustParse("f4")); ok {
		t.Fatal("old binding survived rebuild")
	}
}

func TestInstallSwapsWholeTable(t *testing.T) {
	d := New()
	d.Rebuild(bindings)
	next, err := Build(map[string]string{"Sequence 1": "ctrl+f9"})
	if err != nil {
		t.Fatal(err)
	}
	// building alone leaves the live table untouched
	if got, _ := d.Resolve(combo.MustParse("f1")); got != "Sequence 1" {
		t.Fatalf("resolve f1 = %q before install", got)
	}
	d.Install(next)
	if _, ok := d.Resolve(combo.MustParse("f1")); ok {
		t.Fatal("f1 still bound after install")
	}
	if got, _ := d.Resolve(combo.MustParse("ctrl+f9")); got != "Sequence 1" {
		t.Fatalf("resolve ctrl+f9 = %q", got)
	}
	if d.Table() != next {
		t.Fatal("live table is not the installed one")
	}
}

func TestTriggerQueuesInOrder(t *testing.T) {
	d := New()
	d.Rebuild(bindings)
	for _, spec := range []string{"f1", "f1", "f5", "f9", "f1", "f5", "f4"} {
		d.Trigger(combo.MustParse(spec))
	}
	select {
	case <-d.Ready():
	case <-time.After(time.Second):
		t.Fatal("ready not signalled")
	}
	got := d.Drain()
	want := []string{"Sequence 1", "Sequence 1", "Toggle Overlay", "Sequence 1", "Toggle Overlay", "Clear Sequence"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if len(d.Drain()) != 0 {
		t.Fatal("drain not empty")
	}
}

func TestQueueConcurrentFIFO(t *testing.T) {
	q := NewQueue[int]()
	const n = 1000
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			q.Push(i)
		}
	}()

	var got []int
	deadline := time.After(5 * time.Second)
	for len(got) < n {
		select {
		case <-q.Ready():
			got = append(got, q.Drain()...)
		case <-deadline:
			t.Fatalf("received %d of %d", len(got), n)
		}
	}
	wg.Wait()
	for i, v := range got {
		if v != i {
			t.Fatalf("got[%d] = %d", i, v)
		}
	}
}
