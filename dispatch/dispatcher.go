package dispatch

import (
	"sync/atomic"

	"maven/combo"
	"maven/log"
)

// Dispatcher resolves combos against the current table and queues the
// resulting action names for the UI goroutine.
type Dispatcher struct {
	table atomic.Pointer[Table]
	queue *Queue[string]
}

// New creates a dispatcher with an empty table.
func New() *Dispatcher {
	d := &Dispatcher{queue: NewQueue[string]()}
	d.table.Store(&Table{actions: map[combo.Combo]string{}})
	return d
}

// Rebuild replaces the whole table. On error the current table stays live.
func (d *Dispatcher) Rebuild(hotkeys map[string]string) error {
	t, err := Build(hotkeys)
	if err != nil {
		return err
	}
	d.Install(t)
	return nil
}

// Install makes t the live table. Callers that must not resolve combos from
// a retired listener against t stop that listener first.
func (d *Dispatcher) Install(t *Table) {
	d.table.Store(t)
}

// Table returns the live table.
func (d *Dispatcher) Table() *Table { return d.table.Load() }

func (d *Dispatcher) Resolve(c combo.Combo) (string, bool) {
	return d.table.Load().Resolve(c)
}

func (d *Dispatcher) Combos() []combo.Combo {
	return d.table.Load().Combos()
}

// Trigger is the monitor's emit callback. It runs on the listener goroutine
// and never blocks.
func (d *Dispatcher) Trigger(c combo.Combo) {
	action, ok := d.Resolve(c)
	if !ok {
		log.Debugf("no action bound to %s", c)
		return
	}
	log.Trigger(c.String(), action)
	d.queue.Push(action)
}

// Dispatch queues an action that did not come from a key, such as the tray
// toggle, behind any pending triggers.
func (d *Dispatcher) Dispatch(action string) {
	d.queue.Push(action)
}

// Ready and Drain expose the hand-off queue to the UI goroutine.
func (d *Dispatcher) Ready() <-chan struct{} { return d.queue.Ready() }
func (d *Dispatcher) Drain() []string        { return d.queue.Drain() }
