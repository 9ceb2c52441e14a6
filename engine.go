package main

import (
	"context"
	"sync"
	"sync/atomic"

	"maven/beep"
	"maven/clipboard"
	"maven/combo"
	"maven/config"
	"maven/dispatch"
	"maven/hotkey"
	"maven/log"
	"maven/overlay"
	"maven/sequence"
)

type command int

const (
	cmdCopy command = iota
	cmdReload
)

// Engine wires the key monitor to the overlay. Everything after the
// dispatcher queue runs on the goroutine that calls Run.
type Engine struct {
	cfgPath string
	cfg     config.Config

	display Display
	mon     *hotkey.Monitor
	disp    *dispatch.Dispatcher
	mach    *sequence.Machine
	rend    *overlay.Renderer

	cmds     chan command
	lost     chan error
	triggers atomic.Int64
	status   Status
	stopOnce sync.Once
}

// NewEngine builds an engine over src. cfg must already be validated.
func NewEngine(src hotkey.Source, display Display, cfgPath string, cfg config.Config) *Engine {
	e := &Engine{
		cfgPath: cfgPath,
		cfg:     cfg,
		display: display,
		disp:    dispatch.New(),
		cmds:    make(chan command, 8),
		lost:    make(chan error, 1),
	}
	e.rend = overlay.NewRenderer(display, display, display.ScreenWidth)
	e.mach = sequence.New(cfg.SequenceActions, e.render)
	e.mach.OnClear(e.logCleared)
	e.mon = hotkey.NewMonitor(src, e.trigger)
	e.mon.OnUnavailable(func(err error) {
		select {
		case e.lost <- err:
		default:
		}
	})
	return e
}

func (e *Engine) trigger(c combo.Combo) {
	e.triggers.Add(1)
	e.disp.Trigger(c)
}

// Start installs the configuration and arms the monitor. A monitor that
// cannot subscribe is reported in the status; the engine keeps running so a
// reload can re-arm it.
func (e *Engine) Start() error {
	if err := e.disp.Rebuild(e.cfg.Hotkeys); err != nil {
		return err
	}
	e.rend.SetStyle(e.cfg.OverlayStyle(), e.cfg.SequenceActions)
	e.arm()
	return nil
}

func (e *Engine) arm() {
	e.status.Err = ""
	if err := e.mon.Arm(e.disp.Combos()); err != nil {
		log.MonitorUnavailable(err)
		e.status.Err = err.Error()
		beep.PlayError()
	}
	e.publish()
}

// Run processes triggers and commands until ctx is done.
func (e *Engine) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-e.disp.Ready():
			for _, action := range e.disp.Drain() {
				e.apply(action)
			}
		case err := <-e.lost:
			e.status.Err = err.Error()
			beep.PlayError()
			e.publish()
		case c := <-e.cmds:
			switch c {
			case cmdCopy:
				e.copySequence()
			case cmdReload:
				e.reload()
			}
		}
	}
}

func (e *Engine) apply(action string) {
	before := e.mach.State()
	after := e.mach.Apply(action)
	switch {
	case after.Enabled != before.Enabled:
		beep.PlayToggle(after.Enabled)
		e.publish()
	case len(after.Items) > len(before.Items):
		beep.PlayAppend(len(after.Items))
	case len(after.Items) < len(before.Items):
		beep.PlayClear()
	}
}

func (e *Engine) render(s sequence.State) {
	e.rend.Render(s)
}

// Toggle flips the overlay through the same queue as the toggle hotkey.
func (e *Engine) Toggle() { e.disp.Dispatch(sequence.ToggleAction) }

// Copy puts the rendered sequence on the clipboard.
func (e *Engine) Copy() { e.send(cmdCopy) }

// RequestReload asks the engine to reload the configuration file and re-arm.
// Safe to call from any goroutine.
func (e *Engine) RequestReload() { e.send(cmdReload) }

func (e *Engine) send(c command) {
	select {
	case e.cmds <- c:
	default:
	}
}

// reload validates the file and builds its table before touching anything, so
// a rejected file leaves the old bindings armed. The old listener is stopped
// before the new table goes live.
func (e *Engine) reload() {
	cfg, err := config.Load(e.cfgPath)
	var table *dispatch.Table
	if err == nil {
		table, err = dispatch.Build(cfg.Hotkeys)
	}
	if err != nil {
		// keep the previous configuration live
		log.Errorf("config reload rejected: %v", err)
		e.status.Err = err.Error()
		beep.PlayError()
		e.publish()
		return
	}
	e.mon.Stop()
	e.disp.Install(table)
	e.cfg = cfg
	e.mach.SetDisplay(cfg.SequenceActions)
	e.rend.SetStyle(cfg.OverlayStyle(), cfg.SequenceActions)
	e.arm()
	log.ConfigReloaded(e.cfgPath, len(e.disp.Combos()))
}

func (e *Engine) copySequence() {
	text := e.rend.Current().Text()
	if text == "" {
		return
	}
	if err := clipboard.Copy(text); err != nil {
		log.Warnf("copy sequence: %v", err)
		e.status.Err = err.Error()
		e.publish()
	}
}

func (e *Engine) logCleared(items []string) {
	s := sequence.State{Enabled: true, Items: items}
	f := overlay.Layout(s, e.cfg.SequenceActions, e.cfg.OverlayStyle(), 0, overlay.FixedMeasurer{})
	log.Sequence(f.Text())
}

func (e *Engine) publish() {
	e.status.Armed = e.mon.Armed()
	e.status.Enabled = e.mach.State().Enabled
	e.status.Bindings = e.disp.Table().Bindings()
	e.display.Status(e.status)
}

// Stop unsubscribes from the keyboard. It returns after the listener
// goroutine has exited.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		e.mon.Stop()
		log.SessionEnd(int(e.Triggers()))
	})
}

// Triggers returns the number of combo edges seen.
func (e *Engine) Triggers() int64 { return e.triggers.Load() }
