package main

import (
	"maven/log"
	"maven/overlay"
)

// Display abstracts the presentation layer so both the Bubble Tea TUI and
// the fyne overlay receive the same frames and status updates. Show and Hide
// are called on the engine goroutine and must not block.
type Display interface {
	overlay.Window
	overlay.Measurer
	ScreenWidth() int
	Status(Status)
}

// Status is what the tray and TUI show besides the overlay itself.
type Status struct {
	Armed    bool
	Enabled  bool
	Bindings map[string]string // action -> combo
	Err      string
}

// headlessDisplay is used with -tui=false and no window: frames only reach
// the diagnostics log.
type headlessDisplay struct {
	overlay.FixedMeasurer
}

func (headlessDisplay) Show(f overlay.Frame) { log.Debugf("overlay: %s", f.Text()) }
func (headlessDisplay) Hide()                { log.Debugf("overlay hidden") }
func (headlessDisplay) ScreenWidth() int     { return tuiScreenWidth }

func (headlessDisplay) Status(s Status) {
	if s.Err != "" {
		log.Warnf("status: %s", s.Err)
	}
}
