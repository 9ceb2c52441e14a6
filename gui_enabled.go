//go:build gui

package main

import (
	"runtime"

	"maven/gui"
)

var guiApp *gui.App

// guiDisplay adapts the fyne app to Display.
type guiDisplay struct {
	*gui.App
}

func (d guiDisplay) Status(s Status) {
	d.SetStatus(gui.Status{Armed: s.Armed, Enabled: s.Enabled, Err: s.Err})
}

func initGUI() {
	guiMode = true

	// Lock this goroutine to OS thread for Fyne/GLFW
	runtime.LockOSThread()

	guiApp = gui.NewApp(func() {
		run()
	})
	if err := gui.Run(guiApp); err != nil {
		panic(err)
	}
}

func guiAttach() Display { return guiDisplay{guiApp} }

func guiBind(e *Engine) {
	guiApp.SetHandlers(gui.Handlers{
		Toggle: e.Toggle,
		Copy:   e.Copy,
		Reload: e.RequestReload,
		Quit:   gracefulShutdown,
	})
}

func guiQuit() {
	if guiApp != nil {
		guiApp.Quit()
	}
}
