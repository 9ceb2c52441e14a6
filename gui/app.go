//go:build gui

// Package gui shows the overlay as a frameless always-on-top window and puts
// the controls in the system tray.
package gui

import (
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"github.com/go-gl/glfw/v3.3/glfw"

	"maven/log"
	"maven/overlay"
)

const windowTitle = "maven overlay"

// Status is what the tray menu reflects.
type Status struct {
	Armed   bool
	Enabled bool
	Err     string
}

// Handlers are invoked from tray menu items.
type Handlers struct {
	Toggle func()
	Copy   func()
	Reload func()
	Quit   func()
}

type App struct {
	fyneApp fyne.App
	window  fyne.Window
	onReady func()
	screenW int

	mu       sync.Mutex
	handlers Handlers
	menu     *fyne.Menu
	toggle   *fyne.MenuItem
	state    *fyne.MenuItem
	clickOff bool
}

func NewApp(onReady func()) *App {
	return &App{onReady: onReady}
}

func Run(a *App) error {
	a.fyneApp = app.NewWithID("io.maven.overlay")
	a.fyneApp.Settings().SetTheme(&overlayTheme{})

	if desk, ok := a.fyneApp.(desktop.App); ok {
		a.state = fyne.NewMenuItem("Starting...", nil)
		a.state.Disabled = true
		a.toggle = fyne.NewMenuItem("Disable Overlay", func() { a.call(func(h Handlers) func() { return h.Toggle }) })
		a.menu = fyne.NewMenu("maven",
			a.state,
			fyne.NewMenuItemSeparator(),
			a.toggle,
			fyne.NewMenuItem("Copy Sequence", func() { a.call(func(h Handlers) func() { return h.Copy }) }),
			fyne.NewMenuItem("Reload Configuration", func() { a.call(func(h Handlers) func() { return h.Reload }) }),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Quit", func() {
				a.call(func(h Handlers) func() { return h.Quit })
				a.fyneApp.Quit()
			}),
		)
		desk.SetSystemTrayMenu(a.menu)
		desk.SetSystemTrayIcon(fyne.NewStaticResource("tray.png", trayIcon()))
	}

	a.screenW = 1920 // fallback
	if monitor := glfw.GetPrimaryMonitor(); monitor != nil {
		_, _, a.screenW, _ = monitor.GetWorkarea()
	}

	if drv, ok := a.fyneApp.Driver().(desktop.Driver); ok {
		a.window = drv.CreateSplashWindow()
	} else {
		a.window = a.fyneApp.NewWindow(windowTitle)
	}
	a.window.SetTitle(windowTitle)
	a.window.SetFixedSize(true)
	a.window.SetPadded(false)

	go a.onReady()

	// The window stays hidden until the first visible frame.
	a.fyneApp.Run()
	return nil
}

// SetHandlers installs the tray callbacks.
func (a *App) SetHandlers(h Handlers) {
	a.mu.Lock()
	a.handlers = h
	a.mu.Unlock()
}

func (a *App) call(pick func(Handlers) func()) {
	a.mu.Lock()
	fn := pick(a.handlers)
	a.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (a *App) Quit() {
	if a.fyneApp != nil {
		a.fyneApp.Quit()
	}
}

// Show replaces the window content with f and places it at f's position
// without taking focus.
func (a *App) Show(f overlay.Frame) {
	fyne.Do(func() {
		if a.window == nil {
			return
		}
		texts := make([]fyne.CanvasObject, 0, len(f.Segments))
		for _, s := range f.Segments {
			t := canvas.NewText(s.Text, s.Color)
			t.TextSize = f.FontSize
			texts = append(texts, t)
		}
		row := container.New(layout.NewCustomPaddedHBoxLayout(0), texts...)
		padded := container.New(layout.NewCustomPaddedLayout(overlay.Padding, overlay.Padding, overlay.Padding, overlay.Padding), row)
		bg := canvas.NewRectangle(f.Background)
		a.window.SetContent(container.NewStack(bg, padded))
		a.window.Resize(fyne.NewSize(float32(f.Width), float32(f.Height)))

		glfwWin := glfw.GetCurrentContext()
		if glfwWin == nil {
			a.window.Show()
			return
		}
		glfwWin.SetPos(f.Left, f.Top)
		glfwWin.SetAttrib(glfw.FocusOnShow, glfw.False)
		glfwWin.SetAttrib(glfw.Floating, glfw.True)
		glfwWin.Show()

		if !a.clickOff {
			if err := clickThrough(windowTitle); err != nil {
				log.Warnf("overlay click-through: %v", err)
			}
			a.clickOff = true
		}
	})
}

func (a *App) Hide() {
	fyne.Do(func() {
		if a.window != nil {
			a.window.Hide()
		}
	})
}

// Measure reports the rendered size of text in the theme's regular font.
func (a *App) Measure(text string, size float32) (int, int) {
	s := fyne.MeasureText(text, size, fyne.TextStyle{})
	return int(math.Ceil(float64(s.Width))), int(math.Ceil(float64(s.Height)))
}

func (a *App) ScreenWidth() int { return a.screenW }

// SetStatus updates the tray menu labels.
func (a *App) SetStatus(s Status) {
	fyne.Do(func() {
		if a.menu == nil {
			return
		}
		if s.Enabled {
			a.toggle.Label = "Disable Overlay"
		} else {
			a.toggle.Label = "Enable Overlay"
		}
		switch {
		case s.Err != "":
			a.state.Label = "Error: " + s.Err
		case s.Armed:
			a.state.Label = "Listening"
		default:
			a.state.Label = "Keyboard unavailable"
		}
		a.menu.Refresh()
	})
}
