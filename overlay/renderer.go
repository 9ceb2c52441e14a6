package overlay

import "maven/sequence"

// Window is the on-screen overlay.
type Window interface {
	Show(Frame)
	Hide()
}

// Renderer owns show/hide of the overlay window. It runs on the UI goroutine.
type Renderer struct {
	win     Window
	measure Measurer
	screen  func() int

	style   Style
	display map[string]string
	last    sequence.State
	current Frame
	shown   bool
}

// NewRenderer draws into win. screenWidth is asked for the current width on
// every render.
func NewRenderer(win Window, m Measurer, screenWidth func() int) *Renderer {
	return &Renderer{win: win, measure: m, screen: screenWidth}
}

// SetStyle installs a new style and display map and redraws the last state.
func (r *Renderer) SetStyle(style Style, display map[string]string) {
	r.style = style
	r.display = make(map[string]string, len(display))
	for k, v := range display {
		r.display[k] = v
	}
	r.Render(r.last)
}

// Render lays out state and updates the window.
func (r *Renderer) Render(state sequence.State) {
	r.last = state.Clone()
	f := Layout(r.last, r.display, r.style, r.screen(), r.measure)
	r.current = f
	if !f.Visible {
		if r.shown {
			r.win.Hide()
			r.shown = false
		}
		return
	}
	r.win.Show(f)
	r.shown = true
}

// Current returns the last computed frame.
func (r *Renderer) Current() Frame { return r.current }
