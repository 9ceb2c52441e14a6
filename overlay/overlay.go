// Package overlay turns sequence state into what the overlay window shows:
// coloured text segments, size and screen position.
package overlay

import (
	"image/color"
	"strings"

	"maven/sequence"
)

const (
	// Padding surrounds the text on every side, in pixels.
	Padding = 10
	// FallbackGlyph is drawn for actions without display text.
	FallbackGlyph = "?"
)

// Anchor is the horizontal placement: screen centre or an absolute pixel
// used as the block's centre.
type Anchor struct {
	Centered bool
	X        int
}

// Centered is the screen-centred anchor.
var Centered = Anchor{Centered: true}

// Style is an immutable render configuration.
type Style struct {
	FontColors map[string]color.Color
	Background color.Color
	FontSize   float32
	Separator  string
	Anchor     Anchor
	Y          int
}

type Segment struct {
	Text      string
	Color     color.Color
	Separator bool
}

// Frame is the computed overlay. A Frame with Visible false carries nothing
// else.
type Frame struct {
	Visible    bool
	Segments   []Segment
	Background color.Color
	FontSize   float32
	Left, Top  int
	Width      int
	Height     int
}

// Text joins the segments.
func (f Frame) Text() string {
	var b strings.Builder
	for _, s := range f.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Measurer reports the pixel size of text at a font size.
type Measurer interface {
	Measure(text string, size float32) (width, height int)
}

// Layout computes the frame for state. Nothing is measured when the overlay
// is hidden.
func Layout(state sequence.State, display map[string]string, style Style, screenWidth int, m Measurer) Frame {
	if !state.Enabled || state.Empty() {
		return Frame{}
	}

	segs := make([]Segment, 0, 2*len(state.Items)-1)
	for i, action := range state.Items {
		if i > 0 {
			segs = append(segs, Segment{Text: style.Separator, Color: SeparatorColor, Separator: true})
		}
		text, ok := display[action]
		if !ok {
			text = FallbackGlyph
		}
		c, ok := style.FontColors[action]
		if !ok || c == nil {
			c = DefaultFontColor
		}
		segs = append(segs, Segment{Text: text, Color: c})
	}

	f := Frame{Visible: true, Segments: segs, Background: style.Background, FontSize: style.FontSize}
	w, h := m.Measure(f.Text(), style.FontSize)
	f.Width = w + 2*Padding
	f.Height = h + 2*Padding

	centre := style.Anchor.X
	if style.Anchor.Centered {
		// Left = floor((2*centre - W) / 2) with centre = S/2 reduces to
		// floor((S - W) / 2) at every parity.
		f.Left = floorDiv(screenWidth-f.Width, 2)
	} else {
		f.Left = floorDiv(2*centre-f.Width, 2)
	}
	f.Top = style.Y
	return f
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FixedMeasurer measures every rune as the same width. Used where no real
// font is available.
type FixedMeasurer struct {
	// RuneWidth is the advance per rune as a fraction of the font size.
	RuneWidth float32
}

func (m FixedMeasurer) Measure(text string, size float32) (int, int) {
	rw := m.RuneWidth
	if rw == 0 {
		rw = 0.6
	}
	n := len([]rune(text))
	return int(float32(n) * rw * size), int(size * 1.2)
}
