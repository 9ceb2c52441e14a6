package overlay

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Default colours for unmapped actions and separators.
var (
	DefaultFontColor color.Color = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	SeparatorColor   color.Color = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// ParseColor accepts #rgb, #rrggbb, #rrggbbaa and SVG colour names.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty colour")
	}
	if !strings.HasPrefix(s, "#") {
		c, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return nil, fmt.Errorf("unknown colour %q", s)
		}
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}, nil
	}

	alpha := uint8(0xff)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("bad alpha in %q", s)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("bad colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// FormatColor renders c as #rrggbb, or #rrggbbaa when not opaque.
func FormatColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
