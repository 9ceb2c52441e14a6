//go:build gui

package gui

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
)

// trayIcon draws a 22px white arrow chevron on a dark disc.
func trayIcon() []byte {
	const size = 22
	img := image.NewNRGBA(image.Rect(0, 0, size, size))

	center := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - center + 0.5
			dy := float64(y) - center + 0.5
			dist := math.Sqrt(dx*dx + dy*dy)

			switch {
			case dist >= 10:
				continue
			case dist >= 9:
				img.Set(x, y, color.NRGBA{40, 40, 40, 255})
			case math.Abs(dx)-dy < 3 && math.Abs(dx)-dy > 0 && dy < 4:
				// chevron pointing up
				img.Set(x, y, color.NRGBA{255, 255, 255, 255})
			default:
				img.Set(x, y, color.NRGBA{18, 18, 18, 255})
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}
