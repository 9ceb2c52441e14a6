//go:build gui

package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// overlayTheme keeps the splash window itself transparent so only the
// frame's background rectangle shows.
type overlayTheme struct{}

func (d *overlayTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.Transparent
	case theme.ColorNameForeground:
		return color.White
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (d *overlayTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (d *overlayTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (d *overlayTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNamePadding || name == theme.SizeNameInnerPadding {
		return 0
	}
	return theme.DefaultTheme().Size(name)
}
