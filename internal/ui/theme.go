package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Theme is the application theme. Status colors follow the message styles the
// server's answers are shown in.
type Theme struct{}

// NewTheme creates the application theme
func NewTheme() fyne.Theme {
	return &Theme{}
}

// Color returns theme colors
func (t *Theme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return color.RGBA{R: 50, G: 210, B: 150, A: 255}
	case theme.ColorNameError:
		return color.RGBA{R: 240, G: 80, B: 110, A: 255}
	case theme.ColorNameWarning:
		return color.RGBA{R: 250, G: 160, B: 90, A: 255}
	case theme.ColorNamePrimary:
		return color.RGBA{R: 30, G: 135, B: 240, A: 255}
	}

	// Use default colors for everything else
	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *Theme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *Theme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes. The form is dense, so paddings are tighter than
// the default.
func (t *Theme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 16
	case theme.SizeNameInputRadius:
		return 3
	}

	return theme.DefaultTheme().Size(name)
}
