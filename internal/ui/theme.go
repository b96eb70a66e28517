package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// AppTheme provides the light/dark look of the app. The variant is pinned
// by the user's dark-mode setting instead of following the system.
type AppTheme struct {
	dark bool
}

// NewAppTheme creates the application theme for the given mode.
func NewAppTheme(dark bool) fyne.Theme {
	return &AppTheme{dark: dark}
}

// Color returns theme colors
func (t *AppTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	variant := theme.VariantLight
	if t.dark {
		variant = theme.VariantDark
	}

	switch name {
	case theme.ColorNameSuccess:
		return color.RGBA{R: 76, G: 175, B: 80, A: 255} // Green for completed clones
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255} // Red for failures
	case theme.ColorNamePrimary:
		return color.RGBA{R: 25, G: 118, B: 210, A: 255} // Blue for primary actions
	case theme.ColorNameBackground:
		if t.dark {
			return color.RGBA{R: 18, G: 18, B: 18, A: 255} // Dark gray
		}
		return color.RGBA{R: 246, G: 246, B: 246, A: 255} // Light gray
	case theme.ColorNameForeground:
		if t.dark {
			return color.RGBA{R: 238, G: 238, B: 238, A: 255} // Light text
		}
		return color.RGBA{R: 51, G: 51, B: 51, A: 255} // Dark text
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *AppTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *AppTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *AppTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
