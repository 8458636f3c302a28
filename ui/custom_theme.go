package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var (
	indigo      = color.NRGBA{R: 0x4f, G: 0x46, B: 0xe5, A: 0xff}
	slate950    = color.NRGBA{R: 0x02, G: 0x06, B: 0x17, A: 0xff}
	slate900    = color.NRGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}
	slate800    = color.NRGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff}
	emerald400  = color.NRGBA{R: 0x34, G: 0xd3, B: 0x99, A: 0xff}
	baseTextPts = float32(14)
)

// messengerTheme is the dark slate and indigo look of the messenger
type messengerTheme struct {
	baseFontSize float32
	baseTheme    fyne.Theme
}

// newMessengerTheme creates the theme on top of fyne's dark variant
func newMessengerTheme() fyne.Theme {
	return &messengerTheme{
		baseFontSize: baseTextPts,
		baseTheme:    theme.DarkTheme(),
	}
}

func (t *messengerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return indigo
	case theme.ColorNameBackground:
		return slate950
	case theme.ColorNameInputBackground, theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
		return slate900
	case theme.ColorNameButton, theme.ColorNameSeparator:
		return slate800
	case theme.ColorNameSuccess:
		return emerald400
	}
	return t.baseTheme.Color(name, theme.VariantDark)
}

func (t *messengerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.baseTheme.Font(style)
}

func (t *messengerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.baseTheme.Icon(name)
}

func (t *messengerTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return t.baseFontSize
	case theme.SizeNameHeadingText:
		return t.baseFontSize * 1.5
	case theme.SizeNameSubHeadingText:
		return t.baseFontSize * 1.2
	case theme.SizeNameCaptionText:
		return t.baseFontSize * 0.85
	default:
		return t.baseTheme.Size(name)
	}
}
