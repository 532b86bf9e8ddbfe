package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ColorNameShutter is the accent of the shutter and the recording indicator
const ColorNameShutter fyne.ThemeColorName = "camrollShutter"

// Camera surface palette
var (
	shutterRed   = color.RGBA{R: 230, G: 57, B: 70, A: 255}
	accentBlue   = color.RGBA{R: 0, G: 122, B: 255, A: 255}
	viewfinderBg = color.RGBA{R: 12, G: 12, B: 12, A: 255}
	lightBg      = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	controlDark  = color.RGBA{R: 38, G: 38, B: 40, A: 255}
	pressedShade = color.RGBA{R: 255, G: 255, B: 255, A: 40}
	captionGrey  = color.RGBA{R: 142, G: 142, B: 147, A: 255}
	inkLight     = color.RGBA{R: 33, G: 33, B: 33, A: 255}
)

// compactSizes keep the chrome tight so the viewfinder and the grid get the
// room, while tab labels and icons stay large enough to hit with a thumb
var compactSizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNamePadding:         3,
	theme.SizeNameInnerPadding:    10,
	theme.SizeNameLineSpacing:     2,
	theme.SizeNameScrollBar:       6,
	theme.SizeNameScrollBarSmall:  3,
	theme.SizeNameText:            14,
	theme.SizeNameHeadingText:     18,
	theme.SizeNameSubHeadingText:  15,
	theme.SizeNameCaptionText:     11,
	theme.SizeNameInlineIcon:      24,
	theme.SizeNameInputRadius:     10,
	theme.SizeNameSelectionRadius: 6,
}

// CompactTheme is a tight theme for phone-sized windows with a dark camera look
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	dark := variant == theme.VariantDark

	switch name {
	case ColorNameShutter, theme.ColorNameError:
		return shutterRed
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return accentBlue
	case theme.ColorNamePlaceHolder:
		return captionGrey
	case theme.ColorNamePressed:
		return pressedShade
	case theme.ColorNameBackground:
		if dark {
			return viewfinderBg
		}
		return lightBg
	case theme.ColorNameButton, theme.ColorNameInputBackground:
		if dark {
			return controlDark
		}
	case theme.ColorNameForeground:
		if dark {
			return color.White
		}
		return inkLight
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	if size, ok := compactSizes[name]; ok {
		return size
	}
	return theme.DefaultTheme().Size(name)
}
