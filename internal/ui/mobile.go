package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// MobileUI provides touch-friendly sizing for the capture screens
type MobileUI struct {
	app fyne.App
}

// NewMobileUI creates a new mobile UI helper
func NewMobileUI(app fyne.App) *MobileUI {
	return &MobileUI{app: app}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	return fyne.CurrentDevice().IsMobile()
}

// IsLandscape returns true if device is in landscape orientation
func (m *MobileUI) IsLandscape() bool {
	orientation := fyne.CurrentDevice().Orientation()
	return orientation == fyne.OrientationHorizontalLeft || orientation == fyne.OrientationHorizontalRight
}

// CreateMobileButtonFrom wraps btn so it keeps the minimum touch target
func (m *MobileUI) CreateMobileButtonFrom(btn *widget.Button) *fyne.Container {
	return m.touchTarget(btn, MinTouchTargetSize)
}

// CreateShutterButton creates the large round-ish shutter button
func (m *MobileUI) CreateShutterButton(btn *widget.Button) *fyne.Container {
	btn.Importance = widget.DangerImportance
	return m.touchTarget(btn, ShutterButtonSize)
}

// touchTarget stacks obj over a transparent rectangle of at least side×side
func (m *MobileUI) touchTarget(obj fyne.CanvasObject, side float32) *fyne.Container {
	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(side, side))
	return container.NewStack(spacer, obj)
}

// CreateMobileEntry creates a single-line entry; on phones long text
// scrolls sideways instead of wrapping
func (m *MobileUI) CreateMobileEntry(placeholder string) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(placeholder)
	if m != nil && m.IsMobileDevice() {
		entry.Wrapping = fyne.TextWrapOff
		entry.Scroll = fyne.ScrollHorizontalOnly
	}
	return entry
}

// GetMobileSpacing returns appropriate spacing for mobile devices
func (m *MobileUI) GetMobileSpacing() float32 {
	if m.IsMobileDevice() {
		return 16
	}
	return 8
}

// GalleryColumnCount returns the number of grid columns on phones; landscape
// fits twice as many
func (m *MobileUI) GalleryColumnCount() int {
	if m.IsLandscape() {
		return GalleryColumns * 2
	}
	return GalleryColumns
}

// GalleryTileSize returns the tile side for the current device. On phones
// the grid fills width with GalleryColumnCount tiles.
func (m *MobileUI) GalleryTileSize(width float32) float32 {
	if m == nil || !m.IsMobileDevice() || width <= 0 {
		return TileSize
	}
	side := width/float32(m.GalleryColumnCount()) - m.GetMobileSpacing()
	if side < MinTouchTargetSize {
		return MinTouchTargetSize
	}
	return side
}
