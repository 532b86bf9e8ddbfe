package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconShutter  = "◉"
	IconRecord   = "⏺"
	IconStop     = "⏹"
	IconPlay     = "▶"
	IconFlip     = "⟲"
	IconGallery  = "🖼"
	IconFolder   = "📁"
	IconLink     = "🔗"
	IconCheck    = "✓"
	IconRetake   = "↺"
	IconMuted    = "🔇"
	IconLoop     = "🔁"
	IconLanguage = "🌐"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	ProgressLabelFormat = "%d%%"
)

// Layout sizing
const (
	// Gallery grid
	GalleryColumns         = 3
	TileSize       float32 = 120
	TileCaptionH   float32 = 22

	// Camera screen
	PreviewMinWidth  float32 = 320
	PreviewMinHeight float32 = 420

	// Touch target minimum sizes (iOS/Android guidelines)
	MinTouchTargetSize float32 = 44
	ShutterButtonSize  float32 = 72

	// Dialogs
	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 460
	PickerDialogWidth    float32 = 420
	PickerDialogHeight   float32 = 520
)

// Window sizing, phone-like so the gallery grid wraps at three columns
const (
	WindowWidth  float32 = GalleryColumns*TileSize + 60
	WindowHeight float32 = 720
)

// Delays
const (
	NotificationAutoHide = 4 * time.Second
)
