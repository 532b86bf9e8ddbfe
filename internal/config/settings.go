package config

import (
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"

	"github.com/ytget/camroll/internal/model"
	"github.com/ytget/camroll/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyCaptureDir   = "capture_directory"
	KeyPhotoQuality = "photo_quality"
	KeyCaptureMode  = "capture_mode"
	KeyFacing       = "camera_facing"
	KeyLanguage     = "app_language"
	KeyVideoDevice  = "video_device"
	KeyFrontDevice  = "front_video_device"
	KeyAudioDevice  = "audio_device"
)

// Default values
const (
	DefaultPhotoQuality = 0.5
	MinPhotoQuality     = 0.05
	MaxPhotoQuality     = 1.0
	DefaultCaptureMode  = model.ModePicture
	DefaultFacing       = model.FacingBack
	DefaultLanguage     = "system"
)

// Settings manages user-editable configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetCaptureDirectory returns where captures are written
func (s *Settings) GetCaptureDirectory() string {
	dir := s.app.Preferences().String(KeyCaptureDir)
	if dir == "" {
		defaultDir, err := platform.GetDefaultCaptureDir()
		if err != nil {
			defaultDir = filepath.Join(os.TempDir(), platform.CaptureDirName)
		}
		s.SetCaptureDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetCaptureDirectory sets the capture directory
func (s *Settings) SetCaptureDirectory(dir string) {
	s.app.Preferences().SetString(KeyCaptureDir, dir)
}

// GetPhotoQuality returns the JPEG quality of in-app stills (0.05..1)
func (s *Settings) GetPhotoQuality() float64 {
	return clampQuality(s.app.Preferences().FloatWithFallback(KeyPhotoQuality, DefaultPhotoQuality))
}

// SetPhotoQuality sets the still quality, clamped to the supported range
func (s *Settings) SetPhotoQuality(quality float64) {
	s.app.Preferences().SetFloat(KeyPhotoQuality, clampQuality(quality))
}

func clampQuality(q float64) float64 {
	if q < MinPhotoQuality {
		return MinPhotoQuality
	}
	if q > MaxPhotoQuality {
		return MaxPhotoQuality
	}
	return q
}

// GetCaptureMode returns the mode the camera opens in
func (s *Settings) GetCaptureMode() model.CaptureMode {
	mode := model.CaptureMode(s.app.Preferences().String(KeyCaptureMode))
	if !mode.Valid() {
		s.SetCaptureMode(DefaultCaptureMode)
		return DefaultCaptureMode
	}
	return mode
}

// SetCaptureMode sets the initial capture mode
func (s *Settings) SetCaptureMode(mode model.CaptureMode) {
	if !mode.Valid() {
		mode = DefaultCaptureMode
	}
	s.app.Preferences().SetString(KeyCaptureMode, string(mode))
}

// GetFacing returns the lens the camera opens with
func (s *Settings) GetFacing() model.Facing {
	facing := model.Facing(s.app.Preferences().String(KeyFacing))
	if !facing.Valid() {
		s.SetFacing(DefaultFacing)
		return DefaultFacing
	}
	return facing
}

// SetFacing sets the initial lens
func (s *Settings) SetFacing(facing model.Facing) {
	if !facing.Valid() {
		facing = DefaultFacing
	}
	s.app.Preferences().SetString(KeyFacing, string(facing))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetVideoDevice returns the back camera device; empty means the config file decides
func (s *Settings) GetVideoDevice() string {
	return s.app.Preferences().String(KeyVideoDevice)
}

// SetVideoDevice sets the back camera device
func (s *Settings) SetVideoDevice(device string) {
	s.app.Preferences().SetString(KeyVideoDevice, device)
}

// GetFrontDevice returns the front camera device
func (s *Settings) GetFrontDevice() string {
	return s.app.Preferences().String(KeyFrontDevice)
}

// SetFrontDevice sets the front camera device
func (s *Settings) SetFrontDevice(device string) {
	s.app.Preferences().SetString(KeyFrontDevice, device)
}

// GetAudioDevice returns the microphone device
func (s *Settings) GetAudioDevice() string {
	return s.app.Preferences().String(KeyAudioDevice)
}

// SetAudioDevice sets the microphone device
func (s *Settings) SetAudioDevice(device string) {
	s.app.Preferences().SetString(KeyAudioDevice, device)
}
