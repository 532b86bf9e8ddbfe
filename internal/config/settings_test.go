package config

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/camroll/internal/model"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestCaptureDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetCaptureDirectory()
	if dir == "" {
		t.Error("Capture directory should not be empty")
	}

	// Test setting custom value
	customDir := "/custom/captures"
	settings.SetCaptureDirectory(customDir)

	if got := settings.GetCaptureDirectory(); got != customDir {
		t.Errorf("Expected capture directory %s, got %s", customDir, got)
	}
}

func TestPhotoQuality(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if got := settings.GetPhotoQuality(); got != DefaultPhotoQuality {
		t.Errorf("Expected default photo quality %v, got %v", DefaultPhotoQuality, got)
	}

	tests := []struct {
		set      float64
		expected float64
	}{
		{0.8, 0.8},
		{0, MinPhotoQuality},
		{-1, MinPhotoQuality},
		{2, MaxPhotoQuality},
		{1, 1},
	}

	for _, test := range tests {
		settings.SetPhotoQuality(test.set)
		if got := settings.GetPhotoQuality(); got != test.expected {
			t.Errorf("SetPhotoQuality(%v): got %v, expected %v", test.set, got, test.expected)
		}
	}
}

func TestCaptureMode(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetCaptureMode(); got != DefaultCaptureMode {
		t.Errorf("Expected default capture mode %s, got %s", DefaultCaptureMode, got)
	}

	settings.SetCaptureMode(model.ModeVideo)
	if got := settings.GetCaptureMode(); got != model.ModeVideo {
		t.Errorf("Expected capture mode %s, got %s", model.ModeVideo, got)
	}

	// Invalid values fall back to the default
	settings.SetCaptureMode("slowmo")
	if got := settings.GetCaptureMode(); got != DefaultCaptureMode {
		t.Errorf("Expected fallback capture mode %s, got %s", DefaultCaptureMode, got)
	}
}

func TestFacing(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetFacing(); got != DefaultFacing {
		t.Errorf("Expected default facing %s, got %s", DefaultFacing, got)
	}

	settings.SetFacing(model.FacingFront)
	if got := settings.GetFacing(); got != model.FacingFront {
		t.Errorf("Expected facing %s, got %s", model.FacingFront, got)
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if got := settings.GetLanguage(); got != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, got)
	}

	settings.SetLanguage("pt")
	if got := settings.GetLanguage(); got != "pt" {
		t.Errorf("Expected language pt, got %s", got)
	}
}

func TestGetLanguageOptions(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	options := settings.GetLanguageOptions()
	for _, lang := range []string{"system", "en", "ru", "pt"} {
		if _, ok := options[lang]; !ok {
			t.Errorf("Expected language option %s", lang)
		}
	}
}

func TestDevices(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetVideoDevice() != "" || settings.GetAudioDevice() != "" || settings.GetFrontDevice() != "" {
		t.Error("Expected devices to be empty by default")
	}

	settings.SetVideoDevice("/dev/video2")
	settings.SetFrontDevice("/dev/video3")
	settings.SetAudioDevice("hw:1")

	if got := settings.GetVideoDevice(); got != "/dev/video2" {
		t.Errorf("Expected video device /dev/video2, got %s", got)
	}
	if got := settings.GetFrontDevice(); got != "/dev/video3" {
		t.Errorf("Expected front device /dev/video3, got %s", got)
	}
	if got := settings.GetAudioDevice(); got != "hw:1" {
		t.Errorf("Expected audio device hw:1, got %s", got)
	}
}
