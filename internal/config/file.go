package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/ytget/camroll/internal/logging"
)

const (
	// FileName is the configuration file name inside the user config dir
	FileName = "camroll.toml"

	// AppDirName is the per-user configuration directory name
	AppDirName = "camroll"
)

// Environment overrides
const (
	EnvConfigPath   = "CAMROLL_CONFIG"
	EnvLogLevel     = "CAMROLL_LOG_LEVEL"
	EnvLogFormat    = "CAMROLL_LOG_FORMAT"
	EnvFFmpeg       = "CAMROLL_FFMPEG"
	EnvVideoDevice  = "CAMROLL_VIDEO_DEVICE"
	EnvAudioDevice  = "CAMROLL_AUDIO_DEVICE"
	EnvImportFormat = "CAMROLL_IMPORT_FORMAT"
)

// File is the static configuration read at startup
type File struct {
	Logging logging.Config `toml:"logging"`
	Camera  CameraConfig   `toml:"camera"`
	Import  ImportConfig   `toml:"import"`
}

// CameraConfig selects the ffmpeg binary and capture devices
type CameraConfig struct {
	FFmpeg      string `toml:"ffmpeg"`
	InputFormat string `toml:"input_format"`
	Device      string `toml:"device"`
	FrontDevice string `toml:"front_device"`
	Framerate   string `toml:"framerate"`
	AudioFormat string `toml:"audio_format"`
	AudioDevice string `toml:"audio_device"`
}

// ImportConfig tunes link imports
type ImportConfig struct {
	Format    string `toml:"format"`
	Directory string `toml:"directory"` // defaults to the capture directory
}

// DefaultFilePath returns the configuration path, honoring CAMROLL_CONFIG
func DefaultFilePath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(dir, AppDirName, FileName)
}

// LoadFile reads path. A missing file yields an empty configuration.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &File{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &f, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration
func (f *File) Finalize() error {
	f.loadDefaults()
	f.loadEnv()

	if err := f.Logging.Finalize(&logging.Env{Level: EnvLogLevel, Format: EnvLogFormat}); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return f.validate()
}

// Merge applies values from overlay that differ from zero values
func (f *File) Merge(overlay *File) {
	f.Logging.Merge(&overlay.Logging)

	mergeString(&f.Camera.FFmpeg, overlay.Camera.FFmpeg)
	mergeString(&f.Camera.InputFormat, overlay.Camera.InputFormat)
	mergeString(&f.Camera.Device, overlay.Camera.Device)
	mergeString(&f.Camera.FrontDevice, overlay.Camera.FrontDevice)
	mergeString(&f.Camera.Framerate, overlay.Camera.Framerate)
	mergeString(&f.Camera.AudioFormat, overlay.Camera.AudioFormat)
	mergeString(&f.Camera.AudioDevice, overlay.Camera.AudioDevice)

	mergeString(&f.Import.Format, overlay.Import.Format)
	mergeString(&f.Import.Directory, overlay.Import.Directory)
}

func (f *File) loadDefaults() {
	if f.Camera.FFmpeg == "" {
		f.Camera.FFmpeg = "ffmpeg"
	}
}

func (f *File) loadEnv() {
	if v := os.Getenv(EnvFFmpeg); v != "" {
		f.Camera.FFmpeg = v
	}
	if v := os.Getenv(EnvVideoDevice); v != "" {
		f.Camera.Device = v
	}
	if v := os.Getenv(EnvAudioDevice); v != "" {
		f.Camera.AudioDevice = v
	}
	if v := os.Getenv(EnvImportFormat); v != "" {
		f.Import.Format = v
	}
}

func (f *File) validate() error {
	if f.Camera.AudioDevice != "" && f.Camera.AudioFormat == "" && f.Camera.InputFormat != "avfoundation" {
		return fmt.Errorf("camera: audio_format is required when audio_device is set")
	}
	return nil
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
