package camera

import (
	"runtime"
)

// Config selects the capture devices and the ffmpeg binary
type Config struct {
	Binary      string // ffmpeg executable
	InputFormat string // -f for the video input (v4l2, avfoundation, dshow)
	VideoDevice string // back camera
	FrontDevice string // front camera; VideoDevice when empty
	Framerate   string // optional -framerate for the video input
	AudioFormat string // -f for a separate audio input; empty when the video input carries audio
	AudioDevice string
	OutputDir   string // captures are written here
}

// DefaultConfig returns device defaults for the running platform
func DefaultConfig() Config {
	cfg := Config{Binary: FFmpegCommand}

	switch runtime.GOOS {
	case "darwin":
		cfg.InputFormat = "avfoundation"
		cfg.VideoDevice = "0:0" // avfoundation muxes "video:audio"
		cfg.Framerate = "30"
	case "windows":
		cfg.InputFormat = "dshow"
		cfg.VideoDevice = "video=Integrated Camera"
		cfg.AudioFormat = "dshow"
		cfg.AudioDevice = "audio=Microphone"
	default:
		cfg.InputFormat = "v4l2"
		cfg.VideoDevice = "/dev/video0"
		cfg.AudioFormat = "alsa"
		cfg.AudioDevice = "default"
	}
	return cfg
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Binary == "" {
		c.Binary = def.Binary
	}
	if c.InputFormat == "" && c.VideoDevice == "" {
		c.InputFormat = def.InputFormat
		c.VideoDevice = def.VideoDevice
		c.Framerate = def.Framerate
		if c.AudioDevice == "" {
			c.AudioFormat = def.AudioFormat
			c.AudioDevice = def.AudioDevice
		}
	}
	if c.InputFormat == "" {
		c.InputFormat = def.InputFormat
	}
	return c
}
