// Package app wires configuration, providers and the window together.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/ytget/camroll/internal/camera"
	"github.com/ytget/camroll/internal/config"
	"github.com/ytget/camroll/internal/download"
	"github.com/ytget/camroll/internal/logging"
	"github.com/ytget/camroll/internal/platform"
	"github.com/ytget/camroll/internal/registry"
	"github.com/ytget/camroll/internal/ui"
)

const (
	AppID   = "com.ytget.camroll"
	AppName = "Camroll"
)

// Run starts the application and blocks until the window closes
func Run(version string) error {
	cfg, err := config.LoadFile(config.DefaultFilePath())
	if err != nil {
		return err
	}
	if err := cfg.Finalize(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.New(&cfg.Logging)
	slog.SetDefault(logger)
	logger.Info("starting", "app", AppName, "version", version)

	myApp := fyneapp.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	settings := config.NewSettings(myApp)
	captureDir := settings.GetCaptureDirectory()
	if err := platform.CreateDirectoryIfNotExists(captureDir); err != nil {
		logger.Warn("failed to ensure capture dir", "dir", captureDir, "error", err)
	}

	camCfg := CameraConfig(cfg.Camera, settings)
	cam := camera.NewFFmpeg(camCfg, logger)
	cam.OnCaptured(func(path string) {
		platform.NotifyMediaScanner(path, logger)
	})

	importer := download.NewService(captureDir, logger)
	if cfg.Import.Format != "" {
		importer.SetFormat(cfg.Import.Format)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	root := ui.NewRootUI(ctx, myWindow, myApp, settings, ui.Services{
		Registry: registry.New(),
		Camera:   cam,
		Importer: importer,
		Devices: platform.DeviceConfig{
			VideoDevice: camCfg.VideoDevice,
			AudioDevice: camCfg.AudioDevice,
			CaptureDir:  captureDir,
		},
		ImportDirectory: cfg.Import.Directory,
		Logger:          logger,
	})
	defer root.Close()

	myWindow.SetOnClosed(func() {
		cancel()
		cam.StopRecording()
	})

	myWindow.ShowAndRun()
	return nil
}

// CameraConfig merges the config file camera section with the device
// choices saved in preferences. Preferences win.
func CameraConfig(file config.CameraConfig, settings *config.Settings) camera.Config {
	cfg := camera.Config{
		Binary:      file.FFmpeg,
		InputFormat: file.InputFormat,
		VideoDevice: file.Device,
		FrontDevice: file.FrontDevice,
		Framerate:   file.Framerate,
		AudioFormat: file.AudioFormat,
		AudioDevice: file.AudioDevice,
		OutputDir:   settings.GetCaptureDirectory(),
	}
	if v := settings.GetVideoDevice(); v != "" {
		cfg.VideoDevice = v
	}
	if v := settings.GetFrontDevice(); v != "" {
		cfg.FrontDevice = v
	}
	if v := settings.GetAudioDevice(); v != "" {
		cfg.AudioDevice = v
	}
	return cfg
}
