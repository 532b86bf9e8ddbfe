package platform

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/ytget/camroll/internal/capability"
)

// PromptFunc asks the user to grant p. It returns false when the user refuses.
type PromptFunc func(ctx context.Context, p capability.Permission) (bool, error)

// DeviceConfig lists what the permission checks look at
type DeviceConfig struct {
	VideoDevice string
	AudioDevice string
	CaptureDir  string
}

// DevicePermissions grants capabilities after checking the device is usable
// and, when a prompt is set, after the user agreed. Decisions are kept for
// the rest of the session.
type DevicePermissions struct {
	cfg    DeviceConfig
	prompt PromptFunc
	log    *slog.Logger

	mu        sync.Mutex
	decisions map[capability.Permission]capability.PermissionStatus
}

var _ capability.Permissions = (*DevicePermissions)(nil)

// NewDevicePermissions creates a permission provider; prompt may be nil
func NewDevicePermissions(cfg DeviceConfig, prompt PromptFunc, logger *slog.Logger) *DevicePermissions {
	if logger == nil {
		logger = slog.Default()
	}
	return &DevicePermissions{
		cfg:       cfg,
		prompt:    prompt,
		log:       logger.With("component", "permissions"),
		decisions: make(map[capability.Permission]capability.PermissionStatus),
	}
}

// Request returns the session decision for p, asking for it the first time
func (d *DevicePermissions) Request(ctx context.Context, p capability.Permission) (capability.PermissionStatus, error) {
	d.mu.Lock()
	status, ok := d.decisions[p]
	d.mu.Unlock()
	if ok {
		return status, nil
	}

	status = capability.StatusGranted
	if err := d.checkDevice(p); err != nil {
		d.log.Warn("device check failed", "permission", p, "error", err)
		status = capability.StatusDenied
	} else if d.prompt != nil {
		granted, err := d.prompt(ctx, p)
		if err != nil {
			return capability.StatusDenied, err
		}
		if !granted {
			status = capability.StatusDenied
		}
	}

	d.mu.Lock()
	d.decisions[p] = status
	d.mu.Unlock()

	d.log.Debug("permission decided", "permission", p, "status", status)
	return status, nil
}

// Reset forgets every decision
func (d *DevicePermissions) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.decisions = make(map[capability.Permission]capability.PermissionStatus)
}

func (d *DevicePermissions) checkDevice(p capability.Permission) error {
	switch p {
	case capability.PermissionCamera:
		return checkDeviceNode(d.cfg.VideoDevice)
	case capability.PermissionMicrophone:
		return checkDeviceNode(d.cfg.AudioDevice)
	case capability.PermissionMediaLibrary:
		return checkWritableDir(d.cfg.CaptureDir)
	default:
		return fmt.Errorf("unknown permission: %s", p)
	}
}

// checkDeviceNode verifies device paths such as /dev/video0. Named devices
// (avfoundation indexes, dshow names, alsa "default") cannot be checked
// without opening them and pass.
func checkDeviceNode(device string) error {
	if !strings.HasPrefix(device, "/dev/") {
		return nil
	}
	if _, err := os.Stat(device); err != nil {
		return fmt.Errorf("device %s is not available: %w", device, err)
	}
	return nil
}

// checkWritableDir creates dir if needed and verifies files can be written
func checkWritableDir(dir string) error {
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".camroll-write-*")
	if err != nil {
		return fmt.Errorf("directory %s is not writable: %w", dir, err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
