package platform

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"fyne.io/fyne/v2/storage"

	"github.com/ytget/camroll/internal/model"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	CmdCommand      = "cmd"
	StartCommand    = "start"
	AndroidAM       = "am"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
	WindowsCmdFlag     = "/c"
)

// Capture directory names
const (
	CaptureDirName        = "Camroll"
	AndroidCaptureRoot    = "/sdcard/DCIM"
	DesktopPicturesFolder = "Pictures"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// ImageExtensions are file extensions reported as still images
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".heic", ".heif", ".bmp"}

// VideoExtensions are file extensions the media library lists as videos
var VideoExtensions = []string{".mp4", ".mov", ".m4v", ".webm", ".mkv", ".3gp", ".avi"}

// IsAndroid reports whether the app runs on Android. Fyne Android apps run
// as libdist.so and may report linux as GOOS.
func IsAndroid() bool {
	return runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != "" ||
		filepath.Base(os.Args[0]) == "libdist.so"
}

// AssetTypeForPath returns the picker asset type of a file from its extension
func AssetTypeForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	for _, imageExt := range ImageExtensions {
		if ext == imageExt {
			return model.AssetTypeImage
		}
	}
	return string(model.KindVideo)
}

// IsMediaFile reports whether path has a known image or video extension
func IsMediaFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(ImageExtensions, ext) || slices.Contains(VideoExtensions, ext)
}

// PathFromURI returns the local path of a file:// URI
func PathFromURI(uri string) (string, error) {
	parsed, err := storage.ParseURI(uri)
	if err != nil {
		return "", fmt.Errorf("invalid media URI %q: %w", uri, err)
	}
	if parsed.Scheme() != "file" {
		return "", fmt.Errorf("not a local file: %s", uri)
	}
	return parsed.Path(), nil
}

// GetDefaultCaptureDir returns where captures are stored by default. On
// Android it lives under DCIM so the system gallery picks files up.
func GetDefaultCaptureDir() (string, error) {
	if IsAndroid() {
		return filepath.Join(AndroidCaptureRoot, CaptureDirName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, DesktopPicturesFolder, CaptureDirName), nil
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if dirPath == "" {
		return fmt.Errorf("directory path is empty")
	}
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// OpenFileInManager reveals the file in the system file manager
func OpenFileInManager(filePath string) error {
	absPath, err := existingAbsPath(filePath)
	if err != nil {
		return err
	}

	switch {
	case IsAndroid():
		return exec.Command(AndroidAM, "start", "-a", "android.intent.action.VIEW", "-d", "file://"+filepath.Dir(absPath)).Run()
	case runtime.GOOS == OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case runtime.GOOS == OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case runtime.GOOS == OSLinux:
		return openDirLinux(filepath.Dir(absPath))
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openDirLinux opens a directory on Linux. File selection is not
// standardized there, so the parent directory is opened instead.
func openDirLinux(dir string) error {
	// Try xdg-open first (most common)
	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	// Fallback to common file managers
	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}

// OpenFileWithDefaultApp opens the file with the default system application
func OpenFileWithDefaultApp(filePath string) error {
	absPath, err := existingAbsPath(filePath)
	if err != nil {
		return err
	}

	switch {
	case IsAndroid():
		mime := "video/*"
		if AssetTypeForPath(absPath) == model.AssetTypeImage {
			mime = "image/*"
		}
		return exec.Command(AndroidAM, "start", "-a", "android.intent.action.VIEW", "-d", "file://"+absPath, "-t", mime).Run()
	case runtime.GOOS == OSDarwin:
		return exec.Command(OpenCommand, absPath).Run()
	case runtime.GOOS == OSWindows:
		return exec.Command(CmdCommand, WindowsCmdFlag, StartCommand, "", absPath).Run()
	case runtime.GOOS == OSLinux:
		return exec.Command(XDGOpenCommand, absPath).Run()
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

func existingAbsPath(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path is empty")
	}
	if _, err := os.Stat(filePath); err != nil {
		return "", fmt.Errorf("file does not exist: %w", err)
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return absPath, nil
}

// NotifyMediaScanner notifies the Android media scanner about a new capture
// so it shows up in the system gallery. It is a no-op elsewhere.
func NotifyMediaScanner(filePath string, logger *slog.Logger) {
	if !IsAndroid() {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}

	cmd := exec.Command(AndroidAM, "broadcast", "-a", "android.intent.action.MEDIA_SCANNER_SCAN_FILE", "-d", "file://"+filePath)

	// Run in background, the capture is already committed
	go func() {
		if err := cmd.Run(); err != nil {
			logger.Warn("media scanner notification failed", "path", filePath, "error", err)
		}
	}()
}
