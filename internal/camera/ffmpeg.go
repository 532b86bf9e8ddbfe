package camera

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2/storage"
	"github.com/docker/go-units"
	"github.com/google/uuid"

	"github.com/ytget/camroll/internal/capability"
	"github.com/ytget/camroll/internal/model"
)

// FFmpeg constants for capture settings
const (
	// Video codec settings
	VideoCodec  = "libx264"
	VideoPreset = "veryfast"
	VideoCRF    = "23"

	// Audio codec settings
	AudioCodec   = "aac"
	AudioBitrate = "128k"

	// Container flags
	FastStartFlag = "+faststart"

	// Executable and I/O constants
	FFmpegCommand      = "ffmpeg"
	ProgressPipeTarget = "pipe:2"
	ProgressTimePrefix = "out_time_us="
	StopKeystroke      = "q"

	// Output naming
	PhotoPrefix        = "IMG_"
	VideoPrefix        = "VID_"
	OutputExtensionJPG = ".jpg"
	OutputExtensionMP4 = ".mp4"

	// JPEG quality scale of ffmpeg's mjpeg encoder, lower is better
	BestQScale  = 2
	WorstQScale = 31
)

// GracefulStopTimeout bounds how long ffmpeg may take to finalize a
// recording after the stop keystroke before it is killed
var GracefulStopTimeout = 5 * time.Second

var (
	// ErrAlreadyRecording is returned by Record while another recording runs
	ErrAlreadyRecording = errors.New("camera: recording already in progress")

	// ErrNoDevice means no video device is configured
	ErrNoDevice = errors.New("camera: no video device configured")
)

// commandFunc builds the process for one ffmpeg invocation
type commandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// FFmpeg captures stills and videos from a local camera device
type FFmpeg struct {
	cfg     Config
	log     *slog.Logger
	command commandFunc
	scanned func(path string) // called for every new capture file

	mu            sync.Mutex
	active        *recording
	stopRequested bool
}

var _ capability.Camera = (*FFmpeg)(nil)

type recording struct {
	stop     chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	elapsed time.Duration
	tail    []string // last stderr lines for error reports
}

// maxTailLines bounds the stderr lines kept for error reports
const maxTailLines = 8

// NewFFmpeg creates a camera backed by the ffmpeg binary in cfg
func NewFFmpeg(cfg Config, logger *slog.Logger) *FFmpeg {
	if logger == nil {
		logger = slog.Default()
	}
	return &FFmpeg{
		cfg:     cfg.withDefaults(),
		log:     logger.With("component", "camera"),
		command: exec.CommandContext,
	}
}

// OnCaptured sets a hook called with the path of every new capture file
func (f *FFmpeg) OnCaptured(fn func(path string)) {
	f.scanned = fn
}

// CaptureStill grabs a single frame as JPEG
func (f *FFmpeg) CaptureStill(ctx context.Context, opts capability.StillOptions) (capability.Still, error) {
	device := f.device(opts.Facing)
	if device == "" {
		return capability.Still{}, ErrNoDevice
	}

	output, err := f.outputPath(PhotoPrefix, OutputExtensionJPG)
	if err != nil {
		return capability.Still{}, err
	}

	args := f.BuildStillArgs(device, output, opts.Quality)
	cmd := f.command(ctx, f.cfg.Binary, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		os.Remove(output)
		if ctx.Err() != nil {
			return capability.Still{}, ctx.Err()
		}
		return capability.Still{}, fmt.Errorf("ffmpeg still capture: %w: %s", err, lastLine(string(out)))
	}

	size, err := fileSize(output)
	if err != nil {
		return capability.Still{}, fmt.Errorf("ffmpeg still capture: %w", err)
	}

	f.log.Debug("still written", "path", output, "size", units.HumanSize(float64(size)))
	f.captured(output)
	return capability.Still{URI: fileURI(output), Quality: opts.Quality}, nil
}

// Record starts a recording and blocks until StopRecording is called, ctx is
// cancelled or ffmpeg exits on its own. A stop that arrives before the
// process starts yields an empty URI.
func (f *FFmpeg) Record(ctx context.Context, opts capability.RecordOptions) (string, error) {
	device := f.device(opts.Facing)
	if device == "" {
		return "", ErrNoDevice
	}

	rec := &recording{stop: make(chan struct{})}

	f.mu.Lock()
	if f.active != nil {
		f.mu.Unlock()
		return "", ErrAlreadyRecording
	}
	if f.stopRequested {
		f.stopRequested = false
		f.mu.Unlock()
		f.log.Debug("recording stopped before it started")
		return "", nil
	}
	f.active = rec
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.active = nil
		f.stopRequested = false
		f.mu.Unlock()
	}()

	output, err := f.outputPath(VideoPrefix, OutputExtensionMP4)
	if err != nil {
		return "", err
	}

	// Create context for the graceful stop fallback
	procCtx, kill := context.WithCancel(ctx)
	defer kill()

	args := f.BuildRecordArgs(device, output)
	cmd := f.command(procCtx, f.cfg.Binary, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stdin pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		rec.monitorProgress(stderr)
	}()

	waitDone := make(chan struct{})
	stopped := make(chan struct{})
	// Monitor for stop requests
	go func() {
		select {
		case <-rec.stop:
			close(stopped)
			io.WriteString(stdin, StopKeystroke)
			stdin.Close()
			select {
			case <-waitDone:
			case <-time.After(GracefulStopTimeout):
				f.log.Warn("ffmpeg did not stop in time, killing it")
				kill()
			}
		case <-waitDone:
		}
	}()

	<-progressDone
	err = cmd.Wait()
	close(waitDone)

	userStopped := isClosed(stopped)
	elapsed, tail := rec.snapshot()

	switch {
	case ctx.Err() != nil:
		os.Remove(output)
		return "", ctx.Err()
	case err != nil && !userStopped:
		os.Remove(output)
		return "", fmt.Errorf("ffmpeg recording: %w: %s", err, strings.Join(tail, "; "))
	}

	size, statErr := fileSize(output)
	if statErr != nil || size == 0 {
		// stopped before the first frame was muxed
		os.Remove(output)
		f.log.Debug("recording produced no data", "error", err)
		return "", nil
	}

	f.log.Info("recording written",
		"path", output,
		"duration", elapsed.Round(time.Millisecond),
		"size", units.HumanSize(float64(size)))
	f.captured(output)
	return fileURI(output), nil
}

// StopRecording ends the running recording. Called before Record has
// started the process, it makes that Record return without recording.
func (f *FFmpeg) StopRecording() {
	f.mu.Lock()
	rec := f.active
	if rec == nil {
		f.stopRequested = true
	}
	f.mu.Unlock()

	if rec != nil {
		rec.stopOnce.Do(func() { close(rec.stop) })
	}
}

// Recording reports whether a recording process is running
func (f *FFmpeg) Recording() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active != nil
}

// BuildStillArgs builds the ffmpeg arguments for a single JPEG frame
func (f *FFmpeg) BuildStillArgs(device, outputPath string, quality float64) []string {
	args := []string{"-y"} // Overwrite output file
	args = append(args, f.videoInput(device)...)
	return append(args,
		"-frames:v", "1", // Single frame
		"-q:v", strconv.Itoa(QScale(quality)), // JPEG quality
		outputPath,
	)
}

// BuildRecordArgs builds the ffmpeg arguments for an H.264/AAC recording
func (f *FFmpeg) BuildRecordArgs(device, outputPath string) []string {
	args := []string{"-y"}
	args = append(args, f.videoInput(device)...)
	if f.cfg.AudioDevice != "" && f.cfg.AudioFormat != "" {
		args = append(args, "-f", f.cfg.AudioFormat, "-i", f.cfg.AudioDevice)
	}
	return append(args,
		"-c:v", VideoCodec, // Video codec
		"-preset", VideoPreset, // Encoding preset
		"-crf", VideoCRF, // Constant rate factor
		"-pix_fmt", "yuv420p", // Playable everywhere
		"-c:a", AudioCodec, // Audio codec
		"-b:a", AudioBitrate, // Audio bitrate
		"-movflags", FastStartFlag, // MP4 optimization
		"-progress", ProgressPipeTarget, // Progress to stderr
		"-nostats", // No stats output
		outputPath, // Output file
	)
}

func (f *FFmpeg) videoInput(device string) []string {
	var args []string
	if f.cfg.InputFormat != "" {
		args = append(args, "-f", f.cfg.InputFormat)
	}
	if f.cfg.Framerate != "" {
		args = append(args, "-framerate", f.cfg.Framerate)
	}
	return append(args, "-i", device)
}

func (f *FFmpeg) device(facing model.Facing) string {
	if facing == model.FacingFront && f.cfg.FrontDevice != "" {
		return f.cfg.FrontDevice
	}
	return f.cfg.VideoDevice
}

func (f *FFmpeg) outputPath(prefix, ext string) (string, error) {
	dir := f.cfg.OutputDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create capture directory: %w", err)
	}
	return filepath.Join(dir, generateFileName(prefix, ext)), nil
}

func (f *FFmpeg) captured(path string) {
	if f.scanned != nil {
		f.scanned(path)
	}
}

// monitorProgress tracks the recorded duration from ffmpeg progress output
func (r *recording) monitorProgress(stderr io.ReadCloser) {
	defer stderr.Close()
	scanner := bufio.NewScanner(stderr)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// Parse progress line: out_time_us=123456
		if strings.HasPrefix(line, ProgressTimePrefix) {
			us, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
			if err != nil {
				continue
			}
			r.mu.Lock()
			r.elapsed = time.Duration(us) * time.Microsecond
			r.mu.Unlock()
			continue
		}
		if strings.Contains(line, "=") && !strings.Contains(line, " ") {
			continue // other progress keys
		}

		r.mu.Lock()
		r.tail = append(r.tail, line)
		if len(r.tail) > maxTailLines {
			r.tail = r.tail[len(r.tail)-maxTailLines:]
		}
		r.mu.Unlock()
	}
}

func (r *recording) snapshot() (time.Duration, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.elapsed, append([]string(nil), r.tail...)
}

// QScale maps a 0..1 quality to ffmpeg's JPEG qscale
func QScale(quality float64) int {
	if quality <= 0 || quality > 1 {
		quality = 1
	}
	q := WorstQScale - int(math.Round(quality*float64(WorstQScale-BestQScale)))
	if q < BestQScale {
		return BestQScale
	}
	return q
}

// generateFileName generates a unique capture file name using UUID v7 so
// names sort chronologically
func generateFileName(prefix, ext string) string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf("%s%d%s", prefix, time.Now().UnixNano(), ext)
	}
	return prefix + id.String() + ext
}

func fileURI(path string) string {
	return storage.NewFileURI(path).String()
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
