package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2/storage"
	"github.com/docker/go-units"
	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/camroll/internal/model"
	"github.com/ytget/camroll/internal/platform"
)

// Download defaults
const (
	DefaultFormat      = "bv*[ext=mp4]+ba[ext=m4a]/b[ext=mp4]/b"
	OutputTemplate     = "%(title)s.%(ext)s"
	FinalPathTemplate  = "after_move:filepath"
	ProgressInterval   = 500 * time.Millisecond
	DefaultMaxRetries  = 1
	DefaultRetryDelay  = 2 * time.Second
	SupportedSchemeWeb = "https"
)

var (
	// ErrInvalidLink means the link is not an http(s) URL
	ErrInvalidLink = errors.New("invalid link")

	// ErrNoOutput means yt-dlp finished without reporting a file
	ErrNoOutput = errors.New("yt-dlp reported no output file")
)

// Progress describes a running import
type Progress struct {
	Link            string
	Title           string
	Percent         int
	DownloadedBytes int
	TotalBytes      int
	ETA             time.Duration
}

// runFunc downloads link and returns the local path of the file
type runFunc func(ctx context.Context, link string, onProgress func(ytdlp.ProgressUpdate)) (string, error)

// Service handles link import operations
type Service struct {
	mu          sync.RWMutex
	downloadDir string
	format      string
	onProgress  func(Progress) // callback for UI updates

	maxRetries int
	retryDelay time.Duration
	run        runFunc
	log        *slog.Logger
}

var _ Importer = (*Service)(nil)

// NewService creates a new import service writing to downloadDir
func NewService(downloadDir string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		downloadDir: downloadDir,
		format:      DefaultFormat,
		maxRetries:  DefaultMaxRetries,
		retryDelay:  DefaultRetryDelay,
		log:         logger.With("component", "download"),
	}
	s.run = s.runYtdlp
	return s
}

// SetProgressCallback sets the callback function for progress updates
func (s *Service) SetProgressCallback(callback func(Progress)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onProgress = callback
}

// SetFormat configures the yt-dlp format selector; empty restores the default
func (s *Service) SetFormat(format string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(format) == "" {
		format = DefaultFormat
	}
	s.format = format
}

// SetDownloadDirectory sets the download directory
func (s *Service) SetDownloadDirectory(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.downloadDir = dir
}

// Fetch downloads the media behind link and describes the resulting file
func (s *Service) Fetch(ctx context.Context, link string) (model.Asset, error) {
	link, err := ValidateLink(link)
	if err != nil {
		return model.Asset{}, err
	}

	s.log.Info("link import started", "link", link)
	start := time.Now()

	path, err := s.fetchWithRetry(ctx, link)
	if err != nil {
		return model.Asset{}, err
	}

	asset, err := assetForFile(path)
	if err != nil {
		return model.Asset{}, err
	}

	s.log.Info("link import finished",
		"link", link,
		"file", asset.FileName,
		"size", units.HumanSize(float64(asset.Size)),
		"took", time.Since(start).Round(time.Millisecond))
	return asset, nil
}

// fetchWithRetry attempts the download with retry logic
func (s *Service) fetchWithRetry(ctx context.Context, link string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			// Backoff delay
			select {
			case <-time.After(s.retryDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			s.log.Warn("retrying link import", "link", link, "attempt", attempt+1)
		}

		path, err := s.run(ctx, link, func(update ytdlp.ProgressUpdate) {
			s.notifyProgress(toProgress(link, update))
		})
		if err == nil {
			return path, nil
		}

		lastErr = err
		s.log.Error("link import attempt failed", "link", link, "attempt", attempt+1, "error", err)

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errors.Is(err, ErrNoOutput) {
			break
		}
	}

	return "", lastErr
}

// runYtdlp runs yt-dlp for a single video
func (s *Service) runYtdlp(ctx context.Context, link string, onProgress func(ytdlp.ProgressUpdate)) (string, error) {
	s.mu.RLock()
	dir, format := s.downloadDir, s.format
	s.mu.RUnlock()

	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	// Configure yt-dlp. The JSON line carries the extracted info; the
	// after_move print is the final path once formats are merged.
	dl := ytdlp.New().
		NoPlaylist().
		ForceOverwrites().
		RestrictFilenames().
		NoSimulate().
		PrintJSON().
		Print(FinalPathTemplate).
		Format(format).
		Output(filepath.Join(dir, OutputTemplate))

	dl.ProgressFunc(ProgressInterval, onProgress)

	result, err := dl.Run(ctx, link)
	if err != nil {
		return "", err
	}
	return outputPath(result)
}

// outputPath finds the downloaded file in a yt-dlp result. The last plain
// stdout line holding an absolute path wins; the extracted info filename is
// the fallback.
func outputPath(result *ytdlp.Result) (string, error) {
	for i := len(result.OutputLogs) - 1; i >= 0; i-- {
		entry := result.OutputLogs[i]
		if entry.Pipe != "stdout" || entry.JSON != nil {
			continue
		}
		if line := strings.TrimSpace(entry.Line); filepath.IsAbs(line) {
			return line, nil
		}
	}

	info, err := result.GetExtractedInfo()
	if err != nil {
		return "", fmt.Errorf("failed to read yt-dlp output: %w", err)
	}
	for _, item := range info {
		if item.Filename != nil && *item.Filename != "" {
			return *item.Filename, nil
		}
	}
	return "", ErrNoOutput
}

// notifyProgress calls the progress callback if set
func (s *Service) notifyProgress(p Progress) {
	s.mu.RLock()
	fn := s.onProgress
	s.mu.RUnlock()
	if fn != nil {
		fn(p)
	}
}

// toProgress converts a yt-dlp update
func toProgress(link string, update ytdlp.ProgressUpdate) Progress {
	p := Progress{
		Link:            link,
		DownloadedBytes: update.DownloadedBytes,
		TotalBytes:      update.TotalBytes,
	}
	if update.TotalBytes > 0 {
		p.Percent = int(float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100)
		if p.Percent > 100 {
			p.Percent = 100
		}
	}
	if eta := update.ETA(); eta > 0 {
		p.ETA = eta
	}
	if update.Info != nil && update.Info.Title != nil {
		p.Title = *update.Info.Title
	}
	return p
}

// ValidateLink trims link and checks that it is an absolute http(s) URL
func ValidateLink(link string) (string, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidLink)
	}
	u, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}
	if (u.Scheme != "http" && u.Scheme != SupportedSchemeWeb) || u.Host == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidLink, link)
	}
	return link, nil
}

// assetForFile describes a downloaded file
func assetForFile(path string) (model.Asset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.Asset{}, fmt.Errorf("downloaded file is missing: %w", err)
	}
	return model.Asset{
		URI:      storage.NewFileURI(path).String(),
		Type:     platform.AssetTypeForPath(path),
		FileName: filepath.Base(path),
		Size:     info.Size(),
	}, nil
}
