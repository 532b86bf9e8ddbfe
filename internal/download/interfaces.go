package download

import (
	"context"

	"github.com/ytget/camroll/internal/model"
)

// Importer defines the interface for the link import service.
type Importer interface {
	Fetch(ctx context.Context, link string) (model.Asset, error)

	// SetProgressCallback receives progress of the running import
	SetProgressCallback(func(Progress))

	// SetFormat configures the yt-dlp format selector
	SetFormat(format string)

	// SetDownloadDirectory sets the directory imported files are written to
	SetDownloadDirectory(dir string)
}
