package ui

import (
	"image/color"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/docker/go-units"

	"github.com/ytget/camroll/internal/gallery"
	"github.com/ytget/camroll/internal/platform"
)

// MediaTile renders one gallery tile: a still image for photos and a
// looping, muted placeholder for videos
type MediaTile struct {
	widget.BaseWidget

	tile         gallery.Tile
	localization *Localization
	side         float32

	image        *canvas.Image
	videoBack    *canvas.Rectangle
	videoBadge   *widget.Label
	captionLabel *widget.Label
	sizeLabel    *widget.Label

	// Callbacks
	onReveal func(filePath string)
	onOpen   func(filePath string)
}

// NewMediaTile creates an empty tile of side×side; SetTile fills it
func NewMediaTile(localization *Localization, side float32) *MediaTile {
	mt := &MediaTile{localization: localization, side: side}
	mt.ExtendBaseWidget(mt)
	mt.createUI()
	return mt
}

// SetCallbacks sets the action callbacks
func (mt *MediaTile) SetCallbacks(onReveal, onOpen func(filePath string)) {
	mt.onReveal = onReveal
	mt.onOpen = onOpen
}

// SetTile shows tile. The image is reloaded only when the URI changes.
func (mt *MediaTile) SetTile(tile gallery.Tile) {
	changed := tile.URI != mt.tile.URI || tile.Kind != mt.tile.Kind
	mt.tile = tile

	mt.captionLabel.SetText(tile.Caption)
	mt.sizeLabel.SetText(tileSizeText(tile.URI))

	if tile.IsVideo() {
		mt.image.Hide()
		mt.image.File = ""
		mt.image.Resource = nil
		mt.videoBack.Show()
		mt.videoBadge.SetText(videoBadgeText(tile))
		mt.videoBadge.Show()
	} else {
		mt.videoBack.Hide()
		mt.videoBadge.Hide()
		if changed {
			mt.loadImage(tile.URI)
		}
		mt.image.Show()
	}
	mt.Refresh()
}

// Tile returns the tile currently shown
func (mt *MediaTile) Tile() gallery.Tile {
	return mt.tile
}

func (mt *MediaTile) createUI() {
	mt.image = canvas.NewImageFromResource(nil)
	mt.image.FillMode = canvas.ImageFillContain
	mt.image.ScaleMode = canvas.ImageScaleFastest
	media := fyne.NewSize(mt.side, mt.side-TileCaptionH)
	mt.image.SetMinSize(media)

	mt.videoBack = canvas.NewRectangle(color.RGBA{R: 30, G: 30, B: 30, A: 255})
	mt.videoBack.SetMinSize(media)
	mt.videoBack.Hide()

	mt.videoBadge = widget.NewLabel("")
	mt.videoBadge.Alignment = fyne.TextAlignCenter
	mt.videoBadge.Hide()

	mt.captionLabel = widget.NewLabel("")
	mt.captionLabel.Truncation = fyne.TextTruncateEllipsis
	mt.captionLabel.TextStyle = fyne.TextStyle{Bold: true}
	mt.sizeLabel = widget.NewLabel("")
	mt.sizeLabel.Importance = widget.LowImportance
}

// loadImage points the canvas at the photo behind uri
func (mt *MediaTile) loadImage(uri string) {
	parsed, err := storage.ParseURI(uri)
	if err != nil {
		mt.image.File = ""
		mt.image.Image = nil
		mt.image.Resource = theme.BrokenImageIcon()
		return
	}
	loaded := canvas.NewImageFromURI(parsed)
	mt.image.File = loaded.File
	mt.image.Resource = loaded.Resource
	mt.image.Image = loaded.Image
}

// TappedSecondary shows the reveal/open menu
func (mt *MediaTile) TappedSecondary(ev *fyne.PointEvent) {
	path, err := platform.PathFromURI(mt.tile.URI)
	if err != nil {
		return
	}

	items := []*fyne.MenuItem{
		fyne.NewMenuItem(mt.localization.GetText(KeyShowInFolder), func() {
			if mt.onReveal != nil {
				mt.onReveal(path)
			}
		}),
	}
	// Fullscreen viewing is offered for photos only
	if mt.tile.AllowsFullscreen || !mt.tile.IsVideo() {
		items = append(items, fyne.NewMenuItem(mt.localization.GetText(KeyOpen), func() {
			if mt.onOpen != nil {
				mt.onOpen(path)
			}
		}))
	}

	c := fyne.CurrentApp().Driver().CanvasForObject(mt)
	if c == nil {
		return
	}
	widget.ShowPopUpMenuAtPosition(fyne.NewMenu("", items...), c, ev.AbsolutePosition)
}

// CreateRenderer creates the widget renderer
func (mt *MediaTile) CreateRenderer() fyne.WidgetRenderer {
	media := container.NewStack(mt.videoBack, mt.image, container.NewCenter(mt.videoBadge))
	caption := container.NewBorder(nil, nil, nil, mt.sizeLabel, mt.captionLabel)
	return widget.NewSimpleRenderer(container.NewBorder(nil, caption, nil, nil, media))
}

// videoBadgeText describes the playback of a video tile
func videoBadgeText(tile gallery.Tile) string {
	parts := []string{IconPlay}
	if tile.Loop {
		parts = append(parts, IconLoop)
	}
	if tile.Muted {
		parts = append(parts, IconMuted)
	}
	return strings.Join(parts, " ")
}

// tileSizeText returns the human size of a local file, empty otherwise
func tileSizeText(uri string) string {
	path, err := platform.PathFromURI(uri)
	if err != nil {
		return ""
	}
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return units.HumanSize(float64(info.Size()))
}
