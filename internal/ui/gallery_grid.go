package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/camroll/internal/gallery"
)

// GalleryGrid shows the gallery view as a wrapping grid of media tiles, or
// the empty-state message when nothing was captured yet
type GalleryGrid struct {
	view         *gallery.View
	localization *Localization
	tileSide     float32

	tiles      binding.UntypedList
	grid       *widget.GridWrap
	emptyLabel *widget.Label
	container  *fyne.Container

	// Callbacks
	onReveal func(filePath string)
	onOpen   func(filePath string)
}

// NewGalleryGrid creates a grid bound to view with square tiles of tileSide;
// zero means TileSize
func NewGalleryGrid(view *gallery.View, localization *Localization, tileSide float32) *GalleryGrid {
	if tileSide <= 0 {
		tileSide = TileSize
	}
	gg := &GalleryGrid{
		view:         view,
		localization: localization,
		tileSide:     tileSide,
		tiles:        binding.NewUntypedList(),
	}
	gg.createUI()

	// Snapshots may arrive from any goroutine
	view.OnChange(func(tiles []gallery.Tile) {
		fyne.Do(func() { gg.setTiles(tiles) })
	})
	gg.setTiles(view.Tiles())
	return gg
}

func (gg *GalleryGrid) createUI() {
	gg.grid = widget.NewGridWrapWithData(
		gg.tiles,
		func() fyne.CanvasObject {
			return NewMediaTile(gg.localization, gg.tileSide)
		},
		func(item binding.DataItem, obj fyne.CanvasObject) {
			gg.updateTile(item, obj)
		},
	)

	gg.emptyLabel = widget.NewLabel(gg.localization.GetText(gallery.EmptyMessageKey))
	gg.emptyLabel.Alignment = fyne.TextAlignCenter
	gg.emptyLabel.Wrapping = fyne.TextWrapWord

	gg.container = container.NewStack(gg.grid, container.NewCenter(gg.emptyLabel))
}

func (gg *GalleryGrid) updateTile(item binding.DataItem, obj fyne.CanvasObject) {
	value, err := item.(binding.Untyped).Get()
	if err != nil {
		return
	}
	tile, ok := value.(gallery.Tile)
	if !ok {
		return
	}
	if mt, ok := obj.(*MediaTile); ok {
		mt.SetCallbacks(gg.onReveal, gg.onOpen)
		mt.SetTile(tile)
	}
}

// setTiles replaces the bound list and toggles the empty state
func (gg *GalleryGrid) setTiles(tiles []gallery.Tile) {
	values := make([]any, len(tiles))
	for i, tile := range tiles {
		values[i] = tile
	}
	_ = gg.tiles.Set(values)

	if len(tiles) == 0 {
		gg.grid.Hide()
		gg.emptyLabel.Show()
	} else {
		gg.emptyLabel.Hide()
		gg.grid.Show()
	}
	gg.grid.Refresh()
}

// SetCallbacks sets the tile action callbacks
func (gg *GalleryGrid) SetCallbacks(onReveal, onOpen func(filePath string)) {
	gg.onReveal = onReveal
	gg.onOpen = onOpen
}

// Len returns the number of bound tiles
func (gg *GalleryGrid) Len() int {
	return gg.tiles.Length()
}

// TileAt returns the bound tile at index i
func (gg *GalleryGrid) TileAt(i int) (gallery.Tile, bool) {
	value, err := gg.tiles.GetValue(i)
	if err != nil {
		return gallery.Tile{}, false
	}
	tile, ok := value.(gallery.Tile)
	return tile, ok
}

// TileSide returns the side of one tile
func (gg *GalleryGrid) TileSide() float32 {
	return gg.tileSide
}

// IsEmptyShown reports whether the empty-state message is visible
func (gg *GalleryGrid) IsEmptyShown() bool {
	return gg.emptyLabel.Visible()
}

// RefreshTexts updates texts after a language change
func (gg *GalleryGrid) RefreshTexts() {
	gg.emptyLabel.SetText(gg.localization.GetText(gallery.EmptyMessageKey))
	gg.grid.Refresh()
}

// Container returns the grid container
func (gg *GalleryGrid) Container() *fyne.Container {
	return gg.container
}
