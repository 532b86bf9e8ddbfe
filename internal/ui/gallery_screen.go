package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/camroll/internal/workflow"
)

// GalleryScreen is "My Photos": the session grid plus library and link
// import. Its permissions are asked on the first import, not on entry, so
// the grid is always viewable.
type GalleryScreen struct {
	binding      *surfaceBinding
	localization *Localization

	grid       *GalleryGrid
	galleryBtn *widget.Button
	linkBar    *LinkBar

	content fyne.CanvasObject
}

// NewGalleryScreen creates the gallery screen
func NewGalleryScreen(ctx context.Context, surface workflow.Surface, root *RootUI) *GalleryScreen {
	gs := &GalleryScreen{localization: root.localization}
	gs.binding = newSurfaceBinding(ctx, surface, root.newController, root.log, gs.render)
	gs.createUI(root)
	return gs
}

func (gs *GalleryScreen) createUI(root *RootUI) {
	gs.grid = NewGalleryGrid(root.galleryView, gs.localization, root.mobile.GalleryTileSize(WindowWidth))
	gs.grid.SetCallbacks(root.onRevealFile, root.onOpenFile)

	gs.galleryBtn = widget.NewButton(IconGallery, gs.onOpenGallery)
	if !gs.binding.surface.Gallery {
		gs.galleryBtn.Hide()
	}

	var top fyne.CanvasObject = container.NewHBox(gs.galleryBtn)
	if gs.binding.surface.LinkImport {
		gs.linkBar = newLinkBar(gs.binding, gs.localization, root.mobile, root.onImportStarted, root.onImportFinished)
		top = container.NewBorder(nil, nil, gs.galleryBtn, nil, gs.linkBar.Container())
	}

	gs.content = container.NewBorder(top, nil, nil, nil, gs.grid.Container())
}

// Content returns the screen content
func (gs *GalleryScreen) Content() fyne.CanvasObject {
	return gs.content
}

// Enter does nothing; the grid follows the registry on its own
func (gs *GalleryScreen) Enter() {}

// Leave does nothing
func (gs *GalleryScreen) Leave() {}

// render disables the import controls while an import is in flight. After a
// denial the next tap starts a new controller and asks again.
func (gs *GalleryScreen) render(s workflow.State) {
	ready := !s.Phase.IsBusy()
	setEnabled(gs.galleryBtn, ready)
	if gs.linkBar != nil {
		gs.linkBar.SetEnabled(ready)
	}
}

func (gs *GalleryScreen) onOpenGallery() {
	gs.binding.run("open_gallery", func(ctx context.Context, c *workflow.Controller) error {
		return c.OpenGallery(ctx)
	}, nil)
}

// Grid returns the gallery grid
func (gs *GalleryScreen) Grid() *GalleryGrid {
	return gs.grid
}

// RefreshTexts updates texts after a language change
func (gs *GalleryScreen) RefreshTexts() {
	gs.grid.RefreshTexts()
	if gs.linkBar != nil {
		gs.linkBar.RefreshTexts()
	}
}
