package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/docker/go-units"

	"github.com/ytget/camroll/internal/capability"
	"github.com/ytget/camroll/internal/model"
	"github.com/ytget/camroll/internal/platform"
)

// ErrNoSystemCamera means the picker has no camera to launch
var ErrNoSystemCamera = errors.New("no system camera available")

// DialogPicker implements capability.Picker with Fyne dialogs. The media
// library is the capture directory plus any file the user browses to; the
// system camera is a single still from the camera provider.
type DialogPicker struct {
	window       fyne.Window
	localization *Localization
	camera       capability.Camera
	libraryDir   func() string
	facing       func() model.Facing
	log          *slog.Logger
}

var _ capability.Picker = (*DialogPicker)(nil)

// NewDialogPicker creates a picker; camera may be nil
func NewDialogPicker(window fyne.Window, loc *Localization, camera capability.Camera, libraryDir func() string, facing func() model.Facing, logger *slog.Logger) *DialogPicker {
	if logger == nil {
		logger = slog.Default()
	}
	return &DialogPicker{
		window:       window,
		localization: loc,
		camera:       camera,
		libraryDir:   libraryDir,
		facing:       facing,
		log:          logger.With("component", "picker"),
	}
}

// Pick blocks until the user confirms or dismisses the picker
func (p *DialogPicker) Pick(ctx context.Context, req capability.PickRequest) ([]model.Asset, error) {
	switch req.Source {
	case capability.SourceCamera:
		return p.pickFromCamera(ctx, req)
	case capability.SourceLibrary:
		return p.pickFromLibrary(ctx, req)
	default:
		return nil, fmt.Errorf("unknown picker source: %s", req.Source)
	}
}

func (p *DialogPicker) pickFromCamera(ctx context.Context, req capability.PickRequest) ([]model.Asset, error) {
	if p.camera == nil {
		return nil, ErrNoSystemCamera
	}
	facing := model.FacingBack
	if p.facing != nil {
		facing = p.facing()
	}

	still, err := p.camera.CaptureStill(ctx, capability.StillOptions{Quality: req.Quality, Facing: facing})
	if err != nil {
		return nil, err
	}
	if still.URI == "" {
		return nil, nil
	}
	return []model.Asset{assetForURI(still.URI)}, nil
}

type pickResult struct {
	assets []model.Asset
	err    error
}

func (p *DialogPicker) pickFromLibrary(ctx context.Context, req capability.PickRequest) ([]model.Asset, error) {
	dir := ""
	if p.libraryDir != nil {
		dir = p.libraryDir()
	}
	items, err := listLibrary(dir)
	if err != nil {
		return nil, err
	}
	p.log.Debug("media library listed", "dir", dir, "items", len(items))

	result := make(chan pickResult, 1)
	fyne.Do(func() {
		p.showLibraryDialog(newLibrarySelection(items, req.Multiple), result)
	})

	select {
	case r := <-result:
		return r.assets, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// showLibraryDialog lists the library with a check per item. Selection
// order is kept and becomes the import order.
func (p *DialogPicker) showLibraryDialog(sel *librarySelection, result chan<- pickResult) {
	t := p.localization.GetText

	countLabel := widget.NewLabel("")
	updateCount := func() {
		countLabel.SetText(fmt.Sprintf("%d %s", len(sel.order), t(KeySelected)))
	}

	var list *widget.List
	list = widget.NewList(
		func() int { return len(sel.items) },
		func() fyne.CanvasObject {
			check := widget.NewCheck("", nil)
			size := widget.NewLabel("")
			size.Importance = widget.LowImportance
			return container.NewBorder(nil, nil, nil, size, check)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			row := obj.(*fyne.Container)
			check := row.Objects[0].(*widget.Check)
			size := row.Objects[1].(*widget.Label)

			asset := sel.items[id]
			check.OnChanged = nil
			check.Text = asset.FileName
			check.SetChecked(sel.isSelected(id))
			check.OnChanged = func(bool) {
				sel.toggle(id)
				updateCount()
				list.Refresh()
			}
			if asset.Size > 0 {
				size.SetText(units.HumanSize(float64(asset.Size)))
			} else {
				size.SetText("")
			}
		},
	)
	updateCount()

	browseBtn := widget.NewButton(IconFolder+" "+t(KeyBrowse), func() {
		fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			uri := reader.URI()
			reader.Close()
			sel.add(assetForURI(uri.String()))
			updateCount()
			list.Refresh()
		}, p.window)
		fd.SetFilter(storage.NewExtensionFileFilter(mediaExtensions()))
		fd.Show()
	})

	content := container.NewBorder(
		widget.NewLabel(t(KeySelectMedia)),
		container.NewBorder(nil, nil, countLabel, browseBtn),
		nil, nil,
		list,
	)

	d := dialog.NewCustomConfirm(t(KeyTabMediaLibrary), t(KeyImport), t(KeyCancel), content, func(ok bool) {
		if !ok {
			result <- pickResult{err: capability.ErrCancelled}
			return
		}
		result <- pickResult{assets: sel.selected()}
	}, p.window)
	d.Resize(fyne.NewSize(PickerDialogWidth, PickerDialogHeight))
	d.Show()
}

// librarySelection tracks which library items are picked, in pick order
type librarySelection struct {
	items    []model.Asset
	order    []int
	multiple bool
}

func newLibrarySelection(items []model.Asset, multiple bool) *librarySelection {
	return &librarySelection{items: items, multiple: multiple}
}

func (s *librarySelection) isSelected(i int) bool {
	for _, idx := range s.order {
		if idx == i {
			return true
		}
	}
	return false
}

// toggle selects or deselects item i. Single mode replaces the selection.
func (s *librarySelection) toggle(i int) {
	if i < 0 || i >= len(s.items) {
		return
	}
	for pos, idx := range s.order {
		if idx == i {
			s.order = append(s.order[:pos], s.order[pos+1:]...)
			return
		}
	}
	if !s.multiple {
		s.order = s.order[:0]
	}
	s.order = append(s.order, i)
}

// add appends an item found outside the library and selects it
func (s *librarySelection) add(asset model.Asset) {
	s.items = append(s.items, asset)
	s.toggle(len(s.items) - 1)
}

func (s *librarySelection) selected() []model.Asset {
	out := make([]model.Asset, 0, len(s.order))
	for _, idx := range s.order {
		out = append(out, s.items[idx])
	}
	return out
}

// listLibrary returns the media files of dir, newest first. A missing
// directory is an empty library.
func listLibrary(dir string) ([]model.Asset, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read media library: %w", err)
	}

	type item struct {
		asset   model.Asset
		modTime int64
	}
	var items []item
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !platform.IsMediaFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		items = append(items, item{
			asset: model.Asset{
				URI:      storage.NewFileURI(path).String(),
				Type:     platform.AssetTypeForPath(path),
				FileName: entry.Name(),
				Size:     info.Size(),
			},
			modTime: info.ModTime().UnixNano(),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].modTime > items[j].modTime
	})

	assets := make([]model.Asset, len(items))
	for i, it := range items {
		assets[i] = it.asset
	}
	return assets, nil
}

// assetForURI describes the file behind uri
func assetForURI(uri string) model.Asset {
	asset := model.Asset{URI: uri}
	if parsed, err := storage.ParseURI(uri); err == nil {
		asset.FileName = parsed.Name()
		asset.Type = platform.AssetTypeForPath(parsed.Name())
	}
	if path, err := platform.PathFromURI(uri); err == nil {
		if info, err := os.Stat(path); err == nil {
			asset.Size = info.Size()
		}
	}
	return asset
}

func mediaExtensions() []string {
	exts := make([]string, 0, len(platform.ImageExtensions)+len(platform.VideoExtensions))
	exts = append(exts, platform.ImageExtensions...)
	return append(exts, platform.VideoExtensions...)
}
