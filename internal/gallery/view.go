// Package gallery turns registry snapshots into renderable tiles. It holds no
// media of its own: every tile is derived from the latest registry snapshot.
package gallery

import (
	"sync"

	"github.com/ytget/camroll/internal/model"
	"github.com/ytget/camroll/internal/registry"
)

// EmptyMessageKey is the localization key shown instead of an empty grid
const EmptyMessageKey = "gallery_empty"

// Source is the registry contract the view observes
type Source interface {
	Subscribe(fn registry.Listener) func()
}

// Tile describes how one entry is rendered
type Tile struct {
	Key     string // render identity, the entry URI
	EntryID string
	URI     string
	Kind    model.MediaKind
	Caption string

	// video playback
	Loop             bool
	Muted            bool
	AutoPlay         bool
	AllowsFullscreen bool
}

// IsVideo reports whether the tile plays a video
func (t Tile) IsVideo() bool {
	return t.Kind == model.KindVideo
}

// TileFor builds the tile of entry. Videos loop muted and start on their own;
// fullscreen is never offered.
func TileFor(entry model.MediaEntry) Tile {
	tile := Tile{
		Key:     entry.Key(),
		EntryID: entry.ID,
		URI:     entry.URI,
		Kind:    entry.Kind,
		Caption: entry.GetDisplayName(),
	}
	if entry.IsVideo() {
		tile.Loop = true
		tile.Muted = true
		tile.AutoPlay = true
	}
	return tile
}

// View mirrors the registry as a list of tiles
type View struct {
	mu          sync.RWMutex
	tiles       []Tile
	listeners   []func([]Tile)
	unsubscribe func()
}

// New creates a view and subscribes it to src
func New(src Source) *View {
	v := &View{}
	v.unsubscribe = src.Subscribe(v.apply)
	return v
}

// Tiles returns one tile per entry in registry order
func (v *View) Tiles() []Tile {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]Tile(nil), v.tiles...)
}

// Len returns the number of tiles
func (v *View) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.tiles)
}

// Empty reports whether the empty-state message should be shown
func (v *View) Empty() bool {
	return v.Len() == 0
}

// OnChange registers fn; it is called synchronously on every registry change
func (v *View) OnChange(fn func([]Tile)) {
	if fn == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listeners = append(v.listeners, fn)
}

// Close stops observing the registry
func (v *View) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
	}
}

func (v *View) apply(entries []model.MediaEntry) {
	tiles := make([]Tile, len(entries))
	for i, entry := range entries {
		tiles[i] = TileFor(entry)
	}

	v.mu.Lock()
	v.tiles = tiles
	listeners := append([]func([]Tile)(nil), v.listeners...)
	v.mu.Unlock()

	for _, fn := range listeners {
		fn(append([]Tile(nil), tiles...))
	}
}
