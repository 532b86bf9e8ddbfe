// Package registry holds the session's media: an ordered, append-only
// collection where the most recent commit comes first. Observers are
// notified synchronously on every commit, so by the time Add returns every
// subscriber already holds the new snapshot.
package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/camroll/internal/model"
)

// EntryIDPrefix prefixes generated entry IDs
const EntryIDPrefix = "media-"

// Listener receives registry snapshots, most recent first
type Listener func([]model.MediaEntry)

// Registry is the single source of truth for captured and imported media
type Registry struct {
	mu      sync.RWMutex
	entries []model.MediaEntry // insertion order; read newest-first

	// notifyMu serializes commit+notify so listeners see snapshots in commit order
	notifyMu  sync.Mutex
	listeners map[int]Listener
	nextID    int

	now func() time.Time
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		listeners: make(map[int]Listener),
		now:       time.Now,
	}
}

// Add inserts a new entry at the front and notifies every subscriber before
// returning. Calling Add on a nil registry is a programming error and panics.
func (r *Registry) Add(uri string, kind model.MediaKind) model.MediaEntry {
	if r == nil {
		panic("registry: Add called before the registry was initialized")
	}

	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	r.mu.Lock()
	entry := r.newEntry(uri, kind)
	r.entries = append(r.entries, entry)
	snapshot := r.snapshotLocked()
	listeners := r.listenersLocked()
	r.mu.Unlock()

	notify(listeners, snapshot)
	return entry
}

// AddAll commits a batch so that it occupies the front of the registry in
// the given order: assets[0] ends up first. Subscribers are notified once.
// This differs from calling Add per asset, which would leave the last
// picked asset first.
func (r *Registry) AddAll(assets []model.Asset) []model.MediaEntry {
	if r == nil {
		panic("registry: AddAll called before the registry was initialized")
	}
	if len(assets) == 0 {
		return nil
	}

	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	r.mu.Lock()
	added := make([]model.MediaEntry, len(assets))
	for i, asset := range assets {
		added[i] = r.newEntry(asset.URI, asset.Kind())
	}
	// storage is oldest-first, so the batch goes in reversed
	for i := len(added) - 1; i >= 0; i-- {
		r.entries = append(r.entries, added[i])
	}
	snapshot := r.snapshotLocked()
	listeners := r.listenersLocked()
	r.mu.Unlock()

	notify(listeners, snapshot)
	return added
}

// All returns the current entries, most recent first
func (r *Registry) All() []model.MediaEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

// Len returns the number of committed entries
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Subscribe registers fn and immediately calls it with the current snapshot.
// fn must not commit to the registry or unsubscribe from inside a call.
// The returned func removes fn.
func (r *Registry) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}

	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	fn(snapshot)

	// Taking notifyMu waits out a notification in progress, so fn is never
	// called once the returned func has returned
	return func() {
		r.notifyMu.Lock()
		defer r.notifyMu.Unlock()

		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

// newEntry stamps a new entry. Unknown kinds are mapped the way pickers
// report them, so anything but an image is a video.
func (r *Registry) newEntry(uri string, kind model.MediaKind) model.MediaEntry {
	if !kind.Valid() {
		kind = model.KindFromAssetType(string(kind))
	}
	return model.MediaEntry{
		ID:      generateEntryID(),
		URI:     uri,
		Kind:    kind,
		AddedAt: r.now(),
	}
}

func (r *Registry) snapshotLocked() []model.MediaEntry {
	out := make([]model.MediaEntry, len(r.entries))
	for i, entry := range r.entries {
		out[len(r.entries)-1-i] = entry
	}
	return out
}

// listenersLocked returns listeners in subscription order
func (r *Registry) listenersLocked() []Listener {
	out := make([]Listener, 0, len(r.listeners))
	for id := 0; id < r.nextID; id++ {
		if fn, ok := r.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(listeners []Listener, snapshot []model.MediaEntry) {
	for _, fn := range listeners {
		fn(snapshot)
	}
}

// generateEntryID returns a time-ordered unique ID
func generateEntryID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(EntryIDPrefix+"%d", time.Now().UnixNano())
	}
	return EntryIDPrefix + id.String()
}
