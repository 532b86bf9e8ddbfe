package model

import (
	"strings"
	"time"
)

// MediaKind distinguishes still photos from videos
type MediaKind string

const (
	KindPhoto MediaKind = "photo"
	KindVideo MediaKind = "video"
)

// Asset type reported by media pickers for still images
const AssetTypeImage = "image"

// String returns the string representation of MediaKind
func (k MediaKind) String() string {
	return string(k)
}

// Valid reports whether k is one of the known kinds
func (k MediaKind) Valid() bool {
	return k == KindPhoto || k == KindVideo
}

// KindFromAssetType maps a picker-reported asset type to a MediaKind.
// Only "image" is a photo; everything else is treated as video.
func KindFromAssetType(assetType string) MediaKind {
	if strings.EqualFold(strings.TrimSpace(assetType), AssetTypeImage) {
		return KindPhoto
	}
	return KindVideo
}

// MediaEntry is one captured or imported item of the session
type MediaEntry struct {
	ID      string    // unique per commit, distinguishes duplicate URIs
	URI     string    // opaque resource locator, never validated
	Kind    MediaKind // photo or video
	AddedAt time.Time // commit time
}

// Key returns the render identity of the entry
func (e MediaEntry) Key() string {
	return e.URI
}

// IsVideo reports whether the entry is a video
func (e MediaEntry) IsVideo() bool {
	return e.Kind == KindVideo
}

// GetDisplayName returns the last path element of the URI without extension,
// or the URI itself when no name can be derived
func (e MediaEntry) GetDisplayName() string {
	uri := strings.TrimSpace(e.URI)
	if uri == "" {
		return ""
	}

	parts := strings.FieldsFunc(uri, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return uri
	}

	name := parts[len(parts)-1]
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return name
}

// Asset is a single item returned by a picker, camera launcher or fetcher
// before it is committed to the registry
type Asset struct {
	URI      string
	Type     string // provider-reported type ("image", "video", ...)
	FileName string
	Size     int64 // bytes, 0 if unknown
}

// Kind infers the MediaKind of the asset from its reported type
func (a Asset) Kind() MediaKind {
	return KindFromAssetType(a.Type)
}
