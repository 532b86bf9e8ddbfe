package capability

import (
	"context"
	"errors"

	"github.com/ytget/camroll/internal/model"
)

// ErrCancelled is returned by providers when the user dismissed the operation.
// It is a no-op signal, never a failure.
var ErrCancelled = errors.New("cancelled by user")

// Permission names a capability that needs a user grant
type Permission string

const (
	PermissionCamera       Permission = "camera"
	PermissionMicrophone   Permission = "microphone"
	PermissionMediaLibrary Permission = "media_library"
)

// PermissionOrder is the fixed order in which permissions are requested
var PermissionOrder = []Permission{PermissionCamera, PermissionMicrophone, PermissionMediaLibrary}

// PermissionStatus is the outcome of a permission request
type PermissionStatus string

const (
	StatusGranted PermissionStatus = "granted"
	StatusDenied  PermissionStatus = "denied"
)

// Granted reports whether s is StatusGranted
func (s PermissionStatus) Granted() bool {
	return s == StatusGranted
}

// Permissions grants access to device capabilities. Implementations cache
// decisions for the session.
type Permissions interface {
	Request(ctx context.Context, p Permission) (PermissionStatus, error)
}

// StillOptions configures a single-shot capture
type StillOptions struct {
	Quality float64 // 0..1
	Facing  model.Facing
}

// Still is the result of a single-shot capture
type Still struct {
	URI     string
	Quality float64
}

// RecordOptions configures a video recording
type RecordOptions struct {
	Facing model.Facing
}

// Camera drives the device camera.
//
// Record blocks until the recording is terminated by StopRecording (or ctx),
// then returns the URI of the recorded file. An empty URI with a nil error
// means nothing was recorded.
type Camera interface {
	CaptureStill(ctx context.Context, opts StillOptions) (Still, error)
	Record(ctx context.Context, opts RecordOptions) (string, error)
	StopRecording()
}

// Source selects where a picker takes media from
type Source string

const (
	SourceLibrary Source = "library"
	SourceCamera  Source = "camera"
)

// PickRequest configures a picker invocation
type PickRequest struct {
	Source   Source
	Multiple bool
	Quality  float64
}

// Picker returns zero or more assets from the media library or the system
// camera. Cancellation is ErrCancelled or an empty slice.
type Picker interface {
	Pick(ctx context.Context, req PickRequest) ([]model.Asset, error)
}

// Fetcher imports media referenced by a shared link
type Fetcher interface {
	Fetch(ctx context.Context, link string) (model.Asset, error)
}

// Screen names a navigation destination
type Screen string

const (
	ScreenCamera       Screen = "camera"
	ScreenGallery      Screen = "gallery"
	ScreenPicker       Screen = "picker"
	ScreenMediaLibrary Screen = "media_library"
)

// Navigator switches screens; calls are fire-and-forget
type Navigator interface {
	Navigate(screen Screen)
	Back()
}

// Notifier shows a user-visible notice
type Notifier interface {
	Notify(title, message string)
}
