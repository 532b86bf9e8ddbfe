package model

// CaptureMode gates which shutter behavior is active
type CaptureMode string

const (
	ModePicture CaptureMode = "picture"
	ModeVideo   CaptureMode = "video"
)

// Toggle returns the other capture mode
func (m CaptureMode) Toggle() CaptureMode {
	if m == ModeVideo {
		return ModePicture
	}
	return ModeVideo
}

// Valid reports whether m is a known mode
func (m CaptureMode) Valid() bool {
	return m == ModePicture || m == ModeVideo
}

// Facing selects the camera lens
type Facing string

const (
	FacingBack  Facing = "back"
	FacingFront Facing = "front"
)

// Toggle returns the opposite lens
func (f Facing) Toggle() Facing {
	if f == FacingFront {
		return FacingBack
	}
	return FacingFront
}

// Valid reports whether f is a known facing
func (f Facing) Valid() bool {
	return f == FacingBack || f == FacingFront
}
