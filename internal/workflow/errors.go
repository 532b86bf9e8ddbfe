package workflow

import "errors"

var (
	// ErrPermissionDenied is terminal for the controller instance
	ErrPermissionDenied = errors.New("permission denied")

	// ErrCaptureFailed means a still capture failed; the controller is back in Active
	ErrCaptureFailed = errors.New("capture failed")

	// ErrRecordingFailed means a recording failed; nothing was committed
	ErrRecordingFailed = errors.New("recording failed")

	// ErrPickFailed means the gallery or system camera could not be opened
	ErrPickFailed = errors.New("pick failed")

	// ErrImportFailed means a shared link could not be imported
	ErrImportFailed = errors.New("import failed")

	// ErrBusy means another operation is still in flight on this surface
	ErrBusy = errors.New("operation already in progress")

	// ErrInvalidTransition means the operation is not allowed in the current phase
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrRecordingInProgress rejects mode changes while recording
	ErrRecordingInProgress = errors.New("recording in progress")

	// ErrUnsupported means the surface does not offer the operation
	ErrUnsupported = errors.New("not supported on this surface")
)
