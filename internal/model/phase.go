package model

// Phase is the single current state of a capture workflow
type Phase string

const (
	// PhaseIdle means the surface has not been activated yet
	PhaseIdle Phase = "Idle"

	// PhasePermissionPending means permissions are being requested
	PhasePermissionPending Phase = "PermissionPending"

	// PhaseActive means the surface is ready for user input
	PhaseActive Phase = "Active"

	// PhaseDenied means a required permission was refused; terminal
	PhaseDenied Phase = "Denied"

	// PhaseCapturing means a still capture is in flight
	PhaseCapturing Phase = "Capturing"

	// PhasePreviewing means a captured photo awaits retake or accept
	PhasePreviewing Phase = "Previewing"

	// PhaseRecording means a video recording is in progress
	PhaseRecording Phase = "Recording"

	// PhasePicking means a picker, camera launch or link import is in flight
	PhasePicking Phase = "Picking"

	// PhaseCommitted is entered briefly after media reaches the registry
	PhaseCommitted Phase = "Committed"

	// PhaseCancelled is entered briefly when the user dismissed a picker
	PhaseCancelled Phase = "Cancelled"
)

// String returns the string representation of Phase
func (p Phase) String() string {
	return string(p)
}

// IsBusy returns true while a provider operation is outstanding
func (p Phase) IsBusy() bool {
	return p == PhasePermissionPending || p == PhaseCapturing || p == PhaseRecording || p == PhasePicking
}

// IsTerminal returns true if the workflow can no longer accept input
func (p Phase) IsTerminal() bool {
	return p == PhaseDenied
}

// IsTransient returns true for phases that are only reported to observers
// on the way back to Active
func (p Phase) IsTransient() bool {
	return p == PhaseCommitted || p == PhaseCancelled
}
