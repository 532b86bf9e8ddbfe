package ui

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/camroll/internal/capability"
	"github.com/ytget/camroll/internal/config"
	"github.com/ytget/camroll/internal/model"
	"github.com/ytget/camroll/internal/registry"
	"github.com/ytget/camroll/internal/workflow"
)

type allowAll struct{}

func (allowAll) Request(context.Context, capability.Permission) (capability.PermissionStatus, error) {
	return capability.StatusGranted, nil
}

// recordingCamera records until stopped and counts stop requests
type recordingCamera struct {
	mu      sync.Mutex
	stops   int
	started chan struct{}
	stop    chan struct{}
}

func newRecordingCamera() *recordingCamera {
	return &recordingCamera{started: make(chan struct{}, 4), stop: make(chan struct{}, 4)}
}

func (c *recordingCamera) CaptureStill(context.Context, capability.StillOptions) (capability.Still, error) {
	return capability.Still{}, nil
}

func (c *recordingCamera) Record(ctx context.Context, _ capability.RecordOptions) (string, error) {
	c.started <- struct{}{}
	select {
	case <-c.stop:
		return "file:///captures/clip.mp4", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *recordingCamera) StopRecording() {
	c.mu.Lock()
	c.stops++
	c.mu.Unlock()
	c.stop <- struct{}{}
}

func (c *recordingCamera) Stops() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stops
}

func newTestCameraScreen(t *testing.T, cam capability.Camera) (*CameraScreen, *workflow.Controller) {
	t.Helper()
	app := test.NewApp()
	root := &RootUI{
		localization: NewLocalization(),
		mobile:       NewMobileUI(app),
		log:          slog.Default(),
		settings:     config.NewSettings(app),
	}

	cs := NewCameraScreen(context.Background(), workflow.SurfaceCameraOnly, root)
	cs.binding.render = nil
	cs.binding.factory = func(s workflow.Surface) *workflow.Controller {
		return workflow.New(s, workflow.Deps{
			Store:       registry.New(),
			Permissions: allowAll{},
			Camera:      cam,
		}, workflow.Options{Mode: model.ModeVideo})
	}

	ctrl := cs.binding.controller()
	if err := ctrl.Activate(context.Background()); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	return cs, ctrl
}

func TestCameraScreenLeaveStopsRecording(t *testing.T) {
	cam := newRecordingCamera()
	cs, ctrl := newTestCameraScreen(t, cam)

	done := make(chan error, 1)
	go func() { done <- ctrl.Shutter(context.Background()) }()
	select {
	case <-cam.started:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for the recording to start")
	}

	cs.Leave()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Shutter() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for the recording to stop")
	}

	// leaving again after the recording ended starts nothing
	cs.Leave()
	if got := cam.Stops(); got != 1 {
		t.Errorf("camera stops = %d, expected 1", got)
	}
	select {
	case <-cam.started:
		t.Error("Expected no new recording after Leave")
	case <-time.After(50 * time.Millisecond):
	}
	if ctrl.State().Recording() {
		t.Error("Expected controller not to be recording")
	}
}

func TestCameraScreenLeaveWithoutController(t *testing.T) {
	cam := newRecordingCamera()
	cs, _ := newTestCameraScreen(t, cam)
	cs.binding.ctrl = nil

	cs.Leave()
	if got := cam.Stops(); got != 0 {
		t.Errorf("camera stops = %d, expected 0", got)
	}
}

func TestCameraScreenRenderSkipsTransientPhases(t *testing.T) {
	cs, _ := newTestCameraScreen(t, newRecordingCamera())
	ready := cs.localization.GetText(KeyCameraReady)

	cs.render(workflow.State{Phase: model.PhaseActive, Mode: model.ModeVideo})
	for _, phase := range []model.Phase{model.PhaseCommitted, model.PhaseCancelled} {
		cs.render(workflow.State{Phase: phase, Mode: model.ModeVideo})
		if cs.statusLabel.Text != ready {
			t.Errorf("status after %s = %q, expected %q", phase, cs.statusLabel.Text, ready)
		}
		if cs.shutterBtn.Disabled() {
			t.Errorf("Expected shutter enabled after %s", phase)
		}
		if cs.state.Phase != model.PhaseActive {
			t.Errorf("state phase = %s, expected %s", cs.state.Phase, model.PhaseActive)
		}
	}
}
