package workflow

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/ytget/camroll/internal/capability"
	"github.com/ytget/camroll/internal/model"
	"github.com/ytget/camroll/internal/registry"
)

type harness struct {
	ctrl     *Controller
	reg      *registry.Registry
	perms    *fakePermissions
	camera   *fakeCamera
	picker   *fakePicker
	fetcher  *fakeFetcher
	nav      *fakeNavigator
	notifier *fakeNotifier
	phases   *phaseRecorder
}

func newHarness(t *testing.T, surface Surface) *harness {
	t.Helper()

	h := &harness{
		reg:      registry.New(),
		perms:    grantAll(),
		camera:   newFakeCamera(),
		picker:   &fakePicker{},
		fetcher:  &fakeFetcher{},
		nav:      &fakeNavigator{},
		notifier: &fakeNotifier{},
		phases:   &phaseRecorder{},
	}
	h.ctrl = New(surface, Deps{
		Store:       h.reg,
		Permissions: h.perms,
		Camera:      h.camera,
		Picker:      h.picker,
		Fetcher:     h.fetcher,
		Navigator:   h.nav,
		Notifier:    h.notifier,
	}, Options{})
	h.ctrl.OnChange(h.phases.record)
	return h
}

func (h *harness) activate(t *testing.T) {
	t.Helper()
	if err := h.ctrl.Activate(context.Background()); err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
}

func waitSignal(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func waitErr(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for operation to return")
		return nil
	}
}

func TestNewDefaults(t *testing.T) {
	ctrl := New(SurfaceCamera, Deps{}, Options{PhotoQuality: 3, Mode: "bogus"})

	st := ctrl.State()
	if st.Phase != model.PhaseIdle {
		t.Errorf("Phase = %v, expected %v", st.Phase, model.PhaseIdle)
	}
	if st.Mode != model.ModePicture {
		t.Errorf("Mode = %v, expected %v", st.Mode, model.ModePicture)
	}
	if st.Facing != model.FacingBack {
		t.Errorf("Facing = %v, expected %v", st.Facing, model.FacingBack)
	}
	if st.Surface != SurfaceCamera.Name {
		t.Errorf("Surface = %q, expected %q", st.Surface, SurfaceCamera.Name)
	}
	if ctrl.opts.PhotoQuality != DefaultPhotoQuality {
		t.Errorf("PhotoQuality = %v, expected %v", ctrl.opts.PhotoQuality, DefaultPhotoQuality)
	}
	if ctrl.opts.Target != capability.ScreenGallery {
		t.Errorf("Target = %v, expected %v", ctrl.opts.Target, capability.ScreenGallery)
	}
}

func TestActivatePermissionOrder(t *testing.T) {
	tests := []struct {
		name     string
		surface  Surface
		expected []capability.Permission
	}{
		{
			name:    "camera surface",
			surface: SurfaceCamera,
			expected: []capability.Permission{
				capability.PermissionCamera,
				capability.PermissionMicrophone,
				capability.PermissionMediaLibrary,
			},
		},
		{
			name:     "camera only",
			surface:  SurfaceCameraOnly,
			expected: []capability.Permission{capability.PermissionCamera, capability.PermissionMicrophone},
		},
		{
			name:     "picker",
			surface:  SurfacePicker,
			expected: []capability.Permission{capability.PermissionCamera, capability.PermissionMediaLibrary},
		},
		{
			name:     "gallery",
			surface:  SurfaceGallery,
			expected: []capability.Permission{capability.PermissionMediaLibrary},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.surface)
			h.activate(t)

			if got := h.perms.Requested(); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("requested = %v, expected %v", got, tt.expected)
			}
			if st := h.ctrl.State(); st.Phase != model.PhaseActive {
				t.Errorf("Phase = %v, expected %v", st.Phase, model.PhaseActive)
			}
			if len(h.nav.Screens()) != 0 || h.nav.backs != 0 {
				t.Errorf("Expected no navigation, got screens=%v backs=%d", h.nav.Screens(), h.nav.backs)
			}
		})
	}
}

func TestActivateDenied(t *testing.T) {
	h := newHarness(t, SurfaceCamera)
	h.perms.statuses = map[capability.Permission]capability.PermissionStatus{
		capability.PermissionMicrophone: capability.StatusDenied,
	}

	err := h.ctrl.Activate(context.Background())
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("Activate() error = %v, expected %v", err, ErrPermissionDenied)
	}

	if st := h.ctrl.State(); st.Phase != model.PhaseDenied {
		t.Errorf("Phase = %v, expected %v", st.Phase, model.PhaseDenied)
	}
	// every permission is still asked before deciding
	if got := len(h.perms.Requested()); got != 3 {
		t.Errorf("Expected 3 permission requests, got %d", got)
	}
	if h.nav.backs != 1 {
		t.Errorf("Expected 1 back navigation, got %d", h.nav.backs)
	}

	notices := h.notifier.Notices()
	if len(notices) != 1 {
		t.Fatalf("Expected 1 notice, got %d", len(notices))
	}
	if notices[0].title != defaultTexts[TextPermissionsTitle] {
		t.Errorf("notice title = %q, expected %q", notices[0].title, defaultTexts[TextPermissionsTitle])
	}
	if notices[0].message != defaultTexts[TextPermissionsCameraMicGallery] {
		t.Errorf("notice message = %q, expected %q", notices[0].message, defaultTexts[TextPermissionsCameraMicGallery])
	}

	// a denied surface accepts no further capture
	if err := h.ctrl.Shutter(context.Background()); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Shutter() after denial error = %v, expected %v", err, ErrInvalidTransition)
	}
	if err := h.ctrl.OpenGallery(context.Background()); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("OpenGallery() after denial error = %v, expected %v", err, ErrInvalidTransition)
	}
	if h.reg.Len() != 0 {
		t.Errorf("Expected empty registry, got %d entries", h.reg.Len())
	}
}

func TestActivateProviderErrorCountsAsDenied(t *testing.T) {
	h := newHarness(t, SurfaceGallery)
	h.perms.errs = map[capability.Permission]error{
		capability.PermissionMediaLibrary: errors.New("settings unavailable"),
	}

	if err := h.ctrl.Activate(context.Background()); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("Activate() error = %v, expected %v", err, ErrPermissionDenied)
	}
	if st := h.ctrl.State(); st.Phase != model.PhaseDenied {
		t.Errorf("Phase = %v, expected %v", st.Phase, model.PhaseDenied)
	}
}

func TestActivateTwice(t *testing.T) {
	h := newHarness(t, SurfaceCamera)
	h.activate(t)

	if err := h.ctrl.Activate(context.Background()); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second Activate() error = %v, expected %v", err, ErrInvalidTransition)
	}
}

func TestDeniedNoticeUsesTranslator(t *testing.T) {
	h := newHarness(t, SurfaceGallery)
	h.ctrl.texts = mapTranslator{
		TextPermissionsTitle:   "Permissões necessárias",
		TextPermissionsGallery: "Precisamos de acesso à galeria.",
	}
	h.perms.statuses = map[capability.Permission]capability.PermissionStatus{
		capability.PermissionMediaLibrary: capability.StatusDenied,
	}

	_ = h.ctrl.Activate(context.Background())

	notices := h.notifier.Notices()
	if len(notices) != 1 {
		t.Fatalf("Expected 1 notice, got %d", len(notices))
	}
	if notices[0].title != "Permissões necessárias" {
		t.Errorf("notice title = %q", notices[0].title)
	}
	if notices[0].message != "Precisamos de acesso à galeria." {
		t.Errorf("notice message = %q", notices[0].message)
	}
}

func TestPhotoCaptureAndAccept(t *testing.T) {
	h := newHarness(t, SurfaceCamera)
	h.activate(t)

	if err := h.ctrl.Shutter(context.Background()); err != nil {
		t.Fatalf("Shutter() error = %v", err)
	}

	st := h.ctrl.State()
	if st.Phase != model.PhasePreviewing {
		t.Fatalf("Phase = %v, expected %v", st.Phase, model.PhasePreviewing)
	}
	if st.PendingURI != h.camera.still.URI {
		t.Errorf("PendingURI = %q, expected %q", st.PendingURI, h.camera.still.URI)
	}
	if h.reg.Len() != 0 {
		t.Errorf("Expected nothing committed before Accept, got %d entries", h.reg.Len())
	}
	if opts := h.camera.stillOpts; len(opts) != 1 || opts[0].Quality != DefaultPhotoQuality {
		t.Errorf("still options = %+v, expected quality %v", opts, DefaultPhotoQuality)
	}

	if err := h.ctrl.Accept(); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}

	entries := h.reg.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].URI != h.camera.still.URI || entries[0].Kind != model.KindPhoto {
		t.Errorf("entry = %+v, expected photo %q", entries[0], h.camera.still.URI)
	}

	st = h.ctrl.State()
	if st.Phase != model.PhaseActive {
		t.Errorf("Phase = %v, expected %v", st.Phase, model.PhaseActive)
	}
	if st.PendingURI != "" {
		t.Errorf("PendingURI = %q, expected empty", st.PendingURI)
	}
	if st.LastCommitted != 1 {
		t.Errorf("LastCommitted = %d, expected 1", st.LastCommitted)
	}
	if got := h.nav.Screens(); !reflect.DeepEqual(got, []capability.Screen{capability.ScreenGallery}) {
		t.Errorf("navigated = %v, expected [gallery]", got)
	}

	expected := []model.Phase{
		model.PhasePermissionPending,
		model.PhaseActive,
		model.PhaseCapturing,
		model.PhasePreviewing,
		model.PhaseCommitted,
		model.PhaseActive,
	}
	if got := h.phases.Phases(); !reflect.DeepEqual(got, expected) {
		t.Errorf("phases = %v, expected %v", got, expected)
	}
}

func TestRetakeDiscardsStill(t *testing.T) {
	h := newHarness(t, SurfaceCamera)
	h.activate(t)

	if err := h.ctrl.Shutter(context.Background()); err != nil {
		t.Fatalf("Shutter() error = %v", err)
	}
	if err := h.ctrl.Retake(); err != nil {
		t.Fatalf("Retake() error = %v", err)
	}

	st := h.ctrl.State()
	if st.Phase != model.PhaseActive || st.PendingURI != "" {
		t.Errorf("state = %+v, expected Active without pending still", st)
	}
	if h.reg.Len() != 0 {
		t.Errorf("Expected empty registry, got %d entries", h.reg.Len())
	}
	if len(h.nav.Screens()) != 0 {
		t.Errorf("Expected no navigation, got %v", h.nav.Screens())
	}

	if err := h.ctrl.Accept(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Accept() after Retake error = %v, expected %v", err, ErrInvalidTransition)
	}
}

func TestShutterWhilePreviewing(t *testing.T) {
	h := newHarness(t, SurfaceCamera)
	h.activate(t)

	if err := h.ctrl.Shutter(context.Background()); err != nil {
		t.Fatalf("Shutter() error = %v", err)
	}
	if err := h.ctrl.Shutter(context.Background()); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Shutter() while previewing error = %v, expected %v", err, ErrInvalidTransition)
	}
}

func TestCaptureFailure(t *testing.T) {
	tests := []struct {
		name     string
		still    capability.Still
		stillErr error
	}{
		{name: "camera error", stillErr: errors.New("sensor busy")},
		{name: "no image", still: capability.Still{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, SurfaceCamera)
			h.camera.still = tt.still
			h.camera.stillErr = tt.stillErr
			h.activate(t)

			err := h.ctrl.Shutter(context.Background())
			if !errors.Is(err, ErrCaptureFailed) {
				t.Fatalf("Shutter() error = %v, expected %v", err, ErrCaptureFailed)
			}
			if st := h.ctrl.State(); st.Phase != model.PhaseActive {
				t.Errorf("Phase = %v, expected %v", st.Phase, model.PhaseActive)
			}
			if h.reg.Len() != 0 {
				t.Errorf("Expected empty registry, got %d entries", h.reg.Len())
			}
			notices := h.notifier.Notices()
			if len(notices) != 1 || notices[0].message != defaultTexts[TextCaptureFailed] {
				t.Errorf("notices = %+v, expected capture failure notice", notices)
			}
		})
	}
}

func TestCaptureCancelled(t *testing.T) {
	h := newHarness(t, SurfaceCamera)
	h.camera.stillErr = capability.ErrCancelled
	h.activate(t)

	if err := h.ctrl.Shutter(context.Background()); err != nil {
		t.Fatalf("Shutter() error = %v", err)
	}
	if st := h.ctrl.State(); st.Phase != model.PhaseActive {
		t.Errorf("Phase = %v, expected %v", st.Phase, model.PhaseActive)
	}
	if len(h.notifier.Notices()) != 0 {
		t.Errorf("Expected no notices, got %+v", h.notifier.Notices())
	}
}

// startRecording switches to video and fires the shutter in the background
func startRecording(t *testing.T, h *harness) <-chan error {
	t.Helper()
	if err := h.ctrl.ToggleMode(); err != nil {
		t.Fatalf("ToggleMode() error = %v", err)
	}
	done := make(chan error, 1)
	go func() {
		done <- h.ctrl.Shutter(context.Background())
	}()
	waitSignal(t, h.camera.started, "recording start")
	return done
}

func TestVideoRecordStartStop(t *testing.T) {
	h := newHarness(t, SurfaceCamera)
	h.activate(t)

	done := startRecording(t, h)

	if !h.ctrl.State().Recording() {
		t.Fatal("Expected Recording() to be true while recording")
	}
	if err := h.ctrl.ToggleMode(); !errors.Is(err, ErrRecordingInProgress) {
		t.Errorf("ToggleMode() while recording error = %v, expected %v", err, ErrRecordingInProgress)
	}
	if err := h.ctrl.OpenGallery(context.Background()); !errors.Is(err, ErrBusy) {
		t.Errorf("OpenGallery() while recording error = %v, expected %v", err, ErrBusy)
	}

	// second press stops the recording
	if err := h.ctrl.Shutter(context.Background()); err != nil {
		t.Fatalf("stop Shutter() error = %v", err)
	}
	if err := waitErr(t, done); err != nil {
		t.Fatalf("recording Shutter() error = %v", err)
	}

	entries := h.reg.All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Kind != model.KindVideo || entries[0].URI != h.camera.recordURI {
		t.Errorf("entry = %+v, expected video %q", entries[0], h.camera.recordURI)
	}

	st := h.ctrl.State()
	if st.Recording() {
		t.Error("Expected Recording() to be false after stop")
	}
	if st.Mode != model.ModeVideo {
		t.Errorf("Mode = %v, expected %v", st.Mode, model.ModeVideo)
	}
	if h.phases.Saw(model.PhasePreviewing) {
		t.Error("Expected video flow to skip previewing")
	}
	if got := h.nav.Screens(); len(got) != 1 {
		t.Errorf("Expected 1 navigation, got %v", got)
	}
}

func TestVideoRecordFailure(t *testing.T) {
	h := newHarness(t, SurfaceCamera)
	h.camera.recordErr = errors.New("encoder crashed")
	h.activate(t)

	done := startRecording(t, h)
	h.camera.StopRecording()

	if err := waitErr(t, done); !errors.Is(err, ErrRecordingFailed) {
		t.Fatalf("Shutter() error = %v, expected %v", err, ErrRecordingFailed)
	}
	if h.reg.Len() != 0 {
		t.Errorf("Expected empty registry, got %d entries", h.reg.Len())
	}
	st := h.ctrl.State()
	if st.Recording() || st.Phase != model.PhaseActive {
		t.Errorf("state = %+v, expected Active and not recording", st)
	}
	if len(h.nav.Screens()) != 0 {
		t.Errorf("Expected no navigation, got %v", h.nav.Screens())
	}
}

func TestVideoRecordNothingRecorded(t *testing.T) {
	h := newHarness(t, SurfaceCamera)
	h.camera.recordURI = ""
	h.activate(t)

	done := startRecording(t, h)
	h.camera.StopRecording()

	if err := waitErr(t, done); err != nil {
		t.Fatalf("Shutter() error = %v", err)
	}
	if h.reg.Len() != 0 {
		t.Errorf("Expected empty registry, got %d entries", h.reg.Len())
	}
	if st := h.ctrl.State(); st.Phase != model.PhaseActive {
		t.Errorf("Phase = %v, expected %v", st.Phase, model.PhaseActive)
	}
}

func TestStopRecording(t *testing.T) {
	h := newHarness(t, SurfaceCamera)
	h.activate(t)

	done := startRecording(t, h)
	if !h.ctrl.StopRecording() {
		t.Fatal("Expected StopRecording() to stop the running recording")
	}
	if err := waitErr(t, done); err != nil {
		t.Fatalf("Shutter() error = %v", err)
	}

	// already stopped: nothing is stopped and nothing new is started
	if h.ctrl.StopRecording() {
		t.Error("Expected StopRecording() to report no recording")
	}
	if got := h.camera.Stops(); got != 1 {
		t.Errorf("camera stops = %d, expected 1", got)
	}
	select {
	case <-h.camera.started:
		t.Error("Expected no new recording to start")
	default:
	}
	if st := h.ctrl.State(); st.Recording() {
		t.Errorf("Phase = %v, expected not recording", st.Phase)
	}
	if h.reg.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", h.reg.Len())
	}
}

func TestStopRecordingIdle(t *testing.T) {
	h := newHarness(t, SurfaceCamera)
	h.activate(t)

	if h.ctrl.StopRecording() {
		t.Error("Expected StopRecording() to do nothing when not recording")
	}
	if got := h.camera.Stops(); got != 0 {
		t.Errorf("camera stops = %d, expected 0", got)
	}

	picker := newHarness(t, SurfacePicker)
	if picker.ctrl.StopRecording() {
		t.Error("Expected StopRecording() to do nothing without an in-app camera")
	}
}

func TestToggleFacing(t *testing.T) {
	h := newHarness(t, SurfaceCamera)

	if err := h.ctrl.ToggleFacing(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("ToggleFacing() before Activate error = %v, expected %v", err, ErrInvalidTransition)
	}

	h.activate(t)
	if err := h.ctrl.ToggleFacing(); err != nil {
		t.Fatalf("ToggleFacing() error = %v", err)
	}
	if err := h.ctrl.Shutter(context.Background()); err != nil {
		t.Fatalf("Shutter() error = %v", err)
	}
	if got := h.camera.stillOpts[0].Facing; got != model.FacingFront {
		t.Errorf("Facing = %v, expected %v", got, model.FacingFront)
	}
}

func TestCameraActionsUnsupported(t *testing.T) {
	h := newHarness(t, SurfaceGallery)
	h.activate(t)

	if err := h.ctrl.Shutter(context.Background()); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Shutter() error = %v, expected %v", err, ErrUnsupported)
	}
	if err := h.ctrl.ToggleMode(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("ToggleMode() error = %v, expected %v", err, ErrUnsupported)
	}
	if err := h.ctrl.LaunchCamera(context.Background()); !errors.Is(err, ErrUnsupported) {
		t.Errorf("LaunchCamera() error = %v, expected %v", err, ErrUnsupported)
	}
}

func TestOpenGalleryBatchOrder(t *testing.T) {
	h := newHarness(t, SurfaceCamera)
	h.picker.assets = []model.Asset{
		{URI: "file:///lib/a.jpg", Type: "image"},
		{URI: "file:///lib/b.mp4", Type: "video"},
		{URI: "file:///lib/c.png", Type: "image"},
	}
	h.reg.Add("file:///captures/older.jpg", model.KindPhoto)
	h.activate(t)

	if err := h.ctrl.OpenGallery(context.Background()); err != nil {
		t.Fatalf("OpenGallery() error = %v", err)
	}

	req := h.picker.requests[0]
	if req.Source != capability.SourceLibrary || !req.Multiple || req.Quality != DefaultPickQuality {
		t.Errorf("pick request = %+v", req)
	}

	entries := h.reg.All()
	expected := []struct {
		uri  string
		kind model.MediaKind
	}{
		{"file:///lib/a.jpg", model.KindPhoto},
		{"file:///lib/b.mp4", model.KindVideo},
		{"file:///lib/c.png", model.KindPhoto},
		{"file:///captures/older.jpg", model.KindPhoto},
	}
	if len(entries) != len(expected) {
		t.Fatalf("Expected %d entries, got %d", len(expected), len(entries))
	}
	for i, exp := range expected {
		if entries[i].URI != exp.uri || entries[i].Kind != exp.kind {
			t.Errorf("entries[%d] = %s/%s, expected %s/%s", i, entries[i].URI, entries[i].Kind, exp.uri, exp.kind)
		}
	}

	if st := h.ctrl.State(); st.LastCommitted != 3 || st.Phase != model.PhaseActive {
		t.Errorf("state = %+v, expected Active with 3 committed", st)
	}
	if got := h.nav.Screens(); len(got) != 1 {
		t.Errorf("Expected exactly 1 navigation for the batch, got %v", got)
	}
}

func TestOpenGalleryCancelled(t *testing.T) {
	tests := []struct {
		name   string
		assets []model.Asset
		err    error
	}{
		{name: "cancel error", err: capability.ErrCancelled},
		{name: "empty selection", assets: []model.Asset{}},
		{name: "only unusable assets", assets: []model.Asset{{Type: "image"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, SurfaceGallery)
			h.picker.assets = tt.assets
			h.picker.err = tt.err
			h.activate(t)

			if err := h.ctrl.OpenGallery(context.Background()); err != nil {
				t.Fatalf("OpenGallery() error = %v", err)
			}
			if h.reg.Len() != 0 {
				t.Errorf("Expected empty registry, got %d entries", h.reg.Len())
			}
			if len(h.nav.Screens()) != 0 {
				t.Errorf("Expected no navigation, got %v", h.nav.Screens())
			}
			if !h.phases.Saw(model.PhaseCancelled) {
				t.Error("Expected to pass through Cancelled")
			}
			if st := h.ctrl.State(); st.Phase != model.PhaseActive || st.LastCommitted != 0 {
				t.Errorf("state = %+v, expected Active with nothing committed", st)
			}
		})
	}
}

func TestOpenGalleryFailure(t *testing.T) {
	h := newHarness(t, SurfaceGallery)
	h.picker.err = errors.New("library unavailable")
	h.activate(t)

	if err := h.ctrl.OpenGallery(context.Background()); !errors.Is(err, ErrPickFailed) {
		t.Fatalf("OpenGallery() error = %v, expected %v", err, ErrPickFailed)
	}
	if st := h.ctrl.State(); st.Phase != model.PhaseActive {
		t.Errorf("Phase = %v, expected %v", st.Phase, model.PhaseActive)
	}
	notices := h.notifier.Notices()
	if len(notices) != 1 || notices[0].message != defaultTexts[TextGalleryFailed] {
		t.Errorf("notices = %+v, expected gallery failure notice", notices)
	}
}

func TestBusyWhilePicking(t *testing.T) {
	h := newHarness(t, SurfaceCamera)
	h.picker.entered = make(chan struct{}, 1)
	h.picker.release = make(chan struct{})
	h.picker.assets = []model.Asset{{URI: "file:///lib/a.jpg", Type: "image"}}
	h.activate(t)

	done := make(chan error, 1)
	go func() {
		done <- h.ctrl.OpenGallery(context.Background())
	}()
	waitSignal(t, h.picker.entered, "picker")

	if err := h.ctrl.Shutter(context.Background()); !errors.Is(err, ErrBusy) {
		t.Errorf("Shutter() while picking error = %v, expected %v", err, ErrBusy)
	}
	if err := h.ctrl.OpenGallery(context.Background()); !errors.Is(err, ErrBusy) {
		t.Errorf("OpenGallery() while picking error = %v, expected %v", err, ErrBusy)
	}
	if err := h.ctrl.ImportLink(context.Background(), "https://example.com/v"); !errors.Is(err, ErrBusy) {
		t.Errorf("ImportLink() while picking error = %v, expected %v", err, ErrBusy)
	}

	close(h.picker.release)
	if err := waitErr(t, done); err != nil {
		t.Fatalf("OpenGallery() error = %v", err)
	}
	if h.reg.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", h.reg.Len())
	}
}

func TestLaunchCameraCommitsSingleAsset(t *testing.T) {
	h := newHarness(t, SurfacePicker)
	h.picker.assets = []model.Asset{
		{URI: "file:///dcim/IMG_1.jpg", Type: "image"},
		{URI: "file:///dcim/IMG_2.jpg", Type: "image"},
	}
	h.activate(t)

	if err := h.ctrl.LaunchCamera(context.Background()); err != nil {
		t.Fatalf("LaunchCamera() error = %v", err)
	}

	req := h.picker.requests[0]
	if req.Source != capability.SourceCamera || req.Multiple {
		t.Errorf("pick request = %+v, expected single camera pick", req)
	}
	entries := h.reg.All()
	if len(entries) != 1 || entries[0].URI != "file:///dcim/IMG_1.jpg" {
		t.Errorf("entries = %+v, expected only IMG_1", entries)
	}
}

func TestImportLink(t *testing.T) {
	h := newHarness(t, SurfaceCamera)
	h.fetcher.asset = model.Asset{URI: "/downloads/clip.mp4", Type: "video"}
	h.activate(t)

	if err := h.ctrl.ImportLink(context.Background(), "  https://example.com/watch?v=1  "); err != nil {
		t.Fatalf("ImportLink() error = %v", err)
	}
	if got := h.fetcher.links; !reflect.DeepEqual(got, []string{"https://example.com/watch?v=1"}) {
		t.Errorf("fetched links = %v", got)
	}
	entries := h.reg.All()
	if len(entries) != 1 || entries[0].Kind != model.KindVideo {
		t.Errorf("entries = %+v, expected one video", entries)
	}
	if len(h.nav.Screens()) != 1 {
		t.Errorf("Expected 1 navigation, got %v", h.nav.Screens())
	}
}

func TestImportLinkErrors(t *testing.T) {
	tests := []struct {
		name  string
		link  string
		asset model.Asset
		err   error
	}{
		{name: "empty link", link: "   "},
		{name: "fetch error", link: "https://example.com/v", err: errors.New("404")},
		{name: "no file", link: "https://example.com/v"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, SurfaceGallery)
			h.fetcher.asset = tt.asset
			h.fetcher.err = tt.err
			h.activate(t)

			if err := h.ctrl.ImportLink(context.Background(), tt.link); !errors.Is(err, ErrImportFailed) {
				t.Fatalf("ImportLink() error = %v, expected %v", err, ErrImportFailed)
			}
			if h.reg.Len() != 0 {
				t.Errorf("Expected empty registry, got %d entries", h.reg.Len())
			}
			if st := h.ctrl.State(); st.Phase != model.PhaseActive {
				t.Errorf("Phase = %v, expected %v", st.Phase, model.PhaseActive)
			}
		})
	}
}

func TestRegistryUpdatedBeforeNavigation(t *testing.T) {
	h := newHarness(t, SurfaceCamera)
	var lenAtNavigate int
	h.nav.onNavigate = func() { lenAtNavigate = h.reg.Len() }

	var committedSeen int
	h.ctrl.OnChange(func(s State) {
		if s.Phase == model.PhaseCommitted {
			committedSeen = h.reg.Len()
		}
	})
	h.activate(t)

	if err := h.ctrl.Shutter(context.Background()); err != nil {
		t.Fatalf("Shutter() error = %v", err)
	}
	if err := h.ctrl.Accept(); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}

	if committedSeen != 1 {
		t.Errorf("registry length at Committed = %d, expected 1", committedSeen)
	}
	if lenAtNavigate != 1 {
		t.Errorf("registry length at navigation = %d, expected 1", lenAtNavigate)
	}
}
