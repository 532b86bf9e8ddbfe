package workflow

import (
	"context"
	"sync"

	"github.com/ytget/camroll/internal/capability"
	"github.com/ytget/camroll/internal/model"
)

type fakePermissions struct {
	mu        sync.Mutex
	statuses  map[capability.Permission]capability.PermissionStatus
	errs      map[capability.Permission]error
	requested []capability.Permission
}

func grantAll() *fakePermissions {
	return &fakePermissions{}
}

func (f *fakePermissions) Request(_ context.Context, p capability.Permission) (capability.PermissionStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requested = append(f.requested, p)
	if err := f.errs[p]; err != nil {
		return "", err
	}
	if status, ok := f.statuses[p]; ok {
		return status, nil
	}
	return capability.StatusGranted, nil
}

func (f *fakePermissions) Requested() []capability.Permission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]capability.Permission(nil), f.requested...)
}

type fakeCamera struct {
	mu         sync.Mutex
	still      capability.Still
	stillErr   error
	stillOpts  []capability.StillOptions
	recordURI  string
	recordErr  error
	recordOpts []capability.RecordOptions
	stops      int

	started  chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
}

func newFakeCamera() *fakeCamera {
	return &fakeCamera{
		still:     capability.Still{URI: "file:///captures/still.jpg", Quality: DefaultPhotoQuality},
		recordURI: "file:///captures/clip.mp4",
		started:   make(chan struct{}, 1),
		stop:      make(chan struct{}),
	}
}

func (f *fakeCamera) CaptureStill(_ context.Context, opts capability.StillOptions) (capability.Still, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stillOpts = append(f.stillOpts, opts)
	return f.still, f.stillErr
}

func (f *fakeCamera) Record(ctx context.Context, opts capability.RecordOptions) (string, error) {
	f.mu.Lock()
	f.recordOpts = append(f.recordOpts, opts)
	f.mu.Unlock()

	f.started <- struct{}{}
	select {
	case <-f.stop:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return f.recordURI, f.recordErr
}

func (f *fakeCamera) StopRecording() {
	f.mu.Lock()
	f.stops++
	f.mu.Unlock()
	f.stopOnce.Do(func() { close(f.stop) })
}

func (f *fakeCamera) Stops() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops
}

type fakePicker struct {
	mu       sync.Mutex
	assets   []model.Asset
	err      error
	requests []capability.PickRequest

	// optional: signal entry and wait for release
	entered chan struct{}
	release chan struct{}
}

func (f *fakePicker) Pick(ctx context.Context, req capability.PickRequest) ([]model.Asset, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.assets, f.err
}

type fakeFetcher struct {
	asset model.Asset
	err   error
	links []string
}

func (f *fakeFetcher) Fetch(_ context.Context, link string) (model.Asset, error) {
	f.links = append(f.links, link)
	return f.asset, f.err
}

type fakeNavigator struct {
	mu         sync.Mutex
	screens    []capability.Screen
	backs      int
	onNavigate func()
}

func (f *fakeNavigator) Navigate(screen capability.Screen) {
	if f.onNavigate != nil {
		f.onNavigate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.screens = append(f.screens, screen)
}

func (f *fakeNavigator) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.backs++
}

func (f *fakeNavigator) Screens() []capability.Screen {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]capability.Screen(nil), f.screens...)
}

type notice struct {
	title   string
	message string
}

type fakeNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (f *fakeNotifier) Notify(title, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, notice{title: title, message: message})
}

func (f *fakeNotifier) Notices() []notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notice(nil), f.notices...)
}

type mapTranslator map[string]string

func (m mapTranslator) GetText(key string) string {
	if s, ok := m[key]; ok {
		return s
	}
	return key
}

// phaseRecorder collects every phase a controller passes through
type phaseRecorder struct {
	mu     sync.Mutex
	phases []model.Phase
}

func (r *phaseRecorder) record(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phases = append(r.phases, s.Phase)
}

func (r *phaseRecorder) Phases() []model.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Phase(nil), r.phases...)
}

func (r *phaseRecorder) Saw(p model.Phase) bool {
	for _, have := range r.Phases() {
		if have == p {
			return true
		}
	}
	return false
}
