// Package workflow coordinates a capture surface: it requests permissions,
// drives the camera and pickers, commits accepted media to the registry and
// navigates to the gallery afterwards.
//
// Each Controller is an explicit state machine with one current phase (see
// model.Phase). Operations that call a provider hold a single-flight guard,
// so a second shutter or pick while one is outstanding fails with ErrBusy.
// The one exception is the stop action: Shutter while recording stops the
// recording that the first Shutter call is still waiting on.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/ytget/camroll/internal/capability"
	"github.com/ytget/camroll/internal/model"
)

// Default capture settings
const (
	DefaultPhotoQuality = 0.5
	DefaultPickQuality  = 1.0
)

// Store is the registry contract the workflow commits to
type Store interface {
	Add(uri string, kind model.MediaKind) model.MediaEntry
	AddAll(assets []model.Asset) []model.MediaEntry
}

// Deps are the collaborators of a Controller. Providers the surface does not
// use may be nil.
type Deps struct {
	Store       Store
	Permissions capability.Permissions
	Camera      capability.Camera
	Picker      capability.Picker
	Fetcher     capability.Fetcher
	Navigator   capability.Navigator
	Notifier    capability.Notifier
	Translator  Translator
	Logger      *slog.Logger
}

// Options tune a Controller
type Options struct {
	PhotoQuality float64
	PickQuality  float64
	Mode         model.CaptureMode
	Facing       model.Facing
	Target       capability.Screen // navigation target after a commit
}

// State is a snapshot of the controller
type State struct {
	Surface       string
	Phase         model.Phase
	Mode          model.CaptureMode
	Facing        model.Facing
	PendingURI    string // set only while Previewing
	LastCommitted int    // entries committed by the last commit
}

// Recording reports whether a recording is in progress
func (s State) Recording() bool {
	return s.Phase == model.PhaseRecording
}

// Controller runs the capture workflow of one surface
type Controller struct {
	surface Surface
	deps    Deps
	opts    Options
	log     *slog.Logger
	texts   Translator

	inflight *semaphore.Weighted

	mu    sync.Mutex
	state State

	// notifyMu orders transitions and their notifications
	notifyMu  sync.Mutex
	listeners []func(State)
}

// New creates a controller for surface in PhaseIdle
func New(surface Surface, deps Deps, opts Options) *Controller {
	if opts.PhotoQuality <= 0 || opts.PhotoQuality > 1 {
		opts.PhotoQuality = DefaultPhotoQuality
	}
	if opts.PickQuality <= 0 || opts.PickQuality > 1 {
		opts.PickQuality = DefaultPickQuality
	}
	if !opts.Mode.Valid() {
		opts.Mode = model.ModePicture
	}
	if !opts.Facing.Valid() {
		opts.Facing = model.FacingBack
	}
	if opts.Target == "" {
		opts.Target = capability.ScreenGallery
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{
		surface:  surface,
		deps:     deps,
		opts:     opts,
		log:      logger.With("surface", surface.Name),
		texts:    deps.Translator,
		inflight: semaphore.NewWeighted(1),
		state: State{
			Surface: surface.Name,
			Phase:   model.PhaseIdle,
			Mode:    opts.Mode,
			Facing:  opts.Facing,
		},
	}
}

// Surface returns the surface this controller runs
func (c *Controller) Surface() Surface {
	return c.surface
}

// State returns the current snapshot
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnChange registers fn to be called after every transition. fn runs on the
// goroutine that performed the transition and must not call operations that
// transition the controller.
func (c *Controller) OnChange(fn func(State)) {
	if fn == nil {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Activate requests every permission the surface needs, in fixed order. If
// any is refused the controller enters PhaseDenied, shows a notice and
// navigates back.
func (c *Controller) Activate(ctx context.Context) error {
	if !c.inflight.TryAcquire(1) {
		return ErrBusy
	}
	defer c.inflight.Release(1)

	if err := c.advance(model.PhasePermissionPending, nil, model.PhaseIdle); err != nil {
		return err
	}

	var denied []string
	for _, p := range c.surface.orderedPermissions() {
		status, err := c.requestPermission(ctx, p)
		if err != nil {
			c.log.Error("permission request failed", "permission", p, "error", err)
		}
		if !status.Granted() {
			denied = append(denied, string(p))
		}
	}

	if len(denied) > 0 {
		c.log.Warn("permissions refused", "denied", denied)
		_ = c.advance(model.PhaseDenied, nil, model.PhasePermissionPending)
		c.notify(TextPermissionsTitle, c.surface.DeniedText)
		if c.deps.Navigator != nil {
			c.deps.Navigator.Back()
		}
		return fmt.Errorf("%w: %s", ErrPermissionDenied, strings.Join(denied, ", "))
	}

	c.log.Debug("permissions granted")
	return c.advance(model.PhaseActive, nil, model.PhasePermissionPending)
}

func (c *Controller) requestPermission(ctx context.Context, p capability.Permission) (capability.PermissionStatus, error) {
	if c.deps.Permissions == nil {
		return capability.StatusDenied, errors.New("no permission provider")
	}
	status, err := c.deps.Permissions.Request(ctx, p)
	if err != nil {
		return capability.StatusDenied, err
	}
	return status, nil
}

// transition applies decide under the state lock; decide returns the next
// phase or an error that leaves the state untouched. Listeners are notified
// after the lock is released.
func (c *Controller) transition(decide func(s *State) (model.Phase, error)) error {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	prev := c.state.Phase
	next, err := decide(&c.state)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.state.Phase = next
	snapshot := c.state
	c.mu.Unlock()

	if prev != next {
		c.log.Debug("workflow transition", "from", prev, "to", next)
	}
	for _, fn := range c.listeners {
		fn(snapshot)
	}
	return nil
}

// advance moves to next if the current phase is one of from
func (c *Controller) advance(next model.Phase, mutate func(*State), from ...model.Phase) error {
	return c.transition(func(s *State) (model.Phase, error) {
		if !phaseIn(s.Phase, from) {
			return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Phase, next)
		}
		if mutate != nil {
			mutate(s)
		}
		return next, nil
	})
}

// settle reports a commit or cancellation and returns to Active
func (c *Controller) settle(via model.Phase, committed int, from model.Phase) {
	_ = c.advance(via, func(s *State) {
		s.LastCommitted = committed
		s.PendingURI = ""
	}, from)
	_ = c.advance(model.PhaseActive, nil, via)
}

// reset returns to Active after a recoverable failure in phase from
func (c *Controller) reset(from model.Phase, textKey string) {
	_ = c.advance(model.PhaseActive, func(s *State) { s.PendingURI = "" }, from)
	c.notify(TextErrorTitle, textKey)
}

func (c *Controller) navigate() {
	if c.deps.Navigator != nil {
		c.deps.Navigator.Navigate(c.opts.Target)
	}
}

func (c *Controller) notify(titleKey, messageKey string) {
	if c.deps.Notifier != nil {
		c.deps.Notifier.Notify(c.text(titleKey), c.text(messageKey))
	}
}

// requireActive checks the phase for operations that do not hold the guard
func requireActive(s *State) error {
	switch s.Phase {
	case model.PhaseActive:
		return nil
	case model.PhaseRecording:
		return ErrRecordingInProgress
	default:
		return fmt.Errorf("%w: not allowed in %s", ErrInvalidTransition, s.Phase)
	}
}

func phaseIn(p model.Phase, set []model.Phase) bool {
	for _, candidate := range set {
		if p == candidate {
			return true
		}
	}
	return false
}
