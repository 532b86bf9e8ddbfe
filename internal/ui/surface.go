package ui

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"

	"github.com/ytget/camroll/internal/capability"
	"github.com/ytget/camroll/internal/model"
	"github.com/ytget/camroll/internal/workflow"
)

// ControllerFactory builds a fresh controller for a surface
type ControllerFactory func(surface workflow.Surface) *workflow.Controller

// surfaceBinding owns the controller behind one screen. A denied controller
// is terminal, so entering the screen again starts over with a new one.
type surfaceBinding struct {
	surface workflow.Surface
	factory ControllerFactory
	render  func(workflow.State)
	ctx     context.Context
	log     *slog.Logger

	mu   sync.Mutex
	ctrl *workflow.Controller
	act  *activation
}

// activation is one Activate call that later operations wait for
type activation struct {
	ctrl *workflow.Controller
	done chan struct{}
	err  error
}

func newSurfaceBinding(ctx context.Context, surface workflow.Surface, factory ControllerFactory, logger *slog.Logger, render func(workflow.State)) *surfaceBinding {
	if logger == nil {
		logger = slog.Default()
	}
	return &surfaceBinding{
		surface: surface,
		factory: factory,
		render:  render,
		ctx:     ctx,
		log:     logger.With("screen", surface.Name),
	}
}

// controller returns the live controller, creating one when there is none
// or the last one was denied
func (b *surfaceBinding) controller() *workflow.Controller {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ctrl != nil && !b.ctrl.State().Phase.IsTerminal() {
		return b.ctrl
	}

	ctrl := b.factory(b.surface)
	if b.render != nil {
		ctrl.OnChange(func(s workflow.State) {
			fyne.Do(func() { b.render(s) })
		})
	}
	b.ctrl = ctrl
	return ctrl
}

// current returns the controller without creating one
func (b *surfaceBinding) current() *workflow.Controller {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ctrl
}

// enter activates the surface in the background
func (b *surfaceBinding) enter() {
	ctrl := b.controller()
	if ctrl.State().Phase != model.PhaseIdle {
		return
	}
	go func() {
		if err := b.activate(ctrl); err != nil {
			b.logResult("activate", err)
		}
	}()
}

// activate runs Activate once per controller. Concurrent callers wait for
// the running call and share its result.
func (b *surfaceBinding) activate(ctrl *workflow.Controller) error {
	b.mu.Lock()
	act := b.act
	if act != nil && act.ctrl == ctrl {
		b.mu.Unlock()
		select {
		case <-act.done:
			return act.err
		case <-b.ctx.Done():
			return b.ctx.Err()
		}
	}
	act = &activation{ctrl: ctrl, done: make(chan struct{})}
	b.act = act
	b.mu.Unlock()

	act.err = ctrl.Activate(b.ctx)
	close(act.done)
	return act.err
}

// run executes op on its own goroutine after making sure the surface is
// active. onDone, when set, runs on the UI goroutine with the result.
func (b *surfaceBinding) run(name string, op func(ctx context.Context, c *workflow.Controller) error, onDone func(error)) {
	ctrl := b.controller()
	go func() {
		err := b.ensureActive(ctrl)
		if err == nil {
			err = op(b.ctx, ctrl)
		}
		b.logResult(name, err)
		if onDone != nil {
			fyne.Do(func() { onDone(err) })
		}
	}()
}

// ensureActive activates an idle controller, or waits for a permission
// prompt that is already showing
func (b *surfaceBinding) ensureActive(ctrl *workflow.Controller) error {
	switch ctrl.State().Phase {
	case model.PhaseIdle, model.PhasePermissionPending:
		return b.activate(ctrl)
	default:
		return nil
	}
}

// logResult logs an operation outcome. Failures were already shown to the
// user by the controller.
func (b *surfaceBinding) logResult(op string, err error) {
	switch {
	case err == nil:
		b.log.Debug("operation finished", "op", op)
	case errors.Is(err, capability.ErrCancelled),
		errors.Is(err, workflow.ErrBusy),
		errors.Is(err, workflow.ErrInvalidTransition),
		errors.Is(err, workflow.ErrRecordingInProgress):
		b.log.Debug("operation rejected", "op", op, "reason", err)
	case errors.Is(err, workflow.ErrPermissionDenied):
		b.log.Warn("operation blocked by permissions", "op", op, "error", err)
	default:
		b.log.Error("operation failed", "op", op, "error", err)
	}
}
