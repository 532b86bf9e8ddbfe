package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/ytget/camroll/internal/capability"
	"github.com/ytget/camroll/internal/model"
)

var errNoImage = errors.New("camera returned no image")

// Shutter fires the in-app camera. In picture mode it captures a still and
// moves to PhasePreviewing; the still is committed only by Accept. In video
// mode it starts a recording and blocks until the recording ends. Calling
// Shutter while recording stops that recording and returns immediately.
func (c *Controller) Shutter(ctx context.Context) error {
	if !c.surface.InAppCamera || c.deps.Camera == nil {
		return ErrUnsupported
	}
	if c.State().Recording() {
		return c.stopRecording()
	}

	if !c.inflight.TryAcquire(1) {
		// the guard may belong to a recording that started after the check above
		if c.State().Recording() {
			return c.stopRecording()
		}
		return ErrBusy
	}
	defer c.inflight.Release(1)

	var (
		mode   model.CaptureMode
		facing model.Facing
	)
	err := c.transition(func(s *State) (model.Phase, error) {
		if err := requireActive(s); err != nil {
			return "", err
		}
		mode, facing = s.Mode, s.Facing
		if mode == model.ModeVideo {
			return model.PhaseRecording, nil
		}
		return model.PhaseCapturing, nil
	})
	if err != nil {
		return err
	}

	if mode == model.ModeVideo {
		return c.record(ctx, facing)
	}
	return c.capture(ctx, facing)
}

// StopRecording ends a recording in progress and reports whether there was
// one. Outside PhaseRecording it does nothing, so it never starts a capture.
func (c *Controller) StopRecording() bool {
	if !c.surface.InAppCamera || c.deps.Camera == nil || !c.State().Recording() {
		return false
	}
	_ = c.stopRecording()
	return true
}

func (c *Controller) stopRecording() error {
	c.log.Info("stopping recording")
	c.deps.Camera.StopRecording()
	return nil
}

func (c *Controller) capture(ctx context.Context, facing model.Facing) error {
	still, err := c.deps.Camera.CaptureStill(ctx, capability.StillOptions{
		Quality: c.opts.PhotoQuality,
		Facing:  facing,
	})
	if err == nil && still.URI == "" {
		err = errNoImage
	}
	if errors.Is(err, capability.ErrCancelled) {
		c.log.Debug("capture cancelled")
		return c.advance(model.PhaseActive, nil, model.PhaseCapturing)
	}
	if err != nil {
		c.log.Error("capture failed", "error", err)
		c.reset(model.PhaseCapturing, TextCaptureFailed)
		return fmt.Errorf("%w: %w", ErrCaptureFailed, err)
	}

	c.log.Debug("still captured", "uri", still.URI, "quality", still.Quality)
	return c.advance(model.PhasePreviewing, func(s *State) {
		s.PendingURI = still.URI
	}, model.PhaseCapturing)
}

func (c *Controller) record(ctx context.Context, facing model.Facing) error {
	c.log.Info("recording started", "facing", facing)
	uri, err := c.deps.Camera.Record(ctx, capability.RecordOptions{Facing: facing})
	if err != nil && !errors.Is(err, capability.ErrCancelled) {
		c.log.Error("recording failed", "error", err)
		c.reset(model.PhaseRecording, TextRecordingFailed)
		return fmt.Errorf("%w: %w", ErrRecordingFailed, err)
	}
	if uri == "" {
		c.log.Warn("recording produced no file")
		return c.advance(model.PhaseActive, nil, model.PhaseRecording)
	}

	entry := c.deps.Store.Add(uri, model.KindVideo)
	c.log.Info("video committed", "id", entry.ID, "uri", uri)
	c.settle(model.PhaseCommitted, 1, model.PhaseRecording)
	c.navigate()
	return nil
}

// Accept commits the previewed still and navigates to the gallery
func (c *Controller) Accept() error {
	if !c.inflight.TryAcquire(1) {
		return ErrBusy
	}
	defer c.inflight.Release(1)

	st := c.State()
	if st.Phase != model.PhasePreviewing || st.PendingURI == "" {
		return fmt.Errorf("%w: accept in %s", ErrInvalidTransition, st.Phase)
	}

	entry := c.deps.Store.Add(st.PendingURI, model.KindPhoto)
	c.log.Info("photo committed", "id", entry.ID, "uri", st.PendingURI)
	c.settle(model.PhaseCommitted, 1, model.PhasePreviewing)
	c.navigate()
	return nil
}

// Retake discards the previewed still without committing it
func (c *Controller) Retake() error {
	if !c.inflight.TryAcquire(1) {
		return ErrBusy
	}
	defer c.inflight.Release(1)

	var discarded string
	err := c.advance(model.PhaseActive, func(s *State) {
		discarded = s.PendingURI
		s.PendingURI = ""
	}, model.PhasePreviewing)
	if err != nil {
		return err
	}
	c.log.Debug("still discarded", "uri", discarded)
	return nil
}

// ToggleMode switches between picture and video. It is rejected while a
// recording is in progress.
func (c *Controller) ToggleMode() error {
	if !c.surface.InAppCamera {
		return ErrUnsupported
	}
	return c.transition(func(s *State) (model.Phase, error) {
		if err := requireActive(s); err != nil {
			return "", err
		}
		s.Mode = s.Mode.Toggle()
		return s.Phase, nil
	})
}

// ToggleFacing switches between the back and front camera
func (c *Controller) ToggleFacing() error {
	if !c.surface.InAppCamera {
		return ErrUnsupported
	}
	return c.transition(func(s *State) (model.Phase, error) {
		if err := requireActive(s); err != nil {
			return "", err
		}
		s.Facing = s.Facing.Toggle()
		return s.Phase, nil
	})
}
