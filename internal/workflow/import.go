package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ytget/camroll/internal/capability"
	"github.com/ytget/camroll/internal/model"
)

// OpenGallery opens the system media library with multi-select. Selected
// assets are committed in selection order, the first one ending up nearest
// the front of the gallery. Cancelling leaves the registry untouched.
func (c *Controller) OpenGallery(ctx context.Context) error {
	if !c.surface.Gallery || c.deps.Picker == nil {
		return ErrUnsupported
	}
	return c.pick(ctx, capability.PickRequest{
		Source:   capability.SourceLibrary,
		Multiple: true,
		Quality:  c.opts.PickQuality,
	}, TextGalleryFailed)
}

// LaunchCamera opens the system camera and commits the single captured asset
func (c *Controller) LaunchCamera(ctx context.Context) error {
	if !c.surface.SystemCamera || c.deps.Picker == nil {
		return ErrUnsupported
	}
	return c.pick(ctx, capability.PickRequest{
		Source:  capability.SourceCamera,
		Quality: c.opts.PickQuality,
	}, TextCameraLaunchFailed)
}

func (c *Controller) pick(ctx context.Context, req capability.PickRequest, failText string) error {
	if !c.inflight.TryAcquire(1) {
		return ErrBusy
	}
	defer c.inflight.Release(1)

	if err := c.advance(model.PhasePicking, nil, model.PhaseActive); err != nil {
		return err
	}

	assets, err := c.deps.Picker.Pick(ctx, req)
	if err != nil && !errors.Is(err, capability.ErrCancelled) {
		c.log.Error("picker failed", "source", req.Source, "error", err)
		c.reset(model.PhasePicking, failText)
		return fmt.Errorf("%w: %w", ErrPickFailed, err)
	}

	assets = usableAssets(assets)
	if !req.Multiple && len(assets) > 1 {
		assets = assets[:1]
	}
	if len(assets) == 0 {
		c.log.Debug("picker cancelled", "source", req.Source)
		c.settle(model.PhaseCancelled, 0, model.PhasePicking)
		return nil
	}

	c.commitAssets(assets)
	return nil
}

// ImportLink fetches the media behind a shared link and commits it
func (c *Controller) ImportLink(ctx context.Context, link string) error {
	if !c.surface.LinkImport || c.deps.Fetcher == nil {
		return ErrUnsupported
	}
	link = strings.TrimSpace(link)
	if link == "" {
		return fmt.Errorf("%w: empty link", ErrImportFailed)
	}

	if !c.inflight.TryAcquire(1) {
		return ErrBusy
	}
	defer c.inflight.Release(1)

	if err := c.advance(model.PhasePicking, nil, model.PhaseActive); err != nil {
		return err
	}

	asset, err := c.deps.Fetcher.Fetch(ctx, link)
	if errors.Is(err, capability.ErrCancelled) {
		c.log.Debug("link import cancelled", "link", link)
		c.settle(model.PhaseCancelled, 0, model.PhasePicking)
		return nil
	}
	if err == nil && asset.URI == "" {
		err = errors.New("fetcher returned no file")
	}
	if err != nil {
		c.log.Error("link import failed", "link", link, "error", err)
		c.reset(model.PhasePicking, TextImportFailed)
		return fmt.Errorf("%w: %w", ErrImportFailed, err)
	}

	c.commitAssets([]model.Asset{asset})
	return nil
}

// commitAssets adds assets as one batch, reports the commit and navigates once
func (c *Controller) commitAssets(assets []model.Asset) {
	added := c.deps.Store.AddAll(assets)
	c.log.Info("media imported", "count", len(added))
	c.settle(model.PhaseCommitted, len(added), model.PhasePicking)
	c.navigate()
}

func usableAssets(assets []model.Asset) []model.Asset {
	out := assets[:0:0]
	for _, a := range assets {
		if a.URI == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}
