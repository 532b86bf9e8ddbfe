package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/camroll/internal/model"
	"github.com/ytget/camroll/internal/workflow"
)

// PickerScreen imports media without the in-app camera: the system camera,
// the media library or a shared link
type PickerScreen struct {
	binding      *surfaceBinding
	localization *Localization

	titleLabel  *widget.Label
	statusLabel *widget.Label
	cameraBtn   *widget.Button
	galleryBtn  *widget.Button
	linkBar     *LinkBar

	content fyne.CanvasObject
	state   workflow.State
}

// NewPickerScreen creates the picker screen for surface
func NewPickerScreen(ctx context.Context, surface workflow.Surface, root *RootUI) *PickerScreen {
	ps := &PickerScreen{localization: root.localization}
	ps.binding = newSurfaceBinding(ctx, surface, root.newController, root.log, ps.render)
	ps.createUI(root)
	return ps
}

func (ps *PickerScreen) createUI(root *RootUI) {
	t := ps.localization.GetText

	ps.titleLabel = widget.NewLabel(t(KeyTabPicker))
	ps.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	ps.titleLabel.Alignment = fyne.TextAlignCenter
	ps.statusLabel = widget.NewLabel("")
	ps.statusLabel.Alignment = fyne.TextAlignCenter
	ps.statusLabel.Importance = widget.LowImportance

	ps.cameraBtn = widget.NewButton(IconShutter+" "+t(KeyTakePhoto), ps.onLaunchCamera)
	ps.cameraBtn.Importance = widget.HighImportance
	ps.galleryBtn = widget.NewButton(IconGallery+" "+t(KeyOpenGallery), ps.onOpenGallery)

	surface := ps.binding.surface
	if !surface.SystemCamera {
		ps.cameraBtn.Hide()
	}
	if !surface.Gallery {
		ps.galleryBtn.Hide()
	}

	actions := container.NewVBox(
		root.mobile.CreateMobileButtonFrom(ps.cameraBtn),
		root.mobile.CreateMobileButtonFrom(ps.galleryBtn),
	)

	body := container.NewVBox(ps.titleLabel, actions, ps.statusLabel)
	if surface.LinkImport {
		ps.linkBar = newLinkBar(ps.binding, ps.localization, root.mobile, root.onImportStarted, root.onImportFinished)
		body.Add(widget.NewSeparator())
		body.Add(ps.linkBar.Container())
	}

	ps.content = container.NewPadded(container.NewCenter(body))
	ps.render(workflow.State{Phase: model.PhaseIdle})
}

// Content returns the screen content
func (ps *PickerScreen) Content() fyne.CanvasObject {
	return ps.content
}

// Enter activates the picker surface
func (ps *PickerScreen) Enter() {
	ps.binding.enter()
}

// Leave does nothing; pickers finish on their own
func (ps *PickerScreen) Leave() {}

func (ps *PickerScreen) render(s workflow.State) {
	// Active follows right away
	if s.Phase.IsTransient() {
		return
	}
	t := ps.localization.GetText
	ps.state = s

	active := s.Phase == model.PhaseActive
	setEnabled(ps.cameraBtn, active)
	setEnabled(ps.galleryBtn, active)
	if ps.linkBar != nil {
		ps.linkBar.SetEnabled(active)
	}

	switch s.Phase {
	case model.PhaseActive:
		ps.statusLabel.SetText("")
	case model.PhaseDenied:
		ps.statusLabel.SetText(t(workflow.TextPermissionsTitle))
	case model.PhaseIdle, model.PhasePermissionPending:
		ps.statusLabel.SetText(t(KeyPermissionPrompt) + "…")
	default:
		ps.statusLabel.SetText(t(KeyWorking))
	}
}

func (ps *PickerScreen) onLaunchCamera() {
	ps.binding.run("launch_camera", func(ctx context.Context, c *workflow.Controller) error {
		return c.LaunchCamera(ctx)
	}, nil)
}

func (ps *PickerScreen) onOpenGallery() {
	ps.binding.run("open_gallery", func(ctx context.Context, c *workflow.Controller) error {
		return c.OpenGallery(ctx)
	}, nil)
}

// RefreshTexts updates texts after a language change
func (ps *PickerScreen) RefreshTexts() {
	t := ps.localization.GetText
	ps.titleLabel.SetText(t(KeyTabPicker))
	ps.cameraBtn.SetText(IconShutter + " " + t(KeyTakePhoto))
	ps.galleryBtn.SetText(IconGallery + " " + t(KeyOpenGallery))
	if ps.linkBar != nil {
		ps.linkBar.RefreshTexts()
	}
	ps.render(ps.state)
}
