package ui

import (
	"context"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/camroll/internal/model"
	"github.com/ytget/camroll/internal/workflow"
)

// CameraScreen is the in-app camera: viewfinder, shutter, mode and facing
// toggles, the photo preview with retake/accept, and the gallery shortcut
type CameraScreen struct {
	binding      *surfaceBinding
	localization *Localization
	mobile       *MobileUI

	// viewfinder
	viewfinderBack *canvas.Rectangle
	statusLabel    *widget.Label
	facingLabel    *widget.Label
	recordingLabel *canvas.Text
	cameraBox      *fyne.Container

	// preview
	previewImage *canvas.Image
	acceptBtn    *widget.Button
	retakeBtn    *widget.Button
	previewBox   *fyne.Container

	// controls
	shutterBtn *widget.Button
	modeBtn    *widget.Button
	flipBtn    *widget.Button
	galleryBtn *widget.Button
	linkBar    *LinkBar
	controls   *fyne.Container

	content fyne.CanvasObject
	state   workflow.State
}

// NewCameraScreen creates a camera screen for surface
func NewCameraScreen(ctx context.Context, surface workflow.Surface, root *RootUI) *CameraScreen {
	cs := &CameraScreen{
		localization: root.localization,
		mobile:       root.mobile,
	}
	cs.binding = newSurfaceBinding(ctx, surface, root.newController, root.log, cs.render)
	cs.createUI(root)
	return cs
}

func (cs *CameraScreen) createUI(root *RootUI) {
	t := cs.localization.GetText

	// Viewfinder: ffmpeg gives no live feed, so it shows what the shutter will do
	cs.viewfinderBack = canvas.NewRectangle(color.RGBA{R: 16, G: 16, B: 16, A: 255})
	cs.viewfinderBack.SetMinSize(fyne.NewSize(PreviewMinWidth, PreviewMinHeight))
	cs.statusLabel = widget.NewLabel("")
	cs.statusLabel.Alignment = fyne.TextAlignCenter
	cs.facingLabel = widget.NewLabel("")
	cs.facingLabel.Alignment = fyne.TextAlignCenter
	cs.facingLabel.Importance = widget.LowImportance
	cs.recordingLabel = canvas.NewText(IconRecord+" "+t(KeyRecording), theme.Color(ColorNameShutter))
	cs.recordingLabel.TextStyle = fyne.TextStyle{Bold: true}
	cs.recordingLabel.Hide()

	viewfinder := container.NewStack(
		cs.viewfinderBack,
		container.NewCenter(container.NewVBox(cs.statusLabel, cs.facingLabel)),
		container.NewVBox(container.NewCenter(cs.recordingLabel)),
	)
	cs.cameraBox = container.NewStack(NewSwipeArea(viewfinder, cs.onGesture))

	// Preview of a captured still
	cs.previewImage = canvas.NewImageFromResource(nil)
	cs.previewImage.FillMode = canvas.ImageFillContain
	cs.previewImage.SetMinSize(fyne.NewSize(PreviewMinWidth, PreviewMinHeight))
	cs.retakeBtn = widget.NewButton(IconRetake+" "+t(KeyRetake), cs.onRetake)
	cs.acceptBtn = widget.NewButton(IconCheck+" "+t(KeyAccept), cs.onAccept)
	cs.acceptBtn.Importance = widget.HighImportance
	cs.previewBox = container.NewBorder(nil,
		container.NewGridWithColumns(2, cs.retakeBtn, cs.acceptBtn),
		nil, nil, cs.previewImage)
	cs.previewBox.Hide()

	// Controls row: gallery, shutter, mode
	cs.shutterBtn = widget.NewButton(IconShutter, cs.onShutter)
	cs.modeBtn = widget.NewButton("", cs.onToggleMode)
	cs.flipBtn = widget.NewButton(IconFlip+" "+t(KeyFlipCamera), cs.onToggleFacing)
	cs.galleryBtn = widget.NewButton(IconGallery, cs.onOpenGallery)

	surface := cs.binding.surface
	if !surface.Gallery {
		cs.galleryBtn.Hide()
	}

	cs.controls = container.NewGridWithColumns(3,
		container.NewCenter(cs.galleryBtn),
		container.NewCenter(cs.mobile.CreateShutterButton(cs.shutterBtn)),
		container.NewCenter(cs.modeBtn),
	)

	bottom := container.NewVBox(cs.controls)
	if surface.LinkImport {
		cs.linkBar = newLinkBar(cs.binding, cs.localization, root.mobile, root.onImportStarted, root.onImportFinished)
		bottom.Add(cs.linkBar.Container())
	}

	top := container.NewBorder(nil, nil, nil, cs.flipBtn)
	cs.content = container.NewBorder(top, bottom, nil, nil, container.NewStack(cs.cameraBox, cs.previewBox))
	cs.render(workflow.State{Phase: model.PhaseIdle, Mode: root.settings.GetCaptureMode(), Facing: root.settings.GetFacing()})
}

// Content returns the screen content
func (cs *CameraScreen) Content() fyne.CanvasObject {
	return cs.content
}

// Enter activates the camera surface, asking for permissions the first time
func (cs *CameraScreen) Enter() {
	cs.binding.enter()
}

// Leave stops a running recording; the recorded video is kept
func (cs *CameraScreen) Leave() {
	if ctrl := cs.binding.current(); ctrl != nil {
		ctrl.StopRecording()
	}
}

// render updates every control from a controller snapshot
func (cs *CameraScreen) render(s workflow.State) {
	// Active follows right away
	if s.Phase.IsTransient() {
		return
	}
	t := cs.localization.GetText
	cs.state = s

	active := s.Phase == model.PhaseActive
	recording := s.Recording()

	switch s.Phase {
	case model.PhaseActive:
		cs.statusLabel.SetText(t(KeyCameraReady))
	case model.PhaseRecording:
		cs.statusLabel.SetText(t(KeyRecording))
	case model.PhaseDenied:
		cs.statusLabel.SetText(t(workflow.TextPermissionsTitle))
	case model.PhaseIdle, model.PhasePermissionPending:
		cs.statusLabel.SetText(t(KeyPermissionPrompt) + "…")
	default:
		cs.statusLabel.SetText(t(KeyWorking))
	}

	if s.Facing == model.FacingFront {
		cs.facingLabel.SetText(t(KeyFacingFront))
	} else {
		cs.facingLabel.SetText(t(KeyFacingBack))
	}

	if recording {
		cs.recordingLabel.Show()
	} else {
		cs.recordingLabel.Hide()
	}

	switch {
	case recording:
		cs.shutterBtn.SetText(IconStop)
	case s.Mode == model.ModeVideo:
		cs.shutterBtn.SetText(IconRecord)
	default:
		cs.shutterBtn.SetText(IconShutter)
	}
	setEnabled(cs.shutterBtn, active || recording)

	if s.Mode == model.ModeVideo {
		cs.modeBtn.SetText(t(KeyModeVideo))
	} else {
		cs.modeBtn.SetText(t(KeyModePicture))
	}
	// The mode cannot change while recording
	setEnabled(cs.modeBtn, active)
	setEnabled(cs.flipBtn, active)
	setEnabled(cs.galleryBtn, active)
	if cs.linkBar != nil {
		cs.linkBar.SetEnabled(active)
	}

	if s.Phase == model.PhasePreviewing && s.PendingURI != "" {
		cs.showPreview(s.PendingURI)
	} else {
		cs.previewBox.Hide()
		cs.cameraBox.Show()
	}
}

func (cs *CameraScreen) showPreview(uri string) {
	if parsed, err := storage.ParseURI(uri); err == nil {
		loaded := canvas.NewImageFromURI(parsed)
		cs.previewImage.File = loaded.File
		cs.previewImage.Resource = loaded.Resource
		cs.previewImage.Image = loaded.Image
		cs.previewImage.Refresh()
	}
	cs.cameraBox.Hide()
	cs.previewBox.Show()
}

func (cs *CameraScreen) onShutter() {
	cs.binding.run("shutter", func(ctx context.Context, c *workflow.Controller) error {
		return c.Shutter(ctx)
	}, nil)
}

func (cs *CameraScreen) onAccept() {
	cs.binding.run("accept", func(_ context.Context, c *workflow.Controller) error {
		return c.Accept()
	}, nil)
}

func (cs *CameraScreen) onRetake() {
	cs.binding.run("retake", func(_ context.Context, c *workflow.Controller) error {
		return c.Retake()
	}, nil)
}

func (cs *CameraScreen) onToggleMode() {
	cs.binding.run("toggle_mode", func(_ context.Context, c *workflow.Controller) error {
		return c.ToggleMode()
	}, nil)
}

func (cs *CameraScreen) onToggleFacing() {
	cs.binding.run("toggle_facing", func(_ context.Context, c *workflow.Controller) error {
		return c.ToggleFacing()
	}, nil)
}

func (cs *CameraScreen) onOpenGallery() {
	cs.binding.run("open_gallery", func(ctx context.Context, c *workflow.Controller) error {
		return c.OpenGallery(ctx)
	}, nil)
}

// onGesture maps viewfinder swipes: sideways switches photo/video, vertical
// flips the lens
func (cs *CameraScreen) onGesture(g GestureType) {
	switch g {
	case GestureSwipeLeft, GestureSwipeRight:
		cs.onToggleMode()
	case GestureSwipeUp, GestureSwipeDown:
		cs.onToggleFacing()
	}
}

// RefreshTexts updates texts after a language change
func (cs *CameraScreen) RefreshTexts() {
	t := cs.localization.GetText
	cs.retakeBtn.SetText(IconRetake + " " + t(KeyRetake))
	cs.acceptBtn.SetText(IconCheck + " " + t(KeyAccept))
	cs.flipBtn.SetText(IconFlip + " " + t(KeyFlipCamera))
	cs.recordingLabel.Text = IconRecord + " " + t(KeyRecording)
	cs.recordingLabel.Refresh()
	if cs.linkBar != nil {
		cs.linkBar.RefreshTexts()
	}
	cs.render(cs.state)
}

func setEnabled(w fyne.Disableable, enabled bool) {
	if enabled {
		w.Enable()
	} else {
		w.Disable()
	}
}
