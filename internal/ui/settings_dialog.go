package ui

import (
	"fmt"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/camroll/internal/config"
	"github.com/ytget/camroll/internal/model"
)

// Photo quality slider bounds
const (
	qualitySliderStep = 0.05
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	captureDirEntry  *widget.Entry
	qualitySlider    *widget.Slider
	qualityLabel     *widget.Label
	modeSelect       *widget.RadioGroup
	facingSelect     *widget.RadioGroup
	languageSelect   *widget.Select
	videoDeviceEntry *widget.Entry
	frontDeviceEntry *widget.Entry
	audioDeviceEntry *widget.Entry

	languageCodes map[string]string // display name -> code
}

// ShowSettingsDialog creates and shows the settings dialog; onSaved runs
// after the settings were written
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, loc *Localization, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, loc, window)
	sd.onSaved = onSaved
	sd.Show()
	return sd
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, loc *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: loc,
		window:       window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	t := sd.localization.GetText

	sd.captureDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(t(KeyBrowse), sd.onBrowseDirectory)
	captureDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.captureDirEntry)

	sd.qualityLabel = widget.NewLabel("")
	sd.qualitySlider = widget.NewSlider(config.MinPhotoQuality, config.MaxPhotoQuality)
	sd.qualitySlider.Step = qualitySliderStep
	sd.qualitySlider.OnChanged = func(v float64) {
		sd.qualityLabel.SetText(fmt.Sprintf(ProgressLabelFormat, int(v*100+0.5)))
	}
	qualityRow := container.NewBorder(nil, nil, nil, sd.qualityLabel, sd.qualitySlider)

	sd.modeSelect = widget.NewRadioGroup([]string{t(KeyModePicture), t(KeyModeVideo)}, nil)
	sd.modeSelect.Horizontal = true
	sd.facingSelect = widget.NewRadioGroup([]string{t(KeyFacingBack), t(KeyFacingFront)}, nil)
	sd.facingSelect.Horizontal = true

	// Language selection shows display names, stores codes
	sd.languageCodes = make(map[string]string)
	var languageNames []string
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageNames = append(languageNames, name)
	}
	sort.Strings(languageNames)
	sd.languageSelect = widget.NewSelect(languageNames, nil)

	sd.videoDeviceEntry = widget.NewEntry()
	sd.videoDeviceEntry.SetPlaceHolder("/dev/video0")
	sd.frontDeviceEntry = widget.NewEntry()
	sd.frontDeviceEntry.SetPlaceHolder("/dev/video1")
	sd.audioDeviceEntry = widget.NewEntry()
	sd.audioDeviceEntry.SetPlaceHolder("default")

	form := widget.NewForm(
		widget.NewFormItem(t(KeyCaptureDirectory), captureDirRow),
		widget.NewFormItem(t(KeyPhotoQuality), qualityRow),
		widget.NewFormItem(t(KeyDefaultMode), sd.modeSelect),
		widget.NewFormItem(t(KeyDefaultFacing), sd.facingSelect),
		widget.NewFormItem(t(KeyLanguage), sd.languageSelect),
		widget.NewFormItem(t(KeyVideoDevice), sd.videoDeviceEntry),
		widget.NewFormItem(t(KeyFrontDevice), sd.frontDeviceEntry),
		widget.NewFormItem(t(KeyAudioDevice), sd.audioDeviceEntry),
	)

	hint := widget.NewLabel(t(KeyRestartRequired))
	hint.Importance = widget.LowImportance
	hint.Wrapping = fyne.TextWrapWord

	sd.dialog = dialog.NewCustomConfirm(
		t(KeySettings),
		t(KeySave),
		t(KeyCancel),
		container.NewVBox(form, hint),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	t := sd.localization.GetText

	sd.captureDirEntry.SetText(sd.settings.GetCaptureDirectory())
	sd.qualitySlider.SetValue(sd.settings.GetPhotoQuality())

	if sd.settings.GetCaptureMode() == model.ModeVideo {
		sd.modeSelect.SetSelected(t(KeyModeVideo))
	} else {
		sd.modeSelect.SetSelected(t(KeyModePicture))
	}
	if sd.settings.GetFacing() == model.FacingFront {
		sd.facingSelect.SetSelected(t(KeyFacingFront))
	} else {
		sd.facingSelect.SetSelected(t(KeyFacingBack))
	}

	current := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == current {
			sd.languageSelect.SetSelected(name)
		}
	}

	sd.videoDeviceEntry.SetText(sd.settings.GetVideoDevice())
	sd.frontDeviceEntry.SetText(sd.settings.GetFrontDevice())
	sd.audioDeviceEntry.SetText(sd.settings.GetAudioDevice())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.captureDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// apply writes the form into the settings
func (sd *SettingsDialog) apply() {
	t := sd.localization.GetText

	if dir := sd.captureDirEntry.Text; dir != "" {
		sd.settings.SetCaptureDirectory(dir)
	}
	sd.settings.SetPhotoQuality(sd.qualitySlider.Value)

	switch sd.modeSelect.Selected {
	case t(KeyModeVideo):
		sd.settings.SetCaptureMode(model.ModeVideo)
	case t(KeyModePicture):
		sd.settings.SetCaptureMode(model.ModePicture)
	}
	switch sd.facingSelect.Selected {
	case t(KeyFacingFront):
		sd.settings.SetFacing(model.FacingFront)
	case t(KeyFacingBack):
		sd.settings.SetFacing(model.FacingBack)
	}

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	sd.settings.SetVideoDevice(sd.videoDeviceEntry.Text)
	sd.settings.SetFrontDevice(sd.frontDeviceEntry.Text)
	sd.settings.SetAudioDevice(sd.audioDeviceEntry.Text)
}
