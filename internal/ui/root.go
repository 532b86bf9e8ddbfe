package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/docker/go-units"

	"github.com/ytget/camroll/internal/capability"
	"github.com/ytget/camroll/internal/config"
	"github.com/ytget/camroll/internal/download"
	"github.com/ytget/camroll/internal/gallery"
	"github.com/ytget/camroll/internal/platform"
	"github.com/ytget/camroll/internal/registry"
	"github.com/ytget/camroll/internal/workflow"
)

// Services are the providers the UI drives
type Services struct {
	Registry *registry.Registry
	Camera   capability.Camera
	Importer download.Importer
	Devices  platform.DeviceConfig

	// ImportDirectory pins link imports to a directory; empty follows the
	// capture directory
	ImportDirectory string

	Logger *slog.Logger
}

// screen is one tab of the root window
type screen interface {
	Content() fyne.CanvasObject
	Enter()
	Leave()
	RefreshTexts()
}

// tabScreens maps navigation targets to tab indexes
var tabScreens = []capability.Screen{
	capability.ScreenCamera,
	capability.ScreenGallery,
	capability.ScreenPicker,
	capability.ScreenMediaLibrary,
}

// RootUI represents the main UI structure
type RootUI struct {
	ctx          context.Context
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	localization *Localization
	mobile       *MobileUI
	log          *slog.Logger

	services    Services
	registry    *registry.Registry
	galleryView *gallery.View
	permissions *platform.DevicePermissions
	picker      *DialogPicker

	tabs     *container.AppTabs
	tabItems []*container.TabItem
	screens  []screen

	navMu     sync.Mutex
	current   int
	history   []int
	goingBack bool

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
}

var (
	_ capability.Navigator = (*RootUI)(nil)
	_ capability.Notifier  = (*RootUI)(nil)
)

// NewRootUI creates and initializes the main UI
func NewRootUI(ctx context.Context, window fyne.Window, app fyne.App, settings *config.Settings, services Services) *RootUI {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	if err := platform.CreateDirectoryIfNotExists(settings.GetCaptureDirectory()); err != nil {
		logger.Warn("capture directory unavailable", "dir", settings.GetCaptureDirectory(), "error", err)
	}

	ui := &RootUI{
		ctx:          ctx,
		window:       window,
		app:          app,
		settings:     settings,
		localization: localization,
		mobile:       NewMobileUI(app),
		log:          logger.With("component", "ui"),
		services:     services,
		registry:     services.Registry,
		galleryView:  gallery.New(services.Registry),
	}

	ui.permissions = platform.NewDevicePermissions(services.Devices, ui.promptPermission, logger)
	ui.picker = NewDialogPicker(window, localization, services.Camera,
		settings.GetCaptureDirectory, settings.GetFacing, logger)

	if services.Importer != nil {
		ui.applyImportDirectory()
		services.Importer.SetProgressCallback(ui.onImportProgress)
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	// Notification panel for running imports (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationLabel.Truncation = fyne.TextTruncateEllipsis
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewBorder(nil, nil, ui.notificationSpinner, nil, ui.notificationLabel)
	ui.notificationContainer.Hide()

	ui.screens = []screen{
		NewCameraScreen(ui.ctx, workflow.SurfaceCamera, ui),
		NewGalleryScreen(ui.ctx, workflow.SurfaceGallery, ui),
		NewPickerScreen(ui.ctx, workflow.SurfacePicker, ui),
		NewCameraScreen(ui.ctx, workflow.SurfaceCamera, ui),
	}

	ui.tabItems = make([]*container.TabItem, len(ui.screens))
	for i, s := range ui.screens {
		ui.tabItems[i] = container.NewTabItem(ui.tabTitle(i), s.Content())
	}
	ui.tabs = container.NewAppTabs(ui.tabItems...)
	ui.tabs.SetTabLocation(container.TabLocationBottom)
	ui.tabs.OnSelected = func(*container.TabItem) {
		ui.onTabSelected(ui.tabs.SelectedIndex())
	}

	top := container.NewVBox(
		container.NewBorder(nil, nil, nil, settingsBtn),
		ui.notificationContainer,
	)
	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, ui.tabs))

	ui.screens[0].Enter()
}

func (ui *RootUI) tabTitle(i int) string {
	keys := []string{KeyTabCamera, KeyTabGallery, KeyTabPicker, KeyTabMediaLibrary}
	return ui.localization.GetText(keys[i])
}

// onTabSelected leaves the previous screen and enters the new one
func (ui *RootUI) onTabSelected(index int) {
	ui.navMu.Lock()
	prev := ui.current
	if index == prev {
		ui.navMu.Unlock()
		return
	}
	if ui.goingBack {
		ui.goingBack = false
	} else {
		ui.history = append(ui.history, prev)
	}
	ui.current = index
	ui.navMu.Unlock()

	ui.log.Debug("tab selected", "from", tabScreens[prev], "to", tabScreens[index])
	ui.screens[prev].Leave()
	ui.screens[index].Enter()
}

// Navigate selects the tab showing screen
func (ui *RootUI) Navigate(target capability.Screen) {
	index := -1
	for i, s := range tabScreens {
		if s == target {
			index = i
			break
		}
	}
	if index < 0 {
		ui.log.Warn("unknown navigation target", "screen", target)
		return
	}
	fyne.Do(func() {
		ui.tabs.SelectIndex(index)
	})
}

// Back returns to the previously selected tab. Without history it does
// nothing.
func (ui *RootUI) Back() {
	ui.navMu.Lock()
	if len(ui.history) == 0 {
		ui.navMu.Unlock()
		return
	}
	index := ui.history[len(ui.history)-1]
	ui.history = ui.history[:len(ui.history)-1]
	ui.goingBack = true
	ui.navMu.Unlock()

	fyne.Do(func() {
		ui.tabs.SelectIndex(index)
	})
}

// Notify shows a notice dialog
func (ui *RootUI) Notify(title, message string) {
	ui.log.Info("notice", "title", title, "message", message)
	fyne.Do(func() {
		dialog.ShowInformation(title, message, ui.window)
	})
}

// newController builds a workflow controller for surface with the current
// settings
func (ui *RootUI) newController(surface workflow.Surface) *workflow.Controller {
	deps := workflow.Deps{
		Store:       ui.registry,
		Permissions: ui.permissions,
		Camera:      ui.services.Camera,
		Picker:      ui.picker,
		Navigator:   ui,
		Notifier:    ui,
		Translator:  ui.localization,
		Logger:      ui.log,
	}
	if ui.services.Importer != nil {
		deps.Fetcher = ui.services.Importer
	}
	return workflow.New(surface, deps, workflow.Options{
		PhotoQuality: ui.settings.GetPhotoQuality(),
		Mode:         ui.settings.GetCaptureMode(),
		Facing:       ui.settings.GetFacing(),
		Target:       capability.ScreenGallery,
	})
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	for i, item := range ui.tabItems {
		item.Text = ui.tabTitle(i)
	}
	ui.tabs.Refresh()
	for _, s := range ui.screens {
		s.RefreshTexts()
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, ui.onSettingsSaved)
}

// onSettingsSaved applies what can change without a restart. Quality, mode
// and facing are read by the next controller.
func (ui *RootUI) onSettingsSaved() {
	if ui.localization.GetCurrentLanguage() != ui.settings.GetLanguage() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	}
	if err := platform.CreateDirectoryIfNotExists(ui.settings.GetCaptureDirectory()); err != nil {
		ui.log.Warn("capture directory unavailable", "dir", ui.settings.GetCaptureDirectory(), "error", err)
	}
	ui.applyImportDirectory()
}

func (ui *RootUI) applyImportDirectory() {
	if ui.services.Importer == nil {
		return
	}
	dir := ui.services.ImportDirectory
	if dir == "" {
		dir = ui.settings.GetCaptureDirectory()
	}
	ui.services.Importer.SetDownloadDirectory(dir)
}

// onImportStarted shows the notification panel for a link import
func (ui *RootUI) onImportStarted(link string) {
	ui.showNotification(ui.localization.GetText(KeyImporting)+" "+link, true)
}

// onImportFinished hides the notification panel. Failures reach the user
// through the workflow notice.
func (ui *RootUI) onImportFinished(err error) {
	ui.hideNotification()
}

func (ui *RootUI) onImportProgress(p download.Progress) {
	ui.showNotification(formatImportProgress(ui.localization.GetText(KeyImporting), p), true)
}

// formatImportProgress renders "Importing title: 42% · 10MB"
func formatImportProgress(prefix string, p download.Progress) string {
	name := p.Title
	if name == "" {
		name = p.Link
	}
	parts := []string{fmt.Sprintf(ProgressLabelFormat, p.Percent)}
	if p.TotalBytes > 0 {
		parts = append(parts, units.HumanSize(float64(p.TotalBytes)))
	}
	return fmt.Sprintf("%s %s: %s", prefix, name, strings.Join(parts, MiddleDotSeparator))
}

// showNotification displays a message in the notification panel.
// When spinning is true, a spinner is shown to indicate background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// hideNotification hides the notification panel.
func (ui *RootUI) hideNotification() {
	if ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationSpinner.Hide()
		ui.notificationContainer.Hide()
	})
}

// onRevealFile shows a captured file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	ui.withLocalFile("reveal", filePath, platform.OpenFileInManager)
}

// onOpenFile opens a captured file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	ui.withLocalFile("open", filePath, platform.OpenFileWithDefaultApp)
}

func (ui *RootUI) withLocalFile(action, filePath string, fn func(string) error) {
	if filePath == "" {
		ui.log.Error("no file path", "action", action)
		return
	}
	if strings.HasPrefix(filePath, "http") {
		ui.log.Error("cannot use a link as a file", "action", action, "path", filePath)
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyErrorOpeningFile)), ui.window.Canvas())
		return
	}
	if err := fn(filePath); err != nil {
		ui.log.Error("file action failed", "action", action, "path", filePath, "error", err)
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error()), ui.window.Canvas())
		return
	}
	ui.log.Debug("file action done", "action", action, "path", filePath)
}

// Close stops the gallery subscription
func (ui *RootUI) Close() {
	ui.galleryView.Close()
}
