// Package ui provides the preferences dialog.
package ui

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"packet/internal/config"
)

// PreferencesDialog edits the persisted application preferences.
type PreferencesDialog struct {
	window    fyne.Window
	configMgr *config.ConfigManager
	onSave    func()

	deviceName          *widget.Entry
	downloadFolder      *widget.Entry
	runInBackground     *widget.Check
	enableNotifications *widget.Check
	themeSelect         *widget.Select
	windowWidth         *widget.Entry
	windowHeight        *widget.Entry
	logLevelSelect      *widget.Select
}

// NewPreferencesDialog creates a new preferences dialog.
func NewPreferencesDialog(parent fyne.Window, configMgr *config.ConfigManager, onSave func()) *PreferencesDialog {
	return &PreferencesDialog{
		window:    parent,
		configMgr: configMgr,
		onSave:    onSave,
	}
}

// Show displays the preferences dialog.
func (pd *PreferencesDialog) Show() {
	pd.buildDialog()
}

func (pd *PreferencesDialog) buildDialog() {
	cfg := pd.configMgr.Stored()

	pd.deviceName = widget.NewEntry()
	pd.deviceName.SetText(cfg.DeviceName)

	pd.downloadFolder = widget.NewEntry()
	pd.downloadFolder.SetText(cfg.DownloadFolder)
	browseBtn := widget.NewButton("Browse...", func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			pd.downloadFolder.SetText(uri.Path())
		}, pd.window)
	})

	pd.runInBackground = widget.NewCheck("Keep running when the window is closed", nil)
	pd.runInBackground.SetChecked(cfg.RunInBackground)

	pd.enableNotifications = widget.NewCheck("Show desktop notifications", nil)
	pd.enableNotifications.SetChecked(cfg.EnableNotifications)

	pd.themeSelect = widget.NewSelect([]string{"system", "light", "dark"}, nil)
	pd.themeSelect.SetSelected(cfg.Theme)

	pd.windowWidth = widget.NewEntry()
	pd.windowWidth.SetText(strconv.Itoa(cfg.WindowWidth))
	pd.windowHeight = widget.NewEntry()
	pd.windowHeight.SetText(strconv.Itoa(cfg.WindowHeight))

	pd.logLevelSelect = widget.NewSelect([]string{"debug", "info", "warn", "error"}, nil)
	pd.logLevelSelect.SetSelected(cfg.LogLevel)

	form := container.NewVBox(
		widget.NewLabel("Device"),
		widget.NewSeparator(),
		container.NewGridWithColumns(2, widget.NewLabel("Device name:"), pd.deviceName),
		container.NewGridWithColumns(2,
			widget.NewLabel("Download folder:"),
			container.NewBorder(nil, nil, nil, browseBtn, pd.downloadFolder),
		),

		widget.NewLabel(""),
		widget.NewLabel("Background"),
		widget.NewSeparator(),
		pd.runInBackground,
		pd.enableNotifications,

		widget.NewLabel(""),
		widget.NewLabel("Appearance"),
		widget.NewSeparator(),
		container.NewGridWithColumns(2, widget.NewLabel("Theme:"), pd.themeSelect),
		container.NewGridWithColumns(2,
			widget.NewLabel("Window size:"),
			container.NewHBox(pd.windowWidth, widget.NewLabel("x"), pd.windowHeight),
		),

		widget.NewLabel(""),
		widget.NewLabel("Logging"),
		widget.NewSeparator(),
		container.NewGridWithColumns(2, widget.NewLabel("Log level:"), pd.logLevelSelect),
	)

	scroll := container.NewVScroll(form)
	scroll.SetMinSize(fyne.NewSize(400, 400))

	dlg := dialog.NewCustomConfirm("Preferences", "Save", "Cancel", scroll,
		func(confirmed bool) {
			if confirmed {
				pd.save()
			}
		}, pd.window)

	dlg.Resize(fyne.NewSize(480, 500))
	dlg.Show()
}

func (pd *PreferencesDialog) save() {
	cfg, err := pd.collect()
	if err != nil {
		dialog.ShowError(err, pd.window)
		return
	}

	if err := pd.configMgr.Set(cfg); err != nil {
		dialog.ShowError(err, pd.window)
		return
	}

	if pd.onSave != nil {
		pd.onSave()
	}
}

// collect validates the form and returns the updated configuration.
func (pd *PreferencesDialog) collect() (*config.AppConfig, error) {
	cfg := pd.configMgr.Stored()

	name := strings.TrimSpace(pd.deviceName.Text)
	if name == "" {
		return nil, &preferencesError{"Device name cannot be empty"}
	}

	width, err := strconv.Atoi(pd.windowWidth.Text)
	if err != nil || width < 360 {
		return nil, &preferencesError{"Window width must be at least 360"}
	}
	height, err := strconv.Atoi(pd.windowHeight.Text)
	if err != nil || height < 300 {
		return nil, &preferencesError{"Window height must be at least 300"}
	}

	cfg.DeviceName = name
	cfg.DownloadFolder = strings.TrimSpace(pd.downloadFolder.Text)
	cfg.RunInBackground = pd.runInBackground.Checked
	cfg.EnableNotifications = pd.enableNotifications.Checked
	cfg.Theme = pd.themeSelect.Selected
	cfg.WindowWidth = width
	cfg.WindowHeight = height
	cfg.LogLevel = pd.logLevelSelect.Selected

	return &cfg, nil
}

type preferencesError struct {
	message string
}

func (e *preferencesError) Error() string {
	return e.message
}
