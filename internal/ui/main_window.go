// Package ui provides the main application window.
package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"packet/internal/lifecycle"
)

// MainWindow is the application's single main window.
type MainWindow struct {
	host   *Host
	id     lifecycle.WindowID
	window fyne.Window

	// shouldQuit makes the next close an application exit instead of a
	// hide-to-background.
	shouldQuit bool
	visible    bool

	actions map[string]func() error

	deviceLabel *widget.Label
	folderLabel *widget.Label
	statusLabel *widget.Label
}

var _ lifecycle.Window = (*MainWindow)(nil)

// newMainWindow creates the window without showing it.
func newMainWindow(h *Host, id lifecycle.WindowID) *MainWindow {
	mw := &MainWindow{
		host:   h,
		id:     id,
		window: h.app.NewWindow("Packet"),
	}

	cfg := h.configMgr.Get()
	mw.window.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))
	mw.window.SetIcon(AppIcon)

	mw.actions = map[string]func() error{
		lifecycle.ActionCloseWindow: func() error { mw.Close(); return nil },
		lifecycle.ActionPreferences: func() error { mw.showPreferences(); return nil },
		lifecycle.ActionHelp:        h.openHelp,
	}

	mw.buildUI()
	mw.window.SetCloseIntercept(mw.Close)
	mw.window.SetOnClosed(func() {
		h.log.Debug("main window destroyed",
			zap.Uint64("window_id", uint64(id)),
			zap.Bool("should_quit", mw.ShouldQuit()))
		h.windowClosed(id)
	})

	return mw
}

// buildUI constructs the user interface.
func (mw *MainWindow) buildUI() {
	mw.deviceLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	mw.folderLabel = widget.NewLabel("")
	mw.folderLabel.Wrapping = fyne.TextWrapWord
	mw.statusLabel = widget.NewLabel("Ready to receive")
	mw.refresh()

	preferencesBtn := widget.NewButtonWithIcon("Preferences", theme.SettingsIcon(), func() {
		mw.host.Dispatch(lifecycle.ActionPreferences, "button")
	})

	content := container.NewBorder(
		nil,
		container.NewHBox(mw.statusLabel, layout.NewSpacer(), preferencesBtn),
		nil,
		nil,
		container.NewCenter(container.NewVBox(
			widget.NewIcon(AppIcon),
			mw.deviceLabel,
			mw.folderLabel,
		)),
	)

	mw.window.SetContent(content)
	mw.createMenu()
}

// createMenu creates the application menu.
func (mw *MainWindow) createMenu() {
	quit := fyne.NewMenuItem("Quit", func() { mw.host.Dispatch(lifecycle.ActionQuit, "menu") })
	quit.IsQuit = true

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Preferences", func() { mw.host.Dispatch(lifecycle.ActionPreferences, "menu") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Close Window", func() { mw.host.Dispatch(lifecycle.ActionCloseWindow, "menu") }),
		quit,
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("Help", func() { mw.host.Dispatch(lifecycle.ActionHelp, "menu") }),
		fyne.NewMenuItem("About Packet", func() { mw.host.Dispatch("app.about", "menu") }),
	)

	mw.window.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

// refresh updates labels from the current configuration.
func (mw *MainWindow) refresh() {
	cfg := mw.host.configMgr.Get()
	mw.deviceLabel.SetText(fmt.Sprintf("Visible as %q", cfg.DeviceName))
	mw.folderLabel.SetText("Files are saved to " + cfg.DownloadFolder)
}

// bindAccel registers the chords for a scoped action on this window.
func (mw *MainWindow) bindAccel(action string, accels []string) {
	for _, accel := range accels {
		sc, err := parseAccel(accel)
		if err != nil {
			mw.host.log.Warn("ignoring accelerator", zap.String("action", action), zap.Error(err))
			continue
		}
		mw.window.Canvas().AddShortcut(sc, func(fyne.Shortcut) {
			mw.host.Dispatch(action, "accelerator")
		})
	}
}

// activateAction runs a window-scoped action.
func (mw *MainWindow) activateAction(action string) error {
	fn, ok := mw.actions[action]
	if !ok {
		return fmt.Errorf("unknown window action %q", action)
	}
	return fn()
}

// Present shows the window and brings it to the front.
func (mw *MainWindow) Present() {
	mw.window.Show()
	mw.window.RequestFocus()
	mw.visible = true
}

// Close handles a close request. With should-quit set, or with running in
// background disabled, the window is destroyed and the app exits; otherwise
// it is only hidden.
func (mw *MainWindow) Close() {
	if mw.shouldQuit {
		mw.window.Close()
		return
	}
	if !mw.host.configMgr.RunInBackground() {
		mw.host.log.Debug("window closed with run in background disabled")
		mw.window.Close()
		mw.host.Quit()
		return
	}
	mw.window.Hide()
	mw.visible = false
}

// SetShouldQuit implements lifecycle.Window.
func (mw *MainWindow) SetShouldQuit(v bool) {
	mw.shouldQuit = v
}

// ShouldQuit reports whether the next close exits the application.
func (mw *MainWindow) ShouldQuit() bool {
	return mw.shouldQuit
}

// Visible reports whether the window is currently presented.
func (mw *MainWindow) Visible() bool {
	return mw.visible
}

// showPreferences opens the preferences dialog.
func (mw *MainWindow) showPreferences() {
	NewPreferencesDialog(mw.window, mw.host.configMgr, func() {
		mw.host.applyConfig()
		mw.refresh()
	}).Show()
}

// showError reports err in a dialog on this window.
func (mw *MainWindow) showError(err error) {
	dialog.ShowError(err, mw.window)
}
