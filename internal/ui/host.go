// Package ui provides the graphical user interface using Fyne.
package ui

import (
	"errors"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"go.uber.org/zap"

	"packet/internal/actions"
	"packet/internal/config"
	"packet/internal/lifecycle"
	"packet/internal/options"
	"packet/pkg/logger"
)

// ErrQuitting is returned for forwarded invocations arriving after quit.
var ErrQuitting = errors.New("application is quitting")

// HelpURL is opened by the help action.
const HelpURL = "https://github.com/nozwock/packet#readme"

// Host runs the lifecycle controller on top of a fyne application. It owns
// the windows; the controller only keeps an id into the registry.
type Host struct {
	app       fyne.App
	configMgr *config.ConfigManager
	log       *logger.Logger
	display   *Display
	notifier  *NotificationManager
	parser    *options.Parser

	ctrl *lifecycle.Controller

	windows  map[lifecycle.WindowID]*MainWindow
	nextID   lifecycle.WindowID
	accels   []lifecycle.Accelerator
	quitting bool
}

var _ lifecycle.Host = (*Host)(nil)

// NewHost creates a host for a.
func NewHost(a fyne.App, configMgr *config.ConfigManager, log *logger.Logger) *Host {
	cfg := configMgr.Get()
	RegisterIcon(a.UniqueID(), AppIcon)
	return &Host{
		app:       a,
		configMgr: configMgr,
		log:       log,
		display:   newDisplay(a, cfg.Theme),
		notifier:  NewNotificationManager(a, cfg.EnableNotifications),
		parser:    options.NewParser("packet"),
		windows:   make(map[lifecycle.WindowID]*MainWindow),
	}
}

// Attach connects the controller whose hooks this host drives.
func (h *Host) Attach(ctrl *lifecycle.Controller) {
	h.ctrl = ctrl
}

// SetDefaultIconName implements lifecycle.Host.
func (h *Host) SetDefaultIconName(name string) {
	h.app.SetIcon(iconNamed(name))
}

// DefaultDisplay implements lifecycle.Host. A fyne app always has a
// settings surface to theme, including the headless test driver.
func (h *Host) DefaultDisplay() (lifecycle.Display, bool) {
	return h.display, true
}

// SetAccelsForAction implements lifecycle.Host. Existing windows are
// rebound so the table can change after they were created.
func (h *Host) SetAccelsForAction(action string, accels []string) {
	replaced := false
	for i := range h.accels {
		if h.accels[i].Action == action {
			h.accels[i].Accels = accels
			replaced = true
		}
	}
	if !replaced {
		h.accels = append(h.accels, lifecycle.Accelerator{Action: action, Accels: accels})
	}
	for _, mw := range h.windows {
		mw.bindAccel(action, accels)
	}
}

// NewWindow implements lifecycle.Host.
func (h *Host) NewWindow() lifecycle.WindowID {
	h.nextID++
	id := h.nextID
	mw := newMainWindow(h, id)
	h.windows[id] = mw
	for _, a := range h.accels {
		mw.bindAccel(a.Action, a.Accels)
	}
	return id
}

// LookupWindow implements lifecycle.Host.
func (h *Host) LookupWindow(id lifecycle.WindowID) (lifecycle.Window, bool) {
	mw, ok := h.windows[id]
	if !ok {
		return nil, false
	}
	return mw, true
}

// ShowAbout implements lifecycle.Host.
func (h *Host) ShowAbout(info lifecycle.AboutInfo, parent lifecycle.Window) {
	mw, _ := parent.(*MainWindow)
	showAboutDialog(h.app, info, mw)
}

// Quit implements lifecycle.Host.
func (h *Host) Quit() {
	if h.quitting {
		return
	}
	h.quitting = true
	h.log.Info("Quitting")
	h.app.Quit()
}

// windowClosed drops a window that was really closed from the registry.
func (h *Host) windowClosed(id lifecycle.WindowID) {
	delete(h.windows, id)
}

// Dispatch runs a scoped action name from a menu, tray or accelerator.
func (h *Host) Dispatch(action, source string) {
	if h.quitting {
		h.log.LogAction(action, source, ErrQuitting)
		return
	}
	var err error
	switch {
	case strings.HasPrefix(action, actions.Scope):
		err = h.ctrl.Router().Activate(action)
	default:
		err = h.dispatchWindowAction(action)
	}
	h.log.LogAction(action, source, err)
}

func (h *Host) dispatchWindowAction(action string) error {
	w, ok := h.ctrl.MainWindow()
	if !ok {
		return errors.New("no main window")
	}
	mw := w.(*MainWindow)
	if err := mw.activateAction(action); err != nil {
		mw.showError(err)
		return err
	}
	return nil
}

// HandleCommandLine runs a forwarded invocation: parse, record options and
// activate. It must run on the UI thread.
func (h *Host) HandleCommandLine(args []string) error {
	if h.quitting {
		return ErrQuitting
	}
	parsed, err := h.parser.Parse(args)
	if err != nil {
		return err
	}
	h.ctrl.HandleLocalOptions(parsed)
	h.ctrl.Activate()
	return nil
}

// Show activates the application from the tray. After quit has started the
// window may already be gone, so the request is dropped.
func (h *Host) Show() {
	if h.quitting {
		h.log.Debug("ignoring show while quitting")
		return
	}
	h.ctrl.Activate()
}

// SetupTray installs the system tray menu when the driver supports one.
func (h *Host) SetupTray() bool {
	desk, ok := h.app.(desktop.App)
	if !ok {
		return false
	}
	show := fyne.NewMenuItem("Show", h.Show)
	quit := fyne.NewMenuItem("Quit", func() { h.Dispatch(lifecycle.ActionQuit, "tray") })
	quit.IsQuit = true
	desk.SetSystemTrayMenu(fyne.NewMenu("Packet", show, fyne.NewMenuItemSeparator(), quit))
	desk.SetSystemTrayIcon(AppIcon)
	return true
}

// NotifyBackgroundStart reports a background start to the user while the
// main window is still hidden.
func (h *Host) NotifyBackgroundStart() {
	if !h.ctrl.State().StartInBackground() {
		return
	}
	if w, ok := h.ctrl.MainWindow(); ok && w.(*MainWindow).Visible() {
		return
	}
	h.notifier.NotifyRunningInBackground()
}

// openHelp opens the online help page.
func (h *Host) openHelp() error {
	u, err := url.Parse(HelpURL)
	if err != nil {
		return err
	}
	if err := h.app.OpenURL(u); err != nil {
		h.log.Warn("failed to open help", zap.Error(err))
		return err
	}
	return nil
}

// applyConfig pushes saved preferences into the running UI.
func (h *Host) applyConfig() {
	cfg := h.configMgr.Get()
	h.notifier.SetEnabled(cfg.EnableNotifications)
	h.display.SetVariant(cfg.Theme)
	h.log.SetLevel(cfg.LogLevel)
}
