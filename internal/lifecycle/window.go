package lifecycle

import (
	"go.uber.org/zap"

	"packet/pkg/logger"
)

// Window is the main application window as seen by the controller.
type Window interface {
	// Present shows the window and raises it.
	Present()
	// Close requests the window to close. The window decides whether that
	// hides it or really closes it, based on its should-quit flag.
	Close()
	// SetShouldQuit marks the next close as an application exit.
	SetShouldQuit(bool)
}

// WindowHost constructs windows and resolves handles to live windows.
type WindowHost interface {
	NewWindow() WindowID
	LookupWindow(id WindowID) (Window, bool)
}

// WindowManager keeps at most one main window per process.
type WindowManager struct {
	host  WindowHost
	state *State
	log   *logger.Logger
}

// NewWindowManager creates a manager storing its handle in state.
func NewWindowManager(host WindowHost, state *State, log *logger.Logger) *WindowManager {
	return &WindowManager{host: host, state: state, log: log}
}

// Get resolves the stored handle. A handle that was set but no longer
// resolves is a broken invariant and panics.
func (m *WindowManager) Get() (Window, bool) {
	id, ok := m.state.WindowID()
	if !ok {
		return nil, false
	}
	w, ok := m.host.LookupWindow(id)
	if !ok {
		m.log.Panic("window handle no longer resolves", zap.Uint64("window_id", uint64(id)))
	}
	return w, true
}

// GetOrCreate returns the existing window, or constructs one through the
// host and stores its handle. created reports which happened.
func (m *WindowManager) GetOrCreate() (w Window, created bool) {
	if w, ok := m.Get(); ok {
		return w, false
	}

	id := m.host.NewWindow()
	if err := m.state.SetWindow(id); err != nil {
		m.log.Panic(err.Error(), zap.Uint64("window_id", uint64(id)))
	}
	w, ok := m.host.LookupWindow(id)
	if !ok {
		m.log.Panic("new window did not register", zap.Uint64("window_id", uint64(id)))
	}
	m.log.Debug("main window created", zap.Uint64("window_id", uint64(id)))
	return w, true
}
