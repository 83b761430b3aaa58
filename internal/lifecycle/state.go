package lifecycle

import "errors"

// ErrWindowAlreadySet is returned when the window handle is stored twice.
var ErrWindowAlreadySet = errors.New("window already set")

// WindowID identifies a window inside the host's window registry.
type WindowID uint64

// State is the process-wide application state. It holds a non-owning handle
// to the main window (the host owns the window itself) and the background
// flag from the most recent command line.
type State struct {
	windowID          WindowID
	hasWindow         bool
	startInBackground bool
}

// NewState returns a fresh state with no window and the background flag off.
func NewState() *State {
	return &State{}
}

// WindowID returns the stored window handle, if one has been set.
func (s *State) WindowID() (WindowID, bool) {
	return s.windowID, s.hasWindow
}

// SetWindow stores the window handle. The handle can only be set once.
func (s *State) SetWindow(id WindowID) error {
	if s.hasWindow {
		return ErrWindowAlreadySet
	}
	s.windowID = id
	s.hasWindow = true
	return nil
}

// StartInBackground reports whether the last command line asked for a
// background start.
func (s *State) StartInBackground() bool {
	return s.startInBackground
}

// SetStartInBackground overwrites the background flag.
func (s *State) SetStartInBackground(v bool) {
	s.startInBackground = v
}
