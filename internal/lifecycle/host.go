package lifecycle

import "packet/internal/style"

// ExitCode is returned from HandleLocalOptions. Continue lets the host carry
// on with the normal startup sequence.
type ExitCode int

// Continue is the pass-through exit code.
const Continue ExitCode = -1

// Display is a screen that accepts stylesheets.
type Display interface {
	AddStyleSheet(sheet *style.Sheet, priority style.Priority)
}

// Host is the windowing runtime the controller drives.
type Host interface {
	WindowHost

	SetDefaultIconName(name string)
	// DefaultDisplay returns false when no display is available.
	DefaultDisplay() (Display, bool)
	SetAccelsForAction(action string, accels []string)
	// ShowAbout presents the about dialog; parent may be nil.
	ShowAbout(info AboutInfo, parent Window)
	Quit()
}

// OptionLookup is the parsed command line of one invocation.
type OptionLookup interface {
	Contains(name string) bool
}
