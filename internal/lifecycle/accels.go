package lifecycle

// Accelerator binds a scoped action name to key chords.
type Accelerator struct {
	Action string
	Accels []string
}

// Action names with their scope prefix, as bound by the UI layer.
const (
	ActionQuit        = "app.quit"
	ActionCloseWindow = "window.close"
	ActionPreferences = "win.preferences"
	ActionHelp        = "win.help"
)

// Accelerators returns the static keyboard shortcut table.
func Accelerators() []Accelerator {
	return []Accelerator{
		// Quits fully even when running in background.
		{Action: ActionQuit, Accels: []string{"<Control>q"}},
		{Action: ActionCloseWindow, Accels: []string{"<Control>w"}},
		{Action: ActionPreferences, Accels: []string{"<Control>comma"}},
		{Action: ActionHelp, Accels: []string{"F1"}},
	}
}
