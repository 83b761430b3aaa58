// Package lifecycle drives the application through startup, activation and
// shutdown, and keeps the process down to a single main window.
package lifecycle

import (
	"go.uber.org/zap"

	"packet/internal/actions"
	"packet/internal/options"
	"packet/internal/style"
	"packet/pkg/logger"
)

// Config configures a Controller.
type Config struct {
	// IconName is installed as the default window icon.
	IconName string
	About    AboutInfo

	// Stylesheet loads the application stylesheet. Defaults to the packaged one.
	Stylesheet func() (*style.Sheet, error)
	Logger     *logger.Logger
}

// Controller receives the host's lifecycle hooks. All methods must be
// called from the host's UI thread.
type Controller struct {
	host    Host
	router  *actions.Router
	state   *State
	windows *WindowManager
	log     *logger.Logger

	iconName   string
	about      AboutInfo
	stylesheet func() (*style.Sheet, error)

	phase       Phase
	activations int
}

// NewController creates a controller with fresh application state.
func NewController(host Host, cfg Config) *Controller {
	log := cfg.Logger
	if log == nil {
		log = logger.GetInstance()
	}
	stylesheet := cfg.Stylesheet
	if stylesheet == nil {
		stylesheet = style.LoadPackaged
	}

	state := NewState()
	return &Controller{
		host:       host,
		router:     actions.NewRouter(),
		state:      state,
		windows:    NewWindowManager(host, state, log),
		log:        log,
		iconName:   cfg.IconName,
		about:      cfg.About,
		stylesheet: stylesheet,
	}
}

// Router returns the application action router.
func (c *Controller) Router() *actions.Router {
	return c.router
}

// State returns the application state.
func (c *Controller) State() *State {
	return c.state
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Activations returns how many times Activate has run.
func (c *Controller) Activations() int {
	return c.activations
}

// MainWindow resolves the main window, if it has been created.
func (c *Controller) MainWindow() (Window, bool) {
	return c.windows.Get()
}

// Startup performs one-time global setup. It never creates a window.
func (c *Controller) Startup() {
	c.log.Debug("Application::startup")
	if c.router.Has(actions.Quit) {
		c.log.Warn("startup called more than once",
			zap.Stringer("phase", c.phase),
			zap.Int("actions", c.router.Len()))
	}

	c.host.SetDefaultIconName(c.iconName)
	c.setupStylesheet()
	c.setupActions()
	c.setupAccels()

	if c.phase == PhaseCreated {
		c.phase = PhaseStarted
	}
}

// HandleLocalOptions records the background flag of the current invocation,
// overwriting the previous value.
func (c *Controller) HandleLocalOptions(opts OptionLookup) ExitCode {
	background := opts.Contains(options.Background)
	c.log.Debug("Parsing command line", zap.Bool("background", background))
	c.state.SetStartInBackground(background)
	return Continue
}

// Activate surfaces the main window, creating it on first use. A window
// created while the background flag is set is left hidden.
func (c *Controller) Activate() {
	c.log.Debug("Application::activate", zap.Int("activation", c.activations+1))
	c.activations++
	c.phase = PhaseActivated

	w, created := c.windows.GetOrCreate()
	if !created {
		w.Present()
		return
	}
	if !c.state.StartInBackground() {
		w.Present()
		return
	}
	c.log.Info("Started in background; main window not shown")
}

// Shutdown runs once at process end. Later calls do nothing.
func (c *Controller) Shutdown() {
	if c.phase == PhaseShuttingDown || c.phase == PhaseTerminated {
		return
	}
	c.phase = PhaseShuttingDown
	c.log.Debug("Application::shutdown", zap.Int("activations", c.activations))
	c.phase = PhaseTerminated
}

func (c *Controller) setupStylesheet() {
	display, ok := c.host.DefaultDisplay()
	if !ok {
		c.log.Debug("no display available; skipping stylesheet")
		return
	}
	sheet, err := c.stylesheet()
	if err != nil {
		c.log.Error("failed to load stylesheet", zap.Error(err))
		return
	}
	display.AddStyleSheet(sheet, style.PriorityApplication)
}

func (c *Controller) setupActions() {
	c.router.Add(actions.Quit, c.quit)
	c.router.Add(actions.About, c.showAbout)

	names := make([]string, 0, c.router.Len())
	for _, n := range c.router.Names() {
		names = append(names, actions.Scope+string(n))
	}
	c.log.Debug("registered actions", zap.Strings("actions", names))
}

func (c *Controller) setupAccels() {
	for _, a := range Accelerators() {
		c.host.SetAccelsForAction(a.Action, a.Accels)
	}
}

// quit marks the window so its close handler exits instead of hiding, asks
// it to close and then quits the host.
func (c *Controller) quit() {
	c.log.Debug("Invoked action app.quit")
	if w, ok := c.windows.Get(); ok {
		w.SetShouldQuit(true)
		w.Close()
	}
	c.host.Quit()
}

func (c *Controller) showAbout() {
	w, _ := c.windows.Get()
	c.host.ShowAbout(c.about, w)
}
