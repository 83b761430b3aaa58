// Package app provides the main application logic.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	flag "github.com/spf13/pflag"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"packet/internal/config"
	"packet/internal/instance"
	"packet/internal/lifecycle"
	"packet/internal/options"
	"packet/internal/ui"
	"packet/pkg/logger"
)

// Build metadata, overridden with -ldflags.
var (
	AppID   = "io.github.nozwock.Packet"
	Version = "0.1.0"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// App represents the main application.
type App struct {
	configMgr *config.ConfigManager
	log       *logger.Logger
	parser    *options.Parser
	stdout    io.Writer
	stderr    io.Writer

	server *instance.Server
	host   *ui.Host
	ctrl   *lifecycle.Controller
}

// New creates a new application instance.
func New() (*App, error) {
	configPath := filepath.Join(config.DefaultConfigDir(), "config.json")

	configMgr, err := config.NewConfigManager(configPath)
	if err != nil {
		return nil, err
	}

	log := logger.GetInstance()
	cfg := configMgr.Get()
	err = log.Initialize(logger.Config{
		LogPath: cfg.LogPath,
		Level:   cfg.LogLevel,
		Console: true,
	})
	if err != nil {
		// Console logging still works
		log.Warnf("Failed to initialize file logging: %v", err)
	}

	return newApp(configMgr, log, os.Stdout, os.Stderr), nil
}

func newApp(configMgr *config.ConfigManager, log *logger.Logger, stdout, stderr io.Writer) *App {
	return &App{
		configMgr: configMgr,
		log:       log,
		parser:    options.NewParser("packet"),
		stdout:    stdout,
		stderr:    stderr,
	}
}

// socketPath returns the single-instance socket for this user.
func (a *App) socketPath() string {
	if p := a.configMgr.Env().SocketPath; p != "" {
		return p
	}
	return instance.SocketPath(AppID)
}

// Run processes one invocation and returns the process exit code. A second
// invocation forwards its arguments to the running instance and returns.
func (a *App) Run(args []string) int {
	parsed, err := a.parser.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(a.stdout, a.parser.Usage())
			return ExitOK
		}
		fmt.Fprintf(a.stderr, "%v\n\n%s", err, a.parser.Usage())
		return ExitUsage
	}

	server, err := instance.Listen(a.socketPath(), a.log)
	if errors.Is(err, instance.ErrAlreadyRunning) {
		a.log.Info("Forwarding invocation to running instance", zap.Strings("args", parsed.Args()))
		if err := instance.Forward(a.socketPath(), parsed.Args()); err != nil {
			fmt.Fprintf(a.stderr, "Failed to reach running instance: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
	if err != nil {
		// Run unguarded rather than refuse to start.
		a.log.Warn("Single-instance socket unavailable", zap.Error(err))
	}
	a.server = server

	a.runPrimary(parsed)
	if err := a.cleanup(); err != nil {
		fmt.Fprintf(a.stderr, "Cleanup failed: %v\n", err)
		return ExitError
	}
	return ExitOK
}

// runPrimary drives the lifecycle hooks around the toolkit's run loop.
func (a *App) runPrimary(parsed options.Parsed) {
	a.log.Info("Packet", zap.String("app_id", AppID))
	a.log.Info("Version", zap.String("version", Version), zap.String("profile", a.configMgr.Env().Profile))
	a.log.Info("Datadir", zap.String("path", config.DefaultConfigDir()))

	fyneApp := fyneapp.NewWithID(AppID)
	a.host = ui.NewHost(fyneApp, a.configMgr, a.log)
	a.ctrl = lifecycle.NewController(a.host, lifecycle.Config{
		IconName: AppID,
		About:    lifecycle.DefaultAbout(AppID, Version),
		Logger:   a.log,
	})
	a.host.Attach(a.ctrl)

	a.ctrl.HandleLocalOptions(parsed)
	a.ctrl.Startup()
	a.host.SetupTray()

	fyneApp.Lifecycle().SetOnStarted(func() {
		a.ctrl.Activate()
		a.host.NotifyBackgroundStart()
	})

	if a.server != nil {
		a.server.Serve(a.handleForwarded)
	}

	fyneApp.Run()
	a.ctrl.Shutdown()
	a.log.Info("Run loop finished",
		zap.Stringer("phase", a.ctrl.Phase()),
		zap.Int("activations", a.ctrl.Activations()))
}

// handleForwarded runs a request from a secondary invocation on the UI thread.
func (a *App) handleForwarded(req instance.Request) error {
	if req.Command != instance.CommandActivate {
		return fmt.Errorf("unknown command %q", req.Command)
	}
	var err error
	fyne.DoAndWait(func() {
		err = a.host.HandleCommandLine(req.Args)
	})
	return err
}

// cleanup performs cleanup before exit.
func (a *App) cleanup() error {
	a.log.Info("Shutting down Packet")

	var err error
	if a.server != nil {
		err = multierr.Append(err, a.server.Close())
	}
	err = multierr.Append(err, a.configMgr.Save())
	return multierr.Append(err, a.log.Close())
}
