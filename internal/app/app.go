// Package app wires the configuration, the engines and the front ends
// together and turns their outcome into a process exit code.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/agbru/fiblike/internal/cli"
	"github.com/agbru/fiblike/internal/config"
	"github.com/agbru/fiblike/internal/engine"
	apperrors "github.com/agbru/fiblike/internal/errors"
	"github.com/agbru/fiblike/internal/logging"
	"github.com/agbru/fiblike/internal/server"
	"github.com/agbru/fiblike/internal/tui"
	"github.com/agbru/fiblike/internal/ui"
)

// Application represents one fiblike invocation.
type Application struct {
	Config    config.AppConfig
	Factory   *engine.Factory
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets the engine factory. The default is engine.GlobalFactory.
func WithFactory(f *engine.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// New creates an Application by parsing args, whose first element is the
// program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = engine.GlobalFactory()
	}

	programName := "fiblike"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application in the configured mode and returns the exit
// code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		fmt.Fprintln(a.ErrWriter, err)
		return apperrors.ExitErrorConfig
	}
	logging.Setup(level, a.ErrWriter)
	ui.InitTheme(a.Config.NoColor, out)

	switch {
	case a.Config.ServerMode:
		return a.runServer(ctx)
	case a.Config.TUI:
		return a.runTUI(ctx)
	default:
		return a.runCalculate(ctx, out)
	}
}

// runCompletion prints a shell completion script.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServer serves the HTTP API until ctx is done or a signal arrives.
func (a *Application) runServer(ctx context.Context) int {
	srv, err := server.NewServer(a.Factory, a.Config,
		server.WithLogger(logging.NewLogger(a.ErrWriter, "server")))
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error creating server: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runTUI starts the interactive mode. Each computation carries its own
// timeout, so only signals bound the session.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, stop := signalContext(ctx)
	defer stop()

	engines, err := a.Factory.Resolve("all")
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return tui.Run(ctx, engines, a.Config, Version)
}

// IsHelpError reports whether err comes from -h or --help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// HandleStartupError reports an error returned by New and returns the exit
// code. Help requests exit with 0. Positional argument errors go to out, the
// way results do; flag errors have already been printed with the usage text.
func HandleStartupError(err error, out, errOut io.Writer) int {
	switch {
	case err == nil:
		return apperrors.ExitSuccess
	case IsHelpError(err):
		return apperrors.ExitSuccess
	case config.IsArgumentError(err):
		fmt.Fprintln(out, err)
		return apperrors.ExitErrorConfig
	case apperrors.IsInputError(err):
		return apperrors.ExitErrorConfig
	default:
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
}
