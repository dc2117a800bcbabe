// Package cli parses the command line and runs commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	ucli "github.com/urfave/cli/v3"

	"todoctl/internal/commands"
	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/logging"
	"todoctl/internal/service"
	"todoctl/internal/store"
	"todoctl/internal/syncer"
)

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config, log zerolog.Logger) (service.Service, error)

// appName names the root command handed to the flag parser.
const appName = "todoctl"

// errNoBackend is reported when the dispatcher has no factory.
var errNoBackend = errors.New("no backend configured")

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		args = []string{"list"}
	}

	cmdName := args[0]

	// Flags require a command.
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	quiet     bool
	debug     bool
}

func (f *commonFlags) flags() []ucli.Flag {
	return []ucli.Flag{
		&ucli.StringFlag{Name: "config", Usage: "override config directory", Destination: &f.configDir},
		&ucli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "suppress informational output", Destination: &f.quiet},
		&ucli.BoolFlag{Name: "debug", Usage: "print debug logs to stderr", Destination: &f.debug},
	}
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	var common commonFlags
	code := exitcode.Success

	// The parser's root is always named after the binary; a root named
	// "help" skips flag parsing.
	app := &ucli.Command{
		Name:            appName,
		Usage:           cmd.Synopsis(),
		UsageText:       cmd.Usage(),
		Writer:          out,
		ErrWriter:       errOut,
		HideHelp:        true,
		HideHelpCommand: true,
		HideVersion:     true,
		Flags:           append(common.flags(), cmd.Flags()...),
		OnUsageError: func(_ context.Context, _ *ucli.Command, err error, _ bool) error {
			return err
		},
		Action: func(ctx context.Context, c *ucli.Command) error {
			code = d.run(ctx, cmd, common, c.Args().Slice(), out, errOut)
			return nil
		},
	}

	if err := app.Run(ctx, append([]string{appName}, args...)); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagError(err))
		return exitcode.UserError
	}
	return code
}

// run builds the config and backend for cmd and runs it.
func (d *Dispatcher) run(ctx context.Context, cmd commands.Command, common commonFlags, args []string, out, errOut io.Writer) int {
	// A leftover dash argument is a flag the parser did not take.
	if len(args) > 0 && strings.HasPrefix(args[0], "-") && args[0] != "-" {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", args[0])
		return exitcode.UserError
	}

	cfg, err := config.New(common.configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.AuthError
	}
	cfg.Quiet = common.quiet
	cfg.Debug = common.debug

	log := logging.New(errOut, cfg.Debug)

	var co *syncer.Coordinator
	if cmd.NeedsBackend() {
		if d.factory == nil {
			return commands.ReportError(errOut, errNoBackend)
		}
		svc, err := d.factory(ctx, cfg, log)
		if err != nil {
			return commands.ReportError(errOut, err)
		}
		co = syncer.New(svc, store.New(log), log)

		if cmd.NeedsAuth() {
			if rs := co.Initialize(ctx); !rs.OK() {
				return commands.ReportNotLoggedIn(errOut, rs.Err)
			}
		}
	}

	return cmd.Run(ctx, cfg, co, args, out, errOut)
}

// flagError rewrites parser errors in the CLI's own wording.
func flagError(err error) string {
	msg := err.Error()
	if name, ok := strings.CutPrefix(msg, "flag provided but not defined: "); ok {
		return "unknown flag: " + name
	}
	return msg
}
