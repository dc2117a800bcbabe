// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	"todoctl/internal/config"
	"todoctl/internal/syncer"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsBackend returns true if the command talks to the backend.
	// Only help and version return false.
	NeedsBackend() bool

	// NeedsAuth returns true if the command requires a session.
	// Commands like help, version, login, logout return false.
	NeedsAuth() bool

	// Flags returns fresh command-specific flags bound to the command's fields.
	Flags() []cli.Flag

	// Run executes the command.
	// cfg is always provided (config dir, paths, settings).
	// co is nil if NeedsBackend() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, args []string, out, errOut io.Writer) int
}
