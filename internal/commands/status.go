package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
	"todoctl/internal/syncer"
)

func init() {
	Register(&StatusCmd{})
}

// StatusCmd implements the status command.
type StatusCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *StatusCmd) SetListName(name string) {
	c.listName = name
}

func (c *StatusCmd) Name() string       { return "status" }
func (c *StatusCmd) Aliases() []string  { return nil }
func (c *StatusCmd) Synopsis() string   { return "Set the status of a task" }
func (c *StatusCmd) Usage() string      { return "todoctl status [--list <list-name>] <n> new|inprogress|completed|draft" }
func (c *StatusCmd) NeedsBackend() bool { return true }
func (c *StatusCmd) NeedsAuth() bool    { return true }

func (c *StatusCmd) Flags() []cli.Flag {
	return []cli.Flag{listFlag(&c.listName)}
}

func (c *StatusCmd) Run(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: task number and status required")
		return exitcode.UserError
	}
	status, ok := service.ParseStatus(args[1])
	if !ok {
		fmt.Fprintf(errOut, "error: invalid status: %s\n", args[1])
		return exitcode.UserError
	}
	return setStatus(ctx, cfg, co, c.listName, args[:1], status, out, errOut)
}
