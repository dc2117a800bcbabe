package commands

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/output"
	"todoctl/internal/syncer"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *ShowCmd) SetListName(name string) {
	c.listName = name
}

func (c *ShowCmd) Name() string       { return "show" }
func (c *ShowCmd) Aliases() []string  { return nil }
func (c *ShowCmd) Synopsis() string   { return "Print every field of a task" }
func (c *ShowCmd) Usage() string      { return "todoctl show [--list <list-name>] <n>" }
func (c *ShowCmd) NeedsBackend() bool { return true }
func (c *ShowCmd) NeedsAuth() bool    { return true }

func (c *ShowCmd) Flags() []cli.Flag {
	return []cli.Flag{listFlag(&c.listName)}
}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, args []string, out, errOut io.Writer) int {
	_, task, err := taskTarget(ctx, co, c.listName, args)
	if err != nil {
		return ReportError(errOut, err)
	}
	num, _ := parseTaskNumber(args[0])
	output.FormatTaskDetail(out, num, task)
	return exitcode.Success
}
