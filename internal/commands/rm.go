package commands

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	"todoctl/internal/config"
	"todoctl/internal/syncer"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *RmCmd) SetListName(name string) {
	c.listName = name
}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return nil }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "todoctl rm [--list <list-name>] <n>" }
func (c *RmCmd) NeedsBackend() bool { return true }
func (c *RmCmd) NeedsAuth() bool    { return true }

func (c *RmCmd) Flags() []cli.Flag {
	return []cli.Flag{listFlag(&c.listName)}
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, args []string, out, errOut io.Writer) int {
	list, task, err := taskTarget(ctx, co, c.listName, args)
	if err != nil {
		return ReportError(errOut, err)
	}

	if rs := co.RemoveTask(ctx, list.ID, task.ID); !rs.OK() {
		return ReportError(errOut, rs.Err)
	}
	return printOK(cfg, out)
}
