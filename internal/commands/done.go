package commands

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	"todoctl/internal/config"
	"todoctl/internal/service"
	"todoctl/internal/syncer"
)

func init() {
	Register(&DoneCmd{})
	Register(&UndoCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *DoneCmd) SetListName(name string) {
	c.listName = name
}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return nil }
func (c *DoneCmd) Synopsis() string   { return "Mark a task completed" }
func (c *DoneCmd) Usage() string      { return "todoctl done [--list <list-name>] <n>" }
func (c *DoneCmd) NeedsBackend() bool { return true }
func (c *DoneCmd) NeedsAuth() bool    { return true }

func (c *DoneCmd) Flags() []cli.Flag {
	return []cli.Flag{listFlag(&c.listName)}
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, args []string, out, errOut io.Writer) int {
	return setStatus(ctx, cfg, co, c.listName, args, service.StatusCompleted, out, errOut)
}

// UndoCmd implements the undo command.
type UndoCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *UndoCmd) SetListName(name string) {
	c.listName = name
}

func (c *UndoCmd) Name() string       { return "undo" }
func (c *UndoCmd) Aliases() []string  { return nil }
func (c *UndoCmd) Synopsis() string   { return "Mark a task not completed" }
func (c *UndoCmd) Usage() string      { return "todoctl undo [--list <list-name>] <n>" }
func (c *UndoCmd) NeedsBackend() bool { return true }
func (c *UndoCmd) NeedsAuth() bool    { return true }

func (c *UndoCmd) Flags() []cli.Flag {
	return []cli.Flag{listFlag(&c.listName)}
}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, args []string, out, errOut io.Writer) int {
	return setStatus(ctx, cfg, co, c.listName, args, service.StatusNew, out, errOut)
}

// setStatus is the shared implementation for done, undo and status.
func setStatus(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, listName string, args []string, status service.TaskStatus, out, errOut io.Writer) int {
	list, task, err := taskTarget(ctx, co, listName, args)
	if err != nil {
		return ReportError(errOut, err)
	}

	if rs := co.UpdateTask(ctx, list.ID, task.ID, service.TaskPatch{Status: &status}); !rs.OK() {
		return ReportError(errOut, rs.Err)
	}
	return printOK(cfg, out)
}
