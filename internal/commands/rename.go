package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
	"todoctl/internal/syncer"
)

func init() {
	Register(&RenameCmd{})
}

// RenameCmd implements the rename command.
type RenameCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *RenameCmd) SetListName(name string) {
	c.listName = name
}

func (c *RenameCmd) Name() string       { return "rename" }
func (c *RenameCmd) Aliases() []string  { return nil }
func (c *RenameCmd) Synopsis() string   { return "Change the title of a task" }
func (c *RenameCmd) Usage() string      { return "todoctl rename [--list <list-name>] <n> <title...>" }
func (c *RenameCmd) NeedsBackend() bool { return true }
func (c *RenameCmd) NeedsAuth() bool    { return true }

func (c *RenameCmd) Flags() []cli.Flag {
	return []cli.Flag{listFlag(&c.listName)}
}

func (c *RenameCmd) Run(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: task number and title required")
		return exitcode.UserError
	}
	title := strings.Join(args[1:], " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	list, task, err := taskTarget(ctx, co, c.listName, args[:1])
	if err != nil {
		return ReportError(errOut, err)
	}

	if rs := co.UpdateTask(ctx, list.ID, task.ID, service.TaskPatch{Title: &title}); !rs.OK() {
		return ReportError(errOut, rs.Err)
	}
	return printOK(cfg, out)
}
