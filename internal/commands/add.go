package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/syncer"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *AddCmd) SetListName(name string) {
	c.listName = name
}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "todoctl add [--list <list-name>] <title...>" }
func (c *AddCmd) NeedsBackend() bool { return true }
func (c *AddCmd) NeedsAuth() bool    { return true }

func (c *AddCmd) Flags() []cli.Flag {
	return []cli.Flag{listFlag(&c.listName)}
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	list, err := resolveList(ctx, co, c.listName)
	if err != nil {
		return ReportError(errOut, err)
	}

	if rs := co.AddTask(ctx, list.ID, title); !rs.OK() {
		return ReportError(errOut, rs.Err)
	}
	return printOK(cfg, out)
}
