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
	Register(&RenameListCmd{})
}

// RenameListCmd implements the renamelist command.
type RenameListCmd struct{}

func (c *RenameListCmd) Name() string       { return "renamelist" }
func (c *RenameListCmd) Aliases() []string  { return nil }
func (c *RenameListCmd) Synopsis() string   { return "Rename a list" }
func (c *RenameListCmd) Usage() string      { return "todoctl renamelist <list-name> <new-name...>" }
func (c *RenameListCmd) NeedsBackend() bool { return true }
func (c *RenameListCmd) NeedsAuth() bool    { return true }

func (c *RenameListCmd) Flags() []cli.Flag { return nil }

func (c *RenameListCmd) Run(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: list name and new name required")
		return exitcode.UserError
	}
	title := strings.TrimSpace(strings.Join(args[1:], " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: new name required")
		return exitcode.UserError
	}

	list, err := resolveList(ctx, co, args[0])
	if err != nil {
		return ReportError(errOut, err)
	}

	if rs := co.RenameList(ctx, list.ID, title); !rs.OK() {
		return ReportError(errOut, rs.Err)
	}
	return printOK(cfg, out)
}
