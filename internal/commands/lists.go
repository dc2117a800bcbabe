package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/output"
	"todoctl/internal/syncer"
)

func init() {
	Register(&ListsCmd{})
}

// ListsCmd implements the lists command.
type ListsCmd struct{}

func (c *ListsCmd) Name() string       { return "lists" }
func (c *ListsCmd) Aliases() []string  { return nil }
func (c *ListsCmd) Synopsis() string   { return "List task lists" }
func (c *ListsCmd) Usage() string      { return "todoctl lists" }
func (c *ListsCmd) NeedsBackend() bool { return true }
func (c *ListsCmd) NeedsAuth() bool    { return true }

func (c *ListsCmd) Flags() []cli.Flag { return nil }

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, args []string, out, errOut io.Writer) int {
	if rs := co.FetchLists(ctx); !rs.OK() {
		return ReportError(errOut, rs.Err)
	}
	if err := applySavedFilters(cfg, co); err != nil {
		return ReportError(errOut, err)
	}

	lists := co.Store().Lists()
	if len(lists) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no lists found")
	}
	for _, l := range lists {
		output.FormatListName(out, l)
	}
	return exitcode.Success
}
