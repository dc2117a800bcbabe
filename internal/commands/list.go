package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/output"
	"todoctl/internal/store"
	"todoctl/internal/syncer"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todoctl` (no args) and `todoctl list <list-name>`.
type ListCmd struct {
	filter string
}

// SetFilter sets the filter override (for testing).
func (c *ListCmd) SetFilter(filter string) {
	c.filter = filter
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return nil }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "todoctl list [--filter all|active|completed] [<list-name>]" }
func (c *ListCmd) NeedsBackend() bool { return true }
func (c *ListCmd) NeedsAuth() bool    { return true }

func (c *ListCmd) Flags() []cli.Flag {
	c.filter = ""
	return []cli.Flag{
		&cli.StringFlag{Name: "filter", Aliases: []string{"f"}, Usage: "all, active or completed", Destination: &c.filter},
	}
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, args []string, out, errOut io.Writer) int {
	var override store.FilterValue
	if c.filter != "" {
		f, ok := store.ParseFilter(c.filter)
		if !ok {
			fmt.Fprintf(errOut, "error: invalid filter: %s\n", c.filter)
			return exitcode.UserError
		}
		override = f
	}

	if len(args) == 0 {
		return c.listAll(ctx, cfg, co, override, out, errOut)
	}

	listName := strings.TrimSpace(strings.Join(args, " "))
	if listName == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}
	return c.listOne(ctx, cfg, co, listName, override, out, errOut)
}

// listAll prints every list with its tasks.
func (c *ListCmd) listAll(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, override store.FilterValue, out, errOut io.Writer) int {
	if rs := co.FetchAll(ctx); !rs.OK() {
		return ReportError(errOut, rs.Err)
	}
	if err := applySavedFilters(cfg, co); err != nil {
		return ReportError(errOut, err)
	}

	lists := co.Store().Lists()
	if len(lists) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no lists found")
		}
		return exitcode.Success
	}

	for _, l := range lists {
		printSection(out, co, l, override)
	}
	return exitcode.Success
}

// listOne prints one list (todoctl list <name>).
func (c *ListCmd) listOne(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, listName string, override store.FilterValue, out, errOut io.Writer) int {
	list, err := resolveList(ctx, co, listName)
	if err != nil {
		return ReportError(errOut, err)
	}
	if rs := co.FetchTasks(ctx, list.ID); !rs.OK() {
		return ReportError(errOut, rs.Err)
	}
	if err := applySavedFilters(cfg, co); err != nil {
		return ReportError(errOut, err)
	}

	list, _ = co.Store().List(list.ID)
	printSection(out, co, list, override)
	return exitcode.Success
}

// printSection prints a list header and the tasks its filter selects.
// Task numbers are positions in the unfiltered list.
func printSection(out io.Writer, co *syncer.Coordinator, list store.TodoList, override store.FilterValue) {
	if override != "" {
		co.ChangeFilter(list.ID, override)
		list, _ = co.Store().List(list.ID)
	}
	output.FormatListHeader(out, list, co.Store().Tasks(list.ID))
	for _, t := range co.Store().FilteredTasks(list.ID) {
		output.FormatTask(out, t.Num, t.Task)
	}
}
