package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/store"
	"todoctl/internal/syncer"
)

func init() {
	Register(&FilterCmd{})
}

// FilterCmd implements the filter command. The filter is saved in the
// config directory and applied by list and lists.
type FilterCmd struct{}

func (c *FilterCmd) Name() string       { return "filter" }
func (c *FilterCmd) Aliases() []string  { return nil }
func (c *FilterCmd) Synopsis() string   { return "Set the display filter of a list" }
func (c *FilterCmd) Usage() string      { return "todoctl filter <list-name> all|active|completed" }
func (c *FilterCmd) NeedsBackend() bool { return true }
func (c *FilterCmd) NeedsAuth() bool    { return true }

func (c *FilterCmd) Flags() []cli.Flag { return nil }

func (c *FilterCmd) Run(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: list name and filter required")
		return exitcode.UserError
	}
	value := args[len(args)-1]
	filter, ok := store.ParseFilter(value)
	if !ok {
		fmt.Fprintf(errOut, "error: invalid filter: %s\n", value)
		return exitcode.UserError
	}

	list, err := resolveList(ctx, co, strings.Join(args[:len(args)-1], " "))
	if err != nil {
		return ReportError(errOut, err)
	}
	co.ChangeFilter(list.ID, filter)

	filters, err := cfg.LoadFilters()
	if err != nil {
		return ReportError(errOut, configError{err})
	}
	if filter == store.FilterAll {
		delete(filters, list.ID)
	} else {
		filters[list.ID] = string(filter)
	}
	if err := cfg.SaveFilters(filters); err != nil {
		return ReportError(errOut, configError{err})
	}
	return printOK(cfg, out)
}
