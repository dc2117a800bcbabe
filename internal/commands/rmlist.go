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
	Register(&RmListCmd{})
}

// RmListCmd implements the rmlist command.
type RmListCmd struct {
	force bool
}

// SetForce sets the force flag (for testing).
func (c *RmListCmd) SetForce(force bool) {
	c.force = force
}

func (c *RmListCmd) Name() string       { return "rmlist" }
func (c *RmListCmd) Aliases() []string  { return nil }
func (c *RmListCmd) Synopsis() string   { return "Delete a list and its tasks" }
func (c *RmListCmd) Usage() string      { return "todoctl rmlist [--force] <list-name>" }
func (c *RmListCmd) NeedsBackend() bool { return true }
func (c *RmListCmd) NeedsAuth() bool    { return true }

func (c *RmListCmd) Flags() []cli.Flag {
	c.force = false
	return []cli.Flag{
		&cli.BoolFlag{Name: "force", Usage: "delete even if tasks are unfinished", Destination: &c.force},
	}
}

func (c *RmListCmd) Run(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	list, err := resolveList(ctx, co, name)
	if err != nil {
		return ReportError(errOut, err)
	}

	// Unfinished tasks block deletion unless --force.
	if !c.force {
		if rs := co.FetchTasks(ctx, list.ID); !rs.OK() {
			return ReportError(errOut, rs.Err)
		}
		for _, t := range co.Store().Tasks(list.ID) {
			if t.Status != service.StatusCompleted {
				fmt.Fprintln(errOut, "error: list not empty (use --force)")
				return exitcode.UserError
			}
		}
	}

	if rs := co.RemoveList(ctx, list.ID); !rs.OK() {
		return ReportError(errOut, rs.Err)
	}

	if err := forgetFilter(cfg, list.ID); err != nil {
		return ReportError(errOut, err)
	}
	return printOK(cfg, out)
}

// forgetFilter drops the saved filter of a deleted list.
func forgetFilter(cfg *config.Config, listID string) error {
	filters, err := cfg.LoadFilters()
	if err != nil {
		return configError{err}
	}
	if _, ok := filters[listID]; !ok {
		return nil
	}
	delete(filters, listID)
	if err := cfg.SaveFilters(filters); err != nil {
		return configError{err}
	}
	return nil
}
