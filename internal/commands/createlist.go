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
	Register(&CreateListCmd{})
}

// CreateListCmd implements the createlist command.
type CreateListCmd struct{}

func (c *CreateListCmd) Name() string       { return "createlist" }
func (c *CreateListCmd) Aliases() []string  { return []string{"addlist"} }
func (c *CreateListCmd) Synopsis() string   { return "Create a list" }
func (c *CreateListCmd) Usage() string      { return "todoctl createlist <list-name>" }
func (c *CreateListCmd) NeedsBackend() bool { return true }
func (c *CreateListCmd) NeedsAuth() bool    { return true }

func (c *CreateListCmd) Flags() []cli.Flag { return nil }

func (c *CreateListCmd) Run(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	if rs := co.AddList(ctx, name); !rs.OK() {
		return ReportError(errOut, rs.Err)
	}
	return printOK(cfg, out)
}
