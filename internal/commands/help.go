package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/syncer"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command. It describes the commands of
// Registry, or of DefaultRegistry when nil.
type HelpCmd struct {
	Registry *Registry
}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "todoctl help" }
func (c *HelpCmd) NeedsBackend() bool { return false }
func (c *HelpCmd) NeedsAuth() bool    { return false }

func (c *HelpCmd) Flags() []cli.Flag { return nil }

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, args []string, out, errOut io.Writer) int {
	reg := c.Registry
	if reg == nil {
		reg = DefaultRegistry
	}

	fmt.Fprintln(out, "Usage:")
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  todoctl\t%s\n", "List all lists and tasks")
	for _, cmd := range reg.All() {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Usage(), cmd.Synopsis())
		for _, alias := range cmd.Aliases() {
			fmt.Fprintf(tw, "  todoctl %s\t%s\n", alias, "Same as "+cmd.Name())
		}
	}
	tw.Flush()

	fmt.Fprint(out, commonFlagsHelp)
	return exitcode.Success
}

const commonFlagsHelp = `
Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Task numbers are positions in a list, starting at 1.
`
