package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/syncer"
)

// Version is the application version. Set at build time.
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd implements the version command.
type VersionCmd struct{}

func (c *VersionCmd) Name() string       { return "version" }
func (c *VersionCmd) Aliases() []string  { return nil }
func (c *VersionCmd) Synopsis() string   { return "Print version" }
func (c *VersionCmd) Usage() string      { return "todoctl version" }
func (c *VersionCmd) NeedsBackend() bool { return false }
func (c *VersionCmd) NeedsAuth() bool    { return false }

func (c *VersionCmd) Flags() []cli.Flag { return nil }

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "todoctl %s\n", Version)
	return exitcode.Success
}
