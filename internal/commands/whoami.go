package commands

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/output"
	"todoctl/internal/syncer"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd implements the whoami command.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string       { return "whoami" }
func (c *WhoamiCmd) Aliases() []string  { return nil }
func (c *WhoamiCmd) Synopsis() string   { return "Print the signed-in account" }
func (c *WhoamiCmd) Usage() string      { return "todoctl whoami" }
func (c *WhoamiCmd) NeedsBackend() bool { return true }
func (c *WhoamiCmd) NeedsAuth() bool    { return false }

func (c *WhoamiCmd) Flags() []cli.Flag { return nil }

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, args []string, out, errOut io.Writer) int {
	if rs := co.Initialize(ctx); !rs.OK() {
		return ReportNotLoggedIn(errOut, rs.Err)
	}
	user, _ := co.Store().User()
	output.FormatUser(out, user)
	return exitcode.Success
}
