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

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd implements the logout command.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string       { return "logout" }
func (c *LogoutCmd) Aliases() []string  { return nil }
func (c *LogoutCmd) Synopsis() string   { return "Sign out and remove stored credentials" }
func (c *LogoutCmd) Usage() string      { return "todoctl logout" }
func (c *LogoutCmd) NeedsBackend() bool { return true }
func (c *LogoutCmd) NeedsAuth() bool    { return false }

func (c *LogoutCmd) Flags() []cli.Flag { return nil }

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, args []string, out, errOut io.Writer) int {
	if !cfg.HasCredentials() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	if rs := co.Logout(ctx); !rs.OK() {
		// The local credentials go even if the backend refused.
		if err := cfg.RemoveCredentials(); err != nil {
			fmt.Fprintf(errOut, "error: failed to remove credentials: %v\n", err)
			return exitcode.AuthError
		}
		return ReportError(errOut, rs.Err)
	}
	return printOK(cfg, out)
}
