package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"todoctl/internal/backend/googletasks"
	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
	"todoctl/internal/syncer"
)

// PasswordEnv is read when --password is not given.
const PasswordEnv = "TODOCTL_PASSWORD"

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	email    string
	password string
	remember bool
	captcha  string
}

// SetCredentials sets the login credentials (for testing).
func (c *LoginCmd) SetCredentials(email, password string) {
	c.email = email
	c.password = password
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in" }
func (c *LoginCmd) Usage() string {
	return "todoctl login [--email <email>] [--password <password>] [--remember] [--captcha <text>]"
}
func (c *LoginCmd) NeedsBackend() bool { return true }
func (c *LoginCmd) NeedsAuth() bool    { return false }

func (c *LoginCmd) Flags() []cli.Flag {
	*c = LoginCmd{}
	return []cli.Flag{
		&cli.StringFlag{Name: "email", Usage: "account email", Destination: &c.email},
		&cli.StringFlag{Name: "password", Usage: "account password (or " + PasswordEnv + ")", Destination: &c.password},
		&cli.BoolFlag{Name: "remember", Usage: "keep the session after the browser session ends", Destination: &c.remember},
		&cli.StringFlag{Name: "captcha", Usage: "captcha answer, when the backend asks for one", Destination: &c.captcha},
	}
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, args []string, out, errOut io.Writer) int {
	if cfg.Backend == config.BackendGoogleTasks {
		return c.authorize(ctx, cfg, out, errOut)
	}

	if rs := co.Initialize(ctx); rs.OK() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	password := c.password
	if password == "" {
		password = os.Getenv(PasswordEnv)
	}
	if c.email == "" || password == "" {
		fmt.Fprintln(errOut, "error: --email and --password required")
		return exitcode.UserError
	}

	rs := co.Login(ctx, service.LoginParams{
		Email:      c.email,
		Password:   password,
		RememberMe: c.remember,
		Captcha:    c.captcha,
	})
	if !rs.OK() {
		var re *service.ResultError
		if errors.As(rs.Err, &re) {
			fmt.Fprintf(errOut, "error: login failed: %s\n", re.Message())
			return exitcode.AuthError
		}
		return ReportError(errOut, rs.Err)
	}
	return printOK(cfg, out)
}

// authorize runs the Google OAuth flow.
func (c *LoginCmd) authorize(ctx context.Context, cfg *config.Config, out, errOut io.Writer) int {
	if !cfg.HasOAuthClient() {
		fmt.Fprintf(errOut, "error: %s not found in %s\n\n", config.OAuthClientFile, cfg.Dir)
		googletasks.PrintSetupHelp(errOut, cfg.Dir)
		return exitcode.AuthError
	}

	err := googletasks.Authorize(ctx, cfg, errOut)
	if errors.Is(err, googletasks.ErrAlreadyAuthorized) {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}
	return printOK(cfg, out)
}
