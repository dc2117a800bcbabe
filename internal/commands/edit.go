package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
	"todoctl/internal/syncer"
)

// DateLayout is the date format sent to the backend.
const DateLayout = "2006-01-02T15:04:05"

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Only the flags given are changed.
type EditCmd struct {
	listName string
	patch    service.TaskPatch
}

// SetListName sets the list name (for testing).
func (c *EditCmd) SetListName(name string) {
	c.listName = name
}

// SetPatch sets the fields to change (for testing).
func (c *EditCmd) SetPatch(p service.TaskPatch) {
	c.patch = p
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change task fields" }
func (c *EditCmd) Usage() string {
	return "todoctl edit [--list <list-name>] [--title <t>] [--description <d>] [--priority <p>] [--start <date>] [--deadline <date>] <n>"
}
func (c *EditCmd) NeedsBackend() bool { return true }
func (c *EditCmd) NeedsAuth() bool    { return true }

func (c *EditCmd) Flags() []cli.Flag {
	c.patch = service.TaskPatch{}
	return []cli.Flag{
		listFlag(&c.listName),
		&cli.StringFlag{
			Name:  "title",
			Usage: "new title",
			Action: func(_ context.Context, _ *cli.Command, v string) error {
				if strings.TrimSpace(v) == "" {
					return fmt.Errorf("title required")
				}
				c.patch.Title = &v
				return nil
			},
		},
		&cli.StringFlag{
			Name:  "description",
			Usage: "new description (empty clears)",
			Action: func(_ context.Context, _ *cli.Command, v string) error {
				c.patch.Description = &v
				return nil
			},
		},
		&cli.StringFlag{
			Name:  "priority",
			Usage: "low, middle, hi, urgently or later",
			Action: func(_ context.Context, _ *cli.Command, v string) error {
				p, ok := service.ParsePriority(v)
				if !ok {
					return fmt.Errorf("invalid priority: %s", v)
				}
				c.patch.Priority = &p
				return nil
			},
		},
		&cli.StringFlag{
			Name:  "start",
			Usage: "start date YYYY-MM-DD (empty clears)",
			Action: func(_ context.Context, _ *cli.Command, v string) error {
				d, err := ParseDate(v)
				if err != nil {
					return err
				}
				c.patch.StartDate = &d
				return nil
			},
		},
		&cli.StringFlag{
			Name:  "deadline",
			Usage: "deadline YYYY-MM-DD (empty clears)",
			Action: func(_ context.Context, _ *cli.Command, v string) error {
				d, err := ParseDate(v)
				if err != nil {
					return err
				}
				c.patch.Deadline = &d
				return nil
			},
		},
	}
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, co *syncer.Coordinator, args []string, out, errOut io.Writer) int {
	if c.patch.IsEmpty() {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	list, task, err := taskTarget(ctx, co, c.listName, args)
	if err != nil {
		return ReportError(errOut, err)
	}

	if rs := co.UpdateTask(ctx, list.ID, task.ID, c.patch); !rs.OK() {
		return ReportError(errOut, rs.Err)
	}
	return printOK(cfg, out)
}

// ParseDate accepts YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS and returns the
// backend date format. An empty string is returned unchanged.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, layout := range []string{time.DateOnly, DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	return "", fmt.Errorf("invalid date: %s (want YYYY-MM-DD)", s)
}
