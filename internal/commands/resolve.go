package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
	"todoctl/internal/store"
	"todoctl/internal/syncer"
)

// usageError is a problem with the command line or the referenced
// list or task. It is reported with exitcode.UserError.
type usageError string

func (e usageError) Error() string { return string(e) }

func usageErrorf(format string, args ...any) error {
	return usageError(fmt.Sprintf(format, args...))
}

// configError is a problem with files in the config directory.
type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

// ReportError prints err to errOut and returns the matching exit code.
func ReportError(errOut io.Writer, err error) int {
	var ue usageError
	var ce configError
	var re *service.ResultError
	switch {
	case errors.As(err, &ue):
		fmt.Fprintf(errOut, "error: %s\n", ue)
		return exitcode.UserError
	case errors.As(err, &ce):
		fmt.Fprintf(errOut, "error: %s\n", ce)
		return exitcode.AuthError
	case errors.Is(err, service.ErrNotLoggedIn):
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.AuthError
	case errors.Is(err, service.ErrUnsupported),
		errors.Is(err, service.ErrNotFound),
		errors.Is(err, syncer.ErrTaskNotLoaded):
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	case errors.As(err, &re):
		fmt.Fprintf(errOut, "error: %s\n", re.Message())
		return exitcode.BackendError
	}
	fmt.Fprintf(errOut, "error: backend error: %s\n", service.ErrorMessage(err))
	return exitcode.BackendError
}

// ReportNotLoggedIn reports a failed session check. A session the backend
// rejects is an auth error; anything else is reported as is.
func ReportNotLoggedIn(errOut io.Writer, err error) int {
	var re *service.ResultError
	if errors.As(err, &re) || errors.Is(err, service.ErrNotLoggedIn) {
		fmt.Fprintf(errOut, "error: not logged in (run: todoctl login)\n")
		return exitcode.AuthError
	}
	return ReportError(errOut, err)
}

// listFlag returns the --list flag bound to dest and clears dest.
func listFlag(dest *string) cli.Flag {
	*dest = ""
	return &cli.StringFlag{
		Name:        "list",
		Aliases:     []string{"l"},
		Usage:       "list name (may be omitted when only one list exists)",
		Destination: dest,
	}
}

// resolveList loads the lists and finds one by name (case-insensitive,
// trimmed). An empty name selects the only list, if there is exactly one.
func resolveList(ctx context.Context, co *syncer.Coordinator, name string) (store.TodoList, error) {
	if rs := co.FetchLists(ctx); !rs.OK() {
		return store.TodoList{}, rs.Err
	}
	lists := co.Store().Lists()

	name = strings.TrimSpace(name)
	if name == "" {
		switch len(lists) {
		case 0:
			return store.TodoList{}, usageError("no lists (run: todoctl createlist <name>)")
		case 1:
			return lists[0], nil
		default:
			return store.TodoList{}, usageErrorf("list required: %d lists exist (use --list)", len(lists))
		}
	}

	nameLower := strings.ToLower(name)
	var matches []store.TodoList
	for _, l := range lists {
		if strings.ToLower(strings.TrimSpace(l.Title)) == nameLower {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return store.TodoList{}, usageErrorf("list not found: %s", name)
	case 1:
		return matches[0], nil
	default:
		return store.TodoList{}, usageErrorf("ambiguous list name: %s", name)
	}
}

// parseTaskNumber parses a 1-based task number.
func parseTaskNumber(arg string) (int, error) {
	num, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || num < 1 {
		return 0, usageErrorf("invalid task number: %s", arg)
	}
	return num, nil
}

// resolveTask loads the tasks of list and returns the task at position num.
func resolveTask(ctx context.Context, co *syncer.Coordinator, list store.TodoList, num int) (service.Task, error) {
	if rs := co.FetchTasks(ctx, list.ID); !rs.OK() {
		return service.Task{}, rs.Err
	}
	tasks := co.Store().Tasks(list.ID)
	if num > len(tasks) {
		return service.Task{}, usageErrorf("task number out of range: %d", num)
	}
	return tasks[num-1], nil
}

// taskTarget resolves "--list <name> <n>" style arguments.
func taskTarget(ctx context.Context, co *syncer.Coordinator, listName string, args []string) (store.TodoList, service.Task, error) {
	if len(args) == 0 {
		return store.TodoList{}, service.Task{}, usageError("task number required")
	}
	num, err := parseTaskNumber(args[0])
	if err != nil {
		return store.TodoList{}, service.Task{}, err
	}
	list, err := resolveList(ctx, co, listName)
	if err != nil {
		return store.TodoList{}, service.Task{}, err
	}
	task, err := resolveTask(ctx, co, list, num)
	if err != nil {
		return store.TodoList{}, service.Task{}, err
	}
	return list, task, nil
}

// applySavedFilters sets the filters saved by the filter command on the
// loaded lists.
func applySavedFilters(cfg *config.Config, co *syncer.Coordinator) error {
	filters, err := cfg.LoadFilters()
	if err != nil {
		return configError{err}
	}
	for _, l := range co.Store().Lists() {
		if f, ok := store.ParseFilter(filters[l.ID]); ok {
			co.ChangeFilter(l.ID, f)
		}
	}
	return nil
}

// printOK prints "ok" unless quiet.
func printOK(cfg *config.Config, out io.Writer) int {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
