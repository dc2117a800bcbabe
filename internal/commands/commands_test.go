package commands_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"todoctl/internal/commands"
	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
	"todoctl/internal/store"
	"todoctl/internal/syncer"
	"todoctl/internal/testutil"
)

func newConfig(t *testing.T, quiet bool) *config.Config {
	t.Helper()
	return &config.Config{
		Dir:      t.TempDir(),
		Quiet:    quiet,
		Settings: config.Settings{Backend: config.BackendTodoAPI, Timeout: config.DefaultTimeout},
	}
}

// runCommand is a helper to run a command against a FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()
	return runWithConfig(t, newConfig(t, quiet), cmd, svc, args)
}

func runWithConfig(t *testing.T, cfg *config.Config, cmd commands.Command, svc *testutil.FakeService, args []string) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	var co *syncer.Coordinator
	if svc != nil {
		co = syncer.New(svc, store.New(zerolog.Nop()), zerolog.Nop())
	}

	code = cmd.Run(context.Background(), cfg, co, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func homeService() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddList("l1", "Home")
	svc.AddTask("l1", "t1", "Sweep", service.StatusNew)
	svc.AddTask("l1", "t2", "Cook", service.StatusCompleted)
	svc.AddTask("l1", "t3", "Shop", service.StatusInProgress)
	return svc
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todoctl 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"Usage:", "todoctl rmlist [--force] <list-name>", "Same as add", "Common flags:"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q", want)
		}
	}
}

func TestHelpCommand_CustomRegistry(t *testing.T) {
	reg := commands.NewRegistry()
	if err := reg.Register(&commands.VersionCmd{}); err != nil {
		t.Fatal(err)
	}
	cmd := &commands.HelpCmd{Registry: reg}

	stdout, _, _ := runCommand(t, cmd, nil, nil, false)

	if !strings.Contains(stdout, "todoctl version") || strings.Contains(stdout, "todoctl add") {
		t.Errorf("unexpected help output: %q", stdout)
	}
}

func TestRegistry_DuplicateAlias(t *testing.T) {
	reg := commands.NewRegistry()
	if err := reg.Register(&commands.AddCmd{}); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(&commands.AddCmd{}); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	if cmd, ok := reg.Find("create"); !ok || cmd.Name() != "add" {
		t.Error("expected alias lookup to find add")
	}
	if got := len(reg.All()); got != 1 {
		t.Errorf("expected 1 command, got %d", got)
	}
}

// Tests for lists command
func TestListsCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("shopping", "Shopping")
	svc.AddList("work", "Work")

	stdout, stderr, code := runCommand(t, &commands.ListsCmd{}, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "Shopping\nWork\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestListsCommand_Empty(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, _, code := runCommand(t, &commands.ListsCmd{}, svc, nil, false)
	if code != exitcode.Success || stdout != "no lists found\n" {
		t.Errorf("unexpected result: %d %q", code, stdout)
	}

	stdout, _, _ = runCommand(t, &commands.ListsCmd{}, svc, nil, true)
	if stdout != "" {
		t.Errorf("expected no output when quiet, got %q", stdout)
	}
}

func TestListsCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListListsErr = &service.ResultError{ResultCode: 1, Messages: []string{"Server is busy"}}

	_, stderr, code := runCommand(t, &commands.ListsCmd{}, svc, nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: Server is busy\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestListsCommand_TransportError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListListsErr = errors.New("connection refused")

	_, stderr, code := runCommand(t, &commands.ListsCmd{}, svc, nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: connection refused\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

// Tests for list command
func TestListCommand_All(t *testing.T) {
	svc := homeService()
	svc.AddList("l2", "Work")

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	expected := "------------\nHome (1/3)\n------------\n   1  [ ] Sweep\n   2  [x] Cook\n   3  [~] Shop\n" +
		"------------\nWork (0/0)\n------------\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_OneByName(t *testing.T) {
	svc := homeService()
	svc.AddList("l2", "Work")
	svc.AddTask("l2", "w1", "Report", service.StatusNew)

	stdout, _, code := runCommand(t, &commands.ListCmd{}, svc, []string{"WORK"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "------------\nWork (0/1)\n------------\n   1  [ ] Report\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
	if svc.Calls["ListTasks"] != 1 {
		t.Errorf("expected one task request, got %d", svc.Calls["ListTasks"])
	}
}

func TestListCommand_NotFound(t *testing.T) {
	svc := homeService()

	_, stderr, code := runCommand(t, &commands.ListCmd{}, svc, []string{"Nope"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: list not found: Nope\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestListCommand_AmbiguousName(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("l1", "Home")
	svc.AddList("l2", "home ")

	_, stderr, code := runCommand(t, &commands.ListCmd{}, svc, []string{"home"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: ambiguous list name: home\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestListCommand_FilterKeepsNumbers(t *testing.T) {
	svc := homeService()
	cmd := &commands.ListCmd{}
	cmd.SetFilter("completed")

	stdout, _, code := runCommand(t, cmd, svc, []string{"Home"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "------------\nHome [completed] (1/3)\n------------\n   2  [x] Cook\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_SavedFilter(t *testing.T) {
	svc := homeService()
	cfg := newConfig(t, false)
	if err := cfg.SaveFilters(map[string]string{"l1": "active"}); err != nil {
		t.Fatal(err)
	}

	stdout, _, code := runWithConfig(t, cfg, &commands.ListCmd{}, svc, nil)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "------------\nHome [active] (1/3)\n------------\n   1  [ ] Sweep\n   3  [~] Shop\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_InvalidFilter(t *testing.T) {
	svc := homeService()
	cmd := &commands.ListCmd{}
	cmd.SetFilter("someday")

	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid filter: someday\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
	if svc.Calls["ListLists"] != 0 {
		t.Error("expected no backend calls")
	}
}

func TestListCommand_TaskLoadFailure(t *testing.T) {
	svc := homeService()
	svc.ListTasksErr = map[string]error{"l1": &service.ResultError{ResultCode: 1}}

	_, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: "+service.DefaultErrorMessage+"\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

// Tests for createlist command
func TestCreateListCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("l1", "Home")

	stdout, _, code := runCommand(t, &commands.CreateListCmd{}, svc, []string{"Weekend", "plans"}, false)

	if code != exitcode.Success || stdout != "ok\n" {
		t.Fatalf("unexpected result: %d %q", code, stdout)
	}
	lists := svc.Lists()
	if len(lists) != 2 || lists[0].Title != "Weekend plans" {
		t.Errorf("expected new list first, got %+v", lists)
	}
}

func TestCreateListCommand_Errors(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := runCommand(t, &commands.CreateListCmd{}, svc, []string{"  "}, false)
	if code != exitcode.UserError || stderr != "error: list name required\n" {
		t.Errorf("unexpected result: %d %q", code, stderr)
	}

	svc.CreateListErr = &service.ResultError{
		ResultCode:   1,
		Messages:     []string{"The Title field is required."},
		FieldsErrors: []string{"Title"},
	}
	_, stderr, code = runCommand(t, &commands.CreateListCmd{}, svc, []string{"x"}, false)
	if code != exitcode.BackendError || stderr != "error: The Title field is required.\n" {
		t.Errorf("unexpected result: %d %q", code, stderr)
	}
}

// Tests for rmlist command
func TestRmListCommand_RefusesUnfinished(t *testing.T) {
	svc := homeService()

	_, stderr, code := runCommand(t, &commands.RmListCmd{}, svc, []string{"Home"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: list not empty (use --force)\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
	if svc.Calls["DeleteList"] != 0 {
		t.Error("expected no delete request")
	}
}

func TestRmListCommand_Force(t *testing.T) {
	svc := homeService()
	cfg := newConfig(t, false)
	if err := cfg.SaveFilters(map[string]string{"l1": "completed", "other": "active"}); err != nil {
		t.Fatal(err)
	}
	cmd := &commands.RmListCmd{}
	cmd.SetForce(true)

	stdout, _, code := runWithConfig(t, cfg, cmd, svc, []string{"home"})

	if code != exitcode.Success || stdout != "ok\n" {
		t.Fatalf("unexpected result: %d %q", code, stdout)
	}
	if len(svc.Lists()) != 0 {
		t.Error("expected list deleted")
	}
	filters, err := cfg.LoadFilters()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := filters["l1"]; ok || filters["other"] != "active" {
		t.Errorf("unexpected saved filters: %v", filters)
	}
}

func TestRmListCommand_CompletedOnly(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("l1", "Done")
	svc.AddTask("l1", "t1", "Old", service.StatusCompleted)

	_, _, code := runCommand(t, &commands.RmListCmd{}, svc, []string{"Done"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
}

// Tests for renamelist command
func TestRenameListCommand(t *testing.T) {
	svc := homeService()

	_, _, code := runCommand(t, &commands.RenameListCmd{}, svc, []string{"Home", "Flat", "chores"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if got := svc.Lists()[0].Title; got != "Flat chores" {
		t.Errorf("expected renamed list, got %q", got)
	}

	_, stderr, code := runCommand(t, &commands.RenameListCmd{}, svc, []string{"Flat"}, false)
	if code != exitcode.UserError || stderr != "error: list name and new name required\n" {
		t.Errorf("unexpected result: %d %q", code, stderr)
	}
}

// Tests for filter command
func TestFilterCommand(t *testing.T) {
	svc := homeService()
	cfg := newConfig(t, false)

	stdout, _, code := runWithConfig(t, cfg, &commands.FilterCmd{}, svc, []string{"Home", "completed"})
	if code != exitcode.Success || stdout != "ok\n" {
		t.Fatalf("unexpected result: %d %q", code, stdout)
	}
	filters, _ := cfg.LoadFilters()
	if filters["l1"] != "completed" {
		t.Errorf("expected saved filter, got %v", filters)
	}

	if _, _, code := runWithConfig(t, cfg, &commands.FilterCmd{}, svc, []string{"Home", "all"}); code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	filters, _ = cfg.LoadFilters()
	if _, ok := filters["l1"]; ok {
		t.Errorf("expected filter removed, got %v", filters)
	}
}

func TestFilterCommand_Errors(t *testing.T) {
	svc := homeService()

	tests := []struct {
		args   []string
		stderr string
	}{
		{[]string{"Home"}, "error: list name and filter required\n"},
		{[]string{"Home", "later"}, "error: invalid filter: later\n"},
		{[]string{"Work", "active"}, "error: list not found: Work\n"},
	}
	for _, tt := range tests {
		_, stderr, code := runCommand(t, &commands.FilterCmd{}, svc, tt.args, false)
		if code != exitcode.UserError || stderr != tt.stderr {
			t.Errorf("%v: unexpected result: %d %q", tt.args, code, stderr)
		}
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	svc := homeService()

	stdout, _, code := runCommand(t, &commands.AddCmd{}, svc, []string{"Water", "plants"}, false)

	if code != exitcode.Success || stdout != "ok\n" {
		t.Fatalf("unexpected result: %d %q", code, stdout)
	}
	tasks := svc.StoredTasks("l1")
	if len(tasks) != 4 || tasks[0].Title != "Water plants" {
		t.Errorf("expected new task first, got %+v", tasks)
	}
}

func TestAddCommand_ListRequired(t *testing.T) {
	svc := homeService()
	svc.AddList("l2", "Work")

	_, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"Report"}, false)
	if code != exitcode.UserError || stderr != "error: list required: 2 lists exist (use --list)\n" {
		t.Errorf("unexpected result: %d %q", code, stderr)
	}

	cmd := &commands.AddCmd{}
	cmd.SetListName("work")
	if _, _, code := runCommand(t, cmd, svc, []string{"Report"}, false); code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if len(svc.StoredTasks("l2")) != 1 {
		t.Error("expected task in Work")
	}
}

func TestAddCommand_Errors(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.AddCmd{}, testutil.NewFakeService(), []string{"Report"}, false)
	if code != exitcode.UserError || stderr != "error: no lists (run: todoctl createlist <name>)\n" {
		t.Errorf("unexpected result: %d %q", code, stderr)
	}

	_, stderr, code = runCommand(t, &commands.AddCmd{}, homeService(), nil, false)
	if code != exitcode.UserError || stderr != "error: title required\n" {
		t.Errorf("unexpected result: %d %q", code, stderr)
	}
}

// Tests for rm command
func TestRmCommand(t *testing.T) {
	svc := homeService()

	_, _, code := runCommand(t, &commands.RmCmd{}, svc, []string{"2"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	tasks := svc.StoredTasks("l1")
	if len(tasks) != 2 || tasks[0].ID != "t1" || tasks[1].ID != "t3" {
		t.Errorf("unexpected tasks: %+v", tasks)
	}
}

func TestRmCommand_Errors(t *testing.T) {
	tests := []struct {
		args   []string
		stderr string
	}{
		{nil, "error: task number required\n"},
		{[]string{"abc"}, "error: invalid task number: abc\n"},
		{[]string{"0"}, "error: invalid task number: 0\n"},
		{[]string{"4"}, "error: task number out of range: 4\n"},
	}
	for _, tt := range tests {
		svc := homeService()
		_, stderr, code := runCommand(t, &commands.RmCmd{}, svc, tt.args, false)
		if code != exitcode.UserError || stderr != tt.stderr {
			t.Errorf("%v: unexpected result: %d %q", tt.args, code, stderr)
		}
		if svc.Calls["DeleteTask"] != 0 {
			t.Errorf("%v: expected no delete request", tt.args)
		}
	}
}

func TestRmCommand_NotFound(t *testing.T) {
	svc := homeService()
	svc.DeleteTaskErr = service.ErrNotFound

	_, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"1"}, false)

	if code != exitcode.UserError || stderr != "error: not found\n" {
		t.Errorf("unexpected result: %d %q", code, stderr)
	}
}

// Tests for done, undo and status commands
func TestDoneUndoCommands(t *testing.T) {
	svc := homeService()

	if _, _, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"1"}, false); code != exitcode.Success {
		t.Fatalf("done: expected exit code %d, got %d", exitcode.Success, code)
	}
	if got := svc.LastUpdate; got.Status != service.StatusCompleted || got.Title != "Sweep" {
		t.Errorf("done: unexpected update: %+v", got)
	}

	if _, _, code := runCommand(t, &commands.UndoCmd{}, svc, []string{"2"}, false); code != exitcode.Success {
		t.Fatalf("undo: expected exit code %d, got %d", exitcode.Success, code)
	}
	if got := svc.LastUpdate; got.Status != service.StatusNew || got.Title != "Cook" {
		t.Errorf("undo: unexpected update: %+v", got)
	}
}

func TestStatusCommand(t *testing.T) {
	svc := homeService()

	if _, _, code := runCommand(t, &commands.StatusCmd{}, svc, []string{"1", "Draft"}, false); code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if svc.StoredTasks("l1")[0].Status != service.StatusDraft {
		t.Error("expected draft status")
	}

	_, stderr, code := runCommand(t, &commands.StatusCmd{}, svc, []string{"1", "paused"}, false)
	if code != exitcode.UserError || stderr != "error: invalid status: paused\n" {
		t.Errorf("unexpected result: %d %q", code, stderr)
	}
}

func TestDoneCommand_UpdateFailure(t *testing.T) {
	svc := homeService()
	svc.UpdateTaskErr = errors.New("connection reset")

	_, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"1"}, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: connection reset\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

// Tests for rename command
func TestRenameCommand(t *testing.T) {
	svc := homeService()

	stdout, _, code := runCommand(t, &commands.RenameCmd{}, svc, []string{"3", "Shop", "groceries"}, true)

	if code != exitcode.Success || stdout != "" {
		t.Fatalf("unexpected result: %d %q", code, stdout)
	}
	got := svc.StoredTasks("l1")[2]
	if got.Title != "Shop groceries" || got.Status != service.StatusInProgress {
		t.Errorf("unexpected task: %+v", got)
	}
}

// Tests for edit command
func TestEditCommand(t *testing.T) {
	svc := homeService()
	priority := service.PriorityHi
	deadline := "2026-11-01T00:00:00"
	notes := "book hotel"

	cmd := &commands.EditCmd{}
	cmd.SetPatch(service.TaskPatch{Priority: &priority, Deadline: &deadline, Description: &notes})

	if _, _, code := runCommand(t, cmd, svc, []string{"1"}, false); code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	got := svc.LastUpdate
	if got.Title != "Sweep" || got.Priority != service.PriorityHi || got.Deadline != deadline || got.Description != notes {
		t.Errorf("unexpected update: %+v", got)
	}
}

func TestEditCommand_NothingToChange(t *testing.T) {
	svc := homeService()

	_, stderr, code := runCommand(t, &commands.EditCmd{}, svc, []string{"1"}, false)

	if code != exitcode.UserError || stderr != "error: nothing to change\n" {
		t.Errorf("unexpected result: %d %q", code, stderr)
	}
	if svc.Calls["UpdateTask"] != 0 {
		t.Error("expected no update request")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"2026-11-01", "2026-11-01T00:00:00", false},
		{" 2026-11-01T09:30:00 ", "2026-11-01T09:30:00", false},
		{"11/01/2026", "", true},
		{"2026-13-01", "", true},
	}
	for _, tt := range tests {
		got, err := commands.ParseDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Tests for show command
func TestShowCommand(t *testing.T) {
	svc := homeService()
	priority := service.PriorityUrgently
	cmd := &commands.EditCmd{}
	cmd.SetPatch(service.TaskPatch{Priority: &priority})
	if _, _, code := runCommand(t, cmd, svc, []string{"3"}, false); code != exitcode.Success {
		t.Fatalf("edit: expected exit code %d, got %d", exitcode.Success, code)
	}

	stdout, _, code := runCommand(t, &commands.ShowCmd{}, svc, []string{"3"}, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "3  Shop\n  status:   inprogress\n  priority: urgently\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}
