// Package syncer runs backend requests and applies their results to the store.
//
// Every networked procedure follows the same protocol: the global status
// goes to loading, the backend is called, and on success the matching store
// action is dispatched and the status becomes succeeded. Any failure sets the
// global error message and the failed status instead. The outcome is also
// returned to the caller as a RequestState.
package syncer

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"todoctl/internal/service"
	"todoctl/internal/store"
)

// ErrTaskNotLoaded is returned by UpdateTask when the task is not in the store.
var ErrTaskNotLoaded = errors.New("task not loaded")

// RequestState is the outcome of one procedure.
type RequestState struct {
	Status store.RequestStatus
	Err    error
}

// OK reports whether the procedure succeeded.
func (r RequestState) OK() bool {
	return r.Status == store.StatusSucceeded
}

// Coordinator connects a backend to a store.
type Coordinator struct {
	svc   service.Service
	store *store.Store
	log   zerolog.Logger
}

// New creates a Coordinator.
func New(svc service.Service, st *store.Store, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		svc:   svc,
		store: st,
		log:   log.With().Str("mod", "syncer").Logger(),
	}
}

// Store returns the store the coordinator writes to.
func (c *Coordinator) Store() *store.Store {
	return c.store
}

// Initialize checks the stored session. The app is marked initialized
// whatever the outcome; the logged-in flag is set only on success.
func (c *Coordinator) Initialize(ctx context.Context) RequestState {
	log := c.begin("initialize")
	user, err := c.svc.Me(ctx)
	c.store.Dispatch(store.SetInitialized{Value: true})
	if err != nil {
		return c.fail(log, err)
	}
	log.Debug().Str("login", user.Login).Msg("session ok")
	return c.succeed(log, store.SetLoggedIn{Value: true, User: user})
}

// Login opens a session.
func (c *Coordinator) Login(ctx context.Context, params service.LoginParams) RequestState {
	log := c.begin("login")
	userID, err := c.svc.Login(ctx, params)
	if err != nil {
		return c.fail(log, err)
	}
	log.Debug().Int("user", userID).Msg("logged in")
	return c.succeed(log, store.SetLoggedIn{Value: true})
}

// Logout closes the session and drops all loaded lists and tasks.
func (c *Coordinator) Logout(ctx context.Context) RequestState {
	log := c.begin("logout")
	if err := c.svc.Logout(ctx); err != nil {
		return c.fail(log, err)
	}
	return c.succeed(log, store.ClearState{}, store.SetLoggedIn{Value: false})
}

// FetchLists replaces all lists with the backend's.
func (c *Coordinator) FetchLists(ctx context.Context) RequestState {
	log := c.begin("fetch-lists")
	lists, err := c.svc.ListLists(ctx)
	if err != nil {
		return c.fail(log, err)
	}
	log.Debug().Int("count", len(lists)).Msg("lists loaded")
	return c.succeed(log, store.SetLists{Lists: lists})
}

// AddList creates a list and prepends it.
func (c *Coordinator) AddList(ctx context.Context, title string) RequestState {
	log := c.begin("add-list")
	l, err := c.svc.CreateList(ctx, title)
	if err != nil {
		return c.fail(log, err)
	}
	return c.succeed(log, store.AddList{List: store.TodoList{TodoList: l, Filter: store.FilterAll}})
}

// RemoveList deletes a list with its tasks.
func (c *Coordinator) RemoveList(ctx context.Context, listID string) RequestState {
	log := c.begin("remove-list")
	if err := c.svc.DeleteList(ctx, listID); err != nil {
		return c.fail(log, err)
	}
	return c.succeed(log, store.RemoveList{ID: listID})
}

// RenameList changes a list title.
func (c *Coordinator) RenameList(ctx context.Context, listID, title string) RequestState {
	log := c.begin("rename-list")
	if err := c.svc.RenameList(ctx, listID, title); err != nil {
		return c.fail(log, err)
	}
	return c.succeed(log, store.RenameList{ID: listID, Title: title})
}

// ChangeFilter sets the display filter of a list. No request is made.
func (c *Coordinator) ChangeFilter(listID string, filter store.FilterValue) {
	c.store.Dispatch(store.SetFilter{ID: listID, Filter: filter})
}

// FetchTasks replaces the tasks of a list with the backend's.
func (c *Coordinator) FetchTasks(ctx context.Context, listID string) RequestState {
	log := c.begin("fetch-tasks")
	tasks, err := c.svc.ListTasks(ctx, listID)
	if err != nil {
		return c.fail(log, err)
	}
	log.Debug().Str("list", listID).Int("count", len(tasks)).Msg("tasks loaded")
	return c.succeed(log, store.SetTasks{ListID: listID, Tasks: tasks})
}

// FetchAll loads the lists and then the tasks of every list.
// It stops at the first failure.
func (c *Coordinator) FetchAll(ctx context.Context) RequestState {
	if rs := c.FetchLists(ctx); !rs.OK() {
		return rs
	}
	rs := RequestState{Status: store.StatusSucceeded}
	for _, l := range c.store.Lists() {
		if rs = c.FetchTasks(ctx, l.ID); !rs.OK() {
			return rs
		}
	}
	return rs
}

// AddTask creates a task and prepends it to its list.
func (c *Coordinator) AddTask(ctx context.Context, listID, title string) RequestState {
	log := c.begin("add-task")
	t, err := c.svc.CreateTask(ctx, listID, title)
	if err != nil {
		return c.fail(log, err)
	}
	if t.TodoListID == "" {
		t.TodoListID = listID
	}
	return c.succeed(log, store.AddTask{Task: t})
}

// RemoveTask deletes one task.
func (c *Coordinator) RemoveTask(ctx context.Context, listID, taskID string) RequestState {
	log := c.begin("remove-task")
	if err := c.svc.DeleteTask(ctx, listID, taskID); err != nil {
		return c.fail(log, err)
	}
	return c.succeed(log, store.RemoveTask{ListID: listID, TaskID: taskID})
}

// UpdateTask merges patch onto the stored task and sends the full record.
// A task that is not loaded is reported with ErrTaskNotLoaded and no
// request is made; the global status ends as succeeded and no global
// error is recorded.
func (c *Coordinator) UpdateTask(ctx context.Context, listID, taskID string, patch service.TaskPatch) RequestState {
	log := c.begin("update-task")
	task, ok := c.store.FindTask(listID, taskID)
	if !ok {
		log.Warn().Str("list", listID).Str("task", taskID).Msg("task not found in state")
		c.store.Dispatch(store.SetStatus{Status: store.StatusSucceeded})
		return RequestState{
			Status: store.StatusFailed,
			Err:    fmt.Errorf("%w: %s", ErrTaskNotLoaded, taskID),
		}
	}

	model := patch.ApplyTo(task.Model())
	if err := c.svc.UpdateTask(ctx, listID, taskID, model); err != nil {
		return c.fail(log, err)
	}
	return c.succeed(log, store.UpdateTask{ListID: listID, TaskID: taskID, Patch: patch})
}

// begin sets the loading status and returns a logger tagged with a request id.
func (c *Coordinator) begin(op string) zerolog.Logger {
	log := c.log.With().Str("op", op).Str("req", xid.New().String()).Logger()
	log.Debug().Msg("start")
	c.store.Dispatch(store.SetStatus{Status: store.StatusLoading})
	return log
}

func (c *Coordinator) succeed(log zerolog.Logger, actions ...store.Action) RequestState {
	actions = append(actions, store.SetStatus{Status: store.StatusSucceeded})
	c.store.Dispatch(actions...)
	log.Debug().Msg("done")
	return RequestState{Status: store.StatusSucceeded}
}

// fail records err as the global error and sets the failed status.
func (c *Coordinator) fail(log zerolog.Logger, err error) RequestState {
	msg := service.ErrorMessage(err)
	log.Debug().Err(err).Msg("failed")
	c.store.Dispatch(
		store.SetError{Message: msg},
		store.SetStatus{Status: store.StatusFailed},
	)
	return RequestState{Status: store.StatusFailed, Err: err}
}
