package store

import (
	"github.com/google/uuid"

	"todoctl/internal/service"
)

// Action is a state change applied by Reduce.
type Action interface {
	action()
}

// AddList prepends a list. A missing ID is generated and a missing filter
// defaults to FilterAll. The list gets an empty task sequence.
type AddList struct{ List TodoList }

// RemoveList removes a list and all its tasks.
type RemoveList struct{ ID string }

// RenameList changes a list title.
type RenameList struct{ ID, Title string }

// SetFilter changes the display filter of a list.
type SetFilter struct {
	ID     string
	Filter FilterValue
}

// SetLists replaces all lists after a bulk load. Every loaded list starts
// with FilterAll and an empty task sequence.
type SetLists struct{ Lists []service.TodoList }

// ClearState drops all lists and tasks on sign-out.
type ClearState struct{}

// AddTask prepends a task to the list named by Task.TodoListID.
// A missing ID is generated.
type AddTask struct{ Task service.Task }

// RemoveTask removes one task from one list.
type RemoveTask struct{ ListID, TaskID string }

// UpdateTask merges a patch into an existing task.
type UpdateTask struct {
	ListID, TaskID string
	Patch          service.TaskPatch
}

// SetTasks replaces the tasks of one list after a fetch.
type SetTasks struct {
	ListID string
	Tasks  []service.Task
}

// SetStatus sets the global request status.
type SetStatus struct{ Status RequestStatus }

// SetError sets the last error message. An empty message clears it.
type SetError struct{ Message string }

// SetInitialized records that the session check has completed.
type SetInitialized struct{ Value bool }

// SetLoggedIn records the session state. User is the account of the
// session when known; logging out clears it.
type SetLoggedIn struct {
	Value bool
	User  service.User
}

func (AddList) action()        {}
func (RemoveList) action()     {}
func (RenameList) action()     {}
func (SetFilter) action()      {}
func (SetLists) action()       {}
func (ClearState) action()     {}
func (AddTask) action()        {}
func (RemoveTask) action()     {}
func (UpdateTask) action()     {}
func (SetTasks) action()       {}
func (SetStatus) action()      {}
func (SetError) action()       {}
func (SetInitialized) action() {}
func (SetLoggedIn) action()    {}

// NewList builds an AddList action for a fresh local list.
func NewList(title string) AddList {
	return AddList{List: TodoList{
		TodoList: service.TodoList{ID: uuid.NewString(), Title: title},
		Filter:   FilterAll,
	}}
}

// NewTask builds an AddTask action for a fresh local task with status New.
func NewTask(listID, title string) AddTask {
	return AddTask{Task: service.Task{
		ID:         uuid.NewString(),
		Title:      title,
		Status:     service.StatusNew,
		TodoListID: listID,
	}}
}

func (a AddList) normalize() AddList {
	if a.List.ID == "" {
		a.List.ID = uuid.NewString()
	}
	if a.List.Filter == "" {
		a.List.Filter = FilterAll
	}
	return a
}

func (a AddTask) normalize() AddTask {
	if a.Task.ID == "" {
		a.Task.ID = uuid.NewString()
	}
	return a
}
