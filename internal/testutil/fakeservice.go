// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"todoctl/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu       sync.RWMutex
	lists    []service.TodoList
	tasks    map[string][]service.Task // listID -> tasks
	loggedIn bool
	nextID   int

	// Calls counts invocations per method name.
	Calls map[string]int

	// LastUpdate is the model sent by the most recent UpdateTask.
	LastUpdate service.TaskModel

	// Error injection for testing
	ListListsErr  error
	CreateListErr error
	DeleteListErr error
	RenameListErr error
	ListTasksErr  map[string]error // listID -> error
	CreateTaskErr error
	DeleteTaskErr error
	UpdateTaskErr error
	LoginErr      error
	MeErr         error
	LogoutErr     error
}

// NewFakeService creates an empty FakeService with an open session.
func NewFakeService() *FakeService {
	return &FakeService{
		tasks:        make(map[string][]service.Task),
		loggedIn:     true,
		Calls:        make(map[string]int),
		ListTasksErr: make(map[string]error),
	}
}

// SetLoggedIn sets the session state reported by Me.
func (f *FakeService) SetLoggedIn(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loggedIn = v
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TodoList{ID: id, Title: title})
	if _, ok := f.tasks[id]; !ok {
		f.tasks[id] = nil
	}
}

// AddTask appends a task to a list.
func (f *FakeService) AddTask(listID, taskID, title string, status service.TaskStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], service.Task{
		ID:         taskID,
		Title:      title,
		Status:     status,
		TodoListID: listID,
	})
}

// Lists returns a copy of the stored lists.
func (f *FakeService) Lists() []service.TodoList {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.TodoList(nil), f.lists...)
}

// StoredTasks returns a copy of the stored tasks of a list.
func (f *FakeService) StoredTasks(listID string) []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.Task(nil), f.tasks[listID]...)
}

func (f *FakeService) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls[name]++
}

func (f *FakeService) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

// ListLists implements service.Service.
func (f *FakeService) ListLists(ctx context.Context) ([]service.TodoList, error) {
	f.record("ListLists")
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	return f.Lists(), nil
}

// CreateList implements service.Service.
func (f *FakeService) CreateList(ctx context.Context, title string) (service.TodoList, error) {
	f.record("CreateList")
	if f.CreateListErr != nil {
		return service.TodoList{}, f.CreateListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	l := service.TodoList{ID: f.newID("list"), Title: title}
	f.lists = append([]service.TodoList{l}, f.lists...)
	f.tasks[l.ID] = nil
	return l, nil
}

// DeleteList implements service.Service.
func (f *FakeService) DeleteList(ctx context.Context, listID string) error {
	f.record("DeleteList")
	if f.DeleteListErr != nil {
		return f.DeleteListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, l := range f.lists {
		if l.ID == listID {
			f.lists = append(f.lists[:i:i], f.lists[i+1:]...)
			delete(f.tasks, listID)
			return nil
		}
	}
	return service.ErrNotFound
}

// RenameList implements service.Service.
func (f *FakeService) RenameList(ctx context.Context, listID, title string) error {
	f.record("RenameList")
	if f.RenameListErr != nil {
		return f.RenameListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.lists {
		if f.lists[i].ID == listID {
			f.lists[i].Title = title
			return nil
		}
	}
	return service.ErrNotFound
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, listID string) ([]service.Task, error) {
	f.record("ListTasks")
	if err, ok := f.ListTasksErr[listID]; ok && err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	tasks, ok := f.tasks[listID]
	if !ok {
		return nil, service.ErrNotFound
	}
	return append([]service.Task(nil), tasks...), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, listID, title string) (service.Task, error) {
	f.record("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tasks[listID]; !ok {
		return service.Task{}, service.ErrNotFound
	}
	t := service.Task{ID: f.newID("task"), Title: title, Status: service.StatusNew, TodoListID: listID}
	f.tasks[listID] = append([]service.Task{t}, f.tasks[listID]...)
	return t, nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, listID, taskID string) error {
	f.record("DeleteTask")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	tasks, ok := f.tasks[listID]
	if !ok {
		return service.ErrNotFound
	}
	for i, t := range tasks {
		if t.ID == taskID {
			f.tasks[listID] = append(tasks[:i:i], tasks[i+1:]...)
			return nil
		}
	}
	return service.ErrNotFound
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, listID, taskID string, model service.TaskModel) error {
	f.record("UpdateTask")
	if f.UpdateTaskErr != nil {
		return f.UpdateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.LastUpdate = model
	for i, t := range f.tasks[listID] {
		if t.ID == taskID {
			t.Title = model.Title
			t.Description = model.Description
			t.Status = model.Status
			t.Priority = model.Priority
			t.StartDate = model.StartDate
			t.Deadline = model.Deadline
			f.tasks[listID][i] = t
			return nil
		}
	}
	return service.ErrNotFound
}

// Login implements service.Service.
func (f *FakeService) Login(ctx context.Context, params service.LoginParams) (int, error) {
	f.record("Login")
	if f.LoginErr != nil {
		return 0, f.LoginErr
	}
	f.SetLoggedIn(true)
	return 1, nil
}

// Me implements service.Service.
func (f *FakeService) Me(ctx context.Context) (service.User, error) {
	f.record("Me")
	if f.MeErr != nil {
		return service.User{}, f.MeErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.loggedIn {
		return service.User{}, &service.ResultError{ResultCode: 1, Messages: []string{"You are not authorized"}}
	}
	return service.User{ID: 1, Email: "user@example.com", Login: "user"}, nil
}

// Logout implements service.Service.
func (f *FakeService) Logout(ctx context.Context) error {
	f.record("Logout")
	if f.LogoutErr != nil {
		return f.LogoutErr
	}
	f.SetLoggedIn(false)
	return nil
}
