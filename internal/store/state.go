// Package store holds the client-side state of lists, tasks and request status.
//
// State changes only through actions applied by Reduce. Reduce never mutates
// its input: every changed collection is copied and replaced, so a State
// value handed out earlier stays valid after later dispatches.
package store

import (
	"strings"

	"todoctl/internal/service"
)

// FilterValue selects which tasks of a list are displayed.
type FilterValue string

const (
	FilterAll       FilterValue = "all"
	FilterActive    FilterValue = "active"
	FilterCompleted FilterValue = "completed"
)

// ParseFilter parses a filter name (case-insensitive).
func ParseFilter(s string) (FilterValue, bool) {
	switch f := FilterValue(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterAll, FilterActive, FilterCompleted:
		return f, true
	}
	return "", false
}

// RequestStatus is the lifecycle of a backend request.
type RequestStatus int

const (
	StatusIdle RequestStatus = iota
	StatusLoading
	StatusSucceeded
	StatusFailed
)

func (s RequestStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// TodoList is a list entity with its display filter.
type TodoList struct {
	service.TodoList
	Filter FilterValue
}

// AppState tracks the global request status and the last error.
type AppState struct {
	Status RequestStatus
	// Error is the last reported error message; empty means none.
	Error       string
	Initialized bool
}

// State is the complete client state.
type State struct {
	Lists []TodoList
	// Tasks maps list ID to the tasks of that list, newest first.
	Tasks    map[string][]service.Task
	App      AppState
	LoggedIn bool
	// User is the account reported by the last session check.
	User service.User
}

// NewState returns an empty idle state.
func NewState() State {
	return State{Tasks: map[string][]service.Task{}}
}

// Clone returns a copy of s that shares no slices or maps with it.
func (s State) Clone() State {
	out := s
	out.Lists = append([]TodoList(nil), s.Lists...)
	out.Tasks = make(map[string][]service.Task, len(s.Tasks))
	for id, tasks := range s.Tasks {
		out.Tasks[id] = append([]service.Task(nil), tasks...)
	}
	return out
}

// Match reports whether t is selected by f.
func (f FilterValue) Match(t service.Task) bool {
	switch f {
	case FilterActive:
		return t.Status != service.StatusCompleted
	case FilterCompleted:
		return t.Status == service.StatusCompleted
	}
	return true
}

// NumberedTask is a task with its 1-based position in its list.
type NumberedTask struct {
	Num int
	service.Task
}
