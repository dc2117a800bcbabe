// Package service defines the backend-agnostic interface for list and task operations.
package service

import "strings"

// TaskStatus is the completion state of a task.
type TaskStatus int

const (
	StatusNew TaskStatus = iota
	StatusInProgress
	StatusCompleted
	StatusDraft
)

var statusNames = [...]string{"new", "inprogress", "completed", "draft"}

func (s TaskStatus) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// ParseStatus parses a status name (case-insensitive).
func ParseStatus(s string) (TaskStatus, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range statusNames {
		if name == s {
			return TaskStatus(i), true
		}
	}
	return 0, false
}

// TaskPriority is the priority of a task.
type TaskPriority int

const (
	PriorityLow TaskPriority = iota
	PriorityMiddle
	PriorityHi
	PriorityUrgently
	PriorityLater
)

var priorityNames = [...]string{"low", "middle", "hi", "urgently", "later"}

func (p TaskPriority) String() string {
	if p < 0 || int(p) >= len(priorityNames) {
		return "unknown"
	}
	return priorityNames[p]
}

// ParsePriority parses a priority name (case-insensitive).
func ParsePriority(s string) (TaskPriority, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range priorityNames {
		if name == s {
			return TaskPriority(i), true
		}
	}
	return 0, false
}

// TodoList is a list as reported by the backend.
type TodoList struct {
	ID        string
	Title     string
	AddedDate string
	Order     int
}

// Task represents a single task item.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	StartDate   string
	Deadline    string
	AddedDate   string
	TodoListID  string
	Order       int
}

// Model returns the full update record for the task.
func (t Task) Model() TaskModel {
	return TaskModel{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		StartDate:   t.StartDate,
		Deadline:    t.Deadline,
	}
}

// TaskModel is the full set of mutable task fields.
// The backend requires every field on update.
type TaskModel struct {
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	StartDate   string
	Deadline    string
}

// TaskPatch is a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	StartDate   *string
	Deadline    *string
}

// ApplyTo returns a copy of m with the non-nil patch fields applied.
func (p TaskPatch) ApplyTo(m TaskModel) TaskModel {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.Priority != nil {
		m.Priority = *p.Priority
	}
	if p.StartDate != nil {
		m.StartDate = *p.StartDate
	}
	if p.Deadline != nil {
		m.Deadline = *p.Deadline
	}
	return m
}

// Merge returns a copy of t with the non-nil patch fields applied.
func (p TaskPatch) Merge(t Task) Task {
	m := p.ApplyTo(t.Model())
	t.Title = m.Title
	t.Description = m.Description
	t.Status = m.Status
	t.Priority = m.Priority
	t.StartDate = m.StartDate
	t.Deadline = m.Deadline
	return t
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.StartDate == nil && p.Deadline == nil
}

// LoginParams are the credentials sent to the backend on login.
type LoginParams struct {
	Email      string
	Password   string
	RememberMe bool
	Captcha    string
}

// User is the authenticated account.
type User struct {
	ID    int
	Email string
	Login string
}
