// Package service defines the backend-agnostic interface for list and task operations.
package service

import "context"

// Service defines the interface for backend operations.
// Commands and the sync layer never import a backend package directly.
type Service interface {
	// ListLists returns all lists in backend order.
	ListLists(ctx context.Context) ([]TodoList, error)

	// CreateList creates a list and returns it as stored by the backend.
	CreateList(ctx context.Context, title string) (TodoList, error)

	// DeleteList deletes a list by ID.
	DeleteList(ctx context.Context, listID string) error

	// RenameList changes a list title.
	RenameList(ctx context.Context, listID, title string) error

	// ListTasks returns every task of a list in backend order.
	ListTasks(ctx context.Context, listID string) ([]Task, error)

	// CreateTask creates a task and returns it as stored by the backend.
	CreateTask(ctx context.Context, listID, title string) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, listID, taskID string) error

	// UpdateTask replaces every mutable field of a task.
	UpdateTask(ctx context.Context, listID, taskID string, model TaskModel) error

	// Login opens a session and returns the user ID.
	Login(ctx context.Context, params LoginParams) (int, error)

	// Me returns the user of the current session.
	Me(ctx context.Context) (User, error)

	// Logout closes the current session.
	Logout(ctx context.Context) error
}
