// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todoctl/internal/service"
	"todoctl/internal/store"
)

const (
	// ListSeparator is the separator line for list sections.
	ListSeparator = "------------"
)

var statusMarks = map[service.TaskStatus]string{
	service.StatusNew:        "[ ]",
	service.StatusInProgress: "[~]",
	service.StatusCompleted:  "[x]",
	service.StatusDraft:      "[?]",
}

// FormatTask formats a task line inside a list section.
// Format: "{N:>4}  {MARK} {TITLE}\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	mark, ok := statusMarks[task.Status]
	if !ok {
		mark = "[ ]"
	}
	fmt.Fprintf(w, "%4d  %s %s\n", num, mark, normalizeTitle(task.Title))
}

// FormatTaskDetail prints every field of a task, one per line.
func FormatTaskDetail(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%d  %s\n", num, normalizeTitle(task.Title))
	fmt.Fprintf(w, "  status:   %s\n", task.Status)
	fmt.Fprintf(w, "  priority: %s\n", task.Priority)
	if task.Description != "" {
		fmt.Fprintf(w, "  notes:    %s\n", oneLine(task.Description))
	}
	if task.StartDate != "" {
		fmt.Fprintf(w, "  start:    %s\n", task.StartDate)
	}
	if task.Deadline != "" {
		fmt.Fprintf(w, "  deadline: %s\n", task.Deadline)
	}
}

// FormatListHeader formats a list section header with its completion count.
// A filter other than all is shown after the title.
func FormatListHeader(w io.Writer, list store.TodoList, tasks []service.Task) {
	done := 0
	for _, t := range tasks {
		if t.Status == service.StatusCompleted {
			done++
		}
	}
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintf(w, "%s (%d/%d)\n", listLabel(list), done, len(tasks))
	fmt.Fprintln(w, ListSeparator)
}

// FormatListName formats a list name for the lists command.
func FormatListName(w io.Writer, list store.TodoList) {
	fmt.Fprintln(w, listLabel(list))
}

// FormatUser formats the signed-in account.
func FormatUser(w io.Writer, user service.User) {
	if user.Email == "" {
		fmt.Fprintln(w, user.Login)
		return
	}
	fmt.Fprintf(w, "%s <%s>\n", user.Login, user.Email)
}

func listLabel(list store.TodoList) string {
	label := normalizeListTitle(list.Title)
	if list.Filter != "" && list.Filter != store.FilterAll {
		label += " [" + string(list.Filter) + "]"
	}
	return label
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = oneLine(title)
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// normalizeListTitle normalizes a list title for display.
// Empty or whitespace-only titles become "(untitled)".
func normalizeListTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
