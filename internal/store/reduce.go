package store

import (
	"errors"
	"fmt"

	"todoctl/internal/service"
)

var (
	// ErrUnknownList is reported when an action names a list that is not loaded.
	ErrUnknownList = errors.New("list not in state")

	// ErrUnknownTask is reported when an update names a task that is not loaded.
	ErrUnknownTask = errors.New("task not in state")
)

// Reduce applies a to s and returns the new state.
// A non-nil error is a warning: the action was ignored and the returned
// state equals s.
func Reduce(s State, a Action) (State, error) {
	switch act := a.(type) {
	case AddList:
		a = act.normalize()
	case AddTask:
		a = act.normalize()
	}

	tasks, err := reduceTasks(s.Tasks, a)
	if err != nil {
		return s, err
	}

	loggedIn, user := reduceAuth(s.LoggedIn, s.User, a)
	return State{
		Lists:    reduceLists(s.Lists, a),
		Tasks:    tasks,
		App:      reduceApp(s.App, a),
		LoggedIn: loggedIn,
		User:     user,
	}, nil
}

func reduceLists(lists []TodoList, a Action) []TodoList {
	switch a := a.(type) {
	case AddList:
		out := make([]TodoList, 0, len(lists)+1)
		out = append(out, a.List)
		return append(out, lists...)

	case RemoveList:
		out := make([]TodoList, 0, len(lists))
		for _, l := range lists {
			if l.ID != a.ID {
				out = append(out, l)
			}
		}
		return out

	case RenameList:
		return mapList(lists, a.ID, func(l TodoList) TodoList {
			l.Title = a.Title
			return l
		})

	case SetFilter:
		return mapList(lists, a.ID, func(l TodoList) TodoList {
			l.Filter = a.Filter
			return l
		})

	case SetLists:
		out := make([]TodoList, 0, len(a.Lists))
		for _, l := range a.Lists {
			out = append(out, TodoList{TodoList: l, Filter: FilterAll})
		}
		return out

	case ClearState:
		return nil
	}
	return lists
}

func mapList(lists []TodoList, id string, fn func(TodoList) TodoList) []TodoList {
	out := make([]TodoList, len(lists))
	for i, l := range lists {
		if l.ID == id {
			l = fn(l)
		}
		out[i] = l
	}
	return out
}

func reduceTasks(tasks map[string][]service.Task, a Action) (map[string][]service.Task, error) {
	switch a := a.(type) {
	case AddList:
		out := cloneTasks(tasks)
		out[a.List.ID] = []service.Task{}
		return out, nil

	case RemoveList:
		if _, ok := tasks[a.ID]; !ok {
			return tasks, nil
		}
		out := cloneTasks(tasks)
		delete(out, a.ID)
		return out, nil

	case SetLists:
		out := make(map[string][]service.Task, len(a.Lists))
		for _, l := range a.Lists {
			out[l.ID] = []service.Task{}
		}
		return out, nil

	case ClearState:
		return map[string][]service.Task{}, nil

	case SetTasks:
		if _, ok := tasks[a.ListID]; !ok {
			return tasks, fmt.Errorf("set tasks for %s: %w", a.ListID, ErrUnknownList)
		}
		out := cloneTasks(tasks)
		out[a.ListID] = append([]service.Task{}, a.Tasks...)
		return out, nil

	case AddTask:
		listID := a.Task.TodoListID
		cur, ok := tasks[listID]
		if !ok {
			return tasks, fmt.Errorf("add task to %s: %w", listID, ErrUnknownList)
		}
		seq := make([]service.Task, 0, len(cur)+1)
		seq = append(seq, a.Task)
		seq = append(seq, cur...)
		out := cloneTasks(tasks)
		out[listID] = seq
		return out, nil

	case RemoveTask:
		cur, ok := tasks[a.ListID]
		if !ok {
			return tasks, nil
		}
		seq := make([]service.Task, 0, len(cur))
		for _, t := range cur {
			if t.ID != a.TaskID {
				seq = append(seq, t)
			}
		}
		out := cloneTasks(tasks)
		out[a.ListID] = seq
		return out, nil

	case UpdateTask:
		cur := tasks[a.ListID]
		idx := -1
		for i, t := range cur {
			if t.ID == a.TaskID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return tasks, fmt.Errorf("update task %s in %s: %w", a.TaskID, a.ListID, ErrUnknownTask)
		}
		seq := append([]service.Task{}, cur...)
		seq[idx] = a.Patch.Merge(cur[idx])
		out := cloneTasks(tasks)
		out[a.ListID] = seq
		return out, nil
	}
	return tasks, nil
}

// cloneTasks copies the map. Sequences are shared; they are never written
// in place.
func cloneTasks(tasks map[string][]service.Task) map[string][]service.Task {
	out := make(map[string][]service.Task, len(tasks)+1)
	for k, v := range tasks {
		out[k] = v
	}
	return out
}

func reduceApp(app AppState, a Action) AppState {
	switch a := a.(type) {
	case SetStatus:
		app.Status = a.Status
	case SetError:
		app.Error = a.Message
	case SetInitialized:
		app.Initialized = a.Value
	}
	return app
}

func reduceAuth(loggedIn bool, user service.User, a Action) (bool, service.User) {
	if a, ok := a.(SetLoggedIn); ok {
		if !a.Value {
			return false, service.User{}
		}
		if a.User != (service.User{}) {
			user = a.User
		}
		return true, user
	}
	return loggedIn, user
}
