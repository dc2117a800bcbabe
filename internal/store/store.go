package store

import (
	"sync"

	"github.com/rs/zerolog"

	"todoctl/internal/service"
)

// Store holds the current State and applies actions to it.
// It is safe for concurrent use; each dispatch replaces the state atomically.
type Store struct {
	mu        sync.RWMutex
	state     State
	log       zerolog.Logger
	listeners map[int]func(State)
	nextID    int
}

// New creates a store with an empty state.
func New(log zerolog.Logger) *Store {
	return &Store{
		state:     NewState(),
		log:       log.With().Str("mod", "store").Logger(),
		listeners: make(map[int]func(State)),
	}
}

// Dispatch applies actions in order and returns the resulting state.
// Ignored actions are logged as warnings.
func (s *Store) Dispatch(actions ...Action) State {
	s.mu.Lock()
	for _, a := range actions {
		next, err := Reduce(s.state, a)
		if err != nil {
			s.log.Warn().Err(err).Msgf("%T ignored", a)
			continue
		}
		s.state = next
	}
	state := s.state.Clone()
	listeners := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(state)
	}
	return state
}

// Subscribe registers fn to be called after every dispatch.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Lists returns a copy of the loaded lists.
func (s *Store) Lists() []TodoList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]TodoList(nil), s.state.Lists...)
}

// List looks up a list by ID.
func (s *Store) List(id string) (TodoList, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.state.Lists {
		if l.ID == id {
			return l, true
		}
	}
	return TodoList{}, false
}

// Tasks returns a copy of the tasks of a list.
func (s *Store) Tasks(listID string) []service.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]service.Task(nil), s.state.Tasks[listID]...)
}

// FilteredTasks returns the tasks of a list selected by the list's filter,
// numbered by their position in the unfiltered list.
func (s *Store) FilteredTasks(listID string) []NumberedTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	filter := FilterAll
	for _, l := range s.state.Lists {
		if l.ID == listID {
			filter = l.Filter
			break
		}
	}
	var out []NumberedTask
	for i, t := range s.state.Tasks[listID] {
		if filter.Match(t) {
			out = append(out, NumberedTask{Num: i + 1, Task: t})
		}
	}
	return out
}

// FindTask looks up a task by list and task ID.
func (s *Store) FindTask(listID, taskID string) (service.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.state.Tasks[listID] {
		if t.ID == taskID {
			return t, true
		}
	}
	return service.Task{}, false
}

// App returns the current request status.
func (s *Store) App() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.App
}

// User returns the account of the current session, if known.
func (s *Store) User() (service.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User, s.state.LoggedIn
}
