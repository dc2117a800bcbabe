package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/xid"
)

// APIPrefix is the path under which FakeAPI serves the REST backend.
const APIPrefix = "/api/1.1/"

const sessionCookie = "todo-session"

// APIList is a list as stored by FakeAPI.
type APIList struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	AddedDate string `json:"addedDate"`
	Order     int    `json:"order"`
}

// APITask is a task as stored by FakeAPI.
type APITask struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      int     `json:"status"`
	Priority    int     `json:"priority"`
	StartDate   *string `json:"startDate"`
	Deadline    *string `json:"deadline"`
	AddedDate   string  `json:"addedDate"`
	TodoListID  string  `json:"todoListId"`
	Order       int     `json:"order"`
}

type apiEnvelope struct {
	FieldsErrors []string `json:"fieldsErrors"`
	ResultCode   int      `json:"resultCode"`
	Messages     []string `json:"messages"`
	Data         any      `json:"data"`
}

// FakeAPI is an in-memory HTTP emulation of the to-do lists REST API.
type FakeAPI struct {
	Server *httptest.Server

	// APIKey, when set, must be sent in the API-KEY header.
	APIKey string

	// Email and Password are the accepted login credentials.
	Email    string
	Password string

	mu       sync.Mutex
	lists    []APIList
	tasks    map[string][]APITask
	sessions map[string]bool
	failMsg  string
	requests int
}

// NewFakeAPI starts a FakeAPI that is closed when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		APIKey:   "test-key",
		Email:    "user@example.com",
		Password: "secret",
		tasks:    make(map[string][]APITask),
		sessions: make(map[string]bool),
	}
	f.Server = httptest.NewServer(f.routes())
	t.Cleanup(f.Server.Close)
	return f
}

// URL returns the base URL to configure clients with.
func (f *FakeAPI) URL() string {
	return f.Server.URL + APIPrefix
}

// FailNext makes the next authenticated request answer resultCode 1 with msg.
func (f *FakeAPI) FailNext(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failMsg = msg
}

// Requests returns the number of requests served.
func (f *FakeAPI) Requests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

// AddList seeds a list.
func (f *FakeAPI) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, APIList{ID: id, Title: title})
	f.tasks[id] = nil
}

// AddTask seeds a task at the end of a list.
func (f *FakeAPI) AddTask(listID, taskID, title string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], APITask{ID: taskID, Title: title, Status: status, TodoListID: listID})
}

// Lists returns a copy of the stored lists.
func (f *FakeAPI) Lists() []APIList {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]APIList(nil), f.lists...)
}

// Tasks returns a copy of the stored tasks of a list.
func (f *FakeAPI) Tasks(listID string) []APITask {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]APITask(nil), f.tasks[listID]...)
}

func (f *FakeAPI) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(f.countRequests)

	r.Route(strings.TrimSuffix(APIPrefix, "/"), func(r chi.Router) {
		r.Use(f.requireAPIKey)

		r.Post("/auth/login", f.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(f.requireSession)
			r.Get("/auth/me", f.handleMe)
			r.Delete("/auth/login", f.handleLogout)

			r.Get("/todo-lists", f.handleGetLists)
			r.Post("/todo-lists", f.handleCreateList)
			r.Delete("/todo-lists/{listID}", f.handleDeleteList)
			r.Put("/todo-lists/{listID}", f.handleRenameList)

			r.Get("/todo-lists/{listID}/tasks", f.handleGetTasks)
			r.Post("/todo-lists/{listID}/tasks", f.handleCreateTask)
			r.Delete("/todo-lists/{listID}/tasks/{taskID}", f.handleDeleteTask)
			r.Put("/todo-lists/{listID}/tasks/{taskID}", f.handleUpdateTask)
		})
	})
	return r
}

func (f *FakeAPI) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests++
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if f.APIKey != "" && r.Header.Get("API-KEY") != f.APIKey {
			writeJSON(w, http.StatusUnauthorized, apiEnvelope{ResultCode: 1, Messages: []string{"API-KEY is invalid"}})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(sessionCookie)
		f.mu.Lock()
		ok := err == nil && f.sessions[ck.Value]
		failMsg := f.failMsg
		f.failMsg = ""
		f.mu.Unlock()

		if !ok {
			writeJSON(w, http.StatusOK, apiEnvelope{ResultCode: 1, Messages: []string{"You are not authorized"}})
			return
		}
		if failMsg != "" {
			writeJSON(w, http.StatusOK, apiEnvelope{ResultCode: 1, Messages: []string{failMsg}})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		RememberMe bool   `json:"rememberMe"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiEnvelope{ResultCode: 1, Messages: []string{"invalid body"}})
		return
	}
	if body.Email != f.Email || body.Password != f.Password {
		writeJSON(w, http.StatusOK, apiEnvelope{ResultCode: 1, Messages: []string{"Incorrect Email or Password"}})
		return
	}

	token := xid.New().String()
	f.mu.Lock()
	f.sessions[token] = true
	f.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: token, Path: "/"})
	writeOK(w, map[string]int{"userId": 42})
}

func (f *FakeAPI) handleMe(w http.ResponseWriter, r *http.Request) {
	writeOK(w, map[string]any{"id": 42, "email": f.Email, "login": "user"})
}

func (f *FakeAPI) handleLogout(w http.ResponseWriter, r *http.Request) {
	if ck, err := r.Cookie(sessionCookie); err == nil {
		f.mu.Lock()
		delete(f.sessions, ck.Value)
		f.mu.Unlock()
	}
	writeOK(w, struct{}{})
}

func (f *FakeAPI) handleGetLists(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, f.Lists())
}

func (f *FakeAPI) handleCreateList(w http.ResponseWriter, r *http.Request) {
	title, ok := decodeTitle(w, r)
	if !ok {
		return
	}
	l := APIList{ID: xid.New().String(), Title: title}
	f.mu.Lock()
	f.lists = append([]APIList{l}, f.lists...)
	f.tasks[l.ID] = nil
	f.mu.Unlock()
	writeOK(w, map[string]any{"item": l})
}

func (f *FakeAPI) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "listID")
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, l := range f.lists {
		if l.ID == id {
			f.lists = append(f.lists[:i:i], f.lists[i+1:]...)
			delete(f.tasks, id)
			writeOK(w, struct{}{})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, apiEnvelope{ResultCode: 1, Messages: []string{"todolist not found"}})
}

func (f *FakeAPI) handleRenameList(w http.ResponseWriter, r *http.Request) {
	title, ok := decodeTitle(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "listID")
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.lists {
		if f.lists[i].ID == id {
			f.lists[i].Title = title
			writeOK(w, struct{}{})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, apiEnvelope{ResultCode: 1, Messages: []string{"todolist not found"}})
}

func (f *FakeAPI) handleGetTasks(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "listID")
	count, _ := strconv.Atoi(r.URL.Query().Get("count"))
	if count <= 0 {
		count = 10
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}

	f.mu.Lock()
	all, ok := f.tasks[id]
	all = append([]APITask(nil), all...)
	f.mu.Unlock()

	if !ok {
		msg := "todolist not found"
		writeJSON(w, http.StatusOK, map[string]any{"items": []APITask{}, "totalCount": 0, "error": msg})
		return
	}

	start := (page - 1) * count
	items := []APITask{}
	if start < len(all) {
		end := start + count
		if end > len(all) {
			end = len(all)
		}
		items = all[start:end]
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "totalCount": len(all), "error": nil})
}

func (f *FakeAPI) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	title, ok := decodeTitle(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "listID")
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[id]; !ok {
		writeJSON(w, http.StatusOK, apiEnvelope{ResultCode: 1, Messages: []string{"todolist not found"}})
		return
	}
	t := APITask{ID: xid.New().String(), Title: title, TodoListID: id}
	f.tasks[id] = append([]APITask{t}, f.tasks[id]...)
	writeOK(w, map[string]any{"item": t})
}

func (f *FakeAPI) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "listID")
	taskID := chi.URLParam(r, "taskID")
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks[listID] {
		if t.ID == taskID {
			seq := f.tasks[listID]
			f.tasks[listID] = append(seq[:i:i], seq[i+1:]...)
			writeOK(w, struct{}{})
			return
		}
	}
	writeJSON(w, http.StatusOK, apiEnvelope{ResultCode: 1, Messages: []string{"task not found"}})
}

func (f *FakeAPI) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var body APITask
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiEnvelope{ResultCode: 1, Messages: []string{"invalid body"}})
		return
	}
	listID := chi.URLParam(r, "listID")
	taskID := chi.URLParam(r, "taskID")
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks[listID] {
		if t.ID == taskID {
			t.Title = body.Title
			t.Description = body.Description
			t.Status = body.Status
			t.Priority = body.Priority
			t.StartDate = body.StartDate
			t.Deadline = body.Deadline
			f.tasks[listID][i] = t
			writeOK(w, map[string]any{"item": t})
			return
		}
	}
	writeJSON(w, http.StatusOK, apiEnvelope{ResultCode: 1, Messages: []string{"task not found"}})
}

func decodeTitle(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiEnvelope{ResultCode: 1, Messages: []string{"invalid body"}})
		return "", false
	}
	if body.Title == "" {
		writeJSON(w, http.StatusOK, apiEnvelope{
			ResultCode:   1,
			Messages:     []string{"The Title field is required."},
			FieldsErrors: []string{"Title"},
		})
		return "", false
	}
	return body.Title, true
}

func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, apiEnvelope{FieldsErrors: []string{}, Messages: []string{}, Data: data})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
