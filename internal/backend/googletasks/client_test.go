package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"
	tasks "google.golang.org/api/tasks/v1"

	"todoctl/internal/config"
	"todoctl/internal/service"
)

func TestToTask(t *testing.T) {
	got := toTask(&tasks.Task{
		Id:     "t1",
		Title:  "Sweep",
		Notes:  "kitchen",
		Status: "completed",
		Due:    "2026-10-20T00:00:00.000Z",
	}, "l1", 3)

	if got.Status != service.StatusCompleted {
		t.Errorf("expected completed, got %s", got.Status)
	}
	if got.Description != "kitchen" || got.Deadline != "2026-10-20T00:00:00.000Z" {
		t.Errorf("unexpected fields: %+v", got)
	}
	if got.TodoListID != "l1" || got.Order != 3 {
		t.Errorf("unexpected placement: %+v", got)
	}

	if s := toTask(&tasks.Task{Status: "needsAction"}, "l1", 0).Status; s != service.StatusNew {
		t.Errorf("expected new, got %s", s)
	}
}

func TestFromModel(t *testing.T) {
	open := fromModel(service.TaskModel{Title: "Sweep", Status: service.StatusInProgress})
	if open.Status != "needsAction" {
		t.Errorf("expected needsAction, got %s", open.Status)
	}
	if !contains(open.NullFields, "Completed") || !contains(open.NullFields, "Due") {
		t.Errorf("expected Completed and Due cleared, got %v", open.NullFields)
	}

	done := fromModel(service.TaskModel{Title: "Sweep", Status: service.StatusCompleted, Deadline: "2026-10-20T00:00:00.000Z"})
	if done.Status != "completed" || done.Due == "" {
		t.Errorf("unexpected task: %+v", done)
	}
	if got := fromModel(service.TaskModel{Deadline: "2026-10-20T00:00:00"}).Due; got != "2026-10-20T00:00:00Z" {
		t.Errorf("expected RFC 3339 due date, got %q", got)
	}
	if contains(done.NullFields, "Completed") || contains(done.NullFields, "Due") {
		t.Errorf("unexpected null fields: %v", done.NullFields)
	}
}

func TestWrapError(t *testing.T) {
	if err := wrapError(&googleapi.Error{Code: http.StatusUnauthorized}); !errors.Is(err, service.ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}
	if err := wrapError(&googleapi.Error{Code: http.StatusNotFound}); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := wrapError(context.DeadlineExceeded); err.Error() != "request timed out" {
		t.Errorf("unexpected error: %v", err)
	}
	if wrapError(nil) != nil {
		t.Error("expected nil")
	}
}

func TestListTasks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tasks/v1/lists/l1/tasks", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("showCompleted") != "true" {
			t.Errorf("expected showCompleted=true, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"id": "t1", "title": "Sweep", "status": "needsAction"},
				{"id": "t2", "title": "Cook", "status": "completed"},
			},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := NewWithHTTPClient(context.Background(), srv.Client(), srv.URL+"/")
	if err != nil {
		t.Fatalf("NewWithHTTPClient: %v", err)
	}

	got, err := c.ListTasks(context.Background(), "l1")
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(got) != 2 || got[0].ID != "t1" || got[1].Status != service.StatusCompleted {
		t.Errorf("unexpected tasks: %+v", got)
	}
}

func TestNew_WithoutToken(t *testing.T) {
	dir := t.TempDir()
	clientJSON := `{"installed":{"client_id":"id","client_secret":"secret","auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token","redirect_uris":["http://localhost"]}}`
	if err := os.WriteFile(filepath.Join(dir, config.OAuthClientFile), []byte(clientJSON), 0600); err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{Dir: dir, Settings: config.Settings{Backend: config.BackendGoogleTasks, Timeout: config.DefaultTimeout}}

	c, err := New(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.ListLists(context.Background()); !errors.Is(err, service.ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}
	if _, err := c.Login(context.Background(), service.LoginParams{}); !errors.Is(err, service.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestNew_WithoutClientFile(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	c, err := New(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Me(context.Background()); !errors.Is(err, service.ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}
	if _, err := loadOAuthConfig(cfg); !errors.Is(err, service.ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
