// Package googletasks implements the service.Service interface using Google Tasks API.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"todoctl/internal/config"
	"todoctl/internal/service"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// PageSize is the number of tasks per page.
	PageSize = 100

	// OAuth scope for Google Tasks
	tasksScope = "https://www.googleapis.com/auth/tasks"

	statusNeedsAction = "needsAction"
	statusCompleted   = "completed"
)

// Client implements service.Service using Google Tasks API.
type Client struct {
	svc       *tasks.Service
	timeout   time.Duration
	tokenPath string
	log       zerolog.Logger
}

// New creates a new Google Tasks client.
// Without oauth_client.json or token.json every call reports
// service.ErrNotLoggedIn.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Client, error) {
	c := &Client{
		timeout:   cfg.Timeout,
		tokenPath: cfg.TokenPath(),
		log:       log.With().Str("mod", "googletasks").Logger(),
	}

	oauthConfig, err := loadOAuthConfig(cfg)
	if err != nil {
		if errors.Is(err, service.ErrNotLoggedIn) {
			return c, nil
		}
		return nil, err
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}

	// Refreshes the access token as needed.
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token))

	c.svc, err = tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client and endpoint (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, endpoint string) (*Client, error) {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc, timeout: config.DefaultTimeout, log: zerolog.Nop()}, nil
}

func loadOAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: oauth_client.json not found in %s", service.ErrNotLoggedIn, cfg.Dir)
		}
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, tasksScope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}
	return oauthConfig, nil
}

// begin checks that a token is loaded and bounds the call with the client timeout.
func (c *Client) begin(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if c.svc == nil {
		return ctx, func() {}, fmt.Errorf("%w (run: todoctl login)", service.ErrNotLoggedIn)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	return ctx, cancel, nil
}

// ListLists returns all task lists in API order.
func (c *Client) ListLists(ctx context.Context) ([]service.TodoList, error) {
	ctx, cancel, err := c.begin(ctx)
	defer cancel()
	if err != nil {
		return nil, err
	}

	var result []service.TodoList
	err = c.svc.Tasklists.List().MaxResults(100).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			result = append(result, toTodoList(list, len(result)))
		}
		return nil
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// CreateList creates a new task list.
func (c *Client) CreateList(ctx context.Context, title string) (service.TodoList, error) {
	ctx, cancel, err := c.begin(ctx)
	defer cancel()
	if err != nil {
		return service.TodoList{}, err
	}

	list, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: title}).Context(ctx).Do()
	if err != nil {
		return service.TodoList{}, wrapError(err)
	}
	return toTodoList(list, 0), nil
}

// DeleteList deletes a task list by ID.
func (c *Client) DeleteList(ctx context.Context, listID string) error {
	ctx, cancel, err := c.begin(ctx)
	defer cancel()
	if err != nil {
		return err
	}
	return wrapError(c.svc.Tasklists.Delete(listID).Context(ctx).Do())
}

// RenameList changes a task list title.
func (c *Client) RenameList(ctx context.Context, listID, title string) error {
	ctx, cancel, err := c.begin(ctx)
	defer cancel()
	if err != nil {
		return err
	}
	_, err = c.svc.Tasklists.Patch(listID, &tasks.TaskList{Title: title}).Context(ctx).Do()
	return wrapError(err)
}

// ListTasks returns every task of a list, completed and hidden ones included.
func (c *Client) ListTasks(ctx context.Context, listID string) ([]service.Task, error) {
	ctx, cancel, err := c.begin(ctx)
	defer cancel()
	if err != nil {
		return nil, err
	}

	var result []service.Task
	err = c.svc.Tasks.List(listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, t := range resp.Items {
				result = append(result, toTask(t, listID, len(result)))
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	c.log.Debug().Str("list", listID).Int("count", len(result)).Msg("tasks loaded")
	return result, nil
}

// CreateTask creates a new task in the specified list.
func (c *Client) CreateTask(ctx context.Context, listID, title string) (service.Task, error) {
	ctx, cancel, err := c.begin(ctx)
	defer cancel()
	if err != nil {
		return service.Task{}, err
	}

	t, err := c.svc.Tasks.Insert(listID, &tasks.Task{Title: title}).Context(ctx).Do()
	if err != nil {
		return service.Task{}, wrapError(err)
	}
	return toTask(t, listID, 0), nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, listID, taskID string) error {
	ctx, cancel, err := c.begin(ctx)
	defer cancel()
	if err != nil {
		return err
	}
	return wrapError(c.svc.Tasks.Delete(listID, taskID).Context(ctx).Do())
}

// UpdateTask patches the fields Google Tasks can store. Priority and start
// date have no counterpart and are dropped.
func (c *Client) UpdateTask(ctx context.Context, listID, taskID string, model service.TaskModel) error {
	ctx, cancel, err := c.begin(ctx)
	defer cancel()
	if err != nil {
		return err
	}
	_, err = c.svc.Tasks.Patch(listID, taskID, fromModel(model)).Context(ctx).Do()
	return wrapError(err)
}

// Login is not available; authorization uses the OAuth flow in Authorize.
func (c *Client) Login(ctx context.Context, params service.LoginParams) (int, error) {
	return 0, fmt.Errorf("password login: %w", service.ErrUnsupported)
}

// Me verifies the token by reading the default list.
func (c *Client) Me(ctx context.Context) (service.User, error) {
	ctx, cancel, err := c.begin(ctx)
	defer cancel()
	if err != nil {
		return service.User{}, err
	}
	if _, err := c.svc.Tasklists.Get(DefaultListID).Context(ctx).Do(); err != nil {
		return service.User{}, wrapError(err)
	}
	return service.User{Login: "google"}, nil
}

// Logout removes the stored token.
func (c *Client) Logout(ctx context.Context) error {
	if c.tokenPath == "" {
		return nil
	}
	if err := os.Remove(c.tokenPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func toTodoList(l *tasks.TaskList, order int) service.TodoList {
	return service.TodoList{ID: l.Id, Title: l.Title, AddedDate: l.Updated, Order: order}
}

func toTask(t *tasks.Task, listID string, order int) service.Task {
	status := service.StatusNew
	if t.Status == statusCompleted {
		status = service.StatusCompleted
	}
	return service.Task{
		ID:          t.Id,
		Title:       t.Title,
		Description: t.Notes,
		Status:      status,
		Deadline:    t.Due,
		AddedDate:   t.Updated,
		TodoListID:  listID,
		Order:       order,
	}
}

func fromModel(m service.TaskModel) *tasks.Task {
	t := &tasks.Task{
		Title:           m.Title,
		Notes:           m.Description,
		Status:          statusNeedsAction,
		Due:             dueDate(m.Deadline),
		ForceSendFields: []string{"Title", "Notes"},
	}
	if m.Status == service.StatusCompleted {
		t.Status = statusCompleted
	} else {
		t.NullFields = append(t.NullFields, "Completed")
	}
	if m.Deadline == "" {
		t.NullFields = append(t.NullFields, "Due")
	}
	return t
}

// dueDate converts a local date to the RFC 3339 form Google Tasks expects.
func dueDate(s string) string {
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t.Format(time.RFC3339)
	}
	return s
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: token expired or revoked (run: todoctl login)", service.ErrNotLoggedIn)
		case http.StatusNotFound:
			return service.ErrNotFound
		}
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%w: token expired or revoked (run: todoctl login)", service.ErrNotLoggedIn)
	}

	return err
}
