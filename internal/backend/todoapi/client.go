// Package todoapi implements the service.Service interface over the to-do lists REST API.
package todoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"todoctl/internal/config"
	"todoctl/internal/service"
)

const (
	// APIKeyHeader carries the API key on every request.
	APIKeyHeader = "API-KEY"

	// PageSize is the number of tasks fetched per page.
	PageSize = 100
)

// Options configures a Client.
type Options struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration

	// SessionPath is where session cookies are persisted. Empty disables persistence.
	SessionPath string

	// HTTPClient is used for requests. Its Jar is replaced.
	HTTPClient *http.Client

	Logger zerolog.Logger
}

// Client implements service.Service over HTTP.
type Client struct {
	http        *http.Client
	jar         http.CookieJar
	baseURL     *url.URL
	apiKey      string
	timeout     time.Duration
	sessionPath string
	log         zerolog.Logger
}

// New creates a client from configuration, restoring a stored session if any.
func New(cfg *config.Config, log zerolog.Logger) (*Client, error) {
	return NewWithOptions(Options{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Timeout:     cfg.Timeout,
		SessionPath: cfg.SessionPath(),
		Logger:      log,
	})
}

// NewWithOptions creates a client with explicit options.
func NewWithOptions(opts Options) (*Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url: %s", opts.BaseURL)
	}
	// Request paths resolve against the base as a directory.
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
		base.RawPath = ""
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{}
	if opts.HTTPClient != nil {
		c := *opts.HTTPClient
		httpClient = &c
	}
	httpClient.Jar = jar

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	c := &Client{
		http:        httpClient,
		jar:         jar,
		baseURL:     base,
		apiKey:      opts.APIKey,
		timeout:     timeout,
		sessionPath: opts.SessionPath,
		log:         opts.Logger.With().Str("mod", "todoapi").Logger(),
	}
	if err := c.loadSession(); err != nil {
		return nil, err
	}
	return c, nil
}

// ListLists returns all lists in API order.
func (c *Client) ListLists(ctx context.Context) ([]service.TodoList, error) {
	var lists []wireList
	if err := c.do(ctx, http.MethodGet, "todo-lists", nil, &lists); err != nil {
		return nil, err
	}
	result := make([]service.TodoList, 0, len(lists))
	for _, l := range lists {
		result = append(result, l.toService())
	}
	return result, nil
}

// CreateList creates a list.
func (c *Client) CreateList(ctx context.Context, title string) (service.TodoList, error) {
	var env envelope[item[wireList]]
	if err := c.call(ctx, http.MethodPost, "todo-lists", titleBody{Title: title}, &env); err != nil {
		return service.TodoList{}, err
	}
	return env.Data.Item.toService(), nil
}

// DeleteList deletes a list by ID.
func (c *Client) DeleteList(ctx context.Context, listID string) error {
	var env envelope[json.RawMessage]
	return c.call(ctx, http.MethodDelete, listPath(listID), nil, &env)
}

// RenameList changes a list title.
func (c *Client) RenameList(ctx context.Context, listID, title string) error {
	var env envelope[json.RawMessage]
	return c.call(ctx, http.MethodPut, listPath(listID), titleBody{Title: title}, &env)
}

// ListTasks returns every task of a list, fetching pages until totalCount is reached.
func (c *Client) ListTasks(ctx context.Context, listID string) ([]service.Task, error) {
	var result []service.Task
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("count", strconv.Itoa(PageSize))
		q.Set("page", strconv.Itoa(page))

		var resp tasksPage
		if err := c.do(ctx, http.MethodGet, tasksPath(listID)+"?"+q.Encode(), nil, &resp); err != nil {
			return nil, err
		}
		if resp.Error != nil && *resp.Error != "" {
			return nil, &service.ResultError{ResultCode: resultError, Messages: []string{*resp.Error}}
		}
		for _, t := range resp.Items {
			result = append(result, t.toService())
		}
		if len(resp.Items) == 0 || len(result) >= resp.TotalCount {
			return result, nil
		}
	}
}

// CreateTask creates a task in a list.
func (c *Client) CreateTask(ctx context.Context, listID, title string) (service.Task, error) {
	var env envelope[item[wireTask]]
	if err := c.call(ctx, http.MethodPost, tasksPath(listID), titleBody{Title: title}, &env); err != nil {
		return service.Task{}, err
	}
	return env.Data.Item.toService(), nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, listID, taskID string) error {
	var env envelope[json.RawMessage]
	return c.call(ctx, http.MethodDelete, taskPath(listID, taskID), nil, &env)
}

// UpdateTask replaces every mutable field of a task.
func (c *Client) UpdateTask(ctx context.Context, listID, taskID string, model service.TaskModel) error {
	var env envelope[json.RawMessage]
	return c.call(ctx, http.MethodPut, taskPath(listID, taskID), newUpdateModel(model), &env)
}

// Login opens a session and persists its cookies.
func (c *Client) Login(ctx context.Context, params service.LoginParams) (int, error) {
	body := loginBody{
		Email:      params.Email,
		Password:   params.Password,
		RememberMe: params.RememberMe,
		Captcha:    params.Captcha,
	}
	var env envelope[loginData]
	if err := c.call(ctx, http.MethodPost, "auth/login", body, &env); err != nil {
		return 0, err
	}
	if err := c.saveSession(); err != nil {
		return 0, fmt.Errorf("failed to save session: %w", err)
	}
	return env.Data.UserID, nil
}

// Me returns the user of the current session.
func (c *Client) Me(ctx context.Context) (service.User, error) {
	var env envelope[meData]
	if err := c.call(ctx, http.MethodGet, "auth/me", nil, &env); err != nil {
		return service.User{}, err
	}
	return service.User{ID: env.Data.ID, Email: env.Data.Email, Login: env.Data.Login}, nil
}

// Logout closes the session and forgets the stored cookies.
func (c *Client) Logout(ctx context.Context) error {
	var env envelope[json.RawMessage]
	if err := c.call(ctx, http.MethodDelete, "auth/login", nil, &env); err != nil {
		return err
	}
	return c.clearSession()
}

func listPath(listID string) string {
	return "todo-lists/" + url.PathEscape(listID)
}

func tasksPath(listID string) string {
	return listPath(listID) + "/tasks"
}

func taskPath(listID, taskID string) string {
	return tasksPath(listID) + "/" + url.PathEscape(taskID)
}

// enveloped is implemented by every envelope instantiation.
type enveloped interface {
	err() error
}

// call performs a request whose response is an envelope and reports a
// non-OK result code as *service.ResultError.
func (c *Client) call(ctx context.Context, method, path string, body any, env enveloped) error {
	if err := c.do(ctx, method, path, body, env); err != nil {
		return err
	}
	return env.err()
}

// do performs a request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ref, err := url.Parse(path)
	if err != nil {
		return err
	}
	u := c.baseURL.ResolveReference(ref)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return wrapError(err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("url", u.String()).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return wrapError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid response from %s %s: %w", method, path, err)
	}
	return nil
}

// statusError converts a non-2xx response into an error, preferring the
// messages of an embedded envelope.
func statusError(resp *http.Response, data []byte) error {
	var env envelope[json.RawMessage]
	if json.Unmarshal(data, &env) == nil && len(env.Messages) > 0 {
		if env.ResultCode == resultOK {
			env.ResultCode = resultError
		}
		return env.err()
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w (run: todoctl login)", service.ErrNotLoggedIn)
	case http.StatusNotFound:
		return service.ErrNotFound
	}
	return fmt.Errorf("unexpected response: %s", resp.Status)
}

// wrapError shortens transport errors to user-friendly messages.
func wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return err
}
