package todoapi

import (
	"encoding/json"

	"todoctl/internal/service"
)

// Result codes reported in the response envelope.
const (
	resultOK    = 0
	resultError = 1
)

// envelope is the response wrapper of every mutating endpoint.
type envelope[D any] struct {
	FieldsErrors []json.RawMessage `json:"fieldsErrors"`
	ResultCode   int               `json:"resultCode"`
	Messages     []string          `json:"messages"`
	Data         D                 `json:"data"`
}

// err returns a *service.ResultError when the envelope reports failure.
func (e *envelope[D]) err() error {
	if e.ResultCode == resultOK {
		return nil
	}
	fields := make([]string, 0, len(e.FieldsErrors))
	for _, raw := range e.FieldsErrors {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			fields = append(fields, s)
			continue
		}
		fields = append(fields, string(raw))
	}
	return &service.ResultError{
		ResultCode:   e.ResultCode,
		Messages:     e.Messages,
		FieldsErrors: fields,
	}
}

type item[T any] struct {
	Item T `json:"item"`
}

type wireList struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	AddedDate string `json:"addedDate"`
	Order     int    `json:"order"`
}

func (l wireList) toService() service.TodoList {
	return service.TodoList{ID: l.ID, Title: l.Title, AddedDate: l.AddedDate, Order: l.Order}
}

type wireTask struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      int    `json:"status"`
	Priority    int    `json:"priority"`
	StartDate   string `json:"startDate"`
	Deadline    string `json:"deadline"`
	AddedDate   string `json:"addedDate"`
	TodoListID  string `json:"todoListId"`
	Order       int    `json:"order"`
}

func (t wireTask) toService() service.Task {
	return service.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      service.TaskStatus(t.Status),
		Priority:    service.TaskPriority(t.Priority),
		StartDate:   t.StartDate,
		Deadline:    t.Deadline,
		AddedDate:   t.AddedDate,
		TodoListID:  t.TodoListID,
		Order:       t.Order,
	}
}

type tasksPage struct {
	Items      []wireTask `json:"items"`
	TotalCount int        `json:"totalCount"`
	Error      *string    `json:"error"`
}

type titleBody struct {
	Title string `json:"title"`
}

// updateModel is the PUT body for a task. Empty dates are sent as null.
type updateModel struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      int     `json:"status"`
	Priority    int     `json:"priority"`
	StartDate   *string `json:"startDate"`
	Deadline    *string `json:"deadline"`
}

func newUpdateModel(m service.TaskModel) updateModel {
	return updateModel{
		Title:       m.Title,
		Description: m.Description,
		Status:      int(m.Status),
		Priority:    int(m.Priority),
		StartDate:   nullable(m.StartDate),
		Deadline:    nullable(m.Deadline),
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type loginBody struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
	Captcha    string `json:"captcha,omitempty"`
}

type loginData struct {
	UserID int `json:"userId"`
}

type meData struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Login string `json:"login"`
}
