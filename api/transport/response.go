package transport

import (
	"encoding/json"
	"time"

	"github.com/taskforge/backend/domain"
)

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
	}
}

// NewError returns an error envelope with optional detail.
func NewError(code string, err interface{}, detail interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Data:   detail,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// UserResponse is the wire form of a user; the credential hash never appears.
type UserResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// TaskResponse is the wire form of a task. DueDate round-trips in the same
// YYYY-MM-DD form it was submitted in.
type TaskResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	DueDate     string `json:"due_date"`
	CreatedAt   string `json:"created_at"`
}

func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		DueDate:     task.DueDate.Format(domain.DueDateLayout),
		CreatedAt:   task.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func NewTaskListResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = NewTaskResponse(&tasks[i])
	}
	return out
}

// ActivityResponse is one entry of the caller's activity feed.
type ActivityResponse struct {
	ID        string `json:"id"`
	TaskID    int64  `json:"task_id"`
	Operation string `json:"operation"`
	Title     string `json:"title,omitempty"`
	CreatedAt string `json:"created_at"`
}

func NewActivityListResponse(entries []domain.ActivityEntry) []ActivityResponse {
	out := make([]ActivityResponse, len(entries))
	for i, entry := range entries {
		out[i] = ActivityResponse{
			ID:        entry.ID,
			TaskID:    entry.TaskID,
			Operation: entry.Operation,
			Title:     entry.Title,
			CreatedAt: entry.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return out
}
