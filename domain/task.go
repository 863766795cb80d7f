package domain

import "time"

// DueDateLayout is the only accepted textual form of a task due date.
const DueDateLayout = "2006-01-02"

// StatusPending is the status assigned to tasks created without one.
const StatusPending = "pending"

// Field bounds enforced ahead of the varchar columns.
const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 255
	MaxStatusLen      = 20
)

// Task represents a user-owned activity item. A task belongs to exactly one
// user and is only ever visible through that user's identity.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	Status      string
	DueDate     time.Time
	CreatedAt   time.Time
}

func (t *Task) IsCompleted() bool {
	return t != nil && t.Status == "done"
}

// TaskPatch carries a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *time.Time
}

// IsEmpty reports whether the patch would change nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.DueDate == nil
}
