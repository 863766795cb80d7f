package domain

import "time"

// Activity operations recorded in the journal.
const (
	ActivityCreated = "created"
	ActivityUpdated = "updated"
	ActivityDeleted = "deleted"
)

// ActivityEntry is one journaled task event, scoped to the owning user just
// like the task itself.
type ActivityEntry struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	TaskID    int64     `json:"task_id"`
	Operation string    `json:"operation"`
	Title     string    `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
