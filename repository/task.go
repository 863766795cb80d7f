package repository

import (
	"context"

	"github.com/taskforge/backend/domain"
)

// TaskRepository takes the owning user on every call. Implementations must
// apply the ownership predicate inside the query itself (id AND user_id), so
// a row belonging to another user is indistinguishable from a missing one.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	// ListByOwner returns the user's tasks ordered by due date ascending.
	// No tasks is an empty slice, not an error.
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error)
	GetOwned(ctx context.Context, id, ownerID int64) (*domain.Task, error)
	// UpdateOwned applies the non-nil patch fields in a single statement and
	// returns the resulting row.
	UpdateOwned(ctx context.Context, id, ownerID int64, patch domain.TaskPatch) (*domain.Task, error)
	DeleteOwned(ctx context.Context, id, ownerID int64) error
}
