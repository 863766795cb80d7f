package usecase

import (
	"context"

	"github.com/taskforge/backend/domain"
)

// TaskListCache abstracts the read cache for a user's task list so use cases
// stay storage-agnostic. The cache is advisory: implementations report
// errors, but callers treat every failure as a miss.
type TaskListCache interface {
	Get(ctx context.Context, ownerID int64) ([]domain.Task, bool, error)
	Set(ctx context.Context, ownerID int64, tasks []domain.Task) error
	Invalidate(ctx context.Context, ownerID int64) error
}

// ActivityLog records task events and serves a user's recent history.
type ActivityLog interface {
	Record(ctx context.Context, entry domain.ActivityEntry) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.ActivityEntry, error)
}

// TokenIssuer produces a bearer token for an authenticated user id.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}
