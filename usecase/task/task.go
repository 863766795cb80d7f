package task

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
	"github.com/taskforge/backend/usecase"
)

// CreateInput carries the raw create payload. DueDate is the textual form;
// empty means "today".
type CreateInput struct {
	Title       string
	Description string
	Status      string
	DueDate     string
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *string
}

type UseCase struct {
	tasks    repository.TaskRepository
	cache    usecase.TaskListCache
	activity usecase.ActivityLog
	logger   *zap.Logger
	now      func() time.Time
}

func New(tasks repository.TaskRepository, cache usecase.TaskListCache, activity usecase.ActivityLog, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:    tasks,
		cache:    cache,
		activity: activity,
		logger:   logger,
		now:      time.Now,
	}
}

// Create validates the payload, fills defaults and persists a task owned by
// the principal.
func (uc *UseCase) Create(ctx context.Context, ownerID int64, in CreateInput) (*domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
	}
	if err := checkBounds(title, in.Description, in.Status); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.StatusPending
	}

	dueDate, err := uc.parseDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		UserID:      ownerID,
		Title:       title,
		Description: in.Description,
		Status:      status,
		DueDate:     dueDate,
	}

	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, ownerID)
	uc.record(ctx, created, domain.ActivityCreated)
	return created, nil
}

// List returns the principal's tasks ordered by due date ascending,
// consulting the cache first.
func (uc *UseCase) List(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	if uc.cache != nil {
		if tasks, ok, err := uc.cache.Get(ctx, ownerID); err == nil && ok {
			return tasks, nil
		} else if err != nil {
			uc.logger.Warn("task cache read failed", zap.Error(err))
		}
	}

	tasks, err := uc.tasks.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, ownerID, tasks); err != nil {
			uc.logger.Warn("task cache write failed", zap.Error(err))
		}
	}
	return tasks, nil
}

// Get returns one task, provided it belongs to the principal.
func (uc *UseCase) Get(ctx context.Context, ownerID, id int64) (*domain.Task, error) {
	return uc.tasks.GetOwned(ctx, id, ownerID)
}

// Update applies the supplied fields to an owned task and returns the result.
func (uc *UseCase) Update(ctx context.Context, ownerID, id int64, in UpdateInput) (*domain.Task, error) {
	patch := domain.TaskPatch{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
	}

	if in.Title != nil {
		trimmed := strings.TrimSpace(*in.Title)
		if trimmed == "" {
			return nil, domain.NewError(domain.ErrCodeInvalid, "title is required")
		}
		patch.Title = &trimmed
	}

	var title, description, status string
	if patch.Title != nil {
		title = *patch.Title
	}
	if patch.Description != nil {
		description = *patch.Description
	}
	if patch.Status != nil {
		status = *patch.Status
	}
	if err := checkBounds(title, description, status); err != nil {
		return nil, err
	}

	if in.DueDate != nil {
		dueDate, err := uc.parseDueDate(*in.DueDate)
		if err != nil {
			return nil, err
		}
		patch.DueDate = &dueDate
	}

	if patch.IsEmpty() {
		return uc.tasks.GetOwned(ctx, id, ownerID)
	}

	updated, err := uc.tasks.UpdateOwned(ctx, id, ownerID, patch)
	if err != nil {
		return nil, err
	}

	uc.invalidate(ctx, ownerID)
	uc.record(ctx, updated, domain.ActivityUpdated)
	return updated, nil
}

// Delete removes an owned task. Deleting the same id again yields the same
// not-found error as a task that never existed.
func (uc *UseCase) Delete(ctx context.Context, ownerID, id int64) error {
	if err := uc.tasks.DeleteOwned(ctx, id, ownerID); err != nil {
		return err
	}

	uc.invalidate(ctx, ownerID)
	uc.record(ctx, &domain.Task{ID: id, UserID: ownerID}, domain.ActivityDeleted)
	return nil
}

func (uc *UseCase) parseDueDate(raw string) (time.Time, error) {
	if raw == "" {
		now := uc.now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	parsed, err := time.Parse(domain.DueDateLayout, raw)
	if err != nil {
		return time.Time{}, domain.NewError(domain.ErrCodeInvalid, "invalid due_date, expected YYYY-MM-DD")
	}
	return parsed, nil
}

func (uc *UseCase) invalidate(ctx context.Context, ownerID int64) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx, ownerID); err != nil {
		uc.logger.Warn("task cache invalidation failed", zap.Int64("user_id", ownerID), zap.Error(err))
	}
}

func (uc *UseCase) record(ctx context.Context, task *domain.Task, operation string) {
	if uc.activity == nil || task == nil {
		return
	}
	entry := domain.ActivityEntry{
		UserID:    task.UserID,
		TaskID:    task.ID,
		Operation: operation,
		Title:     task.Title,
		CreatedAt: uc.now().UTC(),
	}
	// Journal writes are best-effort; a failed entry must not fail the
	// operation it describes.
	if err := uc.activity.Record(ctx, entry); err != nil {
		uc.logger.Warn("activity record failed", zap.String("operation", operation), zap.Error(err))
	}
}

func checkBounds(title, description, status string) error {
	if len(title) > domain.MaxTitleLen {
		return domain.NewError(domain.ErrCodeInvalid, "title too long")
	}
	if len(description) > domain.MaxDescriptionLen {
		return domain.NewError(domain.ErrCodeInvalid, "description too long")
	}
	if len(status) > domain.MaxStatusLen {
		return domain.NewError(domain.ErrCodeInvalid, "status too long")
	}
	return nil
}
