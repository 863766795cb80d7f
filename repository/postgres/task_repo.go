package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO tasks (user_id, title, description, status, due_date)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.UserID,
		task.Title,
		task.Description,
		task.Status,
		task.DueDate,
	).Scan(&task.ID, &task.CreatedAt); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "insert task", err)
	}

	return task, nil
}

func (r *taskRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	const query = `
	SELECT id, user_id, title, description, status, due_date, created_at
	FROM tasks
	WHERE user_id = $1
	ORDER BY due_date ASC, id ASC
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "list tasks", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "list tasks", err)
	}
	return tasks, nil
}

func (r *taskRepository) GetOwned(ctx context.Context, id, ownerID int64) (*domain.Task, error) {
	// Single filtered lookup: a foreign-owned task must look exactly like a
	// missing one, down to timing.
	const query = `
	SELECT id, user_id, title, description, status, due_date, created_at
	FROM tasks
	WHERE id = $1 AND user_id = $2
	`
	return scanTask(r.pool.QueryRow(ctx, query, id, ownerID))
}

func (r *taskRepository) UpdateOwned(ctx context.Context, id, ownerID int64, patch domain.TaskPatch) (*domain.Task, error) {
	// One statement, so the partial update is atomic: either every supplied
	// field lands or none does.
	const query = `
	UPDATE tasks
	SET title       = COALESCE($3, title),
		description = COALESCE($4, description),
		status      = COALESCE($5, status),
		due_date    = COALESCE($6::date, due_date)
	WHERE id = $1 AND user_id = $2
	RETURNING id, user_id, title, description, status, due_date, created_at
	`
	return scanTask(r.pool.QueryRow(ctx, query,
		id,
		ownerID,
		patch.Title,
		patch.Description,
		patch.Status,
		patch.DueDate,
	))
}

func (r *taskRepository) DeleteOwned(ctx context.Context, id, ownerID int64) error {
	const query = `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.DueDate,
		&task.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, domain.WrapError(domain.ErrCodeInternal, "scan task", err)
	}
	return &task, nil
}
