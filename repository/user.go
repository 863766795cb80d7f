package repository

import (
	"context"

	"github.com/taskforge/backend/domain"
)

type UserRepository interface {
	// Create persists a new user and returns its id. A username or email
	// collision surfaces as domain.ErrDuplicateUser.
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
