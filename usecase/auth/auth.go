package auth

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/repository"
	"github.com/taskforge/backend/usecase"
)

type UseCase struct {
	users  repository.UserRepository
	tokens usecase.TokenIssuer
	logger *zap.Logger
}

func New(users repository.UserRepository, tokens usecase.TokenIssuer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a new account with a bcrypt-hashed credential and returns
// the assigned user id.
func (uc *UseCase) Register(ctx context.Context, username, email, password string) (int64, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return 0, domain.NewError(domain.ErrCodeInvalid, "username is required")
	}
	if email == "" {
		return 0, domain.NewError(domain.ErrCodeInvalid, "email is required")
	}
	if password == "" {
		return 0, domain.NewError(domain.ErrCodeInvalid, "password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, domain.WrapError(domain.ErrCodeInternal, "hash password", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	id, err := uc.users.Create(ctx, user)
	if err != nil {
		return 0, err
	}

	uc.logger.Info("user registered", zap.Int64("user_id", id))
	return id, nil
}

// Login verifies the credentials and issues a bearer token. An unknown
// username and a wrong password produce the identical error.
func (uc *UseCase) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	signed, err := uc.tokens.Issue(user.ID)
	if err != nil {
		return "", domain.WrapError(domain.ErrCodeInternal, "issue token", err)
	}
	return signed, nil
}

// Profile returns the account for an authenticated principal.
func (uc *UseCase) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}
