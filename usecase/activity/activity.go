package activity

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/usecase"
)

const defaultLimit = 50

type UseCase struct {
	log    usecase.ActivityLog
	logger *zap.Logger
}

func New(log usecase.ActivityLog, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{log: log, logger: logger}
}

// Recent returns the principal's latest journal entries, newest first.
func (uc *UseCase) Recent(ctx context.Context, userID int64, limit int) ([]domain.ActivityEntry, error) {
	if limit <= 0 || limit > defaultLimit {
		limit = defaultLimit
	}
	return uc.log.ListByUser(ctx, userID, limit)
}
