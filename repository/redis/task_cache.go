package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskforge/backend/domain"
	"github.com/taskforge/backend/usecase"
)

type taskListCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewTaskListCache creates a Redis-backed read cache for per-user task lists.
// Every mutation of a user's tasks must invalidate that user's key.
func NewTaskListCache(client *redislib.Client, ttl time.Duration) usecase.TaskListCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &taskListCache{
		client: client,
		prefix: "tasks:",
		ttl:    ttl,
	}
}

func (c *taskListCache) Get(ctx context.Context, ownerID int64) ([]domain.Task, bool, error) {
	result, err := c.client.Get(ctx, c.key(ownerID)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}

	var tasks []domain.Task
	if err := json.Unmarshal([]byte(result), &tasks); err != nil {
		return nil, false, err
	}
	return tasks, true, nil
}

func (c *taskListCache) Set(ctx context.Context, ownerID int64, tasks []domain.Task) error {
	payload, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(ownerID), payload, c.ttl).Err()
}

func (c *taskListCache) Invalidate(ctx context.Context, ownerID int64) error {
	return c.client.Del(ctx, c.key(ownerID)).Err()
}

func (c *taskListCache) key(ownerID int64) string {
	return fmt.Sprintf("%s%d", c.prefix, ownerID)
}
