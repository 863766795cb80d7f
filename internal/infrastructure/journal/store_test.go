package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskforge/backend/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"), "")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func record(t *testing.T, store *Store, userID, taskID int64, op string, at time.Time) {
	t.Helper()
	require.NoError(t, store.Record(context.Background(), domain.ActivityEntry{
		UserID:    userID,
		TaskID:    taskID,
		Operation: op,
		CreatedAt: at,
	}))
}

func TestStore_PerUserIsolation(t *testing.T) {
	store := openTestStore(t)
	base := time.Now().UTC()

	record(t, store, 1, 10, domain.ActivityCreated, base)
	record(t, store, 2, 20, domain.ActivityCreated, base.Add(time.Second))
	record(t, store, 1, 11, domain.ActivityDeleted, base.Add(2*time.Second))

	entries, err := store.ListByUser(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		require.Equal(t, int64(1), entry.UserID)
	}

	entries, err = store.ListByUser(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, int64(20), entries[0].TaskID)

	entries, err = store.ListByUser(context.Background(), 3, 0)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestStore_NewestFirstAndLimit(t *testing.T) {
	store := openTestStore(t)
	base := time.Now().UTC()

	for i := int64(0); i < 5; i++ {
		record(t, store, 1, 100+i, domain.ActivityUpdated, base.Add(time.Duration(i)*time.Second))
	}

	entries, err := store.ListByUser(context.Background(), 1, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, int64(104), entries[0].TaskID)
	require.Equal(t, int64(103), entries[1].TaskID)
	require.Equal(t, int64(102), entries[2].TaskID)
}

func TestStore_RecordAssignsIDAndTimestamp(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Record(context.Background(), domain.ActivityEntry{
		UserID:    1,
		TaskID:    10,
		Operation: domain.ActivityCreated,
	}))

	entries, err := store.ListByUser(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotEmpty(t, entries[0].ID)
	require.False(t, entries[0].CreatedAt.IsZero())
}

func TestStore_Prune(t *testing.T) {
	store := openTestStore(t)
	now := time.Now().UTC()

	record(t, store, 1, 10, domain.ActivityCreated, now.Add(-48*time.Hour))
	record(t, store, 1, 11, domain.ActivityCreated, now.Add(-36*time.Hour))
	record(t, store, 1, 12, domain.ActivityCreated, now.Add(-time.Hour))

	require.NoError(t, store.Prune(now.Add(-24*time.Hour)))

	size, err := store.Size()
	require.NoError(t, err)
	require.Equal(t, 1, size)

	entries, err := store.ListByUser(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, int64(12), entries[0].TaskID)
}

func TestStore_Size(t *testing.T) {
	store := openTestStore(t)
	base := time.Now().UTC()

	size, err := store.Size()
	require.NoError(t, err)
	require.Zero(t, size)

	record(t, store, 1, 10, domain.ActivityCreated, base)
	record(t, store, 2, 20, domain.ActivityCreated, base)

	size, err = store.Size()
	require.NoError(t, err)
	require.Equal(t, 2, size)
}
