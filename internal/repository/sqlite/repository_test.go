package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	apperrors "todo-list/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestPutAndGet(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	require.NoError(t, repo.Put(ctx, "items", []byte(`[{"text":"Buy milk"}]`)))

	entry, err := repo.Get(ctx, "items")
	require.NoError(t, err)
	assert.Equal(t, "items", entry.Key)
	assert.Equal(t, `[{"text":"Buy milk"}]`, string(entry.Value))
	assert.True(t, fixed.Equal(entry.UpdatedAt))
}

func TestPutOverwrites(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "items", []byte(`[]`)))
	require.NoError(t, repo.Put(ctx, "items", []byte(`[{"text":"a"}]`)))

	entry, err := repo.Get(ctx, "items")
	require.NoError(t, err)
	assert.Equal(t, `[{"text":"a"}]`, string(entry.Value))

	keys, err := repo.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"items"}, keys)
}

func TestGetMissingKey(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.Get(context.Background(), "projects")
	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestPutMany(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	err := repo.PutMany(ctx, []Entry{
		{Key: "items", Value: []byte(`[]`)},
		{Key: "projects", Value: []byte(`[{"name":"Default"}]`)},
	})
	require.NoError(t, err)

	keys, err := repo.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"items", "projects"}, keys)

	entry, err := repo.Get(ctx, "projects")
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Default"}]`, string(entry.Value))

	assert.NoError(t, repo.PutMany(ctx, nil))
}

func TestPutManyCancelledContext(t *testing.T) {
	repo := setupTestDB(t)
	require.NoError(t, repo.Put(context.Background(), "items", []byte(`["before"]`)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.PutMany(ctx, []Entry{{Key: "items", Value: []byte(`["after"]`)}})
	require.Error(t, err)

	entry, err := repo.Get(context.Background(), "items")
	require.NoError(t, err)
	assert.Equal(t, `["before"]`, string(entry.Value))
}

func TestDelete(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "items", []byte(`[]`)))
	require.NoError(t, repo.Delete(ctx, "items"))

	_, err := repo.Get(ctx, "items")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))

	err = repo.Delete(ctx, "items")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound))
}

func TestPersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "todo.db")
	ctx := context.Background()

	repo, err := New(dbPath)
	require.NoError(t, err)
	require.NoError(t, repo.Put(ctx, "items", []byte(`[{"text":"persisted"}]`)))
	require.NoError(t, repo.Close())

	reopened, err := NewWithOptions(dbPath, Options{QueryTimeout: time.Second, WriteTimeout: time.Second})
	require.NoError(t, err)
	defer reopened.Close()

	entry, err := reopened.Get(ctx, "items")
	require.NoError(t, err)
	assert.Equal(t, `[{"text":"persisted"}]`, string(entry.Value))
}

func TestNewWithOptionsDefaultsZeroTimeouts(t *testing.T) {
	repo, err := NewWithOptions(":memory:", Options{})
	require.NoError(t, err)
	defer repo.Close()

	assert.Equal(t, DefaultOptions(), repo.opts)
}
