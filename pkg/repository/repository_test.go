package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates repositories over a single-connection in-memory database
func setupTestDB(t *testing.T) (repos *Repositories, cleanup func()) {
	t.Helper()
	repos, err := NewRepositories(context.Background(), Config{DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	return repos, func() { _ = repos.Close() }
}

func TestNewRepositories(t *testing.T) {
	t.Run("in-memory", func(t *testing.T) {
		repos, cleanup := setupTestDB(t)
		defer cleanup()

		require.NoError(t, repos.DB.PingContext(context.Background()))
		assert.NotNil(t, repos.Feed)
		assert.NotNil(t, repos.Story)

		var tables []string
		err := repos.DB.Select(&tables, "SELECT name FROM sqlite_master WHERE type='table' ORDER BY name")
		require.NoError(t, err)
		assert.Contains(t, tables, "feeds")
		assert.Contains(t, tables, "stories")
		assert.Contains(t, tables, "schema_migrations")
	})

	t.Run("migrations are idempotent on reopen", func(t *testing.T) {
		dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_time_format=sqlite"
		repos, err := NewRepositories(context.Background(), Config{DSN: dsn})
		require.NoError(t, err)
		require.NoError(t, repos.Close())

		repos, err = NewRepositories(context.Background(), Config{DSN: dsn})
		require.NoError(t, err)
		defer repos.Close()

		var version int
		require.NoError(t, repos.DB.Get(&version, "SELECT version FROM schema_migrations"))
		assert.Equal(t, 1, version)
	})

	t.Run("invalid path", func(t *testing.T) {
		_, err := NewRepositories(context.Background(), Config{DSN: "file:/nonexistent/dir/test.db?mode=ro"})
		require.Error(t, err)
	})
}

func TestErrorClassification(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.True(t, isUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: stories.feed_id, stories.url (2067)")))
	assert.False(t, isUniqueViolation(errors.New("no such table: stories")))

	assert.False(t, isLockError(nil))
	assert.True(t, isLockError(errors.New("database is locked (5) (SQLITE_BUSY)")))
	assert.False(t, isLockError(errors.New("syntax error")))
}

func TestWithRetry(t *testing.T) {
	t.Run("retries lock errors", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("database is locked")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on other errors", func(t *testing.T) {
		calls := 0
		sentinel := errors.New("boom")
		err := withRetry(context.Background(), func() error {
			calls++
			return fmt.Errorf("wrapped: %w", sentinel)
		})
		require.Error(t, err)
		require.ErrorIs(t, err, sentinel)
		assert.Equal(t, "wrapped: boom", err.Error())
		assert.Equal(t, 1, calls)
	})
}
