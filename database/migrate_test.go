package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *DB, name string) bool {
	var found string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	require.NoError(t, err)
	return true
}

func TestMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "betledger.db")

	require.NoError(t, MigrateStatus(path))
	require.NoError(t, MigrateUp(path))
	// Second run has nothing to apply
	require.NoError(t, RunMigrations(path))
	require.NoError(t, MigrateStatus(path))

	db, err := NewConnection(context.Background(), path)
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, tableExists(t, db, "documents"))

	require.NoError(t, MigrateDown(path, "1"))
	assert.False(t, tableExists(t, db, "documents"))

	assert.Error(t, MigrateDown(path, "one"))
}

func TestWithTransaction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tx.db")
	require.NoError(t, RunMigrations(path))

	ctx := context.Background()
	db, err := NewConnection(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	insert := `INSERT INTO documents (key, body) VALUES (?, ?)`

	t.Run("commit", func(t *testing.T) {
		err := db.WithTransaction(ctx, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, insert, "a", "1")
			return err
		})
		require.NoError(t, err)

		var body string
		require.NoError(t, db.QueryRow(`SELECT body FROM documents WHERE key = 'a'`).Scan(&body))
		assert.Equal(t, "1", body)
	})

	t.Run("rollback", func(t *testing.T) {
		boom := errors.New("boom")
		err := db.WithTransaction(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, insert, "b", "2"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		var count int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM documents WHERE key = 'b'`).Scan(&count))
		assert.Zero(t, count)
	})
}
