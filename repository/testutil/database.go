package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"betledger/database"

	"github.com/stretchr/testify/require"
)

// TestDatabase represents a migrated SQLite database in a temporary directory
type TestDatabase struct {
	DB   *database.DB
	Path string
}

// SetupTestDatabase creates a fresh database file, runs migrations and registers cleanup
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "betledger_test.db")

	// Run migrations first (before creating the connection)
	err := database.RunMigrations(path)
	require.NoError(t, err)

	db, err := database.NewConnection(ctx, path)
	require.NoError(t, err)

	testDB := &TestDatabase{DB: db, Path: path}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	return testDB
}
