package repository

import (
	"context"
	"encoding/json"
	"testing"

	"betledger/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	store := NewSQLDocumentStore(testDB.DB)
	repo := NewBackupRepository(store)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, KeyBankroll, []byte(`5000`)))
	require.NoError(t, store.Put(ctx, KeyBets, []byte(`[]`)))

	snapshot, err := repo.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot, 2)
	assert.JSONEq(t, `5000`, string(snapshot[KeyBankroll]))

	t.Run("restore", func(t *testing.T) {
		snapshot[KeyBankroll] = json.RawMessage(`7000`)
		require.NoError(t, repo.Restore(ctx, snapshot))

		doc, err := store.Get(ctx, KeyBankroll)
		require.NoError(t, err)
		assert.Equal(t, `7000`, string(doc))
	})

	t.Run("removes documents written after the snapshot", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, KeyBets))
		before, err := repo.Snapshot(ctx)
		require.NoError(t, err)
		require.NotContains(t, before, KeyBets)

		require.NoError(t, store.Put(ctx, KeyBets, []byte(`[{"id":"later"}]`)))
		require.NoError(t, repo.Restore(ctx, before))

		_, err = store.Get(ctx, KeyBets)
		assert.ErrorIs(t, err, ErrDocumentNotFound)

		doc, err := store.Get(ctx, KeyBankroll)
		require.NoError(t, err)
		assert.Equal(t, `7000`, string(doc))
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		err := repo.Restore(ctx, map[string]json.RawMessage{
			KeyBankroll: json.RawMessage(`1`),
			"other":     json.RawMessage(`1`),
		})
		assert.Error(t, err)

		doc, err := store.Get(ctx, KeyBankroll)
		require.NoError(t, err)
		assert.Equal(t, `7000`, string(doc))
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		err := repo.Restore(ctx, map[string]json.RawMessage{KeyBets: json.RawMessage(`[`)})
		assert.Error(t, err)
	})
}
