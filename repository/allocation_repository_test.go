package repository

import (
	"context"
	"testing"
	"time"

	"betledger/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocationRepository(t *testing.T) {
	store := NewMemoryDocumentStore()
	now := func() time.Time { return time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC) }
	repo := NewAllocationRepository(store, now)
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		state, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.DefaultAllocationState(), state)
	})

	t.Run("round trip", func(t *testing.T) {
		state := models.DefaultAllocationState()
		state.Assets.Crypto = 4200
		state.MonthlySchedule["2024"] = []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

		require.NoError(t, repo.Save(ctx, state))

		loaded, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, state, loaded)
	})

	t.Run("legacy schedule", func(t *testing.T) {
		doc := `{"assets":{"crypto":1,"realEstate":2,"cash":3,"other":4},
			"monthlySchedule":[10,0,0,0,0,0,0,0,0,0,0,5]}`
		require.NoError(t, store.Put(ctx, KeyAllocation, []byte(doc)))

		state, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.AssetConfig{Crypto: 1, RealEstate: 2, Cash: 3, Other: 4}, state.Assets)
		assert.Equal(t, models.DefaultAllocationState().Policy, state.Policy)
		assert.Equal(t, map[string][]float64{
			"2025": {10, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 5},
		}, state.MonthlySchedule)
	})

	t.Run("partial settings keep defaults", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, KeyAllocation, []byte(`{"settings":{"targetGoal":50000}}`)))

		state, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, 50000.0, state.Settings.TargetGoal)
		assert.Equal(t, 10000.0, state.Settings.StartNetWorth)
		assert.Empty(t, state.MonthlySchedule)
	})

	t.Run("corrupt", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, KeyAllocation, []byte(`"nope"`)))

		state, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.DefaultAllocationState(), state)
	})
}
