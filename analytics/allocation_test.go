package analytics

import (
	"testing"

	"betledger/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeAllocation(t *testing.T) {
	state := models.DefaultAllocationState()
	state.MonthlySchedule = map[string][]float64{
		"2024": {100, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 50},
		"2025": {200},
	}

	// Assets total 11400
	summary := SummarizeAllocation(state, 12600, 2600)

	assert.InDelta(t, 24000, summary.TotalNetWorth, 1e-9)
	assert.InDelta(t, 24, summary.ProgressPct, 1e-9)
	assert.InDelta(t, 76000, summary.Remaining, 1e-9)
	assert.InDelta(t, 14000, summary.MonthlyGrowth, 1e-9)
	assert.InDelta(t, 140, summary.MonthlyGrowthPct, 1e-9)

	require.Len(t, summary.Milestones, 5)
	assert.True(t, summary.Milestones[0].Achieved)
	assert.False(t, summary.Milestones[1].Achieved)
	assert.Equal(t, "$100K GOAL", summary.Milestones[4].Label)

	require.Len(t, summary.Distribution, 4)
	assert.InDelta(t, 1300, summary.Distribution[0].USD, 1e-9)
	assert.InDelta(t, 1300000, summary.Distribution[0].Local, 1e-6)
	assert.InDelta(t, 130, summary.Distribution[3].USD, 1e-9)

	assert.InDelta(t, 350, summary.TotalDistributed, 1e-9)
	assert.InDelta(t, 2250, summary.UnallocatedProfit, 1e-9)
	assert.Equal(t, 100.0, summary.PolicyTotal)
	assert.True(t, summary.PolicyBalanced)
}

func TestSummarizeAllocation_Edges(t *testing.T) {
	state := models.DefaultAllocationState()
	state.Settings.TargetGoal = 0
	state.Settings.StartNetWorth = 0
	state.Policy.CashSplit = 20

	summary := SummarizeAllocation(state, 500000, 0)

	assert.Zero(t, summary.ProgressPct)
	assert.Zero(t, summary.MonthlyGrowthPct)
	assert.Zero(t, summary.AnnualizedGrowthPct)
	assert.False(t, summary.PolicyBalanced)

	t.Run("progress capped", func(t *testing.T) {
		summary := SummarizeAllocation(models.DefaultAllocationState(), 500000, 0)
		assert.Equal(t, 100.0, summary.ProgressPct)
	})

	t.Run("annualized", func(t *testing.T) {
		state := models.DefaultAllocationState()
		state.Assets = models.AssetConfig{}
		state.Settings.StartNetWorth = 1000
		summary := SummarizeAllocation(state, 1010, 0)
		assert.InDelta(t, 12.6825, summary.AnnualizedGrowthPct, 1e-4)
	})
}

func TestSchedule(t *testing.T) {
	state := models.DefaultAllocationState()

	assert.Equal(t, make([]float64, 12), YearSchedule(state, 2025))

	updated, err := SetScheduleEntry(state, 2025, 11, 420)
	require.NoError(t, err)
	assert.Equal(t, 420.0, YearSchedule(updated, 2025)[11])
	assert.Empty(t, state.MonthlySchedule)

	again, err := SetScheduleEntry(updated, 2025, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 420.0, again.MonthlySchedule["2025"][11])
	assert.Equal(t, 10.0, again.MonthlySchedule["2025"][0])
	assert.Zero(t, updated.MonthlySchedule["2025"][0])

	_, err = SetScheduleEntry(state, 2025, 12, 1)
	assert.Error(t, err)
}
