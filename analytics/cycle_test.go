package analytics

import (
	"math"
	"testing"
	"time"

	"betledger/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClock() models.CycleClock {
	return models.CycleClock{
		Now:   func() time.Time { return time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC) },
		NewID: func() string { return "cycle-1" },
	}
}

func TestGenerateLadder(t *testing.T) {
	ladder := GenerateLadder(100, 3, 2.0)

	require.Len(t, ladder, 3)
	var stakes, targets []float64
	for i, step := range ladder {
		assert.Equal(t, i+1, step.Step)
		assert.Equal(t, models.StepStatusPending, step.Status)
		stakes = append(stakes, step.Stake)
		targets = append(targets, step.Target)
	}
	assert.Equal(t, []float64{100, 200, 400}, stakes)
	assert.Equal(t, []float64{200, 400, 800}, targets)

	t.Run("geometric", func(t *testing.T) {
		ladder := GenerateLadder(250, 6, 1.85)
		for i := 1; i < len(ladder); i++ {
			assert.InDelta(t, ladder[i-1].Stake*1.85, ladder[i].Stake, 1e-9)
			assert.Equal(t, ladder[i-1].Target, ladder[i].Stake)
		}
	})

	t.Run("no steps", func(t *testing.T) {
		assert.Empty(t, GenerateLadder(100, 0, 2))
		assert.Empty(t, GenerateLadder(100, -3, 2))
	})
}

func TestCycle_CompletesOnFinalWin(t *testing.T) {
	state, err := Start(NewCycleState(100, 3, 2.0))
	require.NoError(t, err)
	assert.Equal(t, models.CycleStatusActive, state.CycleStatus)
	assert.Equal(t, 100.0, state.CycleBankroll)

	for i := 1; i <= 2; i++ {
		state, err = RecordResult(state, models.StepResultWin, testClock())
		require.NoError(t, err)
		assert.Equal(t, models.CycleStatusActive, state.CycleStatus)
		assert.Equal(t, i+1, state.CurrentStep)
	}
	assert.Equal(t, 400.0, state.CycleBankroll)

	state, err = RecordResult(state, models.StepResultWin, testClock())
	require.NoError(t, err)

	assert.Equal(t, models.CycleStatusCompleted, state.CycleStatus)
	assert.Equal(t, 800.0, state.CycleBankroll)
	assert.Equal(t, 3, state.Wins)
	require.Len(t, state.History, 1)
	assert.Equal(t, models.CycleHistoryItem{
		ID:             "cycle-1",
		Date:           "2025-06-01",
		StartCapital:   100,
		EndBankroll:    800,
		Profit:         700,
		Status:         models.CycleStatusCompleted,
		StepsCompleted: 3,
		TotalSteps:     3,
	}, state.History[0])
}

func TestCycle_FailsOnLoss(t *testing.T) {
	state, err := Start(NewCycleState(100, 3, 2.0))
	require.NoError(t, err)

	state, err = RecordResult(state, models.StepResultWin, testClock())
	require.NoError(t, err)
	state, err = RecordResult(state, models.StepResultLoss, testClock())
	require.NoError(t, err)

	assert.Equal(t, models.CycleStatusFailed, state.CycleStatus)
	assert.Zero(t, state.CycleBankroll)
	assert.Equal(t, models.StepStatusWin, state.Ladder[0].Status)
	assert.Equal(t, models.StepStatusLoss, state.Ladder[1].Status)
	assert.Equal(t, models.StepStatusPending, state.Ladder[2].Status)

	require.Len(t, state.History, 1)
	entry := state.History[0]
	assert.Equal(t, models.CycleStatusFailed, entry.Status)
	assert.Equal(t, 1, entry.StepsCompleted)
	assert.Equal(t, 3, entry.TotalSteps)
	assert.Equal(t, -100.0, entry.Profit)

	_, err = RecordResult(state, models.StepResultWin, testClock())
	assert.ErrorIs(t, err, ErrCycleNotActive)
}

func TestCycle_Transitions(t *testing.T) {
	idle := NewCycleState(100, 3, 2.0)

	t.Run("result while idle", func(t *testing.T) {
		_, err := RecordResult(idle, models.StepResultWin, testClock())
		assert.ErrorIs(t, err, ErrCycleNotActive)
	})

	t.Run("start twice", func(t *testing.T) {
		active, err := Start(idle)
		require.NoError(t, err)
		_, err = Start(active)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("configure only while idle", func(t *testing.T) {
		configured, err := Configure(idle, 50, 4, 1.5)
		require.NoError(t, err)
		assert.Len(t, configured.Ladder, 4)
		assert.Equal(t, 50.0, configured.Ladder[0].Stake)
		assert.InDelta(t, 50*1.5*1.5*1.5*1.5, configured.Ladder[3].Target, 1e-9)

		active, err := Start(idle)
		require.NoError(t, err)
		_, err = Configure(active, 50, 4, 1.5)
		assert.ErrorIs(t, err, ErrCycleNotIdle)
	})

	t.Run("configure rejects degenerate ladders", func(t *testing.T) {
		tests := []struct {
			name    string
			capital float64
			steps   int
			odds    float64
		}{
			{"no steps", 50, 0, 1.5},
			{"zero capital", 0, 4, 1.5},
			{"negative capital", -10, 4, 1.5},
			{"even odds", 50, 4, 1},
			{"shrinking odds", 50, 4, 0.8},
			{"nan odds", 50, 4, math.NaN()},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				next, err := Configure(idle, tt.capital, tt.steps, tt.odds)
				assert.Error(t, err)
				assert.Equal(t, idle, next)
			})
		}
	})

	t.Run("unknown result", func(t *testing.T) {
		active, err := Start(idle)
		require.NoError(t, err)
		_, err = RecordResult(active, models.StepResult("DRAW"), testClock())
		assert.ErrorIs(t, err, ErrInvalidResult)
	})

	t.Run("input state is not modified", func(t *testing.T) {
		active, err := Start(idle)
		require.NoError(t, err)
		_, err = RecordResult(active, models.StepResultLoss, testClock())
		require.NoError(t, err)
		assert.Equal(t, models.StepStatusPending, active.Ladder[0].Status)
		assert.Empty(t, active.History)
	})
}

func TestCycle_ResetKeepsHistory(t *testing.T) {
	state, err := Start(NewCycleState(100, 2, 2.0))
	require.NoError(t, err)
	state, err = RecordResult(state, models.StepResultLoss, testClock())
	require.NoError(t, err)
	logged := state.History[0]

	state = Reset(state)

	assert.Equal(t, models.CycleStatusIdle, state.CycleStatus)
	assert.Equal(t, 100.0, state.CycleBankroll)
	assert.Equal(t, 1, state.CurrentStep)
	for _, step := range state.Ladder {
		assert.Equal(t, models.StepStatusPending, step.Status)
	}
	require.Len(t, state.History, 1)
	assert.Equal(t, logged, state.History[0])

	restarted, err := Start(state)
	require.NoError(t, err)
	assert.Zero(t, restarted.Wins)
	assert.Zero(t, restarted.Losses)

	cleared := ClearHistory(state)
	assert.Empty(t, cleared.History)
	assert.Len(t, state.History, 1)
}

func TestSummary(t *testing.T) {
	state := NewCycleState(100, 3, 2.0)

	summary := Summary(state)
	assert.InDelta(t, 8, summary.TargetMultiplier, 1e-9)
	assert.InDelta(t, 700, summary.TargetProfit, 1e-9)
	assert.Zero(t, summary.CurrentProfit)
	assert.Zero(t, summary.WinRate)

	state, err := Start(state)
	require.NoError(t, err)
	state, err = RecordResult(state, models.StepResultWin, testClock())
	require.NoError(t, err)

	summary = Summary(state)
	assert.InDelta(t, 100, summary.CurrentProfit, 1e-9)
	assert.InDelta(t, 100, summary.WinRate, 1e-9)
}
