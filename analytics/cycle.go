package analytics

import (
	"errors"
	"fmt"
	"math"

	"betledger/models"
)

var (
	ErrCycleNotIdle      = errors.New("cycle configuration can only change while idle")
	ErrCycleNotActive    = errors.New("no active cycle")
	ErrInvalidTransition = errors.New("invalid cycle transition")
	ErrInvalidResult     = errors.New("invalid step result")
)

// GenerateLadder builds the projected ladder for a cycle configuration.
// The first stake is the whole capital; each target is stake × odds and
// funds the next step.
func GenerateLadder(capital float64, steps int, odds float64) []models.LadderStep {
	if steps < 0 {
		steps = 0
	}
	ladder := make([]models.LadderStep, 0, steps)

	stake := capital
	for i := 1; i <= steps; i++ {
		target := stake * odds
		ladder = append(ladder, models.LadderStep{
			Step:   i,
			Stake:  stake,
			Target: target,
			Status: models.StepStatusPending,
		})
		stake = target
	}
	return ladder
}

// NewCycleState returns an idle cycle with a projected ladder and no history
func NewCycleState(capital float64, steps int, odds float64) models.CycleState {
	return models.CycleState{
		StartCapital:  capital,
		Steps:         steps,
		BaseOdds:      odds,
		CurrentStep:   1,
		CycleBankroll: capital,
		CycleStatus:   models.CycleStatusIdle,
		Ladder:        GenerateLadder(capital, steps, odds),
		History:       []models.CycleHistoryItem{},
	}
}

// Configure changes the cycle parameters of an idle cycle and regenerates its ladder
func Configure(state models.CycleState, capital float64, steps int, odds float64) (models.CycleState, error) {
	if !state.IsIdle() {
		return state, ErrCycleNotIdle
	}
	if steps < 1 {
		return state, fmt.Errorf("step count must be at least 1, got %d", steps)
	}
	if math.IsNaN(capital) || math.IsInf(capital, 0) || capital <= 0 {
		return state, fmt.Errorf("starting capital must be positive, got %v", capital)
	}
	if math.IsNaN(odds) || math.IsInf(odds, 0) || odds <= 1 {
		return state, fmt.Errorf("odds must be greater than 1, got %v", odds)
	}

	next := NewCycleState(capital, steps, odds)
	next.History = cloneHistory(state.History)
	return next, nil
}

// Start moves an idle cycle to active, funding it with the starting capital
func Start(state models.CycleState) (models.CycleState, error) {
	if !state.IsIdle() {
		return state, fmt.Errorf("%w: cannot start from %s", ErrInvalidTransition, state.CycleStatus)
	}

	next := state
	next.History = cloneHistory(state.History)
	next.Ladder = GenerateLadder(state.StartCapital, state.Steps, state.BaseOdds)
	next.CycleStatus = models.CycleStatusActive
	next.CycleBankroll = state.StartCapital
	next.CurrentStep = 1
	next.Wins = 0
	next.Losses = 0
	return next, nil
}

// RecordResult settles the current step of an active cycle. A win advances the
// ladder or completes it; a loss forfeits the whole running bankroll.
func RecordResult(state models.CycleState, result models.StepResult, clock models.CycleClock) (models.CycleState, error) {
	if !state.IsActive() {
		return state, ErrCycleNotActive
	}
	idx := state.CurrentStep - 1
	if idx < 0 || idx >= len(state.Ladder) {
		return state, fmt.Errorf("%w: current step %d outside ladder of %d", ErrInvalidTransition, state.CurrentStep, len(state.Ladder))
	}

	next := state
	next.Ladder = make([]models.LadderStep, len(state.Ladder))
	copy(next.Ladder, state.Ladder)
	next.History = cloneHistory(state.History)

	step := next.Ladder[idx]

	switch result {
	case models.StepResultWin:
		next.Ladder[idx].Status = models.StepStatusWin
		next.CycleBankroll = step.Target
		next.Wins++

		if state.CurrentStep < len(next.Ladder) {
			next.CurrentStep++
			return next, nil
		}

		next.CycleStatus = models.CycleStatusCompleted
		next.History = append(next.History, historyItem(clock, next, step.Target, len(next.Ladder)))
		return next, nil

	case models.StepResultLoss:
		next.Ladder[idx].Status = models.StepStatusLoss
		next.CycleBankroll = 0
		next.Losses++
		next.CycleStatus = models.CycleStatusFailed
		next.History = append(next.History, historyItem(clock, next, 0, state.CurrentStep-1))
		return next, nil

	default:
		return state, fmt.Errorf("%w: %q", ErrInvalidResult, result)
	}
}

// Reset returns any cycle to idle with a fresh projected ladder. History is kept.
func Reset(state models.CycleState) models.CycleState {
	next := NewCycleState(state.StartCapital, state.Steps, state.BaseOdds)
	next.History = cloneHistory(state.History)
	return next
}

// ClearHistory drops every logged cycle and leaves the current run untouched
func ClearHistory(state models.CycleState) models.CycleState {
	next := state
	next.History = []models.CycleHistoryItem{}
	return next
}

// Summary derives the ladder goal and the current run's progress
func Summary(state models.CycleState) models.CycleSummary {
	multiplier := math.Pow(state.BaseOdds, float64(state.Steps))
	summary := models.CycleSummary{
		TargetMultiplier: multiplier,
		TargetProfit:     state.StartCapital * (multiplier - 1),
	}
	if !state.IsIdle() {
		summary.CurrentProfit = state.CycleBankroll - state.StartCapital
	}
	if played := state.Wins + state.Losses; played > 0 {
		summary.WinRate = float64(state.Wins) / float64(played) * 100
	}
	return summary
}

func historyItem(clock models.CycleClock, state models.CycleState, endBankroll float64, stepsCompleted int) models.CycleHistoryItem {
	return models.CycleHistoryItem{
		ID:             clock.NewID(),
		Date:           clock.Now().Format("2006-01-02"),
		StartCapital:   state.StartCapital,
		EndBankroll:    endBankroll,
		Profit:         endBankroll - state.StartCapital,
		Status:         state.CycleStatus,
		StepsCompleted: stepsCompleted,
		TotalSteps:     len(state.Ladder),
	}
}

func cloneHistory(history []models.CycleHistoryItem) []models.CycleHistoryItem {
	out := make([]models.CycleHistoryItem, len(history))
	copy(out, history)
	return out
}
