package service

import (
	"context"
	"math"
	"testing"

	"betledger/analytics"
	"betledger/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constantSource always returns the same draw
type constantSource float64

func (c constantSource) Float64() float64 { return float64(c) }

func simulationDefaults() models.SimulationParams {
	return models.SimulationParams{
		StartingBankroll: 1000,
		WinProbability:   0.55,
		AverageOdds:      2.0,
		StakeFraction:    0.1,
		BetsPerRun:       20,
		Runs:             5,
		RuinThreshold:    analytics.DefaultRuinThreshold,
		SampleInterval:   analytics.DefaultSampleInterval,
	}
}

func TestSimulationService_Run(t *testing.T) {
	ctx := context.Background()
	service := NewSimulationService(simulationDefaults(), func() analytics.RandomSource {
		return constantSource(0)
	})

	result, err := service.Run(ctx, service.DefaultParams())

	require.NoError(t, err)
	require.Len(t, result.Runs, 5)
	assert.Equal(t, 100.0, result.ProfitProbability)
	assert.Equal(t, 0.0, result.RuinProbability)
	assert.InDelta(t, 1000*math.Pow(1.1, 20), result.MedianEnding, 1e-6)

	// steps 0, 10 and 20
	assert.Len(t, result.Runs[0].Points, 3)
}

func TestSimulationService_AlwaysLosing(t *testing.T) {
	ctx := context.Background()
	service := NewSimulationService(simulationDefaults(), func() analytics.RandomSource {
		return constantSource(0.99)
	})

	params := service.DefaultParams()
	params.StakeFraction = 1

	result, err := service.Run(ctx, params)

	require.NoError(t, err)
	assert.Equal(t, 100.0, result.RuinProbability)
	assert.Equal(t, 0.0, result.MedianEnding)
}

func TestSimulationService_Validation(t *testing.T) {
	ctx := context.Background()
	service := NewSimulationService(simulationDefaults(), nil)

	tests := []struct {
		name   string
		mutate func(*models.SimulationParams)
	}{
		{"zero bankroll", func(p *models.SimulationParams) { p.StartingBankroll = 0 }},
		{"win rate above one", func(p *models.SimulationParams) { p.WinProbability = 1.2 }},
		{"negative stake fraction", func(p *models.SimulationParams) { p.StakeFraction = -0.1 }},
		{"no bets", func(p *models.SimulationParams) { p.BetsPerRun = 0 }},
		{"no runs", func(p *models.SimulationParams) { p.Runs = 0 }},
		{"nan odds", func(p *models.SimulationParams) { p.AverageOdds = math.NaN() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := simulationDefaults()
			tt.mutate(&params)

			_, err := service.Run(ctx, params)
			assert.ErrorIs(t, err, ErrInvalidSimulationParams)
		})
	}
}

func TestSimulationService_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := NewSimulationService(simulationDefaults(), nil)
	_, err := service.Run(ctx, simulationDefaults())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulationService_ValidationReportsFirstBadField(t *testing.T) {
	service := NewSimulationService(simulationDefaults(), nil)

	params := simulationDefaults()
	params.StartingBankroll = math.Inf(1)
	params.WinProbability = math.NaN()
	params.RuinThreshold = math.NaN()

	for i := 0; i < 20; i++ {
		_, err := service.Run(context.Background(), params)
		require.ErrorIs(t, err, ErrInvalidSimulationParams)
		assert.Contains(t, err.Error(), "bankroll must be a finite number")
	}
}

// stopSource cancels the simulation from inside the draw loop
type stopSource struct {
	cancel context.CancelFunc
}

func (s stopSource) Float64() float64 {
	s.cancel()
	return 0
}

func TestSimulationService_CancelledDuringRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	service := NewSimulationService(simulationDefaults(), func() analytics.RandomSource {
		return stopSource{cancel: cancel}
	})

	result, err := service.Run(ctx, simulationDefaults())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}
