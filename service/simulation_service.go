package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"betledger/analytics"
	"betledger/models"

	log "github.com/sirupsen/logrus"
)

var ErrInvalidSimulationParams = errors.New("invalid simulation parameters")

// simulationService implements the SimulationService interface
type simulationService struct {
	defaults  models.SimulationParams
	newSource func() analytics.RandomSource
}

// NewSimulationService creates a simulation service. newSource is called once per
// Run; nil selects a time-seeded source.
func NewSimulationService(defaults models.SimulationParams, newSource func() analytics.RandomSource) SimulationService {
	if newSource == nil {
		newSource = analytics.NewRandomSource
	}
	return &simulationService{defaults: defaults, newSource: newSource}
}

func (s *simulationService) DefaultParams() models.SimulationParams {
	return s.defaults
}

func (s *simulationService) Run(ctx context.Context, params models.SimulationParams) (*models.SimulationResult, error) {
	if err := validateSimulationParams(params); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := analytics.NewSimulator(s.newSource()).Run(ctx, params)
	if err != nil {
		log.WithFields(log.Fields{
			"runs":     params.Runs,
			"duration": time.Since(start),
		}).Info("Monte Carlo simulation cancelled")
		return nil, err
	}

	log.WithFields(log.Fields{
		"runs":       params.Runs,
		"betsPerRun": params.BetsPerRun,
		"profitProb": result.ProfitProbability,
		"ruinProb":   result.RuinProbability,
		"duration":   time.Since(start),
	}).Debug("Monte Carlo simulation finished")

	return &result, nil
}

func validateSimulationParams(p models.SimulationParams) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"bankroll", p.StartingBankroll},
		{"win rate", p.WinProbability},
		{"average odds", p.AverageOdds},
		{"stake fraction", p.StakeFraction},
		{"ruin threshold", p.RuinThreshold},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidSimulationParams, f.name)
		}
	}

	switch {
	case p.StartingBankroll <= 0:
		return fmt.Errorf("%w: bankroll must be positive", ErrInvalidSimulationParams)
	case p.WinProbability < 0 || p.WinProbability > 1:
		return fmt.Errorf("%w: win rate must be between 0 and 1", ErrInvalidSimulationParams)
	case p.StakeFraction < 0:
		return fmt.Errorf("%w: stake fraction must not be negative", ErrInvalidSimulationParams)
	case p.BetsPerRun < 1:
		return fmt.Errorf("%w: at least one bet per run is required", ErrInvalidSimulationParams)
	case p.Runs < 1:
		return fmt.Errorf("%w: at least one run is required", ErrInvalidSimulationParams)
	}
	return nil
}
