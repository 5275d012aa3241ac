package analytics

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"betledger/models"
)

const (
	DefaultRuinThreshold  = 1.0
	DefaultSampleInterval = 10

	// bets simulated between context checks inside a run
	cancelCheckInterval = 1024
)

// RandomSource yields uniform draws in [0, 1)
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns a time-seeded source for interactive simulations
func NewRandomSource() RandomSource {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Simulator runs Monte Carlo bankroll projections against a random source.
// A Simulator is not safe for concurrent use when its source is not.
type Simulator struct {
	rng RandomSource
}

func NewSimulator(rng RandomSource) *Simulator {
	if rng == nil {
		rng = NewRandomSource()
	}
	return &Simulator{rng: rng}
}

// Run simulates params.Runs independent runs of params.BetsPerRun flat-fraction bets.
// It stops with ctx.Err() when ctx is cancelled between runs or mid-run.
func (s *Simulator) Run(ctx context.Context, params models.SimulationParams) (models.SimulationResult, error) {
	if params.SampleInterval <= 0 {
		params.SampleInterval = DefaultSampleInterval
	}
	if params.Runs <= 0 {
		return models.SimulationResult{Runs: []models.SimulationRun{}, FinalBankrolls: []float64{}}, nil
	}

	result := models.SimulationResult{
		Runs:           make([]models.SimulationRun, 0, params.Runs),
		FinalBankrolls: make([]float64, 0, params.Runs),
	}

	var profitable, ruined int
	for i := 0; i < params.Runs; i++ {
		if err := ctx.Err(); err != nil {
			return models.SimulationResult{}, err
		}
		run, err := s.runOnce(ctx, params)
		if err != nil {
			return models.SimulationResult{}, err
		}
		if run.EndBankroll > params.StartingBankroll {
			profitable++
		}
		if run.Ruined {
			ruined++
		}
		result.Runs = append(result.Runs, run)
		result.FinalBankrolls = append(result.FinalBankrolls, run.EndBankroll)
	}

	total := float64(params.Runs)
	result.ProfitProbability = float64(profitable) / total * 100
	result.RuinProbability = float64(ruined) / total * 100
	result.MedianEnding = LowerMedian(result.FinalBankrolls)

	return result, nil
}

func (s *Simulator) runOnce(ctx context.Context, params models.SimulationParams) (models.SimulationRun, error) {
	bankroll := params.StartingBankroll
	ruined := false

	points := []models.TrajectoryPoint{{Step: 0, Value: bankroll}}
	for i := 1; i <= params.BetsPerRun; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return models.SimulationRun{}, err
			}
		}

		if bankroll <= 0 {
			ruined = true
			bankroll = 0
		} else {
			stake := bankroll * params.StakeFraction
			if s.rng.Float64() < params.WinProbability {
				bankroll += stake * (params.AverageOdds - 1)
			} else {
				bankroll -= stake
			}
			if bankroll < 0 {
				bankroll = 0
			}
		}

		if i%params.SampleInterval == 0 || i == params.BetsPerRun {
			points = append(points, models.TrajectoryPoint{Step: i, Value: bankroll})
		}
	}

	if bankroll <= params.RuinThreshold {
		ruined = true
	}

	return models.SimulationRun{Points: points, EndBankroll: bankroll, Ruined: ruined}, nil
}

// LowerMedian returns the middle value of values, the lower of the two middles for
// even lengths. The input is not modified.
func LowerMedian(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted[(len(sorted)-1)/2]
}
