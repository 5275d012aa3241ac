package models

// SimulationParams configures a Monte Carlo bankroll projection
type SimulationParams struct {
	StartingBankroll float64 `json:"bankroll" yaml:"bankroll"`
	WinProbability   float64 `json:"winRate" yaml:"win_rate"`
	AverageOdds      float64 `json:"avgOdds" yaml:"avg_odds"`
	StakeFraction    float64 `json:"betSizePct" yaml:"bet_size_pct"`
	BetsPerRun       int     `json:"numBets" yaml:"num_bets"`
	Runs             int     `json:"numSimulations" yaml:"num_simulations"`

	// RuinThreshold is the bankroll at or below which a finished run counts as ruined
	RuinThreshold float64 `json:"ruinThreshold" yaml:"ruin_threshold"`
	// SampleInterval controls trajectory downsampling; the final bet is always sampled
	SampleInterval int `json:"sampleInterval" yaml:"sample_interval"`
}

// TrajectoryPoint is a sampled bankroll value after Step bets
type TrajectoryPoint struct {
	Step  int     `json:"step"`
	Value float64 `json:"value"`
}

// SimulationRun is the outcome of one independent run
type SimulationRun struct {
	Points      []TrajectoryPoint `json:"points"`
	EndBankroll float64           `json:"endBankroll"`
	Ruined      bool              `json:"ruined"`
}

// SimulationResult summarizes a batch of Monte Carlo runs
type SimulationResult struct {
	Runs              []SimulationRun `json:"runs"`
	FinalBankrolls    []float64       `json:"finalBankrolls"`
	ProfitProbability float64         `json:"profitProb"`
	RuinProbability   float64         `json:"ruinProb"`
	MedianEnding      float64         `json:"medianEnd"`
}
