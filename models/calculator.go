package models

// KellyResult holds a fractional-Kelly stake recommendation
type KellyResult struct {
	// Stake is the amount to bet, never negative
	Stake float64 `json:"stake"`
	// Fraction is the applied share of bankroll (full Kelly × safety), clamped at zero
	Fraction float64 `json:"fraction"`
	// FullKelly is the unclamped full-Kelly fraction; negative means no edge
	FullKelly float64 `json:"fullKelly"`
	// ExpectedValue is p·odds − 1
	ExpectedValue float64 `json:"expectedValue"`
}

// EVResult holds an expected value breakdown for a single wager
type EVResult struct {
	// EVPercent is p·odds − 1, expressed as a fraction of the stake
	EVPercent  float64 `json:"evPercent"`
	EVAbsolute float64 `json:"evAbsolute"`
	// BreakevenProbability is 100/odds, in percent
	BreakevenProbability float64 `json:"breakevenProbability"`
	// Edge is the user's probability minus breakeven, in percentage points
	Edge     float64 `json:"edge"`
	Positive bool    `json:"positive"`
}
