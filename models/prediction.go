package models

// MatchContext describes a live match sent to the prediction service
type MatchContext struct {
	HomeTeam      string `json:"homeTeam"`
	AwayTeam      string `json:"awayTeam"`
	League        string `json:"league"`
	CurrentScore  string `json:"currentScore"`
	CurrentMinute string `json:"currentMinute"`
	Context       string `json:"context"`
}

// PredictionResult is a probability estimate; probabilities are 0-1, confidence 0-100
type PredictionResult struct {
	HomeWin        float64 `json:"homeWin"`
	Draw           float64 `json:"draw"`
	AwayWin        float64 `json:"awayWin"`
	DoubleChance1X float64 `json:"doubleChance1X"`
	DoubleChanceX2 float64 `json:"doubleChanceX2"`
	Over05         float64 `json:"over05"`
	Over15         float64 `json:"over15"`
	Reasoning      string  `json:"reasoning"`
	Confidence     float64 `json:"confidence"`

	// Fallback is set when the estimate was substituted after a failed call
	Fallback bool `json:"fallback,omitempty"`
}

// FallbackPrediction returns the fixed estimate used when the service is unavailable
func FallbackPrediction() *PredictionResult {
	return &PredictionResult{
		HomeWin:        0.40,
		Draw:           0.30,
		AwayWin:        0.30,
		DoubleChance1X: 0.70,
		DoubleChanceX2: 0.60,
		Over05:         0.85,
		Over15:         0.55,
		Reasoning:      "Analysis failed. Using statistical averages for live betting markets.",
		Confidence:     40,
		Fallback:       true,
	}
}

// MarketOdds are the decimal odds offered for the evaluated markets
type MarketOdds struct {
	DoubleChance float64 `json:"doubleChance"`
	Over05       float64 `json:"over05"`
	Over15       float64 `json:"over15"`
}

// MarketEvaluation compares an estimated probability against offered odds
type MarketEvaluation struct {
	Market             string      `json:"market"`
	Sublabel           string      `json:"sublabel,omitempty"`
	Probability        float64     `json:"probability"`
	Odds               float64     `json:"odds"`
	ImpliedProbability float64     `json:"impliedProbability"`
	EV                 float64     `json:"ev"`
	IsValue            bool        `json:"isValue"`
	Kelly              KellyResult `json:"kelly"`
}
