package models

// JournalStats represents aggregated performance of the settled part of a journal
type JournalStats struct {
	TotalBets       int     `json:"totalBets"`
	TotalStake      float64 `json:"totalStake"`
	TotalReturn     float64 `json:"totalReturn"`
	Profit          float64 `json:"profit"`
	ROI             float64 `json:"roi"`
	Yield           float64 `json:"yield"`
	WinRate         float64 `json:"winRate"`
	MaxDrawdown     float64 `json:"maxDrawdown"`
	CurrentBankroll float64 `json:"currentBankroll"`
	AverageOdds     float64 `json:"averageOdds"`

	// Open positions, excluded from every figure above
	PendingBets     int     `json:"pendingBets"`
	PendingExposure float64 `json:"pendingExposure"`
}

// BankrollPoint is one point of the chronological bankroll curve
type BankrollPoint struct {
	Label   string  `json:"name"`
	Date    string  `json:"date"`
	Balance float64 `json:"balance"`
	Change  float64 `json:"change"`
}

// SegmentStats summarizes the settled bets of one group in a pivot table
type SegmentStats struct {
	Label       string  `json:"label"`
	Bets        int     `json:"bets"`
	Wins        float64 `json:"wins"`
	WinRate     float64 `json:"winRate"`
	Profit      float64 `json:"profit"`
	AverageOdds float64 `json:"avgOdds"`
}

// SportPerformance is the per-sport profit row of the dashboard
type SportPerformance struct {
	Sport  string  `json:"sport"`
	Profit float64 `json:"profit"`
	ROI    float64 `json:"roi"`
	Count  int     `json:"count"`
}

// StakeBucket counts bets whose stake falls into a range
type StakeBucket struct {
	Label string  `json:"label"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// Dashboard combines the overview figures shown on the landing view
type Dashboard struct {
	Stats             JournalStats       `json:"stats"`
	RecentBets        []Bet              `json:"recentBets"`
	SportPerformance  []SportPerformance `json:"sportsPerformance"`
	StakeDistribution []StakeBucket      `json:"stakeDistribution"`
}
