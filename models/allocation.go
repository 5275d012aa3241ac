package models

// AssetConfig holds the non-betting asset values, in USD
type AssetConfig struct {
	Crypto     float64 `json:"crypto"`
	RealEstate float64 `json:"realEstate"`
	Cash       float64 `json:"cash"`
	Other      float64 `json:"other"`
}

// Total sums all asset classes
func (a AssetConfig) Total() float64 {
	return a.Crypto + a.RealEstate + a.Cash + a.Other
}

// AllocationPolicy splits betting profit across buckets, in percent
type AllocationPolicy struct {
	BettingSplit   float64 `json:"bettingSplit"`
	CryptoSplit    float64 `json:"cryptoSplit"`
	CashSplit      float64 `json:"cashSplit"`
	EmergencySplit float64 `json:"emergencySplit"`
}

// Total sums all splits; a balanced policy totals 100
func (p AllocationPolicy) Total() float64 {
	return p.BettingSplit + p.CryptoSplit + p.CashSplit + p.EmergencySplit
}

// AllocationSettings are the planner's goal and currency settings
type AllocationSettings struct {
	TargetGoal        float64 `json:"targetGoal"`
	StartNetWorth     float64 `json:"startNetWorth"`
	ExchangeRate      float64 `json:"exchangeRate"`
	AutoReinvest      bool    `json:"autoReinvest"`
	ReinvestThreshold float64 `json:"reinvestThreshold"`
	Frequency         string  `json:"frequency"`
}

// AllocationState is the persisted capital allocation planner document
type AllocationState struct {
	Assets   AssetConfig        `json:"assets"`
	Policy   AllocationPolicy   `json:"policy"`
	Settings AllocationSettings `json:"settings"`
	// MonthlySchedule maps a year ("2025") to twelve monthly distributed amounts
	MonthlySchedule map[string][]float64 `json:"monthlySchedule"`
}

// DefaultAllocationState returns the planner's initial values
func DefaultAllocationState() AllocationState {
	return AllocationState{
		Assets:   AssetConfig{Crypto: 0, RealEstate: 12000, Cash: -600, Other: 0},
		Policy:   AllocationPolicy{BettingSplit: 50, CryptoSplit: 30, CashSplit: 15, EmergencySplit: 5},
		Settings: AllocationSettings{
			TargetGoal:        100000,
			StartNetWorth:     10000,
			ExchangeRate:      1000,
			AutoReinvest:      true,
			ReinvestThreshold: 1000,
			Frequency:         "Weekly",
		},
		MonthlySchedule: map[string][]float64{},
	}
}

// Milestone is a net worth checkpoint
type Milestone struct {
	Target   float64 `json:"target"`
	Label    string  `json:"label"`
	Achieved bool    `json:"achieved"`
}

// ProfitShare is the amount of betting profit assigned to one policy bucket
type ProfitShare struct {
	Bucket  string  `json:"bucket"`
	Percent float64 `json:"percent"`
	USD     float64 `json:"usd"`
	Local   float64 `json:"local"`
}

// AllocationSummary holds the derived planner figures
type AllocationSummary struct {
	BettingBankroll     float64       `json:"bettingBankroll"`
	BettingProfit       float64       `json:"bettingProfit"`
	TotalNetWorth       float64       `json:"totalNetWorth"`
	ProgressPct         float64       `json:"progressPct"`
	Remaining           float64       `json:"remaining"`
	MonthlyGrowth       float64       `json:"monthlyGrowth"`
	MonthlyGrowthPct    float64       `json:"monthlyGrowthPct"`
	AnnualizedGrowthPct float64       `json:"annualizedGrowthPct"`
	Milestones          []Milestone   `json:"milestones"`
	Distribution        []ProfitShare `json:"distribution"`
	TotalDistributed    float64       `json:"totalDistributed"`
	UnallocatedProfit   float64       `json:"unallocatedProfit"`
	PolicyTotal         float64       `json:"policyTotal"`
	PolicyBalanced      bool          `json:"policyBalanced"`
}
