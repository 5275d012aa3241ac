package analytics

import (
	"fmt"
	"math"
	"strconv"

	"betledger/models"
)

const monthsPerYear = 12

var milestones = []models.Milestone{
	{Target: 10000, Label: "$10K Milestone"},
	{Target: 25000, Label: "$25K Milestone"},
	{Target: 50000, Label: "$50K Milestone"},
	{Target: 75000, Label: "$75K Milestone"},
	{Target: 100000, Label: "$100K GOAL"},
}

// SummarizeAllocation derives net worth, goal progress and the policy split of
// betting profit from the planner state and the live journal figures.
func SummarizeAllocation(state models.AllocationState, bettingBankroll, bettingProfit float64) models.AllocationSummary {
	settings := state.Settings
	netWorth := bettingBankroll + state.Assets.Total()

	summary := models.AllocationSummary{
		BettingBankroll: bettingBankroll,
		BettingProfit:   bettingProfit,
		TotalNetWorth:   netWorth,
		Remaining:       settings.TargetGoal - netWorth,
		MonthlyGrowth:   netWorth - settings.StartNetWorth,
		PolicyTotal:     state.Policy.Total(),
	}

	if settings.TargetGoal > 0 {
		summary.ProgressPct = math.Min(netWorth/settings.TargetGoal*100, 100)
	}
	if settings.StartNetWorth > 0 {
		summary.MonthlyGrowthPct = summary.MonthlyGrowth / settings.StartNetWorth * 100
	}
	summary.AnnualizedGrowthPct = (math.Pow(1+summary.MonthlyGrowthPct/100, monthsPerYear) - 1) * 100
	summary.PolicyBalanced = math.Abs(summary.PolicyTotal-100) < 1e-9

	summary.Milestones = make([]models.Milestone, len(milestones))
	for i, m := range milestones {
		m.Achieved = netWorth >= m.Target
		summary.Milestones[i] = m
	}

	shares := []struct {
		bucket string
		pct    float64
	}{
		{"Betting Bankroll", state.Policy.BettingSplit},
		{"Crypto", state.Policy.CryptoSplit},
		{"Cash", state.Policy.CashSplit},
		{"Emergency Fund", state.Policy.EmergencySplit},
	}
	for _, sh := range shares {
		usd := bettingProfit * sh.pct / 100
		summary.Distribution = append(summary.Distribution, models.ProfitShare{
			Bucket:  sh.bucket,
			Percent: sh.pct,
			USD:     usd,
			Local:   usd * settings.ExchangeRate,
		})
	}

	for _, amounts := range state.MonthlySchedule {
		for _, v := range amounts {
			summary.TotalDistributed += v
		}
	}
	summary.UnallocatedProfit = bettingProfit - summary.TotalDistributed

	return summary
}

// YearSchedule returns the twelve monthly amounts for a year, zeros when unset
func YearSchedule(state models.AllocationState, year int) []float64 {
	out := make([]float64, monthsPerYear)
	copy(out, state.MonthlySchedule[strconv.Itoa(year)])
	return out
}

// SetScheduleEntry records the amount distributed in one month (0-11) of a year.
// The returned state shares nothing mutable with the input.
func SetScheduleEntry(state models.AllocationState, year, month int, amount float64) (models.AllocationState, error) {
	if month < 0 || month >= monthsPerYear {
		return state, fmt.Errorf("month index %d out of range 0-11", month)
	}

	schedule := make(map[string][]float64, len(state.MonthlySchedule)+1)
	for k, v := range state.MonthlySchedule {
		schedule[k] = append([]float64(nil), v...)
	}

	yearData := YearSchedule(state, year)
	yearData[month] = amount
	schedule[strconv.Itoa(year)] = yearData

	next := state
	next.MonthlySchedule = schedule
	return next, nil
}
