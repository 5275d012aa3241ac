// Package analytics holds the pure betting engines: journal statistics,
// staking calculators, the ladder state machine, the Monte Carlo
// projection and the capital allocation planner. Nothing in here performs
// I/O or keeps state between calls.
package analytics

import (
	"fmt"
	"math"
	"sort"

	"betledger/models"
)

// Profit returns the realized profit of a bet for its settlement outcome
func Profit(bet models.Bet) float64 {
	switch bet.Result {
	case models.BetResultWin:
		return bet.Stake * (bet.Odds - 1)
	case models.BetResultLoss:
		return -bet.Stake
	case models.BetResultHalfWin:
		return bet.Stake * (bet.Odds - 1) / 2
	case models.BetResultHalfLoss:
		return -bet.Stake / 2
	default:
		// Push and pending settle at zero
		return 0
	}
}

// winCredit is the share of a win a result counts for in win rates
func winCredit(result models.BetResult) float64 {
	switch result {
	case models.BetResultWin:
		return 1
	case models.BetResultHalfWin:
		return 0.5
	}
	return 0
}

// Chronological returns a copy of bets stably sorted by date, oldest first
func Chronological(bets []models.Bet) []models.Bet {
	sorted := make([]models.Bet, len(bets))
	copy(sorted, bets)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date.Time)
	})
	return sorted
}

// CalculateStats folds a journal into aggregate metrics against a starting bankroll.
// Pending bets are excluded from every aggregate and reported separately.
func CalculateStats(bets []models.Bet, initialBankroll float64) models.JournalStats {
	stats := models.JournalStats{CurrentBankroll: initialBankroll}

	var (
		wins            float64
		weightedOddsSum float64
		peak            = initialBankroll
		maxDrawdown     float64
		bankroll        = initialBankroll
	)

	for _, bet := range Chronological(bets) {
		if !bet.Result.IsSettled() {
			stats.PendingBets++
			stats.PendingExposure += bet.Stake
			continue
		}

		profit := Profit(bet)

		stats.TotalBets++
		stats.TotalStake += bet.Stake
		stats.TotalReturn += bet.Stake + profit
		weightedOddsSum += bet.Odds * bet.Stake
		wins += winCredit(bet.Result)

		bankroll += profit
		if bankroll > peak {
			peak = bankroll
		}
		// A non-positive peak has no meaningful drawdown
		if peak > 0 {
			if drawdown := (peak - bankroll) / peak; drawdown > maxDrawdown {
				maxDrawdown = drawdown
			}
		}
	}

	stats.CurrentBankroll = bankroll
	stats.Profit = bankroll - initialBankroll
	stats.MaxDrawdown = maxDrawdown * 100

	if stats.TotalStake > 0 {
		stats.ROI = stats.Profit / stats.TotalStake * 100
		stats.Yield = stats.ROI
		stats.AverageOdds = weightedOddsSum / stats.TotalStake
	}
	if stats.TotalBets > 0 {
		stats.WinRate = wins / float64(stats.TotalBets) * 100
	}

	return stats
}

// BankrollCurve returns the running bankroll after each settled bet, oldest first,
// preceded by a "Start" point at the initial bankroll.
func BankrollCurve(bets []models.Bet, initialBankroll float64) []models.BankrollPoint {
	points := []models.BankrollPoint{{Label: "Start", Date: "Start", Balance: initialBankroll}}

	balance := initialBankroll
	for i, bet := range Chronological(bets) {
		if !bet.Result.IsSettled() {
			continue
		}
		change := Profit(bet)
		balance += change
		points = append(points, models.BankrollPoint{
			Label:   fmt.Sprintf("Bet %d", i+1),
			Date:    bet.Date.String(),
			Balance: roundCents(balance),
			Change:  change,
		})
	}

	return points
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
