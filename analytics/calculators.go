package analytics

import (
	"math"

	"betledger/models"
)

// Kelly computes a fractional-Kelly stake.
// Formula: f* = (b·p − q) / b with b = odds − 1 and q = 1 − p; the applied
// fraction is f* × safetyFraction. Odds at or below 1 have no positive edge
// and yield a zero recommendation, as does a negative Kelly fraction.
func Kelly(decimalOdds, winProbability, bankroll, safetyFraction float64) models.KellyResult {
	b := decimalOdds - 1
	if b <= 0 || math.IsNaN(b) {
		return models.KellyResult{}
	}

	p := winProbability
	q := 1 - p

	fullKelly := (b*p - q) / b
	applied := fullKelly * safetyFraction

	result := models.KellyResult{
		FullKelly:     fullKelly,
		ExpectedValue: p*decimalOdds - 1,
	}
	if applied > 0 {
		result.Fraction = applied
		result.Stake = math.Max(0, applied*bankroll)
	}
	return result
}

// ExpectedValue computes the EV of staking on odds given an estimated win probability (0-1).
func ExpectedValue(decimalOdds, winProbability, stake float64) models.EVResult {
	evPercent := winProbability*decimalOdds - 1

	result := models.EVResult{
		EVPercent:  evPercent,
		EVAbsolute: stake * evPercent,
		Positive:   evPercent > 0,
	}
	if decimalOdds > 0 {
		result.BreakevenProbability = BreakevenProbability(decimalOdds)
	}
	result.Edge = winProbability*100 - result.BreakevenProbability

	return result
}

// BreakevenProbability returns the implied probability of decimal odds, in percent
func BreakevenProbability(decimalOdds float64) float64 {
	if decimalOdds <= 0 {
		return 0
	}
	return 100 / decimalOdds
}
