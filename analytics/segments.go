package analytics

import (
	"fmt"
	"sort"
	"strings"

	"betledger/models"
)

// Dimension names a bet attribute used to group journal entries
type Dimension string

const (
	DimensionSport          Dimension = "sport"
	DimensionLeague         Dimension = "league"
	DimensionBookmaker      Dimension = "bookmaker"
	DimensionConfidence     Dimension = "confidence"
	DimensionMarketType     Dimension = "marketType"
	DimensionEmotionalState Dimension = "emotionalState"
	DimensionOddsRange      Dimension = "oddsRange"
)

// Dimensions lists every supported grouping dimension
var Dimensions = []Dimension{
	DimensionSport,
	DimensionLeague,
	DimensionBookmaker,
	DimensionConfidence,
	DimensionMarketType,
	DimensionEmotionalState,
	DimensionOddsRange,
}

const unknownSegment = "Unknown"

// ParseDimension resolves a dimension name case-insensitively
func ParseDimension(s string) (Dimension, error) {
	for _, d := range Dimensions {
		if strings.EqualFold(string(d), s) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown dimension %q", s)
}

// OddsRange returns the odds bucket label for decimal odds
func OddsRange(odds float64) string {
	switch {
	case odds < 1.5:
		return "1.01-1.49"
	case odds < 2.0:
		return "1.50-1.99"
	case odds < 2.5:
		return "2.00-2.49"
	case odds < 3.0:
		return "2.50-2.99"
	case odds < 4.0:
		return "3.00-3.99"
	default:
		return "4.00+"
	}
}

func segmentKey(bet models.Bet, dim Dimension) string {
	var key string
	switch dim {
	case DimensionSport:
		key = bet.Sport
	case DimensionLeague:
		key = bet.League
	case DimensionBookmaker:
		key = bet.Bookmaker
	case DimensionConfidence:
		key = string(bet.Confidence)
	case DimensionMarketType:
		key = bet.MarketType
	case DimensionEmotionalState:
		key = bet.EmotionalState
	case DimensionOddsRange:
		key = OddsRange(bet.Odds)
	}
	if strings.TrimSpace(key) == "" {
		return unknownSegment
	}
	return key
}

// SegmentStats summarizes the settled bets in a group. Average odds is a simple mean.
func SegmentStats(label string, bets []models.Bet) models.SegmentStats {
	seg := models.SegmentStats{Label: label}

	var oddsSum float64
	for _, bet := range bets {
		if !bet.Result.IsSettled() {
			continue
		}
		seg.Bets++
		seg.Wins += winCredit(bet.Result)
		seg.Profit += Profit(bet)
		oddsSum += bet.Odds
	}

	if seg.Bets > 0 {
		seg.WinRate = seg.Wins / float64(seg.Bets) * 100
		seg.AverageOdds = oddsSum / float64(seg.Bets)
	}
	return seg
}

// GroupBy splits settled bets along a dimension and returns one row per group,
// busiest group first. Groups with no settled bets are omitted.
func GroupBy(bets []models.Bet, dim Dimension) []models.SegmentStats {
	groups := make(map[string][]models.Bet)
	var order []string

	for _, bet := range bets {
		if !bet.Result.IsSettled() {
			continue
		}
		key := segmentKey(bet, dim)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], bet)
	}

	rows := make([]models.SegmentStats, 0, len(order))
	for _, key := range order {
		rows = append(rows, SegmentStats(key, groups[key]))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Bets > rows[j].Bets
	})
	return rows
}

// SportPerformance returns profit and ROI per sport, most profitable first
func SportPerformance(bets []models.Bet) []models.SportPerformance {
	type acc struct {
		profit, stake float64
		count         int
	}
	bySport := make(map[string]*acc)
	var order []string

	for _, bet := range bets {
		if !bet.Result.IsSettled() {
			continue
		}
		sport := segmentKey(bet, DimensionSport)
		a, ok := bySport[sport]
		if !ok {
			a = &acc{}
			bySport[sport] = a
			order = append(order, sport)
		}
		a.profit += Profit(bet)
		a.stake += bet.Stake
		a.count++
	}

	rows := make([]models.SportPerformance, 0, len(order))
	for _, sport := range order {
		a := bySport[sport]
		row := models.SportPerformance{Sport: sport, Profit: a.profit, Count: a.count}
		if a.stake > 0 {
			row.ROI = a.profit / a.stake * 100
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Profit > rows[j].Profit
	})
	return rows
}

var stakeBuckets = []models.StakeBucket{
	{Label: "<=50", Max: 50},
	{Label: "<=100", Max: 100},
	{Label: "<=250", Max: 250},
	{Label: "<=500", Max: 500},
	{Label: "<=1000", Max: 1000},
	{Label: "1k+"},
}

// StakeDistribution counts every bet, pending included, by stake size
func StakeDistribution(bets []models.Bet) []models.StakeBucket {
	buckets := make([]models.StakeBucket, len(stakeBuckets))
	copy(buckets, stakeBuckets)

	last := len(buckets) - 1
	for _, bet := range bets {
		idx := last
		for i := 0; i < last; i++ {
			if bet.Stake <= buckets[i].Max {
				idx = i
				break
			}
		}
		buckets[idx].Count++
	}
	return buckets
}

// RecentBets returns up to n bets, newest first
func RecentBets(bets []models.Bet, n int) []models.Bet {
	sorted := Chronological(bets)
	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	}
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
