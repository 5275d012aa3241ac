package testutil

import (
	"time"

	"betledger/models"

	"github.com/google/uuid"
)

// CreateTestBet creates a settled football bet on the given day of March 2025
func CreateTestBet(day int, odds, stake float64, result models.BetResult) models.Bet {
	return models.Bet{
		ID:         uuid.NewString(),
		Date:       models.NewBetDate(time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC)),
		Sport:      "Football",
		League:     "Premier League",
		Match:      "Arsenal vs Chelsea",
		Selection:  "Arsenal",
		Odds:       odds,
		Stake:      stake,
		Result:     result,
		Bookmaker:  "Pinnacle",
		Confidence: models.ConfidenceMedium,
		MarketType: "1X2",
	}
}

// CreateTestBetWithSport creates a test bet with a specific sport
func CreateTestBetWithSport(day int, sport string, result models.BetResult) models.Bet {
	bet := CreateTestBet(day, 2.0, 100, result)
	bet.Sport = sport
	return bet
}

// CreateTestJournal creates a small journal covering every settlement outcome
func CreateTestJournal() []models.Bet {
	return []models.Bet{
		CreateTestBet(1, 2.0, 100, models.BetResultWin),
		CreateTestBet(2, 1.8, 200, models.BetResultLoss),
		CreateTestBet(3, 2.4, 100, models.BetResultHalfWin),
		CreateTestBet(4, 1.9, 100, models.BetResultHalfLoss),
		CreateTestBet(5, 3.0, 50, models.BetResultPush),
		CreateTestBet(6, 2.2, 150, models.BetResultPending),
	}
}

// CreateTestCycleHistoryItem creates a failed ladder history entry
func CreateTestCycleHistoryItem(id string) models.CycleHistoryItem {
	return models.CycleHistoryItem{
		ID:             id,
		Date:           "2025-03-01",
		StartCapital:   100,
		EndBankroll:    0,
		Profit:         -100,
		Status:         models.CycleStatusFailed,
		StepsCompleted: 1,
		TotalSteps:     3,
	}
}
