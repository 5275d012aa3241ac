package service

import (
	"context"
	"fmt"
	"math"

	"betledger/analytics"
	"betledger/models"

	log "github.com/sirupsen/logrus"
)

// predictionService implements the PredictionService interface
type predictionService struct {
	client PredictionClient
}

// NewPredictionService creates a prediction service. A nil client always yields the fallback estimate.
func NewPredictionService(client PredictionClient) PredictionService {
	return &predictionService{client: client}
}

func (s *predictionService) Analyze(ctx context.Context, match models.MatchContext) *models.PredictionResult {
	logger := log.WithFields(log.Fields{
		"home":   match.HomeTeam,
		"away":   match.AwayTeam,
		"minute": match.CurrentMinute,
	})

	if s.client == nil {
		logger.Warn("No prediction client configured, using fallback estimate")
		return models.FallbackPrediction()
	}

	result, err := s.client.Predict(ctx, match)
	if err == nil {
		err = validatePrediction(result)
	}
	if err != nil {
		logger.WithError(err).Warn("Prediction failed, using fallback estimate")
		return models.FallbackPrediction()
	}

	logger.WithField("confidence", result.Confidence).Info("Match analyzed")
	return result
}

// EvaluateMarkets prices the stronger double chance side, over 0.5 and over 1.5.
// A Kelly stake is only attached to markets with positive expected value.
func (s *predictionService) EvaluateMarkets(prediction *models.PredictionResult, odds models.MarketOdds, bankroll, kellyFraction float64) []models.MarketEvaluation {
	if prediction == nil {
		return nil
	}

	doubleChance := evaluateMarket("Double Chance (X2)", "Away/Draw", prediction.DoubleChanceX2, odds.DoubleChance, bankroll, kellyFraction)
	if prediction.DoubleChance1X > prediction.DoubleChanceX2 {
		doubleChance = evaluateMarket("Double Chance (1X)", "Home/Draw", prediction.DoubleChance1X, odds.DoubleChance, bankroll, kellyFraction)
	}

	return []models.MarketEvaluation{
		doubleChance,
		evaluateMarket("Over 0.5 Goals", "", prediction.Over05, odds.Over05, bankroll, kellyFraction),
		evaluateMarket("Over 1.5 Goals", "", prediction.Over15, odds.Over15, bankroll, kellyFraction),
	}
}

func evaluateMarket(market, sublabel string, probability, odds, bankroll, kellyFraction float64) models.MarketEvaluation {
	ev := analytics.ExpectedValue(odds, probability, 1)
	eval := models.MarketEvaluation{
		Market:             market,
		Sublabel:           sublabel,
		Probability:        probability,
		Odds:               odds,
		ImpliedProbability: ev.BreakevenProbability / 100,
		EV:                 ev.EVPercent,
		IsValue:            ev.Positive,
	}
	if eval.IsValue {
		eval.Kelly = analytics.Kelly(odds, probability, bankroll, kellyFraction)
	}
	return eval
}

func validatePrediction(p *models.PredictionResult) error {
	if p == nil {
		return fmt.Errorf("empty prediction")
	}

	probabilities := map[string]float64{
		"homeWin":        p.HomeWin,
		"draw":           p.Draw,
		"awayWin":        p.AwayWin,
		"doubleChance1X": p.DoubleChance1X,
		"doubleChanceX2": p.DoubleChanceX2,
		"over05":         p.Over05,
		"over15":         p.Over15,
	}
	for name, v := range probabilities {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%s probability %v outside [0, 1]", name, v)
		}
	}
	if math.IsNaN(p.Confidence) || p.Confidence < 0 || p.Confidence > 100 {
		return fmt.Errorf("confidence %v outside [0, 100]", p.Confidence)
	}
	return nil
}
