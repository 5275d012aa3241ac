package cmd

import (
	"context"
	"flag"
	"fmt"

	"betledger/analytics"
	"betledger/models"
)

func runKelly(ctx context.Context, app *App, args []string) error {
	fs := flag.NewFlagSet("kelly", flag.ContinueOnError)
	odds := fs.Float64("odds", 2.0, "decimal odds")
	prob := fs.Float64("prob", 55, "estimated win probability, percent")
	bankroll := fs.Float64("bankroll", 0, "bankroll (default current journal bankroll)")
	fraction := fs.Float64("fraction", app.cfg.KellyFraction, "safety fraction applied to full Kelly")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !flagSet(fs, "bankroll") {
		stats, err := app.journal.GetStats(ctx)
		if err != nil {
			return err
		}
		*bankroll = stats.CurrentBankroll
	}

	return app.printJSON(analytics.Kelly(*odds, *prob/100, *bankroll, *fraction))
}

func runEV(ctx context.Context, app *App, args []string) error {
	fs := flag.NewFlagSet("ev", flag.ContinueOnError)
	odds := fs.Float64("odds", 2.0, "decimal odds")
	prob := fs.Float64("prob", 55, "estimated win probability, percent")
	stake := fs.Float64("stake", 100, "stake")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return app.printJSON(analytics.ExpectedValue(*odds, *prob/100, *stake))
}

func runSimulate(ctx context.Context, app *App, args []string) error {
	params := app.simulation.DefaultParams()

	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	fs.Float64Var(&params.StartingBankroll, "bankroll", params.StartingBankroll, "starting bankroll")
	fs.Float64Var(&params.WinProbability, "win-rate", params.WinProbability, "win probability, 0-1")
	fs.Float64Var(&params.AverageOdds, "odds", params.AverageOdds, "average decimal odds")
	fs.Float64Var(&params.StakeFraction, "stake-fraction", params.StakeFraction, "fraction of the current bankroll staked per bet")
	fs.IntVar(&params.BetsPerRun, "bets", params.BetsPerRun, "bets per run")
	fs.IntVar(&params.Runs, "runs", params.Runs, "number of runs")
	fs.Float64Var(&params.RuinThreshold, "ruin", params.RuinThreshold, "bankroll at or below which a run is ruined")
	fs.IntVar(&params.SampleInterval, "sample", params.SampleInterval, "trajectory sampling interval")
	summaryOnly := fs.Bool("summary", false, "omit per-run trajectories")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := app.simulation.Run(ctx, params)
	if err != nil {
		return err
	}
	if *summaryOnly {
		result.Runs = nil
	}
	return app.printJSON(result)
}

type predictionOutput struct {
	Prediction *models.PredictionResult  `json:"prediction"`
	Markets    []models.MarketEvaluation `json:"markets,omitempty"`
}

func runPredict(ctx context.Context, app *App, args []string) error {
	var match models.MatchContext
	var odds models.MarketOdds

	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	fs.StringVar(&match.HomeTeam, "home", "", "home team")
	fs.StringVar(&match.AwayTeam, "away", "", "away team")
	fs.StringVar(&match.League, "league", "", "league")
	fs.StringVar(&match.CurrentScore, "score", "0-0", "current score")
	fs.StringVar(&match.CurrentMinute, "minute", "45", "current minute")
	fs.StringVar(&match.Context, "context", "", "free-text match context")
	fs.Float64Var(&odds.DoubleChance, "odds-dc", 0, "offered double chance odds")
	fs.Float64Var(&odds.Over05, "odds-o05", 0, "offered over 0.5 goals odds")
	fs.Float64Var(&odds.Over15, "odds-o15", 0, "offered over 1.5 goals odds")
	bankroll := fs.Float64("bankroll", 0, "bankroll for Kelly stakes (default current journal bankroll)")
	fraction := fs.Float64("fraction", app.cfg.KellyFraction, "Kelly safety fraction")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if match.HomeTeam == "" || match.AwayTeam == "" {
		return fmt.Errorf("predict requires -home and -away")
	}

	out := predictionOutput{Prediction: app.prediction.Analyze(ctx, match)}

	if odds.DoubleChance > 0 || odds.Over05 > 0 || odds.Over15 > 0 {
		if !flagSet(fs, "bankroll") {
			stats, err := app.journal.GetStats(ctx)
			if err != nil {
				return err
			}
			*bankroll = stats.CurrentBankroll
		}
		out.Markets = app.prediction.EvaluateMarkets(out.Prediction, odds, *bankroll, *fraction)
	}

	return app.printJSON(out)
}

func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
