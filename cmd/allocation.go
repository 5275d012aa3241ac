package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"time"

	"betledger/models"
)

type allocationOutput struct {
	State   *models.AllocationState   `json:"state"`
	Summary *models.AllocationSummary `json:"summary"`
}

func runAllocation(ctx context.Context, app *App, args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}

	state, err := app.allocation.GetState(ctx)
	if err != nil {
		return err
	}

	switch args[0] {
	case "show":
	case "assets":
		assets := state.Assets
		fs := flag.NewFlagSet("allocation assets", flag.ContinueOnError)
		fs.Float64Var(&assets.Crypto, "crypto", assets.Crypto, "crypto holdings, USD")
		fs.Float64Var(&assets.RealEstate, "real-estate", assets.RealEstate, "real estate, USD")
		fs.Float64Var(&assets.Cash, "cash", assets.Cash, "cash, USD")
		fs.Float64Var(&assets.Other, "other", assets.Other, "other assets, USD")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		_, err = app.allocation.UpdateAssets(ctx, assets)
	case "policy":
		policy := state.Policy
		fs := flag.NewFlagSet("allocation policy", flag.ContinueOnError)
		fs.Float64Var(&policy.BettingSplit, "betting", policy.BettingSplit, "percent of profit kept in the bankroll")
		fs.Float64Var(&policy.CryptoSplit, "crypto", policy.CryptoSplit, "percent of profit moved to crypto")
		fs.Float64Var(&policy.CashSplit, "cash", policy.CashSplit, "percent of profit moved to cash")
		fs.Float64Var(&policy.EmergencySplit, "emergency", policy.EmergencySplit, "percent of profit moved to the emergency fund")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		_, err = app.allocation.UpdatePolicy(ctx, policy)
	case "settings":
		settings := state.Settings
		fs := flag.NewFlagSet("allocation settings", flag.ContinueOnError)
		fs.Float64Var(&settings.TargetGoal, "goal", settings.TargetGoal, "net worth goal, USD")
		fs.Float64Var(&settings.StartNetWorth, "start", settings.StartNetWorth, "net worth at the start of the month, USD")
		fs.Float64Var(&settings.ExchangeRate, "rate", settings.ExchangeRate, "local currency per USD")
		fs.BoolVar(&settings.AutoReinvest, "auto-reinvest", settings.AutoReinvest, "reinvest profit automatically")
		fs.Float64Var(&settings.ReinvestThreshold, "threshold", settings.ReinvestThreshold, "reinvest threshold, USD")
		fs.StringVar(&settings.Frequency, "frequency", settings.Frequency, "distribution frequency")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		_, err = app.allocation.UpdateSettings(ctx, settings)
	case "schedule":
		return allocationSchedule(ctx, app, args[1:])
	default:
		return fmt.Errorf("unknown allocation command %q", args[0])
	}
	if err != nil {
		return err
	}

	return printAllocation(ctx, app)
}

// allocationSchedule prints a year's schedule, or sets one month when -month is given
func allocationSchedule(ctx context.Context, app *App, args []string) error {
	fs := flag.NewFlagSet("allocation schedule", flag.ContinueOnError)
	year := fs.Int("year", time.Now().Year(), "year")
	month := fs.Int("month", 0, "month, 1-12")
	amount := fs.Float64("amount", 0, "amount distributed that month, USD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if flagSet(fs, "month") {
		if _, err := app.allocation.SetScheduleEntry(ctx, *year, *month-1, *amount); err != nil {
			return err
		}
	}

	schedule, err := app.allocation.YearSchedule(ctx, *year)
	if err != nil {
		return err
	}
	return app.printJSON(map[string][]float64{strconv.Itoa(*year): schedule})
}

func printAllocation(ctx context.Context, app *App) error {
	state, err := app.allocation.GetState(ctx)
	if err != nil {
		return err
	}
	summary, err := app.allocation.GetSummary(ctx)
	if err != nil {
		return err
	}
	return app.printJSON(allocationOutput{State: state, Summary: summary})
}
