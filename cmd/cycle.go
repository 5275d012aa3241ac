package cmd

import (
	"context"
	"flag"
	"fmt"

	"betledger/models"
)

type cycleOutput struct {
	State   *models.CycleState   `json:"state"`
	Summary *models.CycleSummary `json:"summary"`
}

func runCycle(ctx context.Context, app *App, args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}

	var err error
	switch args[0] {
	case "show":
	case "configure":
		err = cycleConfigure(ctx, app, args[1:])
	case "start":
		_, err = app.cycle.Start(ctx)
	case "win":
		_, err = app.cycle.RecordResult(ctx, models.StepResultWin)
	case "loss":
		_, err = app.cycle.RecordResult(ctx, models.StepResultLoss)
	case "reset":
		_, err = app.cycle.Reset(ctx)
	case "clear-history":
		_, err = app.cycle.ClearHistory(ctx)
	default:
		return fmt.Errorf("unknown cycle command %q", args[0])
	}
	if err != nil {
		return err
	}

	return printCycle(ctx, app)
}

func cycleConfigure(ctx context.Context, app *App, args []string) error {
	current, err := app.cycle.GetState(ctx)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("cycle configure", flag.ContinueOnError)
	capital := fs.Float64("capital", current.StartCapital, "starting capital")
	steps := fs.Int("steps", current.Steps, "number of ladder steps")
	odds := fs.Float64("odds", current.BaseOdds, "decimal odds per step")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, err = app.cycle.Configure(ctx, *capital, *steps, *odds)
	return err
}

func printCycle(ctx context.Context, app *App) error {
	state, err := app.cycle.GetState(ctx)
	if err != nil {
		return err
	}
	summary, err := app.cycle.Summary(ctx)
	if err != nil {
		return err
	}
	return app.printJSON(cycleOutput{State: state, Summary: summary})
}
