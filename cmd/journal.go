package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"betledger/analytics"
	"betledger/models"
)

func runStats(ctx context.Context, app *App, args []string) error {
	stats, err := app.journal.GetStats(ctx)
	if err != nil {
		return err
	}
	return app.printJSON(stats)
}

func runDashboard(ctx context.Context, app *App, args []string) error {
	dashboard, err := app.journal.GetDashboard(ctx)
	if err != nil {
		return err
	}
	return app.printJSON(dashboard)
}

func runCurve(ctx context.Context, app *App, args []string) error {
	curve, err := app.journal.GetBankrollCurve(ctx)
	if err != nil {
		return err
	}
	return app.printJSON(curve)
}

func runSegments(ctx context.Context, app *App, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: segments <dimension>")
	}
	dim, err := analytics.ParseDimension(args[0])
	if err != nil {
		return err
	}

	report, err := app.journal.GetSegmentReport(ctx, dim)
	if err != nil {
		return err
	}
	return app.printJSON(report)
}

func runBankroll(ctx context.Context, app *App, args []string) error {
	if len(args) == 0 {
		amount, err := app.journal.GetStartingBankroll(ctx)
		if err != nil {
			return err
		}
		return app.printJSON(map[string]float64{"startingBankroll": amount})
	}

	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid bankroll %q: %w", args[0], err)
	}
	if err := app.journal.SetStartingBankroll(ctx, amount); err != nil {
		return err
	}
	return app.printJSON(map[string]float64{"startingBankroll": amount})
}

func runBet(ctx context.Context, app *App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: %s", commands["bet"].usage)
	}

	switch args[0] {
	case "add":
		return betAdd(ctx, app, args[1:])
	case "edit":
		return betEdit(ctx, app, args[1:])
	case "delete":
		if len(args) != 2 {
			return fmt.Errorf("usage: bet delete <id>")
		}
		if err := app.journal.DeleteBet(ctx, args[1]); err != nil {
			return err
		}
		return app.printJSON(map[string]string{"deleted": args[1]})
	case "list":
		bets, err := app.journal.ListBets(ctx)
		if err != nil {
			return err
		}
		return app.printJSON(analytics.RecentBets(bets, -1))
	case "clear":
		fs := flag.NewFlagSet("bet clear", flag.ContinueOnError)
		confirm := fs.Bool("yes", false, "confirm removal of every bet")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if !*confirm {
			return fmt.Errorf("refusing to clear the journal without -yes")
		}
		removed, err := app.journal.ClearJournal(ctx)
		if err != nil {
			return err
		}
		return app.printJSON(map[string]int{"removed": removed})
	case "export":
		return withOutputFile(args[1:], app.out, func(w io.Writer) error {
			return app.journal.ExportJournal(ctx, w)
		})
	case "import":
		if len(args) != 2 {
			return fmt.Errorf("usage: bet import <file>")
		}
		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("failed to open import file: %w", err)
		}
		defer f.Close()

		count, err := app.journal.ImportJournal(ctx, f)
		if err != nil {
			return err
		}
		return app.printJSON(map[string]int{"imported": count})
	default:
		return fmt.Errorf("unknown bet command %q", args[0])
	}
}

// betFlags binds every editable bet field to a flag set
type betFlags struct {
	fs *flag.FlagSet

	id, date, sport, league, match, selection string

	result, bookmaker, confidence, market, emotion, notes string

	odds, stake, closing, ev float64
}

func newBetFlags(name string) *betFlags {
	b := &betFlags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	b.fs.StringVar(&b.id, "id", "", "bet ID")
	b.fs.StringVar(&b.date, "date", "", "bet date, YYYY-MM-DD (default today)")
	b.fs.StringVar(&b.sport, "sport", "", "sport")
	b.fs.StringVar(&b.league, "league", "", "league")
	b.fs.StringVar(&b.match, "match", "", "match, e.g. \"Arsenal vs Chelsea\"")
	b.fs.StringVar(&b.selection, "selection", "", "selection")
	b.fs.StringVar(&b.result, "result", "", "WIN, LOSS, PUSH, PENDING, HALF_WIN or HALF_LOSS")
	b.fs.StringVar(&b.bookmaker, "bookmaker", "", "bookmaker")
	b.fs.StringVar(&b.confidence, "confidence", string(models.ConfidenceMedium), "High, Medium or Low")
	b.fs.StringVar(&b.market, "market", "", "market type")
	b.fs.StringVar(&b.emotion, "emotion", "", "emotional state")
	b.fs.StringVar(&b.notes, "notes", "", "notes")
	b.fs.Float64Var(&b.odds, "odds", 0, "decimal odds")
	b.fs.Float64Var(&b.stake, "stake", 0, "stake")
	b.fs.Float64Var(&b.closing, "closing", 0, "closing line odds")
	b.fs.Float64Var(&b.ev, "ev", 0, "expected value estimate")
	return b
}

// apply copies every flag that was set on the command line onto bet
func (b *betFlags) apply(bet *models.Bet) error {
	var err error
	b.fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "id":
			bet.ID = b.id
		case "date":
			bet.Date, err = models.ParseBetDate(b.date)
		case "sport":
			bet.Sport = b.sport
		case "league":
			bet.League = b.league
		case "match":
			bet.Match = b.match
		case "selection":
			bet.Selection = b.selection
		case "result":
			bet.Result, err = models.ParseBetResult(b.result)
		case "bookmaker":
			bet.Bookmaker = b.bookmaker
		case "confidence":
			bet.Confidence = models.ConfidenceLevel(strings.TrimSpace(b.confidence))
		case "market":
			bet.MarketType = b.market
		case "emotion":
			bet.EmotionalState = b.emotion
		case "notes":
			bet.Notes = b.notes
		case "odds":
			bet.Odds = b.odds
		case "stake":
			bet.Stake = b.stake
		case "closing":
			v := b.closing
			bet.ClosingLine = &v
		case "ev":
			v := b.ev
			bet.ExpectedValue = &v
		}
	})
	return err
}

func betAdd(ctx context.Context, app *App, args []string) error {
	flags := newBetFlags("bet add")
	if err := flags.fs.Parse(args); err != nil {
		return err
	}

	bet := models.Bet{Confidence: models.ConfidenceLevel(flags.confidence)}
	if err := flags.apply(&bet); err != nil {
		return err
	}

	saved, err := app.journal.SaveBet(ctx, bet)
	if err != nil {
		return err
	}
	return app.printJSON(saved)
}

func betEdit(ctx context.Context, app *App, args []string) error {
	flags := newBetFlags("bet edit")
	if err := flags.fs.Parse(args); err != nil {
		return err
	}
	if flags.id == "" {
		return fmt.Errorf("bet edit requires -id")
	}

	bet, err := app.journal.GetBet(ctx, flags.id)
	if err != nil {
		return err
	}
	if err := flags.apply(bet); err != nil {
		return err
	}

	saved, err := app.journal.SaveBet(ctx, *bet)
	if err != nil {
		return err
	}
	return app.printJSON(saved)
}

// withOutputFile writes to the file named by the first argument, or to fallback
func withOutputFile(args []string, fallback io.Writer, fn func(io.Writer) error) error {
	if len(args) == 0 {
		return fn(fallback)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", args[0], err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
