package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"betledger/analytics"
	"betledger/config"
	"betledger/database"
	"betledger/events"
	"betledger/infrastructure"
	"betledger/models"
	"betledger/repository"
	"betledger/service"

	log "github.com/sirupsen/logrus"
)

// App holds the wired services behind the command line
type App struct {
	cfg *config.Config
	out io.Writer

	journal    service.JournalService
	cycle      service.CycleService
	allocation service.AllocationService
	simulation service.SimulationService
	prediction service.PredictionService
	backup     service.BackupService
}

type command struct {
	usage string
	run   func(ctx context.Context, app *App, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"stats":      {"stats", runStats},
		"dashboard":  {"dashboard", runDashboard},
		"curve":      {"curve", runCurve},
		"segments":   {"segments <sport|league|bookmaker|confidence|marketType|emotionalState|oddsRange>", runSegments},
		"bet":        {"bet add|edit|delete|list|clear|export|import", runBet},
		"bankroll":   {"bankroll [amount]", runBankroll},
		"kelly":      {"kelly -odds 2.1 -prob 55 -bankroll 1000 -fraction 0.5", runKelly},
		"ev":         {"ev -odds 2.1 -prob 55 -stake 100", runEV},
		"simulate":   {"simulate [-bankroll N -win-rate P ...]", runSimulate},
		"cycle":      {"cycle show|configure|start|win|loss|reset|clear-history", runCycle},
		"allocation": {"allocation show|assets|policy|settings|schedule", runAllocation},
		"predict":    {"predict -home A -away B [-odds-dc 1.5 -odds-o05 1.1 -odds-o15 1.5]", runPredict},
		"backup":     {"backup export|restore <file>", runBackup},
	}
}

// Run wires the application from configuration and executes one command
func Run(ctx context.Context, args []string) error {
	cfg := config.Get()
	configureLogging(cfg)

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	app := NewApp(cfg, store, os.Stdout)
	return app.Execute(ctx, args)
}

// NewApp builds every service on top of a document store
func NewApp(cfg *config.Config, store repository.DocumentStore, out io.Writer) *App {
	eventBus := events.NewBus()

	journalRepo := repository.NewJournalRepository(store, cfg.DefaultBankroll)
	cycleRepo := repository.NewCycleRepository(store, func() models.CycleState {
		return analytics.NewCycleState(cfg.Cycle.Capital, cfg.Cycle.Steps, cfg.Cycle.Odds)
	})
	allocationRepo := repository.NewAllocationRepository(store, time.Now)
	backupRepo := repository.NewBackupRepository(store)

	journalService := service.NewJournalService(journalRepo, eventBus)
	service.RegisterSubscriptions(eventBus, journalService, cfg.DrawdownAlertPct)

	var predictionClient service.PredictionClient
	if cfg.Prediction.Enabled() {
		predictionClient = infrastructure.NewOpenAIPredictionClient(infrastructure.PredictionClientOptions{
			APIKey:            cfg.Prediction.APIKey,
			BaseURL:           cfg.Prediction.BaseURL,
			Model:             cfg.Prediction.Model,
			Timeout:           time.Duration(cfg.Prediction.TimeoutSeconds) * time.Second,
			RequestsPerMinute: cfg.Prediction.RequestsPerMinute,
		})
	}

	return &App{
		cfg:        cfg,
		out:        out,
		journal:    journalService,
		cycle:      service.NewCycleService(cycleRepo, eventBus),
		allocation: service.NewAllocationService(allocationRepo, journalService, eventBus),
		simulation: service.NewSimulationService(cfg.Simulation, nil),
		prediction: service.NewPredictionService(predictionClient),
		backup:     service.NewBackupService(backupRepo),
	}
}

// Execute dispatches args[0] to its command
func (a *App) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command given\n%s", usage())
	}

	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q\n%s", args[0], usage())
	}
	return cmd.run(ctx, a, args[1:])
}

func usage() string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("usage: betledger <command> [args...]\n")
	sb.WriteString("  migrate up|down [steps]|status\n")
	for _, name := range names {
		fmt.Fprintf(&sb, "  %s\n", commands[name].usage)
	}
	return sb.String()
}

func openStore(ctx context.Context, cfg *config.Config) (repository.DocumentStore, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Debug("Using in-memory document store")
		return repository.NewMemoryDocumentStore(), func() {}, nil
	}

	if err := database.RunMigrations(cfg.DatabasePath); err != nil {
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := database.NewConnection(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.WithField("path", cfg.DatabasePath).Debug("Database connection established")

	closeStore := func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Error("Error closing database")
		}
	}
	return repository.NewSQLDocumentStore(db), closeStore, nil
}

func configureLogging(cfg *config.Config) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
