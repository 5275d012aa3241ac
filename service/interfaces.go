package service

import (
	"context"
	"encoding/json"
	"io"

	"betledger/analytics"
	"betledger/events"
	"betledger/models"
)

// JournalRepository defines the interface for journal data access
type JournalRepository interface {
	// ListBets returns every stored bet; absent or unreadable data yields an empty list
	ListBets(ctx context.Context) ([]models.Bet, error)

	// SaveBets overwrites the whole bet list
	SaveBets(ctx context.Context, bets []models.Bet) error

	// GetStartingBankroll returns the stored baseline or the configured default
	GetStartingBankroll(ctx context.Context) (float64, error)

	// SetStartingBankroll overwrites the baseline
	SetStartingBankroll(ctx context.Context, amount float64) error
}

// CycleRepository defines the interface for cycle simulator persistence
type CycleRepository interface {
	Get(ctx context.Context) (models.CycleState, error)
	Save(ctx context.Context, state models.CycleState) error
}

// AllocationRepository defines the interface for allocation planner persistence
type AllocationRepository interface {
	Get(ctx context.Context) (models.AllocationState, error)
	Save(ctx context.Context, state models.AllocationState) error
}

// BackupRepository reads and writes every application document at once
type BackupRepository interface {
	Snapshot(ctx context.Context) (map[string]json.RawMessage, error)
	Restore(ctx context.Context, docs map[string]json.RawMessage) error
}

// PredictionClient calls the external match prediction service
type PredictionClient interface {
	Predict(ctx context.Context, match models.MatchContext) (*models.PredictionResult, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Emit(ctx context.Context, event events.Event)
}

// JournalService defines the interface for bet journal operations
type JournalService interface {
	// ListBets returns every bet in stored order
	ListBets(ctx context.Context) ([]models.Bet, error)

	// GetBet returns a single bet or ErrBetNotFound
	GetBet(ctx context.Context, id string) (*models.Bet, error)

	// SaveBet creates a bet, or replaces the bet with the same ID
	SaveBet(ctx context.Context, bet models.Bet) (*models.Bet, error)

	// DeleteBet removes a bet by ID
	DeleteBet(ctx context.Context, id string) error

	// ClearJournal removes every bet and returns how many were removed
	ClearJournal(ctx context.Context) (int, error)

	GetStartingBankroll(ctx context.Context) (float64, error)
	SetStartingBankroll(ctx context.Context, amount float64) error

	// GetStats computes journal statistics against the current baseline
	GetStats(ctx context.Context) (*models.JournalStats, error)

	// GetBankrollCurve returns the chronological bankroll curve
	GetBankrollCurve(ctx context.Context) ([]models.BankrollPoint, error)

	// GetDashboard combines stats, recent bets, sport performance and stake distribution
	GetDashboard(ctx context.Context) (*models.Dashboard, error)

	// GetSegmentReport groups settled bets along a dimension
	GetSegmentReport(ctx context.Context, dim analytics.Dimension) ([]models.SegmentStats, error)

	// ExportJournal writes the bet list as JSON
	ExportJournal(ctx context.Context, w io.Writer) error

	// ImportJournal upserts every bet of a JSON bet list and returns how many were imported
	ImportJournal(ctx context.Context, r io.Reader) (int, error)
}

// CycleService defines the interface for the ladder simulator
type CycleService interface {
	GetState(ctx context.Context) (*models.CycleState, error)
	Configure(ctx context.Context, capital float64, steps int, odds float64) (*models.CycleState, error)
	Start(ctx context.Context) (*models.CycleState, error)
	RecordResult(ctx context.Context, result models.StepResult) (*models.CycleState, error)
	Reset(ctx context.Context) (*models.CycleState, error)
	ClearHistory(ctx context.Context) (*models.CycleState, error)
	Summary(ctx context.Context) (*models.CycleSummary, error)
}

// AllocationService defines the interface for the capital allocation planner
type AllocationService interface {
	GetState(ctx context.Context) (*models.AllocationState, error)
	UpdateAssets(ctx context.Context, assets models.AssetConfig) (*models.AllocationState, error)
	UpdatePolicy(ctx context.Context, policy models.AllocationPolicy) (*models.AllocationState, error)
	UpdateSettings(ctx context.Context, settings models.AllocationSettings) (*models.AllocationState, error)
	SetScheduleEntry(ctx context.Context, year, month int, amount float64) (*models.AllocationState, error)
	YearSchedule(ctx context.Context, year int) ([]float64, error)

	// GetSummary derives the planner figures using the live journal bankroll and profit
	GetSummary(ctx context.Context) (*models.AllocationSummary, error)
}

// SimulationService defines the interface for Monte Carlo projections
type SimulationService interface {
	DefaultParams() models.SimulationParams
	Run(ctx context.Context, params models.SimulationParams) (*models.SimulationResult, error)
}

// PredictionService defines the interface for match analysis
type PredictionService interface {
	// Analyze never fails; the fallback estimate replaces any unusable response
	Analyze(ctx context.Context, match models.MatchContext) *models.PredictionResult

	// EvaluateMarkets prices the double chance and goal markets against offered odds
	EvaluateMarkets(prediction *models.PredictionResult, odds models.MarketOdds, bankroll, kellyFraction float64) []models.MarketEvaluation
}

// BackupService defines the interface for whole-store backups
type BackupService interface {
	Export(ctx context.Context, w io.Writer) error
	Restore(ctx context.Context, r io.Reader) (int, error)
}
