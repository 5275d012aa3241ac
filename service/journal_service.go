package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"betledger/analytics"
	"betledger/events"
	"betledger/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const recentBetsLimit = 5

var (
	ErrBetNotFound     = errors.New("bet not found")
	ErrInvalidBet      = errors.New("invalid bet")
	ErrInvalidBankroll = errors.New("starting bankroll must be a non-negative number")
)

// journalService implements the JournalService interface
type journalService struct {
	repo           JournalRepository
	eventPublisher EventPublisher
	now            func() time.Time
	newID          func() string
}

// NewJournalService creates a new journal service
func NewJournalService(repo JournalRepository, eventPublisher EventPublisher) JournalService {
	return &journalService{
		repo:           repo,
		eventPublisher: eventPublisher,
		now:            time.Now,
		newID:          uuid.NewString,
	}
}

func (s *journalService) ListBets(ctx context.Context) ([]models.Bet, error) {
	bets, err := s.repo.ListBets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets: %w", err)
	}
	return bets, nil
}

func (s *journalService) GetBet(ctx context.Context, id string) (*models.Bet, error) {
	bets, err := s.ListBets(ctx)
	if err != nil {
		return nil, err
	}
	for i := range bets {
		if bets[i].ID == id {
			return &bets[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrBetNotFound, id)
}

// SaveBet fills defaults, validates the bet and upserts it by ID
func (s *journalService) SaveBet(ctx context.Context, bet models.Bet) (*models.Bet, error) {
	if err := s.prepare(&bet); err != nil {
		return nil, err
	}

	bets, err := s.ListBets(ctx)
	if err != nil {
		return nil, err
	}

	bets, created := upsertBet(bets, bet)
	if err := s.repo.SaveBets(ctx, bets); err != nil {
		return nil, fmt.Errorf("failed to save bet: %w", err)
	}

	log.WithFields(log.Fields{
		"betID":   bet.ID,
		"result":  bet.Result,
		"created": created,
	}).Debug("Saved bet")

	s.eventPublisher.Emit(ctx, betSavedEvent(bet, created))
	return &bet, nil
}

func (s *journalService) DeleteBet(ctx context.Context, id string) error {
	bets, err := s.ListBets(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.Bet, 0, len(bets))
	for _, b := range bets {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(bets) {
		return fmt.Errorf("%w: %s", ErrBetNotFound, id)
	}

	if err := s.repo.SaveBets(ctx, kept); err != nil {
		return fmt.Errorf("failed to delete bet: %w", err)
	}

	s.eventPublisher.Emit(ctx, events.BetDeletedEvent{BetID: id})
	return nil
}

func (s *journalService) ClearJournal(ctx context.Context) (int, error) {
	bets, err := s.ListBets(ctx)
	if err != nil {
		return 0, err
	}

	if err := s.repo.SaveBets(ctx, []models.Bet{}); err != nil {
		return 0, fmt.Errorf("failed to clear journal: %w", err)
	}

	s.eventPublisher.Emit(ctx, events.JournalClearedEvent{Removed: len(bets)})
	return len(bets), nil
}

func (s *journalService) GetStartingBankroll(ctx context.Context) (float64, error) {
	amount, err := s.repo.GetStartingBankroll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get starting bankroll: %w", err)
	}
	return amount, nil
}

// SetStartingBankroll replaces the baseline. Statistics are recomputed from it on
// the next read; no stored record is rewritten.
func (s *journalService) SetStartingBankroll(ctx context.Context, amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidBankroll, amount)
	}

	old, err := s.GetStartingBankroll(ctx)
	if err != nil {
		return err
	}

	if err := s.repo.SetStartingBankroll(ctx, amount); err != nil {
		return fmt.Errorf("failed to set starting bankroll: %w", err)
	}

	s.eventPublisher.Emit(ctx, events.BankrollChangedEvent{OldBankroll: old, NewBankroll: amount})
	return nil
}

func (s *journalService) GetStats(ctx context.Context) (*models.JournalStats, error) {
	bets, baseline, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	stats := analytics.CalculateStats(bets, baseline)
	return &stats, nil
}

func (s *journalService) GetBankrollCurve(ctx context.Context) ([]models.BankrollPoint, error) {
	bets, baseline, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.BankrollCurve(bets, baseline), nil
}

func (s *journalService) GetDashboard(ctx context.Context) (*models.Dashboard, error) {
	bets, baseline, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Dashboard{
		Stats:             analytics.CalculateStats(bets, baseline),
		RecentBets:        analytics.RecentBets(bets, recentBetsLimit),
		SportPerformance:  analytics.SportPerformance(bets),
		StakeDistribution: analytics.StakeDistribution(bets),
	}, nil
}

func (s *journalService) GetSegmentReport(ctx context.Context, dim analytics.Dimension) ([]models.SegmentStats, error) {
	bets, err := s.ListBets(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.GroupBy(bets, dim), nil
}

func (s *journalService) ExportJournal(ctx context.Context, w io.Writer) error {
	bets, err := s.ListBets(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bets); err != nil {
		return fmt.Errorf("failed to write journal export: %w", err)
	}
	return nil
}

// ImportJournal validates every incoming bet before writing anything. Events for
// the imported bets are only emitted once the journal has been saved.
func (s *journalService) ImportJournal(ctx context.Context, r io.Reader) (int, error) {
	var incoming []models.Bet
	if err := json.NewDecoder(r).Decode(&incoming); err != nil {
		return 0, fmt.Errorf("failed to read journal import: %w", err)
	}

	bets, err := s.ListBets(ctx)
	if err != nil {
		return 0, err
	}

	pending := events.NewTransactionalBus(s.eventPublisher)
	for i := range incoming {
		bet := incoming[i]
		if err := s.prepare(&bet); err != nil {
			return 0, fmt.Errorf("record %d: %w", i+1, err)
		}

		var created bool
		bets, created = upsertBet(bets, bet)
		pending.Publish(betSavedEvent(bet, created))
	}

	if err := s.repo.SaveBets(ctx, bets); err != nil {
		pending.Discard()
		return 0, fmt.Errorf("failed to save imported bets: %w", err)
	}
	pending.Flush(ctx)

	log.WithField("count", len(incoming)).Info("Imported journal")
	return len(incoming), nil
}

func (s *journalService) load(ctx context.Context) ([]models.Bet, float64, error) {
	bets, err := s.ListBets(ctx)
	if err != nil {
		return nil, 0, err
	}
	baseline, err := s.GetStartingBankroll(ctx)
	if err != nil {
		return nil, 0, err
	}
	return bets, baseline, nil
}

// prepare assigns an ID, today's date and a pending result where missing, then validates
func (s *journalService) prepare(bet *models.Bet) error {
	bet.ID = strings.TrimSpace(bet.ID)
	if bet.ID == "" {
		bet.ID = s.newID()
	}
	if bet.Date.IsZero() {
		bet.Date = models.NewBetDate(s.now())
	}
	if bet.Result == "" {
		bet.Result = models.BetResultPending
	}

	switch {
	case !bet.Result.Valid():
		return fmt.Errorf("%w: unknown result %q", ErrInvalidBet, bet.Result)
	case math.IsNaN(bet.Odds) || math.IsInf(bet.Odds, 0) || bet.Odds <= 1:
		return fmt.Errorf("%w: odds must be greater than 1, got %v", ErrInvalidBet, bet.Odds)
	case math.IsNaN(bet.Stake) || math.IsInf(bet.Stake, 0) || bet.Stake <= 0:
		return fmt.Errorf("%w: stake must be positive, got %v", ErrInvalidBet, bet.Stake)
	}
	return nil
}

// upsertBet returns a copy of bets with the bet of the same ID replaced, or with bet appended
func upsertBet(bets []models.Bet, bet models.Bet) ([]models.Bet, bool) {
	out := make([]models.Bet, len(bets), len(bets)+1)
	copy(out, bets)
	for i := range out {
		if out[i].ID == bet.ID {
			out[i] = bet
			return out, false
		}
	}
	return append(out, bet), true
}

func betSavedEvent(bet models.Bet, created bool) events.BetSavedEvent {
	return events.BetSavedEvent{
		BetID:   bet.ID,
		Result:  bet.Result,
		Stake:   bet.Stake,
		Odds:    bet.Odds,
		Created: created,
	}
}
