package service

import (
	"context"
	"fmt"
	"time"

	"betledger/analytics"
	"betledger/events"
	"betledger/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// cycleService implements the CycleService interface
type cycleService struct {
	repo           CycleRepository
	eventPublisher EventPublisher
	clock          models.CycleClock
}

// NewCycleService creates a new cycle service
func NewCycleService(repo CycleRepository, eventPublisher EventPublisher) CycleService {
	return &cycleService{
		repo:           repo,
		eventPublisher: eventPublisher,
		clock: models.CycleClock{
			Now:   time.Now,
			NewID: uuid.NewString,
		},
	}
}

func (s *cycleService) GetState(ctx context.Context) (*models.CycleState, error) {
	state, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get cycle state: %w", err)
	}
	return &state, nil
}

func (s *cycleService) Configure(ctx context.Context, capital float64, steps int, odds float64) (*models.CycleState, error) {
	return s.transition(ctx, "configure", func(state models.CycleState) (models.CycleState, error) {
		return analytics.Configure(state, capital, steps, odds)
	})
}

func (s *cycleService) Start(ctx context.Context) (*models.CycleState, error) {
	return s.transition(ctx, "start", analytics.Start)
}

// RecordResult settles the current step; finishing the ladder logs a history entry
func (s *cycleService) RecordResult(ctx context.Context, result models.StepResult) (*models.CycleState, error) {
	return s.transition(ctx, "result", func(state models.CycleState) (models.CycleState, error) {
		return analytics.RecordResult(state, result, s.clock)
	})
}

func (s *cycleService) Reset(ctx context.Context) (*models.CycleState, error) {
	return s.transition(ctx, "reset", func(state models.CycleState) (models.CycleState, error) {
		return analytics.Reset(state), nil
	})
}

func (s *cycleService) ClearHistory(ctx context.Context) (*models.CycleState, error) {
	return s.transition(ctx, "clear_history", func(state models.CycleState) (models.CycleState, error) {
		return analytics.ClearHistory(state), nil
	})
}

func (s *cycleService) Summary(ctx context.Context) (*models.CycleSummary, error) {
	state, err := s.GetState(ctx)
	if err != nil {
		return nil, err
	}
	summary := analytics.Summary(*state)
	return &summary, nil
}

// transition loads the state, applies fn, persists the result and emits the matching events
func (s *cycleService) transition(ctx context.Context, action string, fn func(models.CycleState) (models.CycleState, error)) (*models.CycleState, error) {
	state, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get cycle state: %w", err)
	}

	next, err := fn(state)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save cycle state: %w", err)
	}

	log.WithFields(log.Fields{
		"action":      action,
		"oldStatus":   state.CycleStatus,
		"newStatus":   next.CycleStatus,
		"currentStep": next.CurrentStep,
		"bankroll":    next.CycleBankroll,
	}).Debug("Cycle transition")

	if next.CycleStatus != state.CycleStatus {
		s.eventPublisher.Emit(ctx, events.CycleStateChangeEvent{
			OldStatus:   state.CycleStatus,
			NewStatus:   next.CycleStatus,
			CurrentStep: next.CurrentStep,
			Bankroll:    next.CycleBankroll,
		})
	}
	if len(next.History) > len(state.History) {
		s.eventPublisher.Emit(ctx, events.CycleFinishedEvent{Entry: next.History[len(next.History)-1]})
	}

	return &next, nil
}
