package service

import (
	"context"
	"fmt"

	"betledger/analytics"
	"betledger/events"
	"betledger/models"
)

// allocationService implements the AllocationService interface
type allocationService struct {
	repo           AllocationRepository
	journal        JournalService
	eventPublisher EventPublisher
}

// NewAllocationService creates a new allocation service. The journal supplies
// the live betting bankroll and profit.
func NewAllocationService(repo AllocationRepository, journal JournalService, eventPublisher EventPublisher) AllocationService {
	return &allocationService{
		repo:           repo,
		journal:        journal,
		eventPublisher: eventPublisher,
	}
}

func (s *allocationService) GetState(ctx context.Context) (*models.AllocationState, error) {
	state, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get allocation state: %w", err)
	}
	return &state, nil
}

func (s *allocationService) UpdateAssets(ctx context.Context, assets models.AssetConfig) (*models.AllocationState, error) {
	return s.update(ctx, "assets", func(state *models.AllocationState) error {
		state.Assets = assets
		return nil
	})
}

// UpdatePolicy stores the split. A policy that does not total 100 is kept and
// reported as unbalanced by GetSummary.
func (s *allocationService) UpdatePolicy(ctx context.Context, policy models.AllocationPolicy) (*models.AllocationState, error) {
	return s.update(ctx, "policy", func(state *models.AllocationState) error {
		state.Policy = policy
		return nil
	})
}

func (s *allocationService) UpdateSettings(ctx context.Context, settings models.AllocationSettings) (*models.AllocationState, error) {
	return s.update(ctx, "settings", func(state *models.AllocationState) error {
		state.Settings = settings
		return nil
	})
}

func (s *allocationService) SetScheduleEntry(ctx context.Context, year, month int, amount float64) (*models.AllocationState, error) {
	return s.update(ctx, "schedule", func(state *models.AllocationState) error {
		next, err := analytics.SetScheduleEntry(*state, year, month, amount)
		if err != nil {
			return err
		}
		*state = next
		return nil
	})
}

func (s *allocationService) YearSchedule(ctx context.Context, year int) ([]float64, error) {
	state, err := s.GetState(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.YearSchedule(*state, year), nil
}

func (s *allocationService) GetSummary(ctx context.Context) (*models.AllocationSummary, error) {
	state, err := s.GetState(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.journal.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal stats: %w", err)
	}

	summary := analytics.SummarizeAllocation(*state, stats.CurrentBankroll, stats.Profit)
	return &summary, nil
}

func (s *allocationService) update(ctx context.Context, section string, fn func(*models.AllocationState) error) (*models.AllocationState, error) {
	state, err := s.GetState(ctx)
	if err != nil {
		return nil, err
	}

	if err := fn(state); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, *state); err != nil {
		return nil, fmt.Errorf("failed to save allocation %s: %w", section, err)
	}

	s.eventPublisher.Emit(ctx, events.AllocationUpdatedEvent{Section: section})
	return state, nil
}
