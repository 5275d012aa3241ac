package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"betledger/models"

	log "github.com/sirupsen/logrus"
)

// CycleRepository stores the ladder simulator document
type CycleRepository struct {
	store    DocumentStore
	defaults func() models.CycleState
}

// NewCycleRepository creates a cycle repository. defaults builds the idle state
// returned while nothing usable is stored.
func NewCycleRepository(store DocumentStore, defaults func() models.CycleState) *CycleRepository {
	return &CycleRepository{store: store, defaults: defaults}
}

// Get returns the stored cycle state, or a fresh default on absent or corrupt data
func (r *CycleRepository) Get(ctx context.Context) (models.CycleState, error) {
	doc, err := r.store.Get(ctx, KeyCycle)
	if errors.Is(err, ErrDocumentNotFound) {
		return r.defaults(), nil
	}
	if err != nil {
		return models.CycleState{}, fmt.Errorf("failed to load cycle state: %w", err)
	}

	state := r.defaults()
	if err := json.Unmarshal(doc, &state); err != nil || !validCycleState(state) {
		log.WithFields(log.Fields{
			"key":   KeyCycle,
			"error": err,
		}).Warn("Stored cycle state is unreadable, starting a fresh cycle")
		return r.defaults(), nil
	}
	if state.History == nil {
		state.History = []models.CycleHistoryItem{}
	}
	return state, nil
}

// Save overwrites the cycle document
func (r *CycleRepository) Save(ctx context.Context, state models.CycleState) error {
	doc, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode cycle state: %w", err)
	}
	if err := r.store.Put(ctx, KeyCycle, doc); err != nil {
		return fmt.Errorf("failed to save cycle state: %w", err)
	}
	return nil
}

func validCycleState(s models.CycleState) bool {
	switch s.CycleStatus {
	case models.CycleStatusIdle, models.CycleStatusActive, models.CycleStatusCompleted, models.CycleStatusFailed:
	default:
		return false
	}
	if s.Steps < 1 || len(s.Ladder) != s.Steps {
		return false
	}
	return s.CurrentStep >= 1 && s.CurrentStep <= s.Steps
}
