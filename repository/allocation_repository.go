package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"betledger/models"

	log "github.com/sirupsen/logrus"
)

// AllocationRepository stores the capital allocation planner document
type AllocationRepository struct {
	store DocumentStore
	now   func() time.Time
}

func NewAllocationRepository(store DocumentStore, now func() time.Time) *AllocationRepository {
	if now == nil {
		now = time.Now
	}
	return &AllocationRepository{store: store, now: now}
}

// storedAllocation defers schedule decoding so the legacy array layout can be migrated
type storedAllocation struct {
	Assets          *models.AssetConfig        `json:"assets"`
	Policy          *models.AllocationPolicy   `json:"policy"`
	Settings        *models.AllocationSettings `json:"settings"`
	MonthlySchedule json.RawMessage            `json:"monthlySchedule"`
}

// Get returns the planner state. Missing sections keep their defaults and a
// bare twelve-month schedule is filed under the current year.
func (r *AllocationRepository) Get(ctx context.Context) (models.AllocationState, error) {
	doc, err := r.store.Get(ctx, KeyAllocation)
	if errors.Is(err, ErrDocumentNotFound) {
		return models.DefaultAllocationState(), nil
	}
	if err != nil {
		return models.AllocationState{}, fmt.Errorf("failed to load allocation state: %w", err)
	}

	state := models.DefaultAllocationState()
	stored := storedAllocation{
		Assets:   &state.Assets,
		Policy:   &state.Policy,
		Settings: &state.Settings,
	}
	if err := json.Unmarshal(doc, &stored); err != nil {
		log.WithFields(log.Fields{
			"key":   KeyAllocation,
			"error": err,
		}).Warn("Stored allocation state is unreadable, using defaults")
		return models.DefaultAllocationState(), nil
	}

	schedule, err := r.decodeSchedule(stored.MonthlySchedule)
	if err != nil {
		log.WithFields(log.Fields{
			"key":   KeyAllocation,
			"error": err,
		}).Warn("Stored monthly schedule is unreadable, starting empty")
		schedule = map[string][]float64{}
	}
	state.MonthlySchedule = schedule

	return state, nil
}

func (r *AllocationRepository) decodeSchedule(raw json.RawMessage) (map[string][]float64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return map[string][]float64{}, nil
	}

	var byYear map[string][]float64
	if err := json.Unmarshal(raw, &byYear); err == nil {
		return byYear, nil
	}

	var legacy []float64
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("monthly schedule is neither a year map nor a month list: %w", err)
	}

	year := strconv.Itoa(r.now().Year())
	log.WithField("year", year).Info("Migrating legacy monthly schedule")
	return map[string][]float64{year: legacy}, nil
}

// Save overwrites the planner document
func (r *AllocationRepository) Save(ctx context.Context, state models.AllocationState) error {
	if state.MonthlySchedule == nil {
		state.MonthlySchedule = map[string][]float64{}
	}
	doc, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode allocation state: %w", err)
	}
	if err := r.store.Put(ctx, KeyAllocation, doc); err != nil {
		return fmt.Errorf("failed to save allocation state: %w", err)
	}
	return nil
}
