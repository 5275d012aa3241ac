package service

import (
	"context"
	"encoding/json"

	"betledger/events"
	"betledger/models"

	"github.com/stretchr/testify/mock"
)

// MockJournalRepository is a mock implementation of JournalRepository
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) ListBets(ctx context.Context) ([]models.Bet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bet), args.Error(1)
}

func (m *MockJournalRepository) SaveBets(ctx context.Context, bets []models.Bet) error {
	args := m.Called(ctx, bets)
	return args.Error(0)
}

func (m *MockJournalRepository) GetStartingBankroll(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockJournalRepository) SetStartingBankroll(ctx context.Context, amount float64) error {
	args := m.Called(ctx, amount)
	return args.Error(0)
}

// MockCycleRepository is a mock implementation of CycleRepository
type MockCycleRepository struct {
	mock.Mock
}

func (m *MockCycleRepository) Get(ctx context.Context) (models.CycleState, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.CycleState), args.Error(1)
}

func (m *MockCycleRepository) Save(ctx context.Context, state models.CycleState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

// MockAllocationRepository is a mock implementation of AllocationRepository
type MockAllocationRepository struct {
	mock.Mock
}

func (m *MockAllocationRepository) Get(ctx context.Context) (models.AllocationState, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.AllocationState), args.Error(1)
}

func (m *MockAllocationRepository) Save(ctx context.Context, state models.AllocationState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

// MockBackupRepository is a mock implementation of BackupRepository
type MockBackupRepository struct {
	mock.Mock
}

func (m *MockBackupRepository) Snapshot(ctx context.Context) (map[string]json.RawMessage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]json.RawMessage), args.Error(1)
}

func (m *MockBackupRepository) Restore(ctx context.Context, docs map[string]json.RawMessage) error {
	args := m.Called(ctx, docs)
	return args.Error(0)
}

// MockPredictionClient is a mock implementation of PredictionClient
type MockPredictionClient struct {
	mock.Mock
}

func (m *MockPredictionClient) Predict(ctx context.Context, match models.MatchContext) (*models.PredictionResult, error) {
	args := m.Called(ctx, match)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PredictionResult), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Emit(ctx context.Context, event events.Event) {
	m.Called(ctx, event)
}

// MockJournalService is a mock implementation of the stats part of JournalService
type MockJournalService struct {
	mock.Mock
	JournalService
}

func (m *MockJournalService) GetStats(ctx context.Context) (*models.JournalStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JournalStats), args.Error(1)
}
