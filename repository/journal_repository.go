package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"betledger/models"

	log "github.com/sirupsen/logrus"
)

// JournalRepository stores the bet list and the starting bankroll
type JournalRepository struct {
	store           DocumentStore
	defaultBankroll float64
}

// NewJournalRepository creates a journal repository. defaultBankroll is returned
// while no usable baseline has been stored.
func NewJournalRepository(store DocumentStore, defaultBankroll float64) *JournalRepository {
	return &JournalRepository{store: store, defaultBankroll: defaultBankroll}
}

// ListBets returns every stored bet in stored order. Absent or corrupt data yields an empty journal.
func (r *JournalRepository) ListBets(ctx context.Context) ([]models.Bet, error) {
	doc, err := r.store.Get(ctx, KeyBets)
	if errors.Is(err, ErrDocumentNotFound) {
		return []models.Bet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load bets: %w", err)
	}

	var bets []models.Bet
	if err := json.Unmarshal(doc, &bets); err != nil {
		log.WithFields(log.Fields{
			"key":   KeyBets,
			"error": err,
		}).Warn("Stored bets are unreadable, starting with an empty journal")
		return []models.Bet{}, nil
	}
	if bets == nil {
		bets = []models.Bet{}
	}
	return bets, nil
}

// SaveBets overwrites the whole bet list
func (r *JournalRepository) SaveBets(ctx context.Context, bets []models.Bet) error {
	if bets == nil {
		bets = []models.Bet{}
	}
	doc, err := json.Marshal(bets)
	if err != nil {
		return fmt.Errorf("failed to encode bets: %w", err)
	}
	if err := r.store.Put(ctx, KeyBets, doc); err != nil {
		return fmt.Errorf("failed to save bets: %w", err)
	}
	return nil
}

// GetStartingBankroll returns the stored baseline or the default
func (r *JournalRepository) GetStartingBankroll(ctx context.Context) (float64, error) {
	doc, err := r.store.Get(ctx, KeyBankroll)
	if errors.Is(err, ErrDocumentNotFound) {
		return r.defaultBankroll, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load starting bankroll: %w", err)
	}

	amount, ok := parseBankroll(doc)
	if !ok {
		log.WithFields(log.Fields{
			"key":   KeyBankroll,
			"value": string(doc),
		}).Warn("Stored bankroll is unreadable, using default")
		return r.defaultBankroll, nil
	}
	return amount, nil
}

// SetStartingBankroll overwrites the baseline
func (r *JournalRepository) SetStartingBankroll(ctx context.Context, amount float64) error {
	doc, err := json.Marshal(amount)
	if err != nil {
		return fmt.Errorf("failed to encode starting bankroll: %w", err)
	}
	if err := r.store.Put(ctx, KeyBankroll, doc); err != nil {
		return fmt.Errorf("failed to save starting bankroll: %w", err)
	}
	return nil
}

// parseBankroll accepts a JSON number or a quoted number, the latter written by older exports
func parseBankroll(doc []byte) (float64, bool) {
	var amount float64
	if err := json.Unmarshal(doc, &amount); err != nil {
		var s string
		if err := json.Unmarshal(doc, &s); err != nil {
			return 0, false
		}
		amount, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, false
	}
	return amount, true
}
