package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// BetResult represents the settlement outcome of a bet
type BetResult string

const (
	BetResultWin      BetResult = "WIN"
	BetResultLoss     BetResult = "LOSS"
	BetResultPush     BetResult = "PUSH"
	BetResultPending  BetResult = "PENDING"
	BetResultHalfWin  BetResult = "HALF_WIN"
	BetResultHalfLoss BetResult = "HALF_LOSS"
)

// IsSettled reports whether the result counts towards statistics
func (r BetResult) IsSettled() bool {
	return r != BetResultPending
}

// Valid reports whether r is one of the known outcomes
func (r BetResult) Valid() bool {
	switch r {
	case BetResultWin, BetResultLoss, BetResultPush, BetResultPending, BetResultHalfWin, BetResultHalfLoss:
		return true
	}
	return false
}

// ParseBetResult parses a result name case-insensitively ("win", "half-win", "HALF_WIN")
func ParseBetResult(s string) (BetResult, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	if normalized == "VOID" {
		normalized = string(BetResultPush)
	}
	r := BetResult(normalized)
	if !r.Valid() {
		return "", fmt.Errorf("unknown bet result %q", s)
	}
	return r, nil
}

// ConfidenceLevel is the bettor's own confidence tier
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "High"
	ConfidenceMedium ConfidenceLevel = "Medium"
	ConfidenceLow    ConfidenceLevel = "Low"
)

// Bet represents a journal entry. JSON names match the browser export format.
type Bet struct {
	ID             string          `json:"id"`
	Date           BetDate         `json:"date"`
	Sport          string          `json:"sport"`
	League         string          `json:"league"`
	Match          string          `json:"match"`
	Selection      string          `json:"selection"`
	Odds           float64         `json:"odds"`
	Stake          float64         `json:"stake"`
	Result         BetResult       `json:"result"`
	Bookmaker      string          `json:"bookmaker"`
	Confidence     ConfidenceLevel `json:"confidence"`
	MarketType     string          `json:"marketType,omitempty"`
	EmotionalState string          `json:"emotionalState,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	ClosingLine    *float64        `json:"closingLine,omitempty"`
	ExpectedValue  *float64        `json:"expectedValue,omitempty"`
}

const betDateLayout = "2006-01-02"

// BetDate is a calendar date serialized as "2006-01-02"
type BetDate struct {
	time.Time
}

// NewBetDate truncates t to its calendar date in UTC
func NewBetDate(t time.Time) BetDate {
	y, m, d := t.Date()
	return BetDate{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseBetDate accepts "2006-01-02" or an RFC 3339 timestamp
func ParseBetDate(s string) (BetDate, error) {
	if t, err := time.Parse(betDateLayout, s); err == nil {
		return BetDate{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return BetDate{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return NewBetDate(t), nil
}

func (d BetDate) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(betDateLayout)
}

func (d BetDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *BetDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = BetDate{}
		return nil
	}
	parsed, err := ParseBetDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
