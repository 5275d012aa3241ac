package models

import "time"

// StepStatus represents the state of a single ladder step
type StepStatus string

const (
	StepStatusPending StepStatus = "PENDING"
	StepStatusWin     StepStatus = "WIN"
	StepStatusLoss    StepStatus = "LOSS"
	StepStatusSkipped StepStatus = "SKIPPED"
)

// CycleStatus represents the state of the ladder state machine
type CycleStatus string

const (
	CycleStatusIdle      CycleStatus = "IDLE"
	CycleStatusActive    CycleStatus = "ACTIVE"
	CycleStatusCompleted CycleStatus = "COMPLETED"
	CycleStatusFailed    CycleStatus = "FAILED"
)

// StepResult is the outcome reported for the current ladder step
type StepResult string

const (
	StepResultWin  StepResult = "WIN"
	StepResultLoss StepResult = "LOSS"
)

// LadderStep is one rung of a double-or-nothing ladder
type LadderStep struct {
	Step   int        `json:"step"`
	Stake  float64    `json:"stake"`
	Target float64    `json:"target"`
	Status StepStatus `json:"status"`
}

// CycleHistoryItem is the terminal record of one ladder run. Items are never modified once logged.
type CycleHistoryItem struct {
	ID             string      `json:"id"`
	Date           string      `json:"date"`
	StartCapital   float64     `json:"startCapital"`
	EndBankroll    float64     `json:"endBankroll"`
	Profit         float64     `json:"profit"`
	Status         CycleStatus `json:"status"`
	StepsCompleted int         `json:"stepsCompleted"`
	TotalSteps     int         `json:"totalSteps"`
}

// CycleState is the persisted cycle simulator document
type CycleState struct {
	StartCapital  float64            `json:"startCapital"`
	Steps         int                `json:"steps"`
	BaseOdds      float64            `json:"baseOdds"`
	CurrentStep   int                `json:"currentStep"`
	CycleBankroll float64            `json:"cycleBankroll"`
	CycleStatus   CycleStatus        `json:"cycleStatus"`
	Wins          int                `json:"wins"`
	Losses        int                `json:"losses"`
	Ladder        []LadderStep       `json:"ladder"`
	History       []CycleHistoryItem `json:"history"`
}

// IsIdle checks if the cycle can still be configured
func (s *CycleState) IsIdle() bool {
	return s.CycleStatus == CycleStatusIdle
}

// IsActive checks if results can be recorded
func (s *CycleState) IsActive() bool {
	return s.CycleStatus == CycleStatusActive
}

// CycleSummary holds the derived figures shown next to the ladder
type CycleSummary struct {
	TargetMultiplier float64 `json:"targetMultiplier"`
	TargetProfit     float64 `json:"targetProfit"`
	CurrentProfit    float64 `json:"currentProfit"`
	WinRate          float64 `json:"winRate"`
}

// CycleClock supplies the time and identifiers used for history entries
type CycleClock struct {
	Now   func() time.Time
	NewID func() string
}
