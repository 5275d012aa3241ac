package events

import (
	"context"
	"sync"

	"betledger/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBetSaved          EventType = "bet_saved"
	EventTypeBetDeleted        EventType = "bet_deleted"
	EventTypeJournalCleared    EventType = "journal_cleared"
	EventTypeBankrollChanged   EventType = "bankroll_changed"
	EventTypeCycleStateChange  EventType = "cycle_state_change"
	EventTypeCycleFinished     EventType = "cycle_finished"
	EventTypeAllocationUpdated EventType = "allocation_updated"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BetSavedEvent is emitted after a bet was created or replaced
type BetSavedEvent struct {
	BetID   string
	Result  models.BetResult
	Stake   float64
	Odds    float64
	Created bool
}

func (e BetSavedEvent) Type() EventType {
	return EventTypeBetSaved
}

// BetDeletedEvent is emitted after a bet was removed from the journal
type BetDeletedEvent struct {
	BetID string
}

func (e BetDeletedEvent) Type() EventType {
	return EventTypeBetDeleted
}

// JournalClearedEvent is emitted after every bet was removed
type JournalClearedEvent struct {
	Removed int
}

func (e JournalClearedEvent) Type() EventType {
	return EventTypeJournalCleared
}

// BankrollChangedEvent represents a change of the starting bankroll baseline
type BankrollChangedEvent struct {
	OldBankroll float64
	NewBankroll float64
}

func (e BankrollChangedEvent) Type() EventType {
	return EventTypeBankrollChanged
}

// CycleStateChangeEvent represents a ladder state machine transition
type CycleStateChangeEvent struct {
	OldStatus   models.CycleStatus
	NewStatus   models.CycleStatus
	CurrentStep int
	Bankroll    float64
}

func (e CycleStateChangeEvent) Type() EventType {
	return EventTypeCycleStateChange
}

// CycleFinishedEvent carries the history entry logged when a ladder completes or fails
type CycleFinishedEvent struct {
	Entry models.CycleHistoryItem
}

func (e CycleFinishedEvent) Type() EventType {
	return EventTypeCycleFinished
}

// AllocationUpdatedEvent is emitted after a section of the allocation planner changed
type AllocationUpdatedEvent struct {
	Section string
}

func (e AllocationUpdatedEvent) Type() EventType {
	return EventTypeAllocationUpdated
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit calls every handler registered for the event's type, in subscription order.
// Handlers run on the caller's goroutine; a panicking handler is logged and skipped.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	for i, handler := range handlers {
		b.dispatch(ctx, event, handler, i)
	}
}

func (b *Bus) dispatch(ctx context.Context, event Event, h Handler, handlerIndex int) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{
				"eventType":    event.Type(),
				"handlerIndex": handlerIndex,
				"panic":        r,
			}).Error("Event handler panicked")
		}
	}()
	h(ctx, event)
}

// Emitter delivers events to subscribers
type Emitter interface {
	Emit(ctx context.Context, event Event)
}

// TransactionalBus holds events until the write they describe has succeeded,
// then flushes them to the underlying emitter.
type TransactionalBus struct {
	real    Emitter
	pending []Event
}

func NewTransactionalBus(real Emitter) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	log.WithFields(log.Fields{
		"eventType":    e.Type(),
		"pendingCount": len(b.pending),
	}).Debug("Adding event to transactional bus pending queue")
	b.pending = append(b.pending, e)
}

// Flush emits every pending event. Called after a successful write.
func (b *TransactionalBus) Flush(ctx context.Context) {
	log.WithField("pendingEventCount", len(b.pending)).Debug("Flushing pending events")

	for _, ev := range b.pending {
		b.real.Emit(ctx, ev)
	}
	b.pending = nil
}

// Discard drops pending events after a failed write
func (b *TransactionalBus) Discard() {
	b.pending = nil
}

// Pending returns the number of events waiting for Flush
func (b *TransactionalBus) Pending() int {
	return len(b.pending)
}
