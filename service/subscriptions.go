package service

import (
	"context"

	"betledger/events"

	log "github.com/sirupsen/logrus"
)

// Subscriber registers handlers for event types
type Subscriber interface {
	Subscribe(eventType events.EventType, handler events.Handler)
}

// RegisterSubscriptions wires the activity log and the drawdown monitor to the bus.
// A non-positive drawdownAlertPct disables the monitor.
func RegisterSubscriptions(bus Subscriber, journal JournalService, drawdownAlertPct float64) {
	for _, eventType := range []events.EventType{
		events.EventTypeBetSaved,
		events.EventTypeBetDeleted,
		events.EventTypeJournalCleared,
		events.EventTypeBankrollChanged,
		events.EventTypeCycleStateChange,
		events.EventTypeCycleFinished,
		events.EventTypeAllocationUpdated,
	} {
		bus.Subscribe(eventType, logActivity)
	}

	if drawdownAlertPct <= 0 {
		return
	}

	monitor := &drawdownMonitor{journal: journal, thresholdPct: drawdownAlertPct}
	for _, eventType := range []events.EventType{
		events.EventTypeBetSaved,
		events.EventTypeBetDeleted,
		events.EventTypeBankrollChanged,
	} {
		bus.Subscribe(eventType, monitor.handle)
	}
}

func logActivity(ctx context.Context, event events.Event) {
	entry := log.WithField("eventType", event.Type())

	switch e := event.(type) {
	case events.BetSavedEvent:
		entry = entry.WithFields(log.Fields{"betID": e.BetID, "result": e.Result, "created": e.Created})
	case events.BetDeletedEvent:
		entry = entry.WithField("betID", e.BetID)
	case events.JournalClearedEvent:
		entry = entry.WithField("removed", e.Removed)
	case events.BankrollChangedEvent:
		entry = entry.WithFields(log.Fields{"old": e.OldBankroll, "new": e.NewBankroll})
	case events.CycleStateChangeEvent:
		entry = entry.WithFields(log.Fields{"from": e.OldStatus, "to": e.NewStatus, "step": e.CurrentStep})
	case events.CycleFinishedEvent:
		entry = entry.WithFields(log.Fields{"status": e.Entry.Status, "profit": e.Entry.Profit})
	case events.AllocationUpdatedEvent:
		entry = entry.WithField("section", e.Section)
	}

	entry.Debug("Activity")
}

// drawdownMonitor warns when the journal's max drawdown reaches a threshold
type drawdownMonitor struct {
	journal      JournalService
	thresholdPct float64
}

func (m *drawdownMonitor) handle(ctx context.Context, event events.Event) {
	if _, err := m.check(ctx); err != nil {
		log.WithError(err).WithField("eventType", event.Type()).Error("Failed to evaluate drawdown")
	}
}

// check recomputes the journal stats and reports whether the threshold is breached
func (m *drawdownMonitor) check(ctx context.Context) (bool, error) {
	stats, err := m.journal.GetStats(ctx)
	if err != nil {
		return false, err
	}

	if stats.MaxDrawdown < m.thresholdPct {
		return false, nil
	}

	log.WithFields(log.Fields{
		"maxDrawdown": stats.MaxDrawdown,
		"threshold":   m.thresholdPct,
		"bankroll":    stats.CurrentBankroll,
	}).Warn("Maximum drawdown threshold reached")
	return true, nil
}
