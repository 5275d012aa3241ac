package events

import (
	"context"
	"testing"

	"betledger/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_EmitDeliversInOrder(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	var calls []string
	bus.Subscribe(EventTypeBetSaved, func(ctx context.Context, event Event) {
		saved, ok := event.(BetSavedEvent)
		require.True(t, ok, "expected BetSavedEvent, got %T", event)
		calls = append(calls, "first:"+saved.BetID)
	})
	bus.Subscribe(EventTypeBetSaved, func(ctx context.Context, event Event) {
		calls = append(calls, "second")
	})
	bus.Subscribe(EventTypeBetDeleted, func(ctx context.Context, event Event) {
		calls = append(calls, "deleted")
	})

	bus.Emit(ctx, BetSavedEvent{BetID: "abc", Result: models.BetResultWin})

	// Dispatch is synchronous, so handlers already ran
	assert.Equal(t, []string{"first:abc", "second"}, calls)
}

func TestBus_PanickingHandlerIsIsolated(t *testing.T) {
	bus := NewBus()

	called := false
	bus.Subscribe(EventTypeJournalCleared, func(ctx context.Context, event Event) {
		panic("handler failure")
	})
	bus.Subscribe(EventTypeJournalCleared, func(ctx context.Context, event Event) {
		called = true
	})

	assert.NotPanics(t, func() {
		bus.Emit(context.Background(), JournalClearedEvent{Removed: 3})
	})
	assert.True(t, called)
}

func TestBus_NoHandlers(t *testing.T) {
	assert.NotPanics(t, func() {
		NewBus().Emit(context.Background(), AllocationUpdatedEvent{Section: "assets"})
	})
}

func TestTransactionalBus(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	var received []Event
	bus.Subscribe(EventTypeBetSaved, func(ctx context.Context, event Event) {
		received = append(received, event)
	})

	t.Run("flush after success", func(t *testing.T) {
		tx := NewTransactionalBus(bus)
		tx.Publish(BetSavedEvent{BetID: "1"})
		tx.Publish(BetSavedEvent{BetID: "2"})

		assert.Empty(t, received)
		assert.Equal(t, 2, tx.Pending())

		tx.Flush(ctx)

		require.Len(t, received, 2)
		assert.Equal(t, "1", received[0].(BetSavedEvent).BetID)
		assert.Zero(t, tx.Pending())
	})

	t.Run("discard after failure", func(t *testing.T) {
		received = nil
		tx := NewTransactionalBus(bus)
		tx.Publish(BetSavedEvent{BetID: "3"})
		tx.Discard()
		tx.Flush(ctx)

		assert.Empty(t, received)
	})
}
