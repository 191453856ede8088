package messaging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegrind-hub/codegrind-bot/internal/domain/shared"
)

func TestPublishDeliversToTypedAndGlobalHandlers(t *testing.T) {
	bus := NewInMemoryEventBus(nil)

	var typed, global int
	require.NoError(t, bus.Subscribe(shared.EventSolveRecorded, func(shared.Event) error {
		typed++
		return nil
	}))
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		global++
		return nil
	}))

	require.NoError(t, bus.Publish(shared.NewSolveRecordedEvent("alice", "2026-08-31", 5, "code_block")))
	require.NoError(t, bus.Publish(shared.NewGoalSetEvent("alice", 50)))

	assert.Equal(t, 1, typed)
	assert.Equal(t, 2, global)
}

func TestPublishSurvivesFailingHandler(t *testing.T) {
	bus := NewInMemoryEventBus(nil)

	var reached bool
	require.NoError(t, bus.Subscribe(shared.EventGoalSet, func(shared.Event) error {
		return errors.New("boom")
	}))
	require.NoError(t, bus.Subscribe(shared.EventGoalSet, func(shared.Event) error {
		reached = true
		return nil
	}))

	require.NoError(t, bus.Publish(shared.NewGoalSetEvent("bob", 10)))
	assert.True(t, reached)
}

func TestPublishSurvivesPanickingHandler(t *testing.T) {
	bus := NewInMemoryEventBus(nil)

	var reached bool
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		panic("handler bug")
	}))
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		reached = true
		return nil
	}))

	require.NoError(t, bus.Publish(shared.NewGoalSetEvent("carol", 3)))
	assert.True(t, reached)
}

func TestClosedBusRejectsOperations(t *testing.T) {
	bus := NewInMemoryEventBus(nil)
	require.NoError(t, bus.Close())

	assert.ErrorIs(t, bus.Publish(shared.NewGoalSetEvent("dave", 1)), ErrEventBusClosed)
	assert.ErrorIs(t, bus.Subscribe(shared.EventGoalSet, func(shared.Event) error { return nil }), ErrEventBusClosed)
	assert.NoError(t, bus.Close())
}
