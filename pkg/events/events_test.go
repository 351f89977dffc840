package events

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Publish(NewEvent(TypeGameSaved, "basic", "basic.game.json", nil))

	event := <-ch
	assert.Equal(t, TypeGameSaved, event.Type)
	assert.Equal(t, "basic", event.GameName)
	assert.Equal(t, "basic.game.json", event.FileName)
	assert.Empty(t, event.Error)
	assert.NotZero(t, event.Timestamp)
}

func TestBusCarriesError(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Publish(NewEvent(TypeSaveFailed, "basic", "", fmt.Errorf("disk full")))

	event := <-ch
	assert.Equal(t, TypeSaveFailed, event.Type)
	assert.Equal(t, "disk full", event.Error)
}

func TestBusCancelClosesChannel(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()

	cancel()
	_, ok := <-ch
	assert.False(t, ok)

	// cancel twice is safe, and publishing after cancel doesn't panic
	cancel()
	bus.Publish(NewEvent(TypeGameSaved, "basic", "f", nil))
}

func TestBusSlowSubscriberMissesEvents(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe()
	defer cancel()

	for i := 0; i < 32; i++ {
		bus.Publish(NewEvent(TypeGameSaved, "basic", fmt.Sprintf("save-%d", i), nil))
	}

	// buffer is 16; the rest were dropped rather than blocking the publisher
	require.Equal(t, 16, len(ch))
}
