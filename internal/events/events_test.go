package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishReachesSubscriber(t *testing.T) {
	// Given: a bus with one subscriber on game "abc"
	bus := NewBus()
	ch, cancel := bus.Subscribe("abc")
	defer cancel()

	// When: the game concludes
	bus.Publish(GameConcluded{GameID: "abc", State: "won", Cells: []int{0, 1, 2}, Mark: "X"})

	// Then: the subscriber receives the event
	select {
	case event := <-ch:
		assert.Equal(t, "abc", event.GameID)
		assert.Equal(t, "won", event.State)
		assert.Equal(t, []int{0, 1, 2}, event.Cells)
	default:
		t.Fatal("expected a buffered event")
	}
}

func TestBus_PublishSkipsOtherGames(t *testing.T) {
	// Given: a subscriber on a different game
	bus := NewBus()
	ch, cancel := bus.Subscribe("abc")
	defer cancel()

	// When: another game concludes
	bus.Publish(GameConcluded{GameID: "xyz", State: "drawn"})

	// Then: nothing is delivered
	assert.Empty(t, ch)
}

func TestBus_CancelStopsDelivery(t *testing.T) {
	// Given: a subscription that has been canceled
	bus := NewBus()
	ch, cancel := bus.Subscribe("abc")
	cancel()

	// When: the game concludes
	bus.Publish(GameConcluded{GameID: "abc", State: "drawn"})

	// Then: the canceled subscriber gets nothing
	assert.Empty(t, ch)

	// Canceling again is harmless.
	require.NotPanics(t, cancel)
}

func TestBus_PublishNeverBlocks(t *testing.T) {
	// Given: a subscriber that never drains its channel
	bus := NewBus()
	_, cancel := bus.Subscribe("abc")
	defer cancel()

	// When: publishing more events than the buffer holds
	require.NotPanics(t, func() {
		bus.Publish(GameConcluded{GameID: "abc", State: "won"})
		bus.Publish(GameConcluded{GameID: "abc", State: "won"})
	})
}
