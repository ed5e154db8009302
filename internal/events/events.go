package events

import "sync"

// GameConcluded is published exactly once per game, on the move that ends it.
type GameConcluded struct {
	GameID string `json:"game_id"`
	State  string `json:"state"`
	Cells  []int  `json:"cells,omitempty"`
	Mark   string `json:"mark,omitempty"`
}

const subscriberBuffer = 1

// Bus fans conclusion events out to per-game subscribers. Publishing never
// blocks: a game concludes at most once, so one buffered slot per subscriber
// is enough, and a subscriber that already dropped out is skipped.
type Bus struct {
	mu   sync.Mutex
	subs map[string][]chan GameConcluded
}

func NewBus() *Bus {
	return &Bus{
		subs: make(map[string][]chan GameConcluded),
	}
}

// Subscribe - registers for the conclusion of one game. The returned cancel
// func releases the subscription and closes the channel; it is safe to call
// more than once.
func (that *Bus) Subscribe(gameID string) (<-chan GameConcluded, func()) {
	ch := make(chan GameConcluded, subscriberBuffer)

	that.mu.Lock()
	that.subs[gameID] = append(that.subs[gameID], ch)
	that.mu.Unlock()

	cancel := func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		channels := that.subs[gameID]
		for i, sub := range channels {
			if sub != ch {
				continue
			}

			that.subs[gameID] = append(channels[:i], channels[i+1:]...)
			if len(that.subs[gameID]) == 0 {
				delete(that.subs, gameID)
			}

			// Publish holds the same lock, so nobody can be mid-send here.
			close(ch)
			return
		}
	}

	return ch, cancel
}

// Publish - delivers the event to every subscriber of its game.
func (that *Bus) Publish(event GameConcluded) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, ch := range that.subs[event.GameID] {
		select {
		case ch <- event:
		default:
		}
	}
}
