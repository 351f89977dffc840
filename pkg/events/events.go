// Package events fans save/load notifications out to admin watchers.
package events

import (
	"sync"
	"time"
)

// Event types published by the save worker and loader.
const (
	TypeGameSaved  = "game_saved"
	TypeGameLoaded = "game_loaded"
	TypeSaveFailed = "save_failed"
)

// Event is one savegame lifecycle notification.
type Event struct {
	Type      string `json:"type"`
	GameName  string `json:"gameName"`
	FileName  string `json:"fileName,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// NewEvent creates an event stamped with the current time.
func NewEvent(eventType, gameName, fileName string, err error) Event {
	e := Event{
		Type:      eventType,
		GameName:  gameName,
		FileName:  fileName,
		Timestamp: time.Now().UnixMilli(),
	}
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// Bus delivers events to subscribers. Slow subscribers miss events rather
// than blocking publishers.
type Bus struct {
	lock sync.Mutex
	subs map[chan Event]struct{}
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[chan Event]struct{}),
	}
}

// Subscribe returns a channel of future events and a function that cancels
// the subscription and closes the channel.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	b.lock.Lock()
	b.subs[ch] = struct{}{}
	b.lock.Unlock()

	cancel := func() {
		b.lock.Lock()
		defer b.lock.Unlock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber with buffer space.
func (b *Bus) Publish(e Event) {
	b.lock.Lock()
	defer b.lock.Unlock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
