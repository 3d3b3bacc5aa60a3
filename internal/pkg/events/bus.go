// Package events is the in-process bridge between the attendance write path
// and the notification worker. The write path's contract is "emit event";
// delivery, persistence and sender failures all live on the consumer side.
package events

import (
	"sync"
)

// Event is an attendance side effect announcement.
type Event struct {
	Type       string
	EmployeeID string
	Data       map[string]interface{}
}

// Bus fans events out to subscribers without ever blocking a publisher.
type Bus struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

func NewBus() *Bus {
	return &Bus{
		subs: make(map[chan Event]struct{}),
	}
}

// Subscribe registers a consumer and returns its channel plus a cleanup
// function.
func (b *Bus) Subscribe() (chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, 64)
	b.subs[ch] = struct{}{}

	cleanup := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
	}
	return ch, cleanup
}

// Publish delivers the event to every subscriber. A subscriber with a full
// buffer is skipped; attendance writes never wait on a slow consumer.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
