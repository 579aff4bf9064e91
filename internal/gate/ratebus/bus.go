package ratebus

import "sync"

// Event is what subscribers receive for every published rate.
type Event struct {
	Name   string // Event name, always EventUpdateRate
	Source string // Fixed source identifier of the producing parser
	Rate   Rate
}

// Bus is an in-process fan-out: every subscriber gets every published
// event on its own channel. Publishing never blocks; the event is
// dropped for a subscriber whose buffer is full.
type Bus struct {
	mu   sync.RWMutex
	subs []chan Event
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a new subscriber and returns its channel. The
// buffer size bounds how far the subscriber may fall behind before
// events are dropped for it.
func (b *Bus) Subscribe(buffer int) <-chan Event {
	ch := make(chan Event, buffer)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()
	return ch
}

// Publish delivers ev to every subscriber without blocking.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribers returns the number of registered subscribers.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
