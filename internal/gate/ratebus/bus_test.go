package ratebus

import (
	"testing"
	"time"
)

// go test -v --run TestBusFanOut
func TestBusFanOut(t *testing.T) {
	bus := NewBus()
	first := bus.Subscribe(4)
	second := bus.Subscribe(4)

	if bus.Subscribers() != 2 {
		t.Fatalf("expected 2 subscribers, got %d", bus.Subscribers())
	}

	ev := Event{
		Name:   EventUpdateRate,
		Source: "gateio",
		Rate:   Rate{From: "BTC", To: "USDT", Buy: 50001.0, Sell: 49999.0},
	}
	bus.Publish(ev)

	for i, ch := range []<-chan Event{first, second} {
		select {
		case got := <-ch:
			if got != ev {
				t.Errorf("subscriber %d: unexpected event %+v", i, got)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d never received the event", i)
		}
	}
}

// go test -v --run TestBusDoesNotBlockOnFullSubscriber
func TestBusDoesNotBlockOnFullSubscriber(t *testing.T) {
	bus := NewBus()
	slow := bus.Subscribe(1)
	fast := bus.Subscribe(8)

	// The slow subscriber's buffer fills after the first event; further
	// publishes must drop for it instead of blocking.
	for i := 0; i < 5; i++ {
		bus.Publish(Event{Name: EventUpdateRate, Source: "gateio", Rate: Rate{Buy: float64(i)}})
	}

	if len(slow) != 1 {
		t.Errorf("expected slow subscriber to hold 1 event, got %d", len(slow))
	}
	if len(fast) != 5 {
		t.Errorf("expected fast subscriber to hold all 5 events, got %d", len(fast))
	}
}
