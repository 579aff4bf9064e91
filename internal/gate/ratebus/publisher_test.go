package ratebus

import (
	"testing"
	"time"
)

// go test -v --run TestPublisherBusDelivery
func TestPublisherBusDelivery(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(4)

	pub := NewPublisher("gateio", NewBusSink(bus))
	pub.Publish(Rate{From: "BTC", To: "USDT", Buy: 50001.0, Sell: 49999.0})

	select {
	case ev := <-sub:
		if ev.Name != EventUpdateRate {
			t.Errorf("expected event name %q, got %q", EventUpdateRate, ev.Name)
		}
		if ev.Source != "gateio" {
			t.Errorf("expected source gateio, got %q", ev.Source)
		}
		if ev.Rate.From != "BTC" || ev.Rate.To != "USDT" || ev.Rate.Buy != 50001.0 || ev.Rate.Sell != 49999.0 {
			t.Errorf("unexpected rate: %+v", ev.Rate)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered to bus subscriber")
	}
}

// go test -v --run TestPublisherCallbackDelivery
func TestPublisherCallbackDelivery(t *testing.T) {
	var calls int
	var gotEvent, gotSource string
	var gotRate Rate

	pub := NewPublisher("gateio", NewCallbackSink(func(event, source string, rate Rate) {
		calls++
		gotEvent, gotSource, gotRate = event, source, rate
	}))

	rate := Rate{From: "ETH", To: "USDT", Buy: 3000.5, Sell: 2999.5}
	pub.Publish(rate)

	if calls != 1 {
		t.Fatalf("expected exactly one callback invocation, got %d", calls)
	}
	if gotEvent != EventUpdateRate || gotSource != "gateio" || gotRate != rate {
		t.Errorf("callback got (%q, %q, %+v)", gotEvent, gotSource, gotRate)
	}
	if pub.Source() != "gateio" {
		t.Errorf("unexpected source: %q", pub.Source())
	}
}

// go test -v --run TestPublisherWithoutSink
func TestPublisherWithoutSink(t *testing.T) {
	// Neither bus nor callback configured: publishing is a silent no-op.
	pub := NewPublisher("gateio", nil)
	pub.Publish(Rate{From: "BTC", To: "USDT", Buy: 1, Sell: 1})

	// A callback sink around a nil function behaves the same way.
	pub = NewPublisher("gateio", NewCallbackSink(nil))
	pub.Publish(Rate{From: "BTC", To: "USDT", Buy: 1, Sell: 1})
}
