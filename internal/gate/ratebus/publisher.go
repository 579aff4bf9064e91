package ratebus

// EventUpdateRate is the event name attached to every published rate.
const EventUpdateRate = "updateRate"

// Rate is a normalized buy/sell quote for one currency pair, independent
// of the exchange wire format.
type Rate struct {
	From string  `json:"from"` // Base asset, e.g. "BTC"
	To   string  `json:"to"`   // Quote asset, e.g. "USDT"
	Buy  float64 `json:"buy"`  // Lowest ask, falling back to the last price
	Sell float64 `json:"sell"` // Highest bid, falling back to the last price
}

// Sink delivers a published rate to one notification channel. The two
// implementations are the shared event bus and a caller-supplied callback;
// a Publisher holds exactly one of them.
type Sink interface {
	Deliver(event, source string, rate Rate)
}

// Callback is the function shape for callback-mode delivery.
type Callback func(event, source string, rate Rate)

type BusSink struct {
	bus *Bus
}

func NewBusSink(bus *Bus) *BusSink {
	return &BusSink{bus: bus}
}

func (s *BusSink) Deliver(event, source string, rate Rate) {
	s.bus.Publish(Event{Name: event, Source: source, Rate: rate})
}

type CallbackSink struct {
	fn Callback
}

func NewCallbackSink(fn Callback) *CallbackSink {
	return &CallbackSink{fn: fn}
}

func (s *CallbackSink) Deliver(event, source string, rate Rate) {
	if s.fn == nil {
		return
	}
	s.fn(event, source, rate)
}

// Publisher emits rate updates for one source through its configured
// sink. A publisher with a nil sink is valid and publishes nothing.
type Publisher struct {
	source string
	sink   Sink
}

func NewPublisher(source string, sink Sink) *Publisher {
	return &Publisher{source: source, sink: sink}
}

// Publish delivers rate under the EventUpdateRate name. Delivery is
// synchronous; the publisher performs no buffering or retries.
func (p *Publisher) Publish(rate Rate) {
	if p.sink == nil {
		return
	}
	p.sink.Deliver(EventUpdateRate, p.source, rate)
}

// Source returns the fixed source identifier carried on every event.
func (p *Publisher) Source() string {
	return p.source
}
