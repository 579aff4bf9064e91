package stream

import (
	"encoding/json"
	"strconv"

	"gateparser/internal/gate/display"
	"gateparser/internal/gate/memorystore"
	"gateparser/internal/gate/ratebus"
	"gateparser/pkg/gate"

	"go.uber.org/zap"
)

// MakeMessageHandler returns a function that handles incoming WebSocket
// messages by normalizing ticker updates into rates and handing them to
// the publisher. Every malformed or non-ticker frame is absorbed here so
// nothing can take the connection down.
func MakeMessageHandler(logger *zap.Logger, prices *memorystore.MemoryPriceStore,
	pub *ratebus.Publisher, out *display.Writer) func(msg []byte) {
	return func(msg []byte) {
		// Step 1: Parse the frame envelope
		var frame TickerMessage
		if err := json.Unmarshal(msg, &frame); err != nil {
			logger.Warn("failed to parse frame", zap.Error(err))
			return
		}

		// Server-reported errors concern single requests, not the stream:
		// log them and keep reading.
		if frame.Error != nil {
			logger.Warn("server reported error",
				zap.Int("code", frame.Error.Code),
				zap.String("message", frame.Error.Message))
			return
		}

		if frame.Event == gate.EventSubscribe {
			logger.Debug("subscription acknowledged", zap.String("channel", frame.Channel))
			return
		}

		if frame.Channel != gate.ChannelSpotTickers || frame.Event != gate.EventUpdate {
			return // Ignore frames of other channels and events
		}

		// Step 2: Parse the ticker payload
		var ticker TickerResult
		if err := json.Unmarshal(frame.Result, &ticker); err != nil {
			logger.Warn("failed to parse ticker payload", zap.Error(err))
			return
		}

		last, err := strconv.ParseFloat(ticker.Last, 64)
		if err != nil {
			logger.Warn("discarding ticker with non-numeric last price",
				zap.String("pair", ticker.CurrencyPair), zap.String("last", ticker.Last))
			return
		}

		from, to, ok := gate.SplitPair(ticker.CurrencyPair)
		if !ok {
			logger.Warn("discarding ticker with malformed pair",
				zap.String("pair", ticker.CurrencyPair))
			return
		}

		// Step 3: Compute the move against the previous update.
		// The first observation of a pair compares against itself: delta 0.
		prev, seen := prices.Get(ticker.CurrencyPair)
		if !seen {
			prev = last
		}
		delta := last - prev
		prices.Set(ticker.CurrencyPair, last)

		dir := display.DirectionFlat
		switch {
		case delta > 0:
			dir = display.DirectionUp
		case delta < 0:
			dir = display.DirectionDown
		}
		if out != nil {
			out.PriceUpdate(ticker.CurrencyPair, last, delta, dir)
		}

		// Step 4: Publish the normalized rate
		pub.Publish(ratebus.Rate{
			From: from,
			To:   to,
			Buy:  priceOrLast(ticker.LowestAsk, last),
			Sell: priceOrLast(ticker.HighestBid, last),
		})
	}
}

// priceOrLast parses a wire price, substituting the last traded price
// when the field is missing or not a number.
func priceOrLast(s string, last float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return last
	}
	return v
}
