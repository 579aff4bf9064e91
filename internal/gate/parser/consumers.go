package parser

import (
	"context"
	"time"

	"gateparser/internal/gate/memorystore"
	"gateparser/internal/gate/ratebus"
	"gateparser/pkg/gate"
	"gateparser/pkg/storage"

	"go.uber.org/zap"
)

// storeRates drains rate events into one storage backend until ctx is
// cancelled. Storage failures are logged and skipped; the stream never
// waits for a sink.
func storeRates(ctx context.Context, events <-chan ratebus.Event, store storage.RateStore,
	backend string, logger *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if err := store.SaveRate(ctx, ev.Source, ev.Rate); err != nil {
				logger.Warn("failed to save rate",
					zap.String("backend", backend),
					zap.String("pair", ev.Rate.From+"_"+ev.Rate.To),
					zap.Error(err))
			}
		}
	}
}

// logStatus periodically reports connection state and tracked pair counts.
func logStatus(ctx context.Context, ws *gate.WSClient, pairs *memorystore.MemoryPairStore,
	prices *memorystore.MemoryPriceStore, logger *zap.Logger) {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			logger.Debug("stream status",
				zap.String("state", ws.State().String()),
				zap.Int("pairs", pairs.Count()),
				zap.Int("prices_seen", prices.Count()))
		}
	}
}
