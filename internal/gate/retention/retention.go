package retention

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// PruneFunc deletes persisted rates last refreshed before the cutoff.
type PruneFunc func(ctx context.Context, before time.Time) error

// MidnightPruner runs the prune function once at startup and then at
// every UTC midnight, dropping snapshot rows for pairs that stopped
// updating.
type MidnightPruner struct {
	MaxAge time.Duration
	Prune  PruneFunc
	Logger *zap.Logger
}

// Start schedules the pruner until ctx is cancelled.
func (m *MidnightPruner) Start(ctx context.Context) {
	go func() {
		// Run immediately once at startup
		m.runOnce(ctx)

		// Wait until next UTC midnight
		timer := time.NewTimer(time.Until(nextUTCMidnight(time.Now())))
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		// Then run once every 24 hours
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			m.runOnce(ctx)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func (m *MidnightPruner) runOnce(ctx context.Context) {
	cutoff := time.Now().Add(-m.MaxAge)
	if err := m.Prune(ctx, cutoff); err != nil {
		m.Logger.Warn("failed to prune stale rates", zap.Error(err))
		return
	}
	m.Logger.Debug("pruned stale rates", zap.Time("cutoff", cutoff))
}

// nextUTCMidnight returns the first UTC midnight after now.
func nextUTCMidnight(now time.Time) time.Time {
	return now.UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
}
