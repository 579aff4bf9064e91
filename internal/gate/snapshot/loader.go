package snapshot

import (
	"context"
	"strings"
	"time"

	"gateparser/pkg/gate"

	"go.uber.org/zap"
)

type PairLoader struct {
	RestClient *gate.RESTClient
	Timeout    time.Duration
	Logger     *zap.Logger
}

// LoadPairs fetches the tradable currency pairs and returns the
// subscription set for this process. The fetch is awaited; on any
// failure the fixed default set is returned instead, so a broken pair
// endpoint never blocks startup.
func (l *PairLoader) LoadPairs(ctx context.Context) []string {
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	raw, err := l.RestClient.GetCurrencyPairs(ctx)
	if err != nil {
		l.Logger.Warn("failed to load currency pairs, using defaults",
			zap.Error(err), zap.Strings("pairs", gate.DefaultPairs))
		return append([]string(nil), gate.DefaultPairs...)
	}

	// The endpoint reports pairs in lowercase; subscriptions take uppercase.
	pairs := make([]string, 0, len(raw))
	dropped := 0
	for _, p := range raw {
		p = strings.ToUpper(strings.TrimSpace(p))
		if !gate.ValidPair(p) {
			dropped++
			continue
		}
		pairs = append(pairs, p)
	}
	if dropped > 0 {
		l.Logger.Debug("dropped malformed pair identifiers", zap.Int("count", dropped))
	}
	if len(pairs) == 0 {
		l.Logger.Warn("pair list came back empty, using defaults",
			zap.Strings("pairs", gate.DefaultPairs))
		return append([]string(nil), gate.DefaultPairs...)
	}

	l.Logger.Info("loaded currency pairs", zap.Int("count", len(pairs)))
	return pairs
}
