// Package storage defines the sink contract shared by the rate
// persistence backends.
package storage

import (
	"context"

	"gateparser/internal/gate/ratebus"
)

// RateStore persists the latest normalized rate per source and pair.
type RateStore interface {
	SaveRate(ctx context.Context, source string, rate ratebus.Rate) error
}
