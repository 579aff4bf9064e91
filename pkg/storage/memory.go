package storage

import (
	"context"
	"sync"

	"gateparser/internal/gate/ratebus"
)

// MemoryRateStore is an in-memory RateStore used in tests.
type MemoryRateStore struct {
	mu    sync.Mutex
	rates map[string]ratebus.Rate
}

func NewMemoryRateStore() *MemoryRateStore {
	return &MemoryRateStore{
		rates: make(map[string]ratebus.Rate),
	}
}

func (m *MemoryRateStore) SaveRate(ctx context.Context, source string, rate ratebus.Rate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates[source+":"+rate.From+"_"+rate.To] = rate
	return nil
}

// RateFor returns the last saved rate for one source and pair,
// e.g. ("gateio", "BTC_USDT").
func (m *MemoryRateStore) RateFor(source, pair string) (ratebus.Rate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rate, ok := m.rates[source+":"+pair]
	return rate, ok
}

// Count returns the number of distinct source and pair combinations saved.
func (m *MemoryRateStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rates)
}
