package memorystore

import "sync"

// MemoryPriceStore keeps the last observed price per currency pair. It
// starts empty and grows with distinct pairs seen; nothing is evicted,
// so its size is bounded by the subscription set.
type MemoryPriceStore struct {
	mu     sync.Mutex
	prices map[string]float64
}

func NewPriceStore() *MemoryPriceStore {
	return &MemoryPriceStore{
		prices: make(map[string]float64),
	}
}

func (s *MemoryPriceStore) Get(pair string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	price, ok := s.prices[pair]
	return price, ok
}

func (s *MemoryPriceStore) Set(pair string, price float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[pair] = price
}

// Count returns the number of pairs with at least one observed price.
func (s *MemoryPriceStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prices)
}

// Snapshot returns a copy of the current pair to price mapping.
func (s *MemoryPriceStore) Snapshot() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]float64, len(s.prices))
	for pair, price := range s.prices {
		out[pair] = price
	}
	return out
}
