package memorystore

import "sync"

type MemoryPairStore struct {
	mu    sync.Mutex
	pairs []string
}

func NewPairStore() *MemoryPairStore {
	return &MemoryPairStore{
		pairs: make([]string, 0),
	}
}

func (s *MemoryPairStore) SetAll(pairs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs = make([]string, len(pairs))
	copy(s.pairs, pairs)
}

func (s *MemoryPairStore) GetAll() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.pairs))
	copy(out, s.pairs)
	return out
}

func (s *MemoryPairStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pairs)
}
