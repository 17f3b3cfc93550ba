package store

import (
	"sync"

	"auctionauth/internal/domain"
)

// MemoryStateStore keeps slots in process memory. Nothing survives a restart.
type MemoryStateStore struct {
	mu    sync.RWMutex
	slots map[domain.StateSlot]string
}

var _ domain.ClientStateStore = (*MemoryStateStore)(nil)

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{slots: make(map[domain.StateSlot]string)}
}

func (s *MemoryStateStore) Get(slot domain.StateSlot) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.slots[slot]
	return v, ok, nil
}

func (s *MemoryStateStore) Set(slot domain.StateSlot, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = value
	return nil
}

func (s *MemoryStateStore) Delete(slot domain.StateSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, slot)
	return nil
}
