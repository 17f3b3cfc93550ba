package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"auctionauth/internal/domain"
)

// StateFile is the name of the slot file inside the client home directory.
const StateFile = "state.json"

// StateFileStore keeps client state slots in one JSON object on disk.
//
// Every operation re-reads the file so that separate CLI invocations see each
// other's writes; the mutex only orders goroutines of this process.
type StateFileStore struct {
	path string
	mu   sync.Mutex
}

var _ domain.ClientStateStore = (*StateFileStore)(nil)

// NewStateFileStore stores slots in <dir>/state.json. The directory is created
// on first write.
func NewStateFileStore(dir string) *StateFileStore {
	return &StateFileStore{path: filepath.Join(dir, StateFile)}
}

// Path returns the backing file.
func (s *StateFileStore) Path() string { return s.path }

func (s *StateFileStore) Get(slot domain.StateSlot) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := m[string(slot)]
	return v, ok, nil
}

func (s *StateFileStore) Set(slot domain.StateSlot, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	m[string(slot)] = value
	return writeJSON(s.path, m, 0o600)
}

func (s *StateFileStore) Delete(slot domain.StateSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := m[string(slot)]; !ok {
		return nil
	}
	delete(m, string(slot))
	return writeJSON(s.path, m, 0o600)
}

func (s *StateFileStore) load() (map[string]string, error) {
	m := make(map[string]string)
	if _, err := readJSON(s.path, &m); err != nil {
		return nil, fmt.Errorf("read state %s: %w", s.path, err)
	}
	return m, nil
}
