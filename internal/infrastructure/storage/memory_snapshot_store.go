package storage

import (
	"sync"

	"vehicletax/internal/domain/ports"
)

// MemorySnapshotStore хранит снимки в памяти процесса.
// Используется в тестах и в режиме без сохранения состояния (--no-save).
type MemorySnapshotStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemorySnapshotStore создает пустое хранилище.
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{entries: make(map[string][]byte)}
}

func (s *MemorySnapshotStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.entries[key]
	if !ok {
		return nil, ports.ErrSnapshotNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemorySnapshotStore) Put(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.entries[key] = stored
	return nil
}

func (s *MemorySnapshotStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}
