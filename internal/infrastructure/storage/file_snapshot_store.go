package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"vehicletax/internal/domain/ports"
)

// FileSnapshotStore реализует ports.SnapshotStore поверх одного JSON-файла вида
// {"<ключ>": <сырой JSON снимка>, ...}. Файл перечитывается при каждом обращении,
// поэтому несколько процессов работают по принципу "последняя запись побеждает".
type FileSnapshotStore struct {
	mu       sync.Mutex
	filePath string
}

// NewFileSnapshotStore создает хранилище снимков в указанном файле.
func NewFileSnapshotStore(filePath string) *FileSnapshotStore {
	return &FileSnapshotStore{filePath: filePath}
}

// Get возвращает снимок по ключу.
func (s *FileSnapshotStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadFromFile()
	if err != nil {
		return nil, err
	}

	data, ok := entries[key]
	if !ok {
		return nil, ports.ErrSnapshotNotFound
	}
	return data, nil
}

// Put сохраняет снимок под ключом.
func (s *FileSnapshotStore) Put(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !json.Valid(data) {
		return fmt.Errorf("snapshot for %q is not valid JSON", key)
	}

	entries, err := s.loadFromFile()
	if err != nil {
		// Повреждённый файл перезаписываем: кэш не является источником истины
		entries = make(map[string]json.RawMessage)
	}
	entries[key] = json.RawMessage(data)

	return s.saveToFile(entries)
}

// Delete удаляет снимок по ключу.
func (s *FileSnapshotStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadFromFile()
	if err != nil {
		return s.saveToFile(make(map[string]json.RawMessage))
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)

	return s.saveToFile(entries)
}

// loadFromFile читает все снимки из файла (не потокобезопасно, вызывать под мьютексом).
func (s *FileSnapshotStore) loadFromFile() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]json.RawMessage), nil
		}
		return nil, fmt.Errorf("ошибка чтения файла состояния: %w", err)
	}

	entries := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("ошибка разбора JSON: %w", err)
	}
	return entries, nil
}

// saveToFile записывает все снимки во временный файл и атомарно переименовывает его.
func (s *FileSnapshotStore) saveToFile(entries map[string]json.RawMessage) error {
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("ошибка создания директории: %w", err)
	}

	jsonData, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации JSON: %w", err)
	}

	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, jsonData, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла состояния: %w", err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		return fmt.Errorf("ошибка записи файла состояния: %w", err)
	}

	return nil
}
