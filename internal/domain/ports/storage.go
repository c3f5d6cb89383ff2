package ports

import "errors"

// ErrSnapshotNotFound возвращается хранилищем, если ключ отсутствует.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore долговременное хранилище снимков формы.
// Хранилище общее для процесса, каждая форма пишет только под своим ключом.
type SnapshotStore interface {
	// Get возвращает сырые данные по ключу или ErrSnapshotNotFound
	Get(key string) ([]byte, error)

	// Put сохраняет данные под ключом, перезаписывая предыдущие
	Put(key string, data []byte) error

	// Delete удаляет ключ (отсутствие ключа не ошибка)
	Delete(key string) error
}
