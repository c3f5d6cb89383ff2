package persistence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicletax/internal/domain/models"
	"vehicletax/internal/infrastructure/logger"
	"vehicletax/internal/infrastructure/storage"
)

type failingStore struct {
	data    []byte
	getErr  error
	putErr  error
	puts    int
	deletes int
}

func (s *failingStore) Get(string) ([]byte, error) { return s.data, s.getErr }
func (s *failingStore) Put(string, []byte) error {
	s.puts++
	return s.putErr
}
func (s *failingStore) Delete(string) error {
	s.deletes++
	return errors.New("disk gone")
}

func TestCacheRoundTrip(t *testing.T) {
	cache := NewCache(storage.NewMemorySnapshotStore(), "", logger.NewNop())
	assert.Equal(t, DefaultFormID, cache.FormID())

	state := models.NewFormState()
	state.Values[models.FieldRegType] = "1"
	state.Values[models.FieldCategory] = "2"
	state.Values[models.FieldCCPower] = "100"
	state.Values[models.FieldLastPaidDate] = "2078-01-01"
	state.Values[models.FieldNextPaymentDate] = "2079-06-15"
	state.Dirty[models.FieldCategory] = true

	cache.Save(state)

	loaded, ok := cache.Load()
	require.True(t, ok)
	assert.Equal(t, state.Values, loaded.Values)
	assert.Empty(t, loaded.Dirty, "dirty flags are not persisted")
}

func TestCacheLoadMissing(t *testing.T) {
	cache := NewCache(storage.NewMemorySnapshotStore(), "f", logger.NewNop())
	_, ok := cache.Load()
	assert.False(t, ok)
}

func TestCacheLoadCorrupted(t *testing.T) {
	for _, payload := range []string{`{"category": 5}`, `not json`, `null`} {
		store := storage.NewMemorySnapshotStore()
		require.NoError(t, store.Put("f", []byte(payload)))

		cache := NewCache(store, "f", logger.NewNop())
		state, ok := cache.Load()
		assert.False(t, ok, payload)
		assert.Nil(t, state.Values, payload)
	}
}

func TestCacheSwallowsStoreErrors(t *testing.T) {
	store := &failingStore{putErr: errors.New("quota exceeded"), getErr: errors.New("io error")}
	cache := NewCache(store, "f", logger.NewNop())

	state := models.NewFormState()
	state.Values[models.FieldCategory] = "2"

	assert.NotPanics(t, func() {
		cache.Save(state)
		cache.Clear()
	})
	assert.Equal(t, 1, store.puts)
	assert.Equal(t, 1, store.deletes)

	_, ok := cache.Load()
	assert.False(t, ok)
}

func TestCacheClear(t *testing.T) {
	cache := NewCache(storage.NewMemorySnapshotStore(), "f", logger.NewNop())
	state := models.NewFormState()
	state.Values[models.FieldCategory] = "2"
	cache.Save(state)

	cache.Clear()
	_, ok := cache.Load()
	assert.False(t, ok)
}
