package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"vehicletax/internal/domain/ports"
)

func TestFileSnapshotStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "form.json")
	store := NewFileSnapshotStore(path)

	t.Run("missing key", func(t *testing.T) {
		if _, err := store.Get("tax-form"); !errors.Is(err, ports.ErrSnapshotNotFound) {
			t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
		}
	})

	t.Run("put and get", func(t *testing.T) {
		if err := store.Put("tax-form", []byte(`{"category":"2"}`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if err := store.Put("other-form", []byte(`{"x":"y"}`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		data, err := store.Get("tax-form")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(data) != `{"category":"2"}` {
			t.Errorf("unexpected data: %s", data)
		}
	})

	t.Run("invalid JSON rejected", func(t *testing.T) {
		if err := store.Put("tax-form", []byte(`{broken`)); err == nil {
			t.Error("expected error for invalid JSON")
		}
	})

	t.Run("delete keeps other keys", func(t *testing.T) {
		if err := store.Delete("tax-form"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := store.Get("tax-form"); !errors.Is(err, ports.ErrSnapshotNotFound) {
			t.Errorf("expected deleted key to be missing, got %v", err)
		}
		if _, err := store.Get("other-form"); err != nil {
			t.Errorf("other key lost: %v", err)
		}
		if err := store.Delete("never-existed"); err != nil {
			t.Errorf("deleting a missing key must not fail: %v", err)
		}
	})

	t.Run("corrupted file", func(t *testing.T) {
		if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := store.Get("tax-form"); err == nil {
			t.Error("expected parse error for corrupted file")
		}
		if err := store.Put("tax-form", []byte(`{"a":"b"}`)); err != nil {
			t.Fatalf("Put over corrupted file failed: %v", err)
		}
		if _, err := store.Get("tax-form"); err != nil {
			t.Errorf("expected recovery after Put, got %v", err)
		}
	})
}

func TestMemorySnapshotStore(t *testing.T) {
	store := NewMemorySnapshotStore()
	data := []byte(`{"a":"1"}`)
	if err := store.Put("k", data); err != nil {
		t.Fatal(err)
	}
	data[2] = 'X'

	got, err := store.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"a":"1"}` {
		t.Errorf("store must keep its own copy, got %s", got)
	}

	_ = store.Delete("k")
	if _, err := store.Get("k"); !errors.Is(err, ports.ErrSnapshotNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}
