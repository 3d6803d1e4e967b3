package bbolt

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/openhouse-app/openhouse/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStoreFromFile(filepath.Join(t.TempDir(), "openhouse-test.db"), nil)
	if err != nil {
		t.Fatalf("could not open db: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBBoltStore(t *testing.T) {
	s := newTestStore(t)

	t.Run("PutAndGet", func(t *testing.T) {
		if err := s.Put("k1", []byte("value1")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, err := s.Get("k1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != "value1" {
			t.Errorf("Get returned %q, want %q", got, "value1")
		}
	})

	t.Run("GetNotFound", func(t *testing.T) {
		_, err := s.Get("nonexistent")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Get for missing key returned %v, want ErrNotFound", err)
		}
	})

	t.Run("GetBeforeAnyPut", func(t *testing.T) {
		// A fresh database has no bucket yet; Get must still report not found.
		fresh := newTestStore(t)
		_, err := fresh.Get("k")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Get on empty db returned %v, want ErrNotFound", err)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		s.Put("k2", []byte("v1"))
		s.Put("k2", []byte("v2"))
		got, err := s.Get("k2")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != "v2" {
			t.Errorf("Get returned %q, want %q", got, "v2")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		s.Put("k3", []byte("v"))
		if err := s.Delete("k3"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		_, err := s.Get("k3")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Get after Delete returned %v, want ErrNotFound", err)
		}
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		if err := s.Delete("never-existed"); err != nil {
			t.Errorf("Delete of missing key returned %v, want nil", err)
		}
	})

	t.Run("SurvivesReopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reopen.db")
		first, err := NewStoreFromFile(path, nil)
		if err != nil {
			t.Fatalf("could not open db: %v", err)
		}
		if err := first.Put("k", []byte("persisted")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		first.Close()

		second, err := NewStoreFromFile(path, nil)
		if err != nil {
			t.Fatalf("could not reopen db: %v", err)
		}
		defer second.Close()
		got, err := second.Get("k")
		if err != nil {
			t.Fatalf("Get after reopen failed: %v", err)
		}
		if string(got) != "persisted" {
			t.Errorf("Get returned %q, want %q", got, "persisted")
		}
	})
}
