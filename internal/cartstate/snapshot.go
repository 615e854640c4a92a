package cartstate

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// SnapshotStore is the durable local cart snapshot: a single serialized
// value, present or absent. Implementations must make Save atomic — a
// reader never observes a half-written snapshot.
type SnapshotStore interface {
	Load() (value string, ok bool, err error)
	Save(value string) error
	Clear() error
}

// FileSnapshotStore keeps the snapshot in a single file, written via a
// temp file and rename.
type FileSnapshotStore struct {
	path string
}

// NewFileSnapshotStore builds a store writing to the given path. Parent
// directories are created on the first Save.
func NewFileSnapshotStore(path string) (*FileSnapshotStore, error) {
	if path == "" {
		return nil, fmt.Errorf("snapshot path is required")
	}
	return &FileSnapshotStore{path: path}, nil
}

func (f *FileSnapshotStore) Load() (string, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read snapshot: %w", err)
	}
	return string(data), true, nil
}

func (f *FileSnapshotStore) Save(value string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".cart-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (f *FileSnapshotStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}

// MemorySnapshotStore is an in-process store for tests and ephemeral use.
type MemorySnapshotStore struct {
	mu    sync.Mutex
	value string
	set   bool
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

func (m *MemorySnapshotStore) Load() (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value, m.set, nil
}

func (m *MemorySnapshotStore) Save(value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = value
	m.set = true
	return nil
}

func (m *MemorySnapshotStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = ""
	m.set = false
	return nil
}
