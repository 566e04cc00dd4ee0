package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/MosheOgalbo/boa-home-assignment/internal/errors"
	"github.com/MosheOgalbo/boa-home-assignment/savedcart"
)

// SavedCartKey is the single local key holding the last saved snapshot.
const SavedCartKey = "savedCart"

// LocalStore is the per-installation key-value cache.
type LocalStore interface {
	Write(ctx context.Context, key string, value []byte) error
	Read(ctx context.Context, key string) ([]byte, error)
}

// Snapshot is the value stored under SavedCartKey.
type Snapshot struct {
	Items []savedcart.SavedItem `json:"items"`
}

// ReadSnapshot loads the locally cached snapshot. A missing key yields errors.ErrNotFound.
func ReadSnapshot(ctx context.Context, store LocalStore) (Snapshot, error) {
	raw, err := store.Read(ctx, SavedCartKey)
	if err != nil {
		return Snapshot{}, err
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode local snapshot: %w", err)
	}
	if snap.Items == nil {
		snap.Items = []savedcart.SavedItem{}
	}
	return snap, nil
}

func writeSnapshot(ctx context.Context, store LocalStore, items []savedcart.SavedItem) error {
	raw, err := json.Marshal(Snapshot{Items: items})
	if err != nil {
		return err
	}
	return store.Write(ctx, SavedCartKey, raw)
}

// MemoryStore keeps values in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte

	// FailWrites makes every Write fail.
	FailWrites error
}

var _ LocalStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (m *MemoryStore) Write(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// FileStore keeps one file per key under dir. Writes go through a temp file and a rename.
type FileStore struct {
	dir string
}

var _ LocalStore = (*FileStore)(nil)

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (f *FileStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", errors.Wrapf(errors.ErrInvalidRequest, "invalid local store key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *FileStore) Write(_ context.Context, key string, value []byte) error {
	target, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("local store: %w", err)
	}
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("local store: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("local store: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("local store: close %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("local store: rename %s: %w", key, err)
	}
	return nil
}

func (f *FileStore) Read(_ context.Context, key string) ([]byte, error) {
	target, err := f.path(key)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(target)
	if os.IsNotExist(err) {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("local store: read %s: %w", key, err)
	}
	return raw, nil
}
