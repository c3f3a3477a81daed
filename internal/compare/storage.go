package compare

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Storage persists the compare selection between sessions. Only the id
// list is stored; listings themselves are re-resolved against the
// authoritative source on restore so stale snapshots never render.
type Storage interface {
	Save(ids []string) error
	Load() ([]string, error)
}

// FileStore keeps the id list as a JSON array in a single file, the
// CLI's equivalent of a browser's well-known local-storage key.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes the id list, creating parent directories as needed.
func (f *FileStore) Save(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encoding compare ids: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating storage directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("writing compare ids: %w", err)
	}
	return nil
}

// Load reads the id list. A missing or corrupt file yields an empty
// list: a damaged selection is discarded, not surfaced as an error.
func (f *FileStore) Load() ([]string, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading compare ids: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, nil
	}
	return ids, nil
}

// Restore builds a Set from persisted ids, applying the usual capacity
// and dedup rules to whatever was stored.
func Restore(st Storage, capacity int) (*Set, error) {
	ids, err := st.Load()
	if err != nil {
		return nil, err
	}
	set := NewSet(capacity)
	for _, id := range ids {
		set.Add(id)
	}
	return set, nil
}

// Persist saves the set's current ids.
func Persist(st Storage, set *Set) error {
	return st.Save(set.IDs())
}
