// Package prefs is the browser-local persistence of the original web
// client, modelled as an injected store: activity log, stock value
// history and table column layout live outside the database and outside
// the pure engines. Missing or unparsable data falls back to a default
// instead of failing.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store loads and saves one named JSON document.
type Store interface {
	Load(key string, out any) error
	Save(key string, value any) error
}

// ErrMissing is returned by Load when nothing was saved under the key.
var ErrMissing = errors.New("prefs: no saved value")

// FileStore keeps each key as a JSON file under a directory.
type FileStore struct {
	Dir string

	mu sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create prefs dir: %w", err)
	}
	return &FileStore{Dir: dir}, nil
}

func (s *FileStore) Load(key string, out any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return ErrMissing
		}
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		// Corrupt saved state counts as missing so startup always works.
		return ErrMissing
	}
	return nil
}

func (s *FileStore) Save(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(key))
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.Dir, key+".json")
}
