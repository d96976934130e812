// FilePath: internal/store/store.go
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/Nakib00/IoT-project-Server/internal/errors"
	"github.com/Nakib00/IoT-project-Server/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// EventCorruptionRecovered is emitted when the on-disk document could not be
// parsed and the store fell back to an empty collection. Subscribers should
// make this loud: an empty store and a corrupted one look identical to
// callers otherwise.
const EventCorruptionRecovered = "store.corruption_recovered"

// Store is the single-file JSON document store backing every entity. The
// whole document is read and rewritten on each operation; Update holds the
// store lock across the full read-modify-write cycle, so concurrent mutations
// serialize instead of clobbering each other.
type Store struct {
	path   string
	mu     sync.Mutex
	events *nuts.EventEmitter
}

// New creates a store backed by the JSON file at path. The file is created
// lazily on first write; a missing file reads as an empty collection.
func New(path string) *Store {
	return &Store{
		path:   path,
		events: nuts.NewEventEmitter(),
	}
}

// Events exposes the store's event emitter for corruption diagnostics.
func (s *Store) Events() *nuts.EventEmitter {
	return s.events
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Read returns the full document. A missing or empty file reads as an empty
// collection; malformed content is logged, reported via the event emitter,
// and also reads as an empty collection. Availability over crash-on-bad-data.
func (s *Store) Read() []*models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Update runs mutate under the store lock and persists the returned document.
// Returning an error from mutate aborts the update without writing.
func (s *Store) Update(mutate func(users []*models.User) ([]*models.User, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.load()
	users, err := mutate(users)
	if err != nil {
		return err
	}
	return s.write(users)
}

// load reads and parses the document. Callers must hold s.mu.
func (s *Store) load() []*models.User {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			nuts.L.Errorf("[Store] Error reading %s: %v", s.path, err)
			s.events.Emit(EventCorruptionRecovered, err)
		}
		return []*models.User{}
	}
	if len(data) == 0 {
		return []*models.User{}
	}

	var users []*models.User
	if err := json.Unmarshal(data, &users); err != nil {
		nuts.L.Errorf("[Store] Malformed document in %s, serving empty collection: %v", s.path, err)
		s.events.Emit(EventCorruptionRecovered, err)
		return []*models.User{}
	}
	return users
}

// write serializes the full document and atomically replaces the file.
// Callers must hold s.mu.
func (s *Store) write(users []*models.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return errors.NewStorageError("failed to serialize document", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".users-*.json")
	if err != nil {
		return errors.NewStorageError("failed to create temp file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewStorageError("failed to write document", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewStorageError("failed to flush document", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.NewStorageError("failed to replace document", err)
	}
	return nil
}
