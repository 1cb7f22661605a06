// ABOUTME: JSON-file bird storage holding the whole journal in memory.
// ABOUTME: Loads birds.json once on open and rewrites it in full after every mutation.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/2389-research/birdlog/internal/logger"
	"github.com/2389-research/birdlog/internal/models"
)

// DefaultFileName is the backing file name inside the data directory.
const DefaultFileName = "birds.json"

// corruptSuffix is appended to a malformed backing file when it is set aside.
const corruptSuffix = ".corrupt"

// BirdJSONStore keeps sightings in memory and mirrors them to a single JSON file.
type BirdJSONStore struct {
	mu      sync.Mutex
	path    string
	birds   []models.Bird
	log     logger.Logger
	loadErr error // diagnostic from the initial load, nil if the file was clean or absent
}

// StoreOption configures optional BirdJSONStore dependencies.
type StoreOption func(*BirdJSONStore)

// WithLogger sets the logger used for load diagnostics and write failures.
func WithLogger(l logger.Logger) StoreOption {
	return func(s *BirdJSONStore) {
		s.log = l
	}
}

// NewBirdJSONStore opens the journal at path, loading it if the file exists.
// A malformed file is moved aside and the store starts empty; see LoadDiagnostic.
// Read failures other than a missing file are returned as *PersistError.
func NewBirdJSONStore(path string, opts ...StoreOption) (*BirdJSONStore, error) {
	s := &BirdJSONStore{
		path:  path,
		birds: []models.Bird{},
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file location.
func (s *BirdJSONStore) Path() string {
	return s.path
}

// LoadDiagnostic reports a problem found while loading: a malformed file
// (wrapping ErrCorruptJournal) or records dropped for duplicate IDs.
func (s *BirdJSONStore) LoadDiagnostic() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// FindAll returns a copy of all sightings in insertion order.
func (s *BirdJSONStore) FindAll() []models.Bird {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Bird, len(s.birds))
	copy(out, s.birds)
	return out
}

// FindByID returns the first sighting with the given ID.
func (s *BirdJSONStore) FindByID(id string) (models.Bird, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.birds[i], true
	}
	return models.Bird{}, false
}

// Create assigns a new ID to bird, appends it, and persists the journal.
// On failure the journal is left as it was and bird.ID is not changed.
func (s *BirdJSONStore) Create(bird *models.Bird) error {
	if bird == nil {
		return fmt.Errorf("bird is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record := *bird
	record.ID = uuid.New().String()

	next := make([]models.Bird, len(s.birds), len(s.birds)+1)
	copy(next, s.birds)
	next = append(next, record)

	if err := s.commit(next); err != nil {
		return err
	}
	bird.ID = record.ID
	return nil
}

// Update replaces the first sighting sharing bird's ID. Unknown IDs are a no-op.
func (s *BirdJSONStore) Update(bird models.Bird) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(bird.ID)
	if i < 0 {
		s.log.Debug("update skipped, unknown bird", logger.String("id", bird.ID))
		return nil
	}

	next := make([]models.Bird, len(s.birds))
	copy(next, s.birds)
	next[i] = bird
	return s.commit(next)
}

// Delete removes every sighting sharing bird's ID. Unknown IDs are a no-op.
func (s *BirdJSONStore) Delete(bird models.Bird) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]models.Bird, 0, len(s.birds))
	for _, b := range s.birds {
		if !b.SameID(bird) {
			next = append(next, b)
		}
	}
	if len(next) == len(s.birds) {
		s.log.Debug("delete skipped, unknown bird", logger.String("id", bird.ID))
		return nil
	}
	return s.commit(next)
}

// Close releases any resources held by the store.
func (s *BirdJSONStore) Close() error {
	return nil
}

// indexOf returns the position of the first sighting with id, or -1. Caller holds mu.
func (s *BirdJSONStore) indexOf(id string) int {
	for i, b := range s.birds {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// commit persists next and, only if that succeeds, makes it the live collection. Caller holds mu.
func (s *BirdJSONStore) commit(next []models.Bird) error {
	if err := s.save(next); err != nil {
		s.log.Error("failed to save journal", logger.String("path", s.path), logger.Error(err))
		return err
	}
	s.birds = next
	return nil
}

// save serializes birds and overwrites the backing file in full.
func (s *BirdJSONStore) save(birds []models.Bird) error {
	data, err := encodeBirds(birds)
	if err != nil {
		return &PersistError{Op: "save", Path: s.path, Err: err}
	}
	if err := atomicWrite(s.path, data); err != nil {
		return &PersistError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

// load reads the backing file into memory. Runs once, from the constructor.
func (s *BirdJSONStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debug("no journal file, starting empty", logger.String("path", s.path))
			return nil
		}
		return &PersistError{Op: "load", Path: s.path, Err: err}
	}

	birds, err := decodeBirds(data)
	if err != nil {
		s.loadErr = fmt.Errorf("%w: %s: %v", ErrCorruptJournal, s.path, err)
		s.setAsideCorrupt()
		return nil
	}

	birds, dropped := dedupeByID(birds)
	if dropped > 0 {
		s.loadErr = fmt.Errorf("journal %s: dropped %d records with duplicate ids", s.path, dropped)
		s.log.Warn("duplicate bird ids in journal", logger.String("path", s.path), logger.Int("dropped", dropped))
	}

	s.birds = birds
	s.log.Debug("journal loaded", logger.String("path", s.path), logger.Int("birds", len(birds)))
	return nil
}

// setAsideCorrupt renames a malformed backing file so the next save cannot overwrite it.
func (s *BirdJSONStore) setAsideCorrupt() {
	backup := s.path + corruptSuffix
	if err := os.Rename(s.path, backup); err != nil {
		s.log.Error("journal is corrupt and could not be moved aside",
			logger.String("path", s.path), logger.Error(err))
		return
	}
	s.log.Warn("journal is corrupt, starting empty",
		logger.String("path", s.path),
		logger.String("backup", backup),
		logger.Error(s.loadErr))
}

// encodeBirds renders the collection as an indented JSON array.
func encodeBirds(birds []models.Bird) ([]byte, error) {
	if birds == nil {
		birds = []models.Bird{}
	}
	return json.MarshalIndent(birds, "", "  ")
}

// decodeBirds parses a JSON array of birds. A JSON null decodes to an empty collection.
func decodeBirds(data []byte) ([]models.Bird, error) {
	var birds []models.Bird
	if err := json.Unmarshal(data, &birds); err != nil {
		return nil, err
	}
	if birds == nil {
		birds = []models.Bird{}
	}
	return birds, nil
}

// dedupeByID keeps the first record for each ID and reports how many were dropped.
func dedupeByID(birds []models.Bird) ([]models.Bird, int) {
	seen := make(map[string]struct{}, len(birds))
	out := make([]models.Bird, 0, len(birds))
	for _, b := range birds {
		if _, ok := seen[b.ID]; ok {
			continue
		}
		seen[b.ID] = struct{}{}
		out = append(out, b)
	}
	return out, len(birds) - len(out)
}
