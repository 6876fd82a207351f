package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/bynzo/biblio/internal/models"
)

const (
	libraryFile = "library.json"
	cacheFile   = "ocr_cache.json"
	lockFile    = ".biblio.lock"
)

// FileStore keeps each slot in its own JSON file under dataDir. Writes
// go through a temp file and rename, and a file lock guards the
// read-modify-write cycle so two processes sharing a data directory
// cannot silently overwrite each other.
type FileStore struct {
	dir  string
	lock *flock.Flock
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{
		dir:  dataDir,
		lock: flock.New(filepath.Join(dataDir, lockFile)),
	}, nil
}

func (s *FileStore) LoadLibrary() ([]models.Book, error) {
	books := make([]models.Book, 0)
	if err := s.loadSlot(libraryFile, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *FileStore) SaveLibrary(books []models.Book) error {
	if books == nil {
		books = make([]models.Book, 0)
	}
	return s.saveSlot(libraryFile, books)
}

func (s *FileStore) LoadCache() (models.OCRCache, error) {
	cache := make(models.OCRCache)
	if err := s.loadSlot(cacheFile, &cache); err != nil {
		return nil, err
	}
	if cache == nil {
		cache = make(models.OCRCache)
	}
	return cache, nil
}

func (s *FileStore) SaveCache(cache models.OCRCache) error {
	if cache == nil {
		cache = make(models.OCRCache)
	}
	return s.saveSlot(cacheFile, cache)
}

func (s *FileStore) Close() error {
	return nil
}

// loadSlot reads a slot file into out. A missing file or unparsable
// content leaves out at its empty default.
func (s *FileStore) loadSlot(name string, out any) error {
	if err := s.lock.RLock(); err != nil {
		return fmt.Errorf("acquire read lock: %w", err)
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			slog.Error("Unable to release store lock", "err", err)
		}
	}()

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read slot %s: %w", name, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		slog.Warn("Slot content unparsable, treating as empty", "slot", name, "err", err)
	}
	return nil
}

func (s *FileStore) saveSlot(name string, value any) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire write lock: %w", err)
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			slog.Error("Unable to release store lock", "err", err)
		}
	}()

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal slot %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write slot %s: %w", name, err)
	}
	return os.Rename(tmpPath, path)
}
