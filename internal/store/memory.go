package store

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/bynzo/biblio/internal/models"
)

// MemoryStore holds both slots as serialized blobs in memory. Ephemeral,
// for testing; serialization round-trips match the durable backends.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

func (s *MemoryStore) LoadLibrary() ([]models.Book, error) {
	books := make([]models.Book, 0)
	s.loadSlot(slotLibrary, &books)
	return books, nil
}

func (s *MemoryStore) SaveLibrary(books []models.Book) error {
	if books == nil {
		books = make([]models.Book, 0)
	}
	return s.saveSlot(slotLibrary, books)
}

func (s *MemoryStore) LoadCache() (models.OCRCache, error) {
	cache := make(models.OCRCache)
	s.loadSlot(slotCache, &cache)
	if cache == nil {
		cache = make(models.OCRCache)
	}
	return cache, nil
}

func (s *MemoryStore) SaveCache(cache models.OCRCache) error {
	if cache == nil {
		cache = make(models.OCRCache)
	}
	return s.saveSlot(slotCache, cache)
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) loadSlot(name string, out any) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.slots[name]
	if !ok {
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		slog.Warn("Slot content unparsable, treating as empty", "slot", name, "err", err)
	}
}

func (s *MemoryStore) saveSlot(name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[name] = data
	return nil
}
