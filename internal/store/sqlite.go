package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bynzo/biblio/internal/models"
)

const (
	slotLibrary = "library"
	slotCache   = "ocr_cache"
)

// SqliteStore keeps both slots in a single SQLite database, one row per
// slot with the serialized content as a JSON blob.
type SqliteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

func NewSqliteStore(dbPath string) (*SqliteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS slots (
		name TEXT PRIMARY KEY,
		data TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, err
	}
	return &SqliteStore{db: db}, nil
}

func (s *SqliteStore) LoadLibrary() ([]models.Book, error) {
	books := make([]models.Book, 0)
	if err := s.loadSlot(slotLibrary, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *SqliteStore) SaveLibrary(books []models.Book) error {
	if books == nil {
		books = make([]models.Book, 0)
	}
	return s.saveSlot(slotLibrary, books)
}

func (s *SqliteStore) LoadCache() (models.OCRCache, error) {
	cache := make(models.OCRCache)
	if err := s.loadSlot(slotCache, &cache); err != nil {
		return nil, err
	}
	if cache == nil {
		cache = make(models.OCRCache)
	}
	return cache, nil
}

func (s *SqliteStore) SaveCache(cache models.OCRCache) error {
	if cache == nil {
		cache = make(models.OCRCache)
	}
	return s.saveSlot(slotCache, cache)
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) loadSlot(name string, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	err := s.db.QueryRow("SELECT data FROM slots WHERE name = ?", name).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read slot %s: %w", name, err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		slog.Warn("Slot content unparsable, treating as empty", "slot", name, "err", err)
	}
	return nil
}

func (s *SqliteStore) saveSlot(name string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal slot %s: %w", name, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO slots (name, data) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data`,
		name, string(data),
	)
	return err
}
