package store

import (
	"fmt"
	"path/filepath"
)

// New creates a Store based on the backend name.
//
// Supported backends:
//
//	"file"   - JSON files in dataDir (default)
//	"sqlite" - SQLite database at dataDir/biblio.db
//	"memory" - In-memory (ephemeral, for testing)
func New(backend, dataDir string) (Store, error) {
	switch backend {
	case "file", "":
		return NewFileStore(dataDir)
	case "sqlite":
		return NewSqliteStore(filepath.Join(dataDir, "biblio.db"))
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: file, sqlite, memory)", backend)
	}
}
