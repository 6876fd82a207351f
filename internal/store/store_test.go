package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bynzo/biblio/internal/models"
)

func testBooks() []models.Book {
	return []models.Book{
		{Title: "Dune", Author: "Frank Herbert", Year: "1965", Read: true, Rating: 5, AddedAt: time.Now().Truncate(time.Second)},
		{Title: "Neuromancer", Author: "William Gibson", Year: "1984"},
	}
}

func testStores(t *testing.T) map[string]Store {
	t.Helper()

	fileStore, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	sqliteStore, err := NewSqliteStore(filepath.Join(t.TempDir(), "biblio.db"))
	if err != nil {
		t.Fatalf("NewSqliteStore failed: %v", err)
	}

	return map[string]Store{
		"file":   fileStore,
		"sqlite": sqliteStore,
		"memory": NewMemoryStore(),
	}
}

func TestStoreLibraryRoundTrip(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			defer st.Close()

			books, err := st.LoadLibrary()
			if err != nil {
				t.Fatalf("LoadLibrary on empty store failed: %v", err)
			}
			if len(books) != 0 {
				t.Fatalf("Expected empty library, got %d books", len(books))
			}

			want := testBooks()
			if err := st.SaveLibrary(want); err != nil {
				t.Fatalf("SaveLibrary failed: %v", err)
			}

			got, err := st.LoadLibrary()
			if err != nil {
				t.Fatalf("LoadLibrary failed: %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("Loaded %d books, want %d", len(got), len(want))
			}
			if got[0].Title != "Dune" || got[0].Rating != 5 || !got[0].Read {
				t.Errorf("First book corrupted in round trip: %+v", got[0])
			}
			if got[1].Year != "1984" {
				t.Errorf("Year = %q, want 1984", got[1].Year)
			}
		})
	}
}

func TestStoreCacheRoundTrip(t *testing.T) {
	for name, st := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			defer st.Close()

			cache, err := st.LoadCache()
			if err != nil {
				t.Fatalf("LoadCache on empty store failed: %v", err)
			}
			if len(cache) != 0 {
				t.Fatalf("Expected empty cache, got %d entries", len(cache))
			}

			cache["abc123"] = []string{"Dune", "Frank Herbert"}
			if err := st.SaveCache(cache); err != nil {
				t.Fatalf("SaveCache failed: %v", err)
			}

			got, err := st.LoadCache()
			if err != nil {
				t.Fatalf("LoadCache failed: %v", err)
			}
			lines, ok := got["abc123"]
			if !ok || len(lines) != 2 || lines[0] != "Dune" {
				t.Errorf("Cache entry corrupted in round trip: %v", got)
			}
		})
	}
}

func TestFileStoreCorruptSlotTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "library.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	st, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	defer st.Close()

	books, err := st.LoadLibrary()
	if err != nil {
		t.Fatalf("LoadLibrary on corrupt slot should not error, got %v", err)
	}
	if len(books) != 0 {
		t.Errorf("Expected empty library from corrupt slot, got %d books", len(books))
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	st, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.SaveLibrary(testBooks()); err != nil {
		t.Fatal(err)
	}
	st.Close()

	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	books, err := reopened.LoadLibrary()
	if err != nil {
		t.Fatal(err)
	}
	if len(books) != 2 {
		t.Errorf("Expected 2 books after reopen, got %d", len(books))
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		backend string
		wantErr bool
	}{
		{backend: "file"},
		{backend: ""},
		{backend: "sqlite"},
		{backend: "memory"},
		{backend: "redis", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("backend_"+tt.backend, func(t *testing.T) {
			st, err := New(tt.backend, t.TempDir())
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error for unknown backend")
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q) failed: %v", tt.backend, err)
			}
			st.Close()
		})
	}
}
