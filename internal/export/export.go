// Package export moves the library in and out of portable file formats.
// The format is chosen by file extension: .yaml/.yml, .jsonl, or
// .parquet.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/bynzo/biblio/internal/models"
)

// librarySnapshot is the YAML document wrapping an exported library.
type librarySnapshot struct {
	ExportedAt string        `yaml:"exported_at"`
	Count      int           `yaml:"count"`
	Books      []models.Book `yaml:"books"`
}

// parquetBook is the flat row schema used for Parquet files.
type parquetBook struct {
	Title   string `parquet:"title"`
	Author  string `parquet:"author"`
	Year    string `parquet:"year"`
	Read    bool   `parquet:"read"`
	Rating  int32  `parquet:"rating"`
	Notes   string `parquet:"notes"`
	AddedAt string `parquet:"added_at"`
}

// Write serializes books to path in the format implied by its extension.
func Write(path string, books []models.Book) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return writeYAML(path, books)
	case ".jsonl":
		return writeJSONL(path, books)
	case ".parquet":
		return writeParquet(path, books)
	default:
		return fmt.Errorf("unsupported file format: %s (supported: .yaml, .jsonl, .parquet)", ext)
	}
}

// Read loads books from path in the format implied by its extension.
func Read(path string) ([]models.Book, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return readYAML(path)
	case ".jsonl":
		return readJSONL(path)
	case ".parquet":
		return readParquet(path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .yaml, .jsonl, .parquet)", ext)
	}
}

func writeYAML(path string, books []models.Book) error {
	snapshot := librarySnapshot{
		ExportedAt: time.Now().Format(time.RFC3339),
		Count:      len(books),
		Books:      books,
	}
	data, err := yaml.Marshal(&snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func readYAML(path string) ([]models.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export file: %w", err)
	}
	var snapshot librarySnapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return snapshot.Books, nil
}

func writeJSONL(path string, books []models.Book) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)
	for _, b := range books {
		if err := enc.Encode(b); err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
	}
	return w.Flush()
}

func readJSONL(path string) ([]models.Book, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export file: %w", err)
	}
	defer file.Close()

	var books []models.Book
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var book models.Book
		if err := json.Unmarshal(line, &book); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		books = append(books, book)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading export file: %w", err)
	}
	return books, nil
}

func writeParquet(path string, books []models.Book) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[parquetBook](file)
	rows := make([]parquetBook, 0, len(books))
	for _, b := range books {
		rows = append(rows, parquetBook{
			Title:   b.Title,
			Author:  b.Author,
			Year:    b.Year,
			Read:    b.Read,
			Rating:  int32(b.Rating),
			Notes:   b.Notes,
			AddedAt: b.AddedAt.Format(time.RFC3339),
		})
	}
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	return writer.Close()
}

func readParquet(path string) ([]models.Book, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[parquetBook](pf)
	defer reader.Close()

	var books []models.Book
	rows := make([]parquetBook, 128) // Read in batches
	for {
		n, err := reader.Read(rows)
		for _, row := range rows[:n] {
			book := models.Book{
				Title:  row.Title,
				Author: row.Author,
				Year:   row.Year,
				Read:   row.Read,
				Rating: int(row.Rating),
				Notes:  row.Notes,
			}
			if t, parseErr := time.Parse(time.RFC3339, row.AddedAt); parseErr == nil {
				book.AddedAt = t
			}
			books = append(books, book)
		}
		if err != nil {
			break
		}
	}
	return books, nil
}
