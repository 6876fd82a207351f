// Package library manages the book collection. Every mutating
// operation reloads the current state from the store, applies the
// change, and persists the whole collection, so the store stays the
// single source of truth and stale in-memory copies cannot lose
// updates.
package library

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bynzo/biblio/internal/models"
	"github.com/bynzo/biblio/internal/store"
)

var ErrNotFound = errors.New("book not found")

type Manager struct {
	store store.Store
}

func NewManager(st store.Store) *Manager {
	return &Manager{store: st}
}

// List returns the current library contents.
func (m *Manager) List() ([]models.Book, error) {
	return m.store.LoadLibrary()
}

// Contains reports whether a title is already in the library, matched
// case-insensitively.
func (m *Manager) Contains(title string) (bool, error) {
	books, err := m.store.LoadLibrary()
	if err != nil {
		return false, err
	}
	return containsTitle(books, title), nil
}

// AddIfNew appends a new record unless the title is already present
// (case-insensitive exact match). Returns false on a duplicate.
func (m *Manager) AddIfNew(title, author, year string) (bool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return false, fmt.Errorf("title is required")
	}

	books, err := m.store.LoadLibrary()
	if err != nil {
		return false, err
	}
	if containsTitle(books, title) {
		return false, nil
	}

	books = append(books, models.Book{
		Title:   title,
		Author:  author,
		Year:    year,
		Read:    false,
		Rating:  0,
		AddedAt: time.Now(),
	})
	if err := m.store.SaveLibrary(books); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the record at index.
func (m *Manager) Delete(index int) error {
	return m.mutate(index, func(books []models.Book) []models.Book {
		return append(books[:index], books[index+1:]...)
	})
}

// ToggleRead flips the read flag of the record at index.
func (m *Manager) ToggleRead(index int) error {
	return m.mutate(index, func(books []models.Book) []models.Book {
		books[index].Read = !books[index].Read
		return books
	})
}

// SetRating assigns a rating of 1 through 5 to the record at index.
func (m *Manager) SetRating(index, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}
	return m.mutate(index, func(books []models.Book) []models.Book {
		books[index].Rating = rating
		return books
	})
}

// SetNotes replaces the free-text notes of the record at index.
func (m *Manager) SetNotes(index int, notes string) error {
	return m.mutate(index, func(books []models.Book) []models.Book {
		books[index].Notes = strings.TrimSpace(notes)
		return books
	})
}

// Edit updates title, author and year of the record at index. A field
// that is blank after trimming keeps its prior value.
func (m *Manager) Edit(index int, title, author, year string) error {
	return m.mutate(index, func(books []models.Book) []models.Book {
		if t := strings.TrimSpace(title); t != "" {
			books[index].Title = t
		}
		if a := strings.TrimSpace(author); a != "" {
			books[index].Author = a
		}
		if y := strings.TrimSpace(year); y != "" {
			books[index].Year = y
		}
		return books
	})
}

// Merge imports records, skipping titles already present. Imported
// records keep their read/rating/notes fields. Returns the number of
// records added.
func (m *Manager) Merge(imported []models.Book) (int, error) {
	books, err := m.store.LoadLibrary()
	if err != nil {
		return 0, err
	}

	added := 0
	for _, b := range imported {
		b.Title = strings.TrimSpace(b.Title)
		if b.Title == "" || containsTitle(books, b.Title) {
			continue
		}
		if b.AddedAt.IsZero() {
			b.AddedAt = time.Now()
		}
		books = append(books, b)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	if err := m.store.SaveLibrary(books); err != nil {
		return 0, err
	}
	return added, nil
}

func (m *Manager) mutate(index int, fn func([]models.Book) []models.Book) error {
	books, err := m.store.LoadLibrary()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(books) {
		return fmt.Errorf("%w: index %d", ErrNotFound, index)
	}
	return m.store.SaveLibrary(fn(books))
}

func containsTitle(books []models.Book, title string) bool {
	for _, b := range books {
		if strings.EqualFold(b.Title, title) {
			return true
		}
	}
	return false
}

// Stars renders a 0..5 rating as filled and empty star indicators.
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}
