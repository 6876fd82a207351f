// Package store persists the two durable slots of the application: the
// book library and the OCR result cache. Content that cannot be parsed
// loads as the empty default rather than an error, so a corrupted slot
// never takes the app down.
package store

import "github.com/bynzo/biblio/internal/models"

// Store is the persistence contract shared by all backends. Save fully
// replaces the slot content; last write wins.
type Store interface {
	LoadLibrary() ([]models.Book, error)
	SaveLibrary(books []models.Book) error

	LoadCache() (models.OCRCache, error)
	SaveCache(cache models.OCRCache) error

	Close() error
}
