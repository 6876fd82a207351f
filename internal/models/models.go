package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Book represents a single record in the library.
type Book struct {
	Title   string    `json:"title" yaml:"title"`
	Author  string    `json:"author" yaml:"author"`
	Year    string    `json:"year" yaml:"year"`
	Read    bool      `json:"read" yaml:"read"`
	Rating  int       `json:"rating" yaml:"rating"`
	Notes   string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	AddedAt time.Time `json:"added_at" yaml:"added_at"`
}

// UnmarshalJSON normalizes records written by older revisions of the app:
// year may be a JSON number or a string, and read/rating/notes may be
// absent entirely. Out-of-range ratings reset to unrated.
func (b *Book) UnmarshalJSON(data []byte) error {
	type alias Book
	aux := struct {
		Year any `json:"year"`
		*alias
	}{alias: (*alias)(b)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	switch y := aux.Year.(type) {
	case nil:
		b.Year = ""
	case string:
		b.Year = strings.TrimSpace(y)
	case float64:
		b.Year = strconv.FormatInt(int64(y), 10)
	default:
		b.Year = fmt.Sprint(y)
	}

	if b.Rating < 0 || b.Rating > 5 {
		b.Rating = 0
	}
	return nil
}

// OCRCache maps an image content hash to the trimmed, non-empty text
// lines previously extracted from that image.
type OCRCache map[string][]string

// Lines returns the total number of cached text lines.
func (c OCRCache) Lines() int {
	n := 0
	for _, lines := range c {
		n += len(lines)
	}
	return n
}
