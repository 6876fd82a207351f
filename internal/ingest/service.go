// Package ingest orchestrates the scan workflow: image → OCR (cached) →
// title refinement → catalog lookup → library. Candidates are processed
// strictly sequentially; remote failures degrade per component and
// nothing here is fatal to the process.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bynzo/biblio/internal/capture"
	"github.com/bynzo/biblio/internal/catalog"
	"github.com/bynzo/biblio/internal/library"
	"github.com/bynzo/biblio/internal/ocr"
	"github.com/bynzo/biblio/internal/titles"
)

// Outcome records what happened to one candidate title.
type Outcome struct {
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	Year   string `json:"year,omitempty"`
	Added  bool   `json:"added"`
}

// Report describes one completed scan.
type Report struct {
	ID       string    `json:"id"`
	Source   string    `json:"source,omitempty"`
	Lines    []string  `json:"lines"`
	CacheHit bool      `json:"cache_hit"`
	Outcomes []Outcome `json:"outcomes"`
}

// Added returns the number of candidates added to the library.
func (r *Report) Added() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Added {
			n++
		}
	}
	return n
}

type Service struct {
	ocr     *ocr.Service
	titles  *titles.Resolver
	catalog *catalog.Client
	library *library.Manager
}

func NewService(ocrSvc *ocr.Service, resolver *titles.Resolver, catalogClient *catalog.Client, manager *library.Manager) *Service {
	return &Service{
		ocr:     ocrSvc,
		titles:  resolver,
		catalog: catalogClient,
		library: manager,
	}
}

// Scan runs the full ingest workflow for one image. If the image yields
// no usable text the error wraps ocr.ErrNoText and the library is left
// untouched.
func (s *Service) Scan(ctx context.Context, img capture.EncodedImage, source string) (*Report, error) {
	lines, cacheHit, err := s.ocr.ExtractLines(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", source, err)
	}

	report := &Report{
		ID:       uuid.NewString(),
		Source:   source,
		Lines:    lines,
		CacheHit: cacheHit,
	}

	candidates := s.titles.Resolve(ctx, lines)
	for _, title := range candidates {
		outcome := Outcome{Title: title}

		// Skip the catalog round trip for known titles.
		exists, err := s.library.Contains(title)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", source, err)
		}
		if exists {
			report.Outcomes = append(report.Outcomes, outcome)
			continue
		}

		meta := s.catalog.Lookup(ctx, title)
		outcome.Author = meta.Author
		outcome.Year = meta.Year

		added, err := s.library.AddIfNew(title, meta.Author, meta.Year)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", source, err)
		}
		outcome.Added = added
		report.Outcomes = append(report.Outcomes, outcome)
	}

	slog.Info("Scan complete", "id", report.ID, "source", source, "candidates", len(candidates), "added", report.Added(), "cache_hit", cacheHit)
	return report, nil
}
