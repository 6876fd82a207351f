package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bynzo/biblio/internal/capture"
	"github.com/bynzo/biblio/internal/store"
)

// ErrNoText indicates the engine ran but found no usable text in the
// image. Non-fatal; the scan aborts for that image only.
var ErrNoText = errors.New("no text found in image")

const DefaultTimeout = 15 * time.Second

// Service fronts an extraction engine with the persistent OCR cache.
// A cache hit short-circuits the engine entirely.
type Service struct {
	engine  Engine
	store   store.Store
	timeout time.Duration
}

func NewService(engine Engine, st store.Store, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{engine: engine, store: st, timeout: timeout}
}

// ExtractLines returns the ordered, trimmed, non-empty text lines for
// the image. The second return reports whether the result came from the
// cache. Empty extraction results are reported as ErrNoText and never
// cached.
func (s *Service) ExtractLines(ctx context.Context, img capture.EncodedImage) ([]string, bool, error) {
	key := img.Hash()

	cache, err := s.store.LoadCache()
	if err != nil {
		return nil, false, fmt.Errorf("load OCR cache: %w", err)
	}
	if lines, ok := cache[key]; ok {
		slog.Debug("OCR cache hit", "key", key, "lines", len(lines))
		return lines, true, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.engine.ExtractText(ctx, img)
	if err != nil {
		return nil, false, fmt.Errorf("extract text (%s): %w", s.engine.Name(), err)
	}

	lines := SplitLines(text)
	if len(lines) == 0 {
		return nil, false, ErrNoText
	}

	// Reload before writing so a concurrent scan's entry is not lost.
	cache, err = s.store.LoadCache()
	if err != nil {
		return nil, false, fmt.Errorf("load OCR cache: %w", err)
	}
	cache[key] = lines
	if err := s.store.SaveCache(cache); err != nil {
		return nil, false, fmt.Errorf("save OCR cache: %w", err)
	}

	slog.Info("Extracted OCR text", "engine", s.engine.Name(), "lines", len(lines))
	return lines, false, nil
}

// SplitLines splits raw OCR output into trimmed, non-empty lines.
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
