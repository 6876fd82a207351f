// Package ocr extracts text lines from book images, consulting a local
// cache before calling out to an extraction engine.
package ocr

import (
	"context"
	"fmt"
	"os"

	"github.com/bynzo/biblio/internal/capture"
)

// Engine performs the actual text extraction for one image.
type Engine interface {
	Name() string
	ExtractText(ctx context.Context, img capture.EncodedImage) (string, error)
}

// NewEngine creates an extraction engine by name. An empty name falls
// back to the BIBLIO_OCR_ENGINE environment variable, then to the
// remote proxy.
func NewEngine(name string) (Engine, error) {
	if name == "" {
		name = os.Getenv("BIBLIO_OCR_ENGINE")
	}
	switch name {
	case "proxy", "":
		return NewProxyEngine(), nil
	case "gemini":
		return NewGeminiEngine(), nil
	case "tesseract":
		return NewTesseractEngine(), nil
	default:
		return nil, fmt.Errorf("unsupported OCR engine: %s", name)
	}
}
