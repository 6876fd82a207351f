package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/bynzo/biblio/internal/capture"
)

// TesseractEngine runs OCR locally through the gosseract client. No
// network, no API key; useful offline or when the proxy is down.
type TesseractEngine struct {
	clientFactory func() *gosseract.Client
}

func NewTesseractEngine() *TesseractEngine {
	return &TesseractEngine{clientFactory: gosseract.NewClient}
}

func (e *TesseractEngine) Name() string { return "tesseract" }

func (e *TesseractEngine) ExtractText(ctx context.Context, img capture.EncodedImage) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	data, err := img.Bytes()
	if err != nil {
		return "", err
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}
