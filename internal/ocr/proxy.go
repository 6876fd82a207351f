package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/bynzo/biblio/internal/capture"
)

const defaultProxyURL = "https://biblio-c1en.onrender.com/proxy-google-vision"

// ProxyEngine calls the Vision proxy endpoint: a POST carrying the
// base64 payload, answered with Vision-style annotations.
type ProxyEngine struct {
	Endpoint   string
	HTTPClient *http.Client
}

func NewProxyEngine() *ProxyEngine {
	endpoint := os.Getenv("BIBLIO_OCR_URL")
	if endpoint == "" {
		endpoint = defaultProxyURL
	}
	return &ProxyEngine{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{},
	}
}

func (e *ProxyEngine) Name() string { return "proxy" }

func (e *ProxyEngine) ExtractText(ctx context.Context, img capture.EncodedImage) (string, error) {
	payload, err := json.Marshal(map[string]string{"image": img.Payload})
	if err != nil {
		return "", fmt.Errorf("marshal OCR request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create OCR request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call OCR endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("OCR endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	// Accept any of the Vision response shapes, preferring the full
	// document text over the per-annotation description.
	var ocrResp struct {
		FullTextAnnotation struct {
			Text string `json:"text"`
		} `json:"fullTextAnnotation"`
		Text            string `json:"text"`
		TextAnnotations []struct {
			Description string `json:"description"`
		} `json:"textAnnotations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ocrResp); err != nil {
		return "", fmt.Errorf("decode OCR response: %w", err)
	}

	if ocrResp.FullTextAnnotation.Text != "" {
		return ocrResp.FullTextAnnotation.Text, nil
	}
	if ocrResp.Text != "" {
		return ocrResp.Text, nil
	}
	if len(ocrResp.TextAnnotations) > 0 {
		return ocrResp.TextAnnotations[0].Description, nil
	}
	return "", nil
}
