package ocr

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/bynzo/biblio/internal/capture"
)

const geminiOCRPrompt = `You are performing OCR on a photo of a book cover or spine.

Transcribe ALL visible text exactly as it appears, one text element per
line, preserving order from top to bottom. Do not add commentary or
explanations. Provide ONLY the transcribed text.`

// GeminiEngine extracts text with Google Gemini vision models.
type GeminiEngine struct{}

func NewGeminiEngine() *GeminiEngine {
	return &GeminiEngine{}
}

func (e *GeminiEngine) Name() string { return "gemini" }

func (e *GeminiEngine) ExtractText(ctx context.Context, img capture.EncodedImage) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create new gemini client: %w", err)
	}
	defer client.Close()

	modelName := os.Getenv("GEMINI_MODEL")
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	data, err := img.Bytes()
	if err != nil {
		return "", err
	}
	format := strings.TrimPrefix(img.MediaType, "image/")
	if format == "" || format == img.MediaType {
		format = "jpeg"
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.0)

	resp, err := model.GenerateContent(ctx, genai.ImageData(format, data), genai.Text(geminiOCRPrompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from Gemini")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("empty content returned from Gemini")
	}
	if txt, ok := candidate.Content.Parts[0].(genai.Text); ok {
		return string(txt), nil
	}
	return "", fmt.Errorf("unexpected response format from Gemini")
}
