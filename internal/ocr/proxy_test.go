package ocr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bynzo/biblio/internal/capture"
)

func TestProxyEngineExtractText(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "full text annotation preferred",
			response: `{"fullTextAnnotation":{"text":"Dune\nFrank Herbert"},"textAnnotations":[{"description":"ignored"}]}`,
			want:     "Dune\nFrank Herbert",
		},
		{
			name:     "flat text field",
			response: `{"text":"Dune"}`,
			want:     "Dune",
		},
		{
			name:     "first text annotation as fallback",
			response: `{"textAnnotations":[{"description":"Dune"},{"description":"Frank"}]}`,
			want:     "Dune",
		},
		{
			name:     "empty response yields empty text",
			response: `{}`,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != "POST" {
					t.Errorf("Expected POST, got %s", r.Method)
				}
				var req struct {
					Image string `json:"image"`
				}
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("Request body not JSON: %v", err)
				}
				if req.Image == "" {
					t.Error("Expected image payload in request")
				}
				w.Header().Set("Content-Type", "application/json")
				if _, err := w.Write([]byte(tt.response)); err != nil {
					t.Fatal(err)
				}
			}))
			defer server.Close()

			engine := &ProxyEngine{Endpoint: server.URL, HTTPClient: server.Client()}
			got, err := engine.ExtractText(context.Background(), capture.FromBytes([]byte("image")))
			if err != nil {
				t.Fatalf("ExtractText failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProxyEngineErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	engine := &ProxyEngine{Endpoint: server.URL, HTTPClient: server.Client()}
	if _, err := engine.ExtractText(context.Background(), capture.FromBytes([]byte("image"))); err == nil {
		t.Error("Expected error for non-200 status")
	}
}

func TestNewEngine(t *testing.T) {
	tests := []struct {
		name     string
		wantName string
		wantErr  bool
	}{
		{name: "proxy", wantName: "proxy"},
		{name: "", wantName: "proxy"},
		{name: "tesseract", wantName: "tesseract"},
		{name: "azure-vision", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("engine_"+tt.name, func(t *testing.T) {
			t.Setenv("BIBLIO_OCR_ENGINE", "")
			engine, err := NewEngine(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error for unsupported engine")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewEngine(%q) failed: %v", tt.name, err)
			}
			if engine.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", engine.Name(), tt.wantName)
			}
		})
	}
}
