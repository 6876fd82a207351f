package capture

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDataURL(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("fake image bytes"))

	tests := []struct {
		name          string
		input         string
		wantMediaType string
		wantPayload   string
		wantErr       bool
	}{
		{
			name:          "full data URL",
			input:         "data:image/png;base64," + payload,
			wantMediaType: "image/png",
			wantPayload:   payload,
		},
		{
			name:          "bare base64 defaults to jpeg",
			input:         payload,
			wantMediaType: "image/jpeg",
			wantPayload:   payload,
		},
		{
			name:          "data URL without media type",
			input:         "data:;base64," + payload,
			wantMediaType: "image/jpeg",
			wantPayload:   payload,
		},
		{
			name:    "data URL without comma",
			input:   "data:image/png;base64",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ParseDataURL(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDataURL failed: %v", err)
			}
			if img.MediaType != tt.wantMediaType {
				t.Errorf("MediaType = %q, want %q", img.MediaType, tt.wantMediaType)
			}
			if img.Payload != tt.wantPayload {
				t.Errorf("Payload = %q, want %q", img.Payload, tt.wantPayload)
			}
		})
	}
}

func TestFromBytesRoundTrip(t *testing.T) {
	data := []byte("not really a png but content sniffing still runs")
	img := FromBytes(data)

	got, err := img.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("Round trip changed content: %q", got)
	}
	if !strings.Contains(img.DataURL(), ";base64,") {
		t.Errorf("DataURL missing base64 marker: %q", img.DataURL())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cover.jpg")
	if err := os.WriteFile(path, []byte("jpeg bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Payload == "" {
		t.Error("Expected non-empty payload")
	}

	if _, err := Load(filepath.Join(dir, "missing.jpg")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestHashIgnoresEncodingVariance(t *testing.T) {
	data := []byte("same underlying image")

	a := FromBytes(data)
	b := EncodedImage{MediaType: "image/png", Payload: base64.StdEncoding.EncodeToString(data)}

	if a.Hash() != b.Hash() {
		t.Error("Same bytes under different media types should hash identically")
	}

	c := FromBytes([]byte("different image"))
	if a.Hash() == c.Hash() {
		t.Error("Different bytes should hash differently")
	}
}

func TestHashUndecodablePayload(t *testing.T) {
	img := EncodedImage{MediaType: "image/jpeg", Payload: "not!base64!!"}
	if img.Hash() == "" {
		t.Error("Hash should fall back to hashing the payload text")
	}
}
