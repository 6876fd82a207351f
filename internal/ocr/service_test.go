package ocr

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/bynzo/biblio/internal/capture"
	"github.com/bynzo/biblio/internal/store"
)

// stubEngine counts invocations so tests can verify cache short-circuits.
type stubEngine struct {
	text  string
	err   error
	calls int
}

func (e *stubEngine) Name() string { return "stub" }

func (e *stubEngine) ExtractText(ctx context.Context, img capture.EncodedImage) (string, error) {
	e.calls++
	return e.text, e.err
}

func TestServiceExtractLines(t *testing.T) {
	engine := &stubEngine{text: "  Dune  \n\nFrank Herbert\n  "}
	service := NewService(engine, store.NewMemoryStore(), 0)
	img := capture.FromBytes([]byte("cover"))

	lines, cached, err := service.ExtractLines(context.Background(), img)
	if err != nil {
		t.Fatalf("ExtractLines failed: %v", err)
	}
	if cached {
		t.Error("First extraction should not be a cache hit")
	}
	want := []string{"Dune", "Frank Herbert"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Lines = %v, want %v", lines, want)
	}
}

func TestServiceCacheHitSkipsEngine(t *testing.T) {
	engine := &stubEngine{text: "Dune"}
	service := NewService(engine, store.NewMemoryStore(), 0)
	img := capture.FromBytes([]byte("cover"))

	if _, _, err := service.ExtractLines(context.Background(), img); err != nil {
		t.Fatal(err)
	}

	lines, cached, err := service.ExtractLines(context.Background(), img)
	if err != nil {
		t.Fatal(err)
	}
	if !cached {
		t.Error("Second extraction should be a cache hit")
	}
	if len(lines) != 1 || lines[0] != "Dune" {
		t.Errorf("Cached lines = %v, want [Dune]", lines)
	}
	if engine.calls != 1 {
		t.Errorf("Engine called %d times, want 1", engine.calls)
	}
}

func TestServiceEmptyTextNotCached(t *testing.T) {
	engine := &stubEngine{text: "   \n  \n"}
	service := NewService(engine, store.NewMemoryStore(), 0)
	img := capture.FromBytes([]byte("blank page"))

	_, _, err := service.ExtractLines(context.Background(), img)
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("Expected ErrNoText, got %v", err)
	}

	// A retry must reach the engine again rather than hit the cache.
	_, _, err = service.ExtractLines(context.Background(), img)
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("Expected ErrNoText on retry, got %v", err)
	}
	if engine.calls != 2 {
		t.Errorf("Engine called %d times, want 2 (empty results must not be cached)", engine.calls)
	}
}

func TestServiceEngineError(t *testing.T) {
	engine := &stubEngine{err: errors.New("vision unavailable")}
	service := NewService(engine, store.NewMemoryStore(), 0)

	_, _, err := service.ExtractLines(context.Background(), capture.FromBytes([]byte("cover")))
	if err == nil {
		t.Fatal("Expected error from failing engine")
	}
	if errors.Is(err, ErrNoText) {
		t.Error("Engine failure should not be reported as ErrNoText")
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "trims and drops blanks", text: " Dune \n\n Frank Herbert \n", want: []string{"Dune", "Frank Herbert"}},
		{name: "single line", text: "Dune", want: []string{"Dune"}},
		{name: "only whitespace", text: "  \n \t \n", want: nil},
		{name: "empty", text: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitLines(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
