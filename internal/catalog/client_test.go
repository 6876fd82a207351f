package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(url string) *Client {
	return &Client{BaseURL: url, HTTPClient: &http.Client{}, Timeout: 5 * time.Second}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		wantAuthor string
		wantYear   string
	}{
		{
			name:       "full document",
			response:   `{"docs":[{"author_name":["Frank Herbert"],"first_publish_year":1965}]}`,
			wantAuthor: "Frank Herbert",
			wantYear:   "1965",
		},
		{
			name:       "multiple authors joined",
			response:   `{"docs":[{"author_name":["Terry Pratchett","Neil Gaiman"],"first_publish_year":1990}]}`,
			wantAuthor: "Terry Pratchett, Neil Gaiman",
			wantYear:   "1990",
		},
		{
			name:       "year as string",
			response:   `{"docs":[{"author_name":["Frank Herbert"],"first_publish_year":"1965"}]}`,
			wantAuthor: "Frank Herbert",
			wantYear:   "1965",
		},
		{
			name:       "missing fields fall back to sentinels",
			response:   `{"docs":[{}]}`,
			wantAuthor: "Unknown",
			wantYear:   "Unknown",
		},
		{
			name:       "no documents",
			response:   `{"docs":[]}`,
			wantAuthor: "Unknown",
			wantYear:   "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/search.json" {
					t.Errorf("Path = %q, want /search.json", r.URL.Path)
				}
				if got := r.URL.Query().Get("title"); got != "Dune" {
					t.Errorf("title query = %q, want Dune", got)
				}
				if got := r.URL.Query().Get("limit"); got != "1" {
					t.Errorf("limit query = %q, want 1", got)
				}
				if _, err := w.Write([]byte(tt.response)); err != nil {
					t.Fatal(err)
				}
			}))
			defer server.Close()

			meta := newTestClient(server.URL).Lookup(context.Background(), "Dune")
			if meta.Author != tt.wantAuthor {
				t.Errorf("Author = %q, want %q", meta.Author, tt.wantAuthor)
			}
			if meta.Year != tt.wantYear {
				t.Errorf("Year = %q, want %q", meta.Year, tt.wantYear)
			}
		})
	}
}

func TestLookupDegradesToUnknown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	meta := newTestClient(server.URL).Lookup(context.Background(), "Dune")
	if meta != Unknown() {
		t.Errorf("Lookup on failing catalog = %+v, want Unknown sentinels", meta)
	}
}

func TestLookupUnreachableCatalog(t *testing.T) {
	meta := newTestClient("http://127.0.0.1:1").Lookup(context.Background(), "Dune")
	if meta != Unknown() {
		t.Errorf("Lookup on unreachable catalog = %+v, want Unknown sentinels", meta)
	}
}
