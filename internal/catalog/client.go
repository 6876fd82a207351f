// Package catalog looks up book metadata from the Open Library search
// API. Lookup is strictly best-effort: every failure mode yields the
// "Unknown" sentinels rather than an error, so a catalog outage never
// blocks adding a book.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const defaultBaseURL = "https://openlibrary.org"

// Metadata holds the catalog fields attached to a new book record.
type Metadata struct {
	Author string
	Year   string
}

// Unknown returns sentinel metadata for titles the catalog cannot place.
func Unknown() Metadata {
	return Metadata{Author: "Unknown", Year: "Unknown"}
}

// Client queries a bibliographic catalog by title.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

func NewClient(timeout time.Duration) *Client {
	baseURL := os.Getenv("BIBLIO_CATALOG_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
		Timeout:    timeout,
	}
}

// Lookup queries the catalog for the first matching document and
// returns its author and first publication year.
func (c *Client) Lookup(ctx context.Context, title string) Metadata {
	meta, err := c.search(ctx, title)
	if err != nil {
		slog.Debug("Catalog lookup failed, using sentinels", "title", title, "err", err)
		return Unknown()
	}
	return meta
}

func (c *Client) search(ctx context.Context, title string) (Metadata, error) {
	searchURL := fmt.Sprintf("%s/search.json?title=%s&limit=1", c.BaseURL, url.QueryEscape(title))

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return Metadata{}, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Metadata{}, fmt.Errorf("catalog API returned status %d", resp.StatusCode)
	}

	var searchResp struct {
		Docs []struct {
			AuthorName       []string `json:"author_name"`
			FirstPublishYear any      `json:"first_publish_year"`
		} `json:"docs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return Metadata{}, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	if len(searchResp.Docs) == 0 {
		return Metadata{}, fmt.Errorf("no documents found for title %q", title)
	}

	meta := Unknown()
	doc := searchResp.Docs[0]
	if len(doc.AuthorName) > 0 {
		meta.Author = strings.Join(doc.AuthorName, ", ")
	}
	if year := formatYear(doc.FirstPublishYear); year != "" {
		meta.Year = year
	}
	return meta, nil
}

func formatYear(v any) string {
	switch y := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(y)
	case float64:
		return fmt.Sprintf("%.0f", y)
	default:
		return fmt.Sprint(y)
	}
}
