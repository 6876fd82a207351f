// Package titles refines raw OCR lines into clean title candidates via
// the remote filter endpoint, falling back to the raw lines on any
// failure. Title quality degradation is preferable to blocking a scan,
// so the fallback is silent.
package titles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultFilterURL = "https://biblio-c1en.onrender.com/filter-title"

type Resolver struct {
	Endpoint   string
	HTTPClient *http.Client
	Timeout    time.Duration
}

func NewResolver(timeout time.Duration) *Resolver {
	endpoint := os.Getenv("BIBLIO_FILTER_URL")
	if endpoint == "" {
		endpoint = defaultFilterURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Resolver{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{},
		Timeout:    timeout,
	}
}

// Resolve asks the filter endpoint once for the whole scan, joining the
// lines with newlines. The endpoint may answer with a single best title
// or an array of titles; anything else leaves the raw lines standing as
// their own candidates, one line per title.
func (r *Resolver) Resolve(ctx context.Context, lines []string) []string {
	if len(lines) == 0 {
		return nil
	}

	filtered, err := r.filter(ctx, lines)
	if err != nil {
		slog.Debug("Title filter unavailable, using raw lines", "err", err)
		return lines
	}
	if len(filtered) == 0 {
		return lines
	}
	return filtered
}

func (r *Resolver) filter(ctx context.Context, lines []string) ([]string, error) {
	payload, err := json.Marshal(map[string]string{"text": strings.Join(lines, "\n")})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("filter endpoint returned status %d", resp.StatusCode)
	}

	var filterResp struct {
		Title  string   `json:"title"`
		Titles []string `json:"titles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&filterResp); err != nil {
		return nil, err
	}

	if len(filterResp.Titles) > 0 {
		var titles []string
		for _, t := range filterResp.Titles {
			t = strings.TrimSpace(t)
			if t != "" {
				titles = append(titles, t)
			}
		}
		return titles, nil
	}
	if t := strings.TrimSpace(filterResp.Title); t != "" {
		return []string{t}, nil
	}
	return nil, nil
}
