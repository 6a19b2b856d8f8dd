package ingest

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidMonth reports whether s is a publication month in YYYY-MM form.
func ValidMonth(s string) bool {
	return monthPattern.MatchString(s)
}

// ArchiveFetcher downloads one month's notice-export archive. The extraction
// core never touches the network; this is the outer collaborator that hands
// it an on-disk archive.
type ArchiveFetcher struct {
	Client     *http.Client
	Endpoint   string
	Format     string
	MaxRetries int
}

func NewArchiveFetcher(cfg *Config) *ArchiveFetcher {
	timeout := time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &ArchiveFetcher{
		Client:     &http.Client{Timeout: timeout},
		Endpoint:   cfg.Endpoint,
		Format:     cfg.Format,
		MaxRetries: cfg.Fetch.MaxRetries,
	}
}

// FetchMonth downloads the archive for a month (YYYY-MM) into dataDir and
// returns the saved path. Retries with backoff on transient status codes.
func (f *ArchiveFetcher) FetchMonth(ctx context.Context, month, dataDir string) (string, error) {
	if !ValidMonth(month) {
		return "", fmt.Errorf("invalid month %q, want YYYY-MM", month)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}

	reqURL, err := url.Parse(f.Endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}
	q := reqURL.Query()
	q.Set("pubMonth", month)
	q.Set("format", f.Format)
	reqURL.RawQuery = q.Encode()

	var lastErr error
	for attempt := 0; attempt <= f.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(500*(1<<uint(attempt-1))) * time.Millisecond
			jitter := time.Duration(rand.Intn(100)) * time.Millisecond
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff + jitter):
			}
		}

		req, err := http.NewRequestWithContext(ctx, "GET", reqURL.String(), nil)
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/zip")

		resp, err := f.Client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("status code %d", resp.StatusCode)
			if retryableStatus(resp.StatusCode) {
				continue
			}
			return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		path := filepath.Join(dataDir, fmt.Sprintf("eforms_%s.zip", month))
		if err := saveBody(path, resp.Body); err != nil {
			resp.Body.Close()
			return "", err
		}
		resp.Body.Close()
		return path, nil
	}

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func saveBody(path string, body io.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive file: %w", err)
	}
	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		os.Remove(path)
		return fmt.Errorf("write archive: %w", err)
	}
	return out.Close()
}
