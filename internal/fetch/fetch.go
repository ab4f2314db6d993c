// ABOUTME: HTTP feed fetcher with content negotiation and DoS protection
// ABOUTME: Fetches a feed URL and returns normalized items; failures never panic the pipeline

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mio/newsgather/internal/feed"
	"github.com/mio/newsgather/internal/models"
)

// MaxResponseSize bounds the feed body read from a server.
const MaxResponseSize = 10 * 1024 * 1024 // 10MB

// UserAgent identifies the fetcher to feed servers.
const UserAgent = "newsgather/1.0 (+https://github.com/mio/newsgather)"

// acceptHeader covers the RSS/Atom mime family; plain XML and anything else
// are accepted at lower priority since feed servers mislabel freely.
const acceptHeader = "application/rss+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"

// DefaultTimeout applies when the caller's context carries no deadline.
const DefaultTimeout = 30 * time.Second

var httpClient = &http.Client{}

// Fetch retrieves the raw document at urlStr. Non-2xx responses and
// oversized bodies are errors.
func Fetch(ctx context.Context, urlStr string) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	limitedReader := io.LimitReader(resp.Body, MaxResponseSize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response too large (exceeds %d bytes)", MaxResponseSize)
	}

	return body, nil
}

// FetchFeed fetches and parses a feed URL into normalized items. A transport
// failure returns (nil, err); callers record the error and carry on with
// zero items. A fetched document that parses to nothing is
// not an error: feeds can legitimately be empty.
func FetchFeed(ctx context.Context, urlStr string) ([]models.FeedItem, error) {
	body, err := Fetch(ctx, urlStr)
	if err != nil {
		return nil, err
	}
	return feed.Parse(string(body)), nil
}
