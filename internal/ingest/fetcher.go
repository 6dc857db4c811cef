// Package ingest retrieves network resources referenced by a book.
package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/blackwell-systems/gen-epub-book/internal/cache"
)

// DefaultTimeout bounds a single fetch when no timeout is configured.
const DefaultTimeout = 5 * time.Minute

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "gen-epub-book"

// HTTPFetcher downloads resources over HTTP(S), optionally through a cache.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
	// Cache, when set, serves repeat fetches from disk.
	Cache *cache.Manager
	// Log, when set, receives one line per completed download.
	Log io.Writer
}

// NewHTTPFetcher returns a fetcher whose requests time out after timeout.
// A non-positive timeout selects DefaultTimeout.
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPFetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: userAgent,
	}
}

// Fetch returns the body of u. Anything other than 200 OK is an error.
func (f *HTTPFetcher) Fetch(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	key := u.String()
	if f.Cache != nil && f.Cache.Exists(key) {
		if f.Log != nil {
			fmt.Fprintf(f.Log, "Using cached %s.\n", key)
		}
		return f.Cache.Open(key)
	}

	body, err := f.get(ctx, key)
	if err != nil {
		return nil, err
	}
	r := NewReader(body)

	if f.Cache == nil {
		return &trackedBody{Reader: r, body: body, url: key, log: f.Log}, nil
	}

	_, err = f.Cache.Store(key, r)
	body.Close()
	if err != nil {
		return nil, err
	}
	f.logDone(key, r)
	return f.Cache.Open(key)
}

func (f *HTTPFetcher) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.UserAgent)

	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: status %d", rawURL, resp.StatusCode)
	}
	return resp.Body, nil
}

func (f *HTTPFetcher) logDone(rawURL string, r *Reader) {
	if f.Log != nil {
		fmt.Fprintf(f.Log, "Fetched %s (%s).\n", rawURL, r.Summary())
	}
}

// trackedBody reports the digest of an uncached download once it is closed.
type trackedBody struct {
	*Reader
	body io.Closer
	url  string
	log  io.Writer
	done bool
}

func (b *trackedBody) Close() error {
	if !b.done && b.log != nil {
		b.done = true
		fmt.Fprintf(b.log, "Fetched %s (%s).\n", b.url, b.Summary())
	}
	return b.body.Close()
}
