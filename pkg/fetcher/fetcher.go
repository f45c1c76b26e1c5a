package fetcher

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dtnitsch/linkscout/models"
	"github.com/dtnitsch/linkscout/pkg/caching"
	"github.com/dtnitsch/linkscout/pkg/parser"
	"golang.org/x/net/html/charset"
)

// MaxBodyBytes caps how much of a response body is read. Anything past it
// is dropped.
const MaxBodyBytes = 5 << 20

// Response is a completed HTTP exchange with its body decoded to UTF-8.
type Response struct {
	URL        string
	StatusCode int
	Body       string
}

// OK reports whether the status is in the 2xx-3xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 400
}

type Fetcher struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger
	cache     *caching.Cache
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithTransport replaces the HTTP transport, mostly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.client.Transport = rt
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithCache serves FetchMetadata from cache when possible. Only metadata
// from successful responses is stored.
func WithCache(cache *caching.Cache) Option {
	return func(f *Fetcher) {
		f.cache = cache
	}
}

// NewFetcher builds a fetcher whose every request is bounded by
// config.Timeout and sends config.UserAgent.
func NewFetcher(config *models.CrawlConfig, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: config.Timeout},
		userAgent: config.UserAgent,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Get issues a GET and reads the body, up to MaxBodyBytes. Any status
// code is returned as a Response; only transport and read failures are
// errors.
func (f *Fetcher) Get(url string) (*Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	body, err := charset.NewReader(io.LimitReader(resp.Body, MaxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		URL:        url,
		StatusCode: resp.StatusCode,
		Body:       string(bodyBytes),
	}, nil
}

// FetchMetadata fetches url and returns its title and meta description.
// It never fails: unreachable pages and non-success statuses yield
// models.NotAvailable for both fields.
func (f *Fetcher) FetchMetadata(url string) models.PageMetadata {
	if f.cache != nil {
		if meta, ok := f.cache.Get(url); ok {
			f.logger.Debug("Metadata cache hit", "url", url)
			return meta
		}
	}

	resp, err := f.Get(url)
	if err != nil {
		f.logger.Debug("Metadata fetch failed", "url", url, "error", err)
		return models.UnavailableMetadata()
	}
	if !resp.OK() {
		f.logger.Debug("Metadata fetch returned non-success status", "url", url, "status_code", resp.StatusCode)
		return models.UnavailableMetadata()
	}

	doc, err := parser.Parse(resp.Body)
	if err != nil {
		f.logger.Debug("Metadata parse failed", "url", url, "error", err)
		return models.UnavailableMetadata()
	}

	meta := doc.Metadata()
	if f.cache != nil {
		if err := f.cache.Set(url, meta); err != nil {
			f.logger.Warn("Failed to cache metadata", "url", url, "error", err)
		}
	}
	return meta
}
