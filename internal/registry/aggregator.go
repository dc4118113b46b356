package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// maxDocumentSize bounds a single registry document.
const maxDocumentSize = 16 << 20

// Aggregator fetches package lists from an ordered set of sources.
type Aggregator struct {
	urls      []string
	client    *http.Client
	userAgent string
	logger    *log.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(a *Aggregator) {
		a.client = c
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(a *Aggregator) {
		a.userAgent = ua
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(a *Aggregator) {
		a.logger = l
	}
}

// NewAggregator creates an Aggregator over the given sources. The order of
// urls is the duplicate tie-break: earlier sources win.
func NewAggregator(urls []string, opts ...Option) *Aggregator {
	a := &Aggregator{
		urls:      append([]string(nil), urls...),
		client:    NewHTTPClient(30 * time.Second),
		userAgent: "upy-registry",
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Sources returns the configured source URLs in order.
func (a *Aggregator) Sources() []string {
	return append([]string(nil), a.urls...)
}

// Fetch downloads every source concurrently and returns their packages
// concatenated in source order, each source in document order. Any failing
// source fails the whole fetch with *RegistryFetchError.
func (a *Aggregator) Fetch(ctx context.Context) ([]Package, error) {
	if len(a.urls) == 0 {
		return nil, &RegistryFetchError{URL: "(none)", Err: fmt.Errorf("no registry sources configured")}
	}

	results := make([][]Package, len(a.urls))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range a.urls {
		g.Go(func() error {
			start := time.Now()
			pkgs, err := a.fetchSource(ctx, src)
			if err != nil {
				return &RegistryFetchError{URL: src, Err: err}
			}
			a.logger.Debug("fetched registry", "url", src, "packages", len(pkgs), "took", time.Since(start).Round(time.Millisecond))
			results[i] = pkgs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, r := range results {
		total += len(r)
	}
	merged := make([]Package, 0, total)
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged, nil
}

// FetchIndex fetches all sources and wraps the result in an Index.
func (a *Aggregator) FetchIndex(ctx context.Context) (*Index, error) {
	pkgs, err := a.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return NewIndex(pkgs), nil
}

func (a *Aggregator) fetchSource(ctx context.Context, src string) ([]Package, error) {
	data, err := a.read(ctx, src)
	if err != nil {
		return nil, err
	}
	return ParseDocument(data)
}

// read loads a source document. http(s) URLs are downloaded; file:// URLs
// and bare paths are read from disk.
func (a *Aggregator) read(ctx context.Context, src string) ([]byte, error) {
	u, err := url.Parse(src)
	if err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return a.download(ctx, src)
		case "file":
			return readLocal(u.Path)
		}
	}
	return readLocal(src)
}

func (a *Aggregator) download(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set("Accept", "application/yaml, text/yaml, text/plain, */*")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{StatusCode: resp.StatusCode, URL: src}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if len(body) > maxDocumentSize {
		return nil, fmt.Errorf("document exceeds %d bytes", maxDocumentSize)
	}
	return body, nil
}

func readLocal(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
