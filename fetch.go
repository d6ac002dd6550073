package sakhanews

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ayakovleva/sakhanews/config"
)

// FetchResult is the outcome of one page fetch: the HTTP status and the
// response body. The body is transient -- nothing retains it past the
// extraction call that consumed it.
type FetchResult struct {
	StatusCode int
	Body       string
}

// OK reports whether the fetch produced usable data. Anything other than
// HTTP 200 counts as "no data from this URL".
func (r *FetchResult) OK() bool {
	return r != nil && r.StatusCode == http.StatusOK
}

// Fetcher performs a single blocking GET. It is passed explicitly into every
// component that needs the network, so tests can substitute a double.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// HTTPFetcher is the production Fetcher. It applies the configured header
// map, per-request timeout, and TLS verification policy to every request.
type HTTPFetcher struct {
	client  *http.Client
	headers map[string]string
}

// NewHTTPFetcher builds a fetcher from the crawl configuration.
func NewHTTPFetcher(cfg *config.Config) *HTTPFetcher {
	transport := http.DefaultTransport
	if !cfg.VerifyTLS {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   time.Duration(cfg.TimeoutSec) * time.Second,
			Transport: transport,
		},
		headers: cfg.Headers,
	}
}

// Fetch issues one GET and reads the whole body. A transport failure returns
// an error; a non-200 status returns a FetchResult that reports !OK().
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range f.headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &FetchResult{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}, nil
}

// fetchDocument fetches url and parses it with goquery. It returns nil with
// no error when the page yielded no data (non-200), so callers can skip the
// URL without treating it as a failure.
func fetchDocument(ctx context.Context, fetcher Fetcher, url string) (*goquery.Document, error) {
	result, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}
