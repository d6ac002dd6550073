package sakhanews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayakovleva/sakhanews/config"
)

// fakeFetcher serves canned pages and counts every request.
type fakeFetcher struct {
	pages map[string]*FetchResult
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*FetchResult, error) {
	f.calls++
	if result, ok := f.pages[url]; ok {
		return result, nil
	}
	return nil, fmt.Errorf("no route to %s", url)
}

// Test helper: an HTML page linking to the given article URLs
func seedPage(articleURLs ...string) *FetchResult {
	body := "<html><body>"
	for _, u := range articleURLs {
		body += fmt.Sprintf(`<a href="%s">item</a>`, u)
	}
	body += `<a href="https://gtrksakha.ru/about">about</a></body></html>`
	return &FetchResult{StatusCode: http.StatusOK, Body: body}
}

// Test helper: crawl configuration over the given seeds
func crawlConfig(target int, seeds ...string) *config.Config {
	return &config.Config{
		SeedURLs:      seeds,
		TotalArticles: target,
		Headers:       map[string]string{},
		Encoding:      "utf-8",
		TimeoutSec:    5,
		VerifyTLS:     true,
	}
}

// TestDiscover_TargetCutoff verifies a page with three qualifying anchors
// yields exactly the target count of two
func TestDiscover_TargetCutoff(t *testing.T) {
	seed := "https://gtrksakha.ru/news/"
	fetcher := &fakeFetcher{pages: map[string]*FetchResult{
		seed: seedPage(
			"https://gtrksakha.ru/news/1",
			"https://gtrksakha.ru/news/2",
			"https://gtrksakha.ru/news/3",
		),
	}}

	crawler := NewCrawler(crawlConfig(2, seed), fetcher, MemoryStore{})
	urls, err := crawler.Discover(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://gtrksakha.ru/news/1",
		"https://gtrksakha.ru/news/2",
	}, urls, "should stop at the target count, in document order")
}

// TestDiscover_NoMatchingAnchors verifies a seed page without article links
// yields an empty frontier and no error
func TestDiscover_NoMatchingAnchors(t *testing.T) {
	seed := "https://gtrksakha.ru/news/"
	fetcher := &fakeFetcher{pages: map[string]*FetchResult{
		seed: {StatusCode: http.StatusOK, Body: `<html><body><a href="/about">about</a></body></html>`},
	}}

	crawler := NewCrawler(crawlConfig(5, seed), fetcher, MemoryStore{})
	urls, err := crawler.Discover(context.Background())
	require.NoError(t, err)

	assert.Empty(t, urls)
}

// TestDiscover_FailedSeedSkipped verifies a 404 seed contributes nothing
// while other seeds are still processed
func TestDiscover_FailedSeedSkipped(t *testing.T) {
	broken := "https://gtrksakha.ru/gone/"
	working := "https://gtrksakha.ru/news/"
	fetcher := &fakeFetcher{pages: map[string]*FetchResult{
		broken:  {StatusCode: http.StatusNotFound, Body: "not found"},
		working: seedPage("https://gtrksakha.ru/news/7"),
	}}

	crawler := NewCrawler(crawlConfig(5, broken, working), fetcher, MemoryStore{})
	urls, err := crawler.Discover(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"https://gtrksakha.ru/news/7"}, urls)
}

// TestDiscover_TransportErrorSkipped verifies an unreachable seed is skipped
// silently
func TestDiscover_TransportErrorSkipped(t *testing.T) {
	working := "https://gtrksakha.ru/news/"
	fetcher := &fakeFetcher{pages: map[string]*FetchResult{
		working: seedPage("https://gtrksakha.ru/news/7"),
	}}

	crawler := NewCrawler(crawlConfig(5, "https://gtrksakha.ru/unroutable/", working), fetcher, MemoryStore{})
	urls, err := crawler.Discover(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"https://gtrksakha.ru/news/7"}, urls)
}

// TestDiscover_NoDuplicatesNoSeeds verifies the frontier never contains
// duplicates or seed URLs
func TestDiscover_NoDuplicatesNoSeeds(t *testing.T) {
	seedA := "https://gtrksakha.ru/news/"
	seedB := "https://gtrksakha.ru/news/politics/"
	fetcher := &fakeFetcher{pages: map[string]*FetchResult{
		seedA: seedPage(
			"https://gtrksakha.ru/news/1",
			"https://gtrksakha.ru/news/1",
			seedB,
			"https://gtrksakha.ru/news/2",
		),
		seedB: seedPage(
			"https://gtrksakha.ru/news/2",
			"https://gtrksakha.ru/news/3",
		),
	}}

	crawler := NewCrawler(crawlConfig(10, seedA, seedB), fetcher, MemoryStore{})
	urls, err := crawler.Discover(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://gtrksakha.ru/news/1",
		"https://gtrksakha.ru/news/2",
		"https://gtrksakha.ru/news/3",
	}, urls)

	seen := make(map[string]int)
	for _, u := range urls {
		seen[u]++
		assert.Equal(t, 1, seen[u], "frontier must not contain duplicates")
		assert.NotEqual(t, seedA, u, "frontier must not contain seed URLs")
		assert.NotEqual(t, seedB, u, "frontier must not contain seed URLs")
	}
}

// TestDiscover_SeedFetchedOnce verifies each seed page is fetched exactly
// once regardless of how many candidates it yields
func TestDiscover_SeedFetchedOnce(t *testing.T) {
	seed := "https://gtrksakha.ru/news/"
	fetcher := &fakeFetcher{pages: map[string]*FetchResult{
		seed: seedPage(
			"https://gtrksakha.ru/news/1",
			"https://gtrksakha.ru/news/2",
			"https://gtrksakha.ru/news/3",
		),
	}}

	crawler := NewCrawler(crawlConfig(3, seed), fetcher, MemoryStore{})
	_, err := crawler.Discover(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.calls)
}

// TestDiscover_PersistsEveryAppend verifies the durable file matches the
// in-memory frontier after the crawl
func TestDiscover_PersistsEveryAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frontier.json")
	seed := "https://gtrksakha.ru/news/"
	fetcher := &fakeFetcher{pages: map[string]*FetchResult{
		seed: seedPage(
			"https://gtrksakha.ru/news/1",
			"https://gtrksakha.ru/news/2",
		),
	}}

	crawler := NewCrawler(crawlConfig(2, seed), fetcher, NewFileStore(path))
	urls, err := crawler.Discover(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var persisted []string
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Equal(t, urls, persisted, "durable frontier must equal the in-memory frontier")
}

// TestDiscover_ResumeFromDurableFrontier verifies a restarted crawl picks up
// where the previous one stopped instead of rediscovering from scratch
func TestDiscover_ResumeFromDurableFrontier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frontier.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save([]string{"https://gtrksakha.ru/news/1"}))

	seed := "https://gtrksakha.ru/news/"
	fetcher := &fakeFetcher{pages: map[string]*FetchResult{
		seed: seedPage(
			"https://gtrksakha.ru/news/1",
			"https://gtrksakha.ru/news/2",
		),
	}}

	crawler := NewCrawler(crawlConfig(2, seed), fetcher, store)
	urls, err := crawler.Discover(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://gtrksakha.ru/news/1",
		"https://gtrksakha.ru/news/2",
	}, urls, "already-persisted URL must not be re-added")
}

// TestDiscover_IdempotentWhenTargetMet verifies a second invocation after
// the target was reached issues zero network requests
func TestDiscover_IdempotentWhenTargetMet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frontier.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save([]string{
		"https://gtrksakha.ru/news/1",
		"https://gtrksakha.ru/news/2",
		"https://gtrksakha.ru/news/3",
	}))

	fetcher := &fakeFetcher{pages: map[string]*FetchResult{}}
	crawler := NewCrawler(crawlConfig(2, "https://gtrksakha.ru/news/"), fetcher, store)

	urls, err := crawler.Discover(context.Background())
	require.NoError(t, err)

	assert.Len(t, urls, 3, "pre-populated frontier is returned as loaded")
	assert.Zero(t, fetcher.calls, "no HTTP requests when the target is already met")

	// And again, for good measure.
	_, err = crawler.Discover(context.Background())
	require.NoError(t, err)
	assert.Zero(t, fetcher.calls)
}

// TestDiscover_ZeroTarget verifies a zero target returns immediately
func TestDiscover_ZeroTarget(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]*FetchResult{}}
	crawler := NewCrawler(crawlConfig(0, "https://gtrksakha.ru/news/"), fetcher, MemoryStore{})

	urls, err := crawler.Discover(context.Background())
	require.NoError(t, err)

	assert.Empty(t, urls)
	assert.Zero(t, fetcher.calls)
}

// TestDiscover_CancelledContext verifies cancellation stops the crawl
func TestDiscover_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &fakeFetcher{pages: map[string]*FetchResult{}}
	crawler := NewCrawler(crawlConfig(5, "https://gtrksakha.ru/news/"), fetcher, MemoryStore{})

	_, err := crawler.Discover(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
