package sakhanews

import (
	"context"
	"log"

	"github.com/ayakovleva/sakhanews/config"
)

// Crawler discovers article URLs starting from the configured seed pages.
// One implementation covers both crawl disciplines: give it a MemoryStore
// for a plain in-memory crawl, or a FileStore for a restart-safe crawl that
// makes every discovered URL durable before risking losing it.
type Crawler struct {
	cfg     *config.Config
	fetcher Fetcher
	store   FrontierStore
}

// NewCrawler creates a crawler over the given configuration, fetcher, and
// frontier store.
func NewCrawler(cfg *config.Config, fetcher Fetcher, store FrontierStore) *Crawler {
	return &Crawler{
		cfg:     cfg,
		fetcher: fetcher,
		store:   store,
	}
}

// Discover grows the frontier until it holds the target article count or
// all seed pages are exhausted, and returns the discovered URLs.
//
// The frontier is loaded from the store first. If a previous session already
// met the target, Discover returns immediately without any network activity,
// so repeated invocations are idempotent. Otherwise seeds are processed in
// configured order: each is fetched once, parsed once, and its candidates
// are walked in document order. Every accepted URL is saved through the
// store before the next one is considered.
//
// A seed that fails to fetch (transport error or non-200) is skipped and
// contributes nothing; that is not an error. An empty frontier is a valid
// outcome when no seed page has matching anchors.
func (c *Crawler) Discover(ctx context.Context) ([]string, error) {
	frontier, err := c.store.Load()
	if err != nil {
		return nil, err
	}

	target := c.cfg.TotalArticles
	if len(frontier) >= target {
		// A previous session already met the target.
		return frontier, nil
	}

	for _, seed := range c.cfg.SeedURLs {
		if len(frontier) >= target {
			break
		}

		if err := ctx.Err(); err != nil {
			return frontier, err
		}

		doc, err := fetchDocument(ctx, c.fetcher, seed)
		if err != nil {
			log.Printf("WARN: Failed to fetch seed %s: %v", seed, err)
			continue
		}
		if doc == nil {
			// Non-200: this seed contributes zero URLs.
			continue
		}

		for _, candidate := range ExtractArticleLinks(doc, seed) {
			if len(frontier) >= target {
				break
			}
			if c.cfg.IsSeed(candidate) || contains(frontier, candidate) {
				continue
			}

			frontier = append(frontier, candidate)
			if err := c.store.Save(frontier); err != nil {
				return frontier, err
			}
		}
	}

	return frontier, nil
}

// contains checks if a string slice contains a specific string.
func contains(slice []string, str string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
