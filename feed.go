package sakhanews

import (
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

// FetchFeed fetches and parses the site's RSS or Atom feed. The gofeed
// library detects and handles both formats.
func FetchFeed(url string) (*gofeed.Feed, error) {
	fp := gofeed.NewParser()
	feed, err := fp.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return feed, nil
}

// FeedArticleURLs returns the feed item links that qualify as article
// candidates, in feed order, deduplicated. It gives the crawler an
// alternative way to pre-seed the frontier when the site exposes a feed.
func FeedArticleURLs(feed *gofeed.Feed) []string {
	seen := make(map[string]bool)
	var urls []string

	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" || !strings.Contains(link, ArticleURLMarker) {
			continue
		}
		if !seen[link] {
			seen[link] = true
			urls = append(urls, link)
		}
	}

	return urls
}
