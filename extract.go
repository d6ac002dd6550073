package sakhanews

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ayakovleva/sakhanews/config"
)

// Selectors for gtrksakha.ru article pages. The body has a primary and a
// secondary container because the site serves two markup variants.
const (
	bodySelector         = "div.article__text"
	bodyFallbackSelector = "div[itemprop='articleBody']"
	titleSelector        = "h1"
	topicSelector        = "a.tags__item"
	ldJSONSelector       = "script[type='application/ld+json']"
)

// ErrFetch marks an extraction that never got page data: transport failure
// or a non-200 status. The returned record has only its id and URL set.
var ErrFetch = errors.New("article page yielded no data")

// StructureError reports markup the extractor expected but did not find,
// after the fallback lookup was also tried. It is fatal for that article
// only, never for the crawl.
type StructureError struct {
	URL      string
	Selector string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("no element matching %q on %s", e.Selector, e.URL)
}

// Extractor turns fetched article pages into Article records.
type Extractor struct {
	cfg     *config.Config
	fetcher Fetcher
}

// NewExtractor creates an extractor using the given fetcher.
func NewExtractor(cfg *config.Config, fetcher Fetcher) *Extractor {
	return &Extractor{cfg: cfg, fetcher: fetcher}
}

// Extract fetches the article page once and runs two independent passes over
// it: body text, then metadata. The returned record always carries the given
// id and url, even on failure; callers distinguish error kinds with
// errors.Is(err, ErrFetch) and errors.As for *StructureError, and decide for
// themselves whether a partial record is worth persisting.
func (ex *Extractor) Extract(ctx context.Context, url string, id int) (*Article, error) {
	article := NewArticle(id, url)

	doc, err := fetchDocument(ctx, ex.fetcher, url)
	if err != nil {
		return article, fmt.Errorf("%w: %s: %v", ErrFetch, url, err)
	}
	if doc == nil {
		return article, fmt.Errorf("%w: %s", ErrFetch, url)
	}

	if err := ex.fillText(article, doc); err != nil {
		return article, err
	}
	ex.fillMeta(article, doc)

	return article, nil
}

// fillText locates the article-body container and joins its paragraphs in
// document order, one per line. The primary selector is retried with the
// fallback before the page is declared structurally broken.
func (ex *Extractor) fillText(article *Article, doc *goquery.Document) error {
	body := doc.Find(bodySelector).First()
	if body.Length() == 0 {
		body = doc.Find(bodyFallbackSelector).First()
	}
	if body.Length() == 0 {
		return &StructureError{URL: article.URL, Selector: bodySelector}
	}

	var text strings.Builder
	body.Find("p").Each(func(_ int, p *goquery.Selection) {
		text.WriteString(strings.TrimSpace(p.Text()))
		text.WriteString("\n")
	})
	article.Text = text.String()

	return nil
}

// newsArticleLD is the slice of the site's schema.org NewsArticle block the
// extractor cares about.
type newsArticleLD struct {
	Type   string `json:"@type"`
	Author struct {
		Name string `json:"name"`
	} `json:"author"`
	DatePublished string `json:"datePublished"`
}

// fillMeta populates title, authors, publication date, and topics. Metadata
// problems degrade the record instead of failing it: a missing heading or a
// malformed structured-data block leaves the matching fields empty.
func (ex *Extractor) fillMeta(article *Article, doc *goquery.Document) {
	title := doc.Find(titleSelector).First().Text()
	article.Title = strings.Join(strings.Fields(title), " ")

	if ld := ex.structuredData(doc); ld != nil {
		if ld.Author.Name != "" {
			article.Authors = append(article.Authors, ld.Author.Name)
		}
		if ld.DatePublished != "" {
			published, err := NormalizeDate(ld.DatePublished)
			if err != nil {
				log.Printf("WARN: Unparseable publication date on %s: %v", article.URL, err)
			} else {
				article.PublishedAt = published
			}
		}
	}

	// Topic tags keep document order; duplicates are allowed.
	doc.Find(topicSelector).Each(func(_ int, tag *goquery.Selection) {
		topic := strings.TrimSpace(tag.Text())
		if topic != "" {
			article.Topics = append(article.Topics, topic)
		}
	})
}

// structuredData finds the page's NewsArticle JSON-LD block, or nil when no
// script parses into one.
func (ex *Extractor) structuredData(doc *goquery.Document) *newsArticleLD {
	var found *newsArticleLD
	doc.Find(ldJSONSelector).EachWithBreak(func(_ int, script *goquery.Selection) bool {
		var ld newsArticleLD
		if err := json.Unmarshal([]byte(script.Text()), &ld); err != nil {
			return true // try the next script block
		}
		if ld.Type != "NewsArticle" {
			return true
		}
		found = &ld
		return false
	})
	return found
}
