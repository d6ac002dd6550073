package sakhanews

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ArticleURLMarker is the fixed shape an anchor target has to contain to
// qualify as an article candidate. URL matching is site-specific on purpose;
// this module only knows about gtrksakha.ru.
const ArticleURLMarker = "gtrksakha.ru/news"

// ExtractArticleLinks scans a parsed page for anchors pointing at articles.
// Relative hrefs are resolved against baseURL. Candidates come back in
// document order of first appearance, deduplicated, so repeated scans of the
// same page always see the same sequence.
func ExtractArticleLinks(doc *goquery.Document, baseURL string) []string {
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}

		resolved := resolveHref(base, href)
		if resolved == "" || !strings.Contains(resolved, ArticleURLMarker) {
			return
		}

		if !seen[resolved] {
			seen[resolved] = true
			links = append(links, resolved)
		}
	})

	return links
}

// resolveHref turns an anchor target into an absolute URL string, or ""
// when it cannot be resolved.
func resolveHref(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if !ref.IsAbs() {
		return ""
	}
	return ref.String()
}
