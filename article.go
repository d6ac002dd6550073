package sakhanews

import "time"

// Article is the structured record extracted from one article page. ID and
// URL are set at creation; the remaining fields are filled by a successful
// parse and stay at their zero values when extraction fails partway.
type Article struct {
	ID          int       `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Authors     []string  `json:"author"`
	Text        string    `json:"text"`
	Topics      []string  `json:"topics"`
	PublishedAt time.Time `json:"date"`
}

// NewArticle creates an empty record for the given source URL. The id is
// assigned by the caller and stays stable for the lifetime of the record.
func NewArticle(id int, url string) *Article {
	return &Article{
		ID:      id,
		URL:     url,
		Authors: []string{},
		Topics:  []string{},
	}
}

// Meta is the structured-metadata half of an article's persistence split:
// everything except the raw body text.
type Meta struct {
	ID          int       `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Authors     []string  `json:"author"`
	Topics      []string  `json:"topics"`
	PublishedAt time.Time `json:"date"`
}

// Meta returns the article's metadata view for the external writer.
func (a *Article) Meta() Meta {
	return Meta{
		ID:          a.ID,
		URL:         a.URL,
		Title:       a.Title,
		Authors:     a.Authors,
		Topics:      a.Topics,
		PublishedAt: a.PublishedAt,
	}
}
