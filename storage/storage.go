// Package storage persists crawl output: per-article files on disk and a
// SQLite index of crawl sessions. The crawl core hands records over and
// performs no file writes of its own.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ayakovleva/sakhanews"
)

// ArticleStore writes completed articles into a flat assets directory. Each
// article lands as two logical units: the raw body text and the structured
// metadata.
type ArticleStore struct {
	dir string
}

// NewArticleStore creates a store over dir, recreating it empty. A previous
// run's assets are removed so article ids never collide across runs.
func NewArticleStore(dir string) (*ArticleStore, error) {
	if err := PrepareDir(dir); err != nil {
		return nil, err
	}
	return &ArticleStore{dir: dir}, nil
}

// PrepareDir recreates dir as an empty directory.
func PrepareDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to clear assets directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create assets directory: %w", err)
	}
	return nil
}

// SaveRaw writes the article's body text to <id>_raw.txt.
func (s *ArticleStore) SaveRaw(article *sakhanews.Article) error {
	path := filepath.Join(s.dir, fmt.Sprintf("%d_raw.txt", article.ID))
	if err := os.WriteFile(path, []byte(article.Text), 0644); err != nil {
		return fmt.Errorf("failed to write raw text: %w", err)
	}
	return nil
}

// SaveMeta writes the article's structured metadata to <id>_meta.json.
func (s *ArticleStore) SaveMeta(article *sakhanews.Article) error {
	data, err := json.MarshalIndent(article.Meta(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%d_meta.json", article.ID))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}

// Save writes both halves of the article.
func (s *ArticleStore) Save(article *sakhanews.Article) error {
	if err := s.SaveRaw(article); err != nil {
		return err
	}
	return s.SaveMeta(article)
}
