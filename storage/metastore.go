package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ayakovleva/sakhanews"
)

// MetaStore indexes crawl sessions and extracted article metadata using
// SQLite. The per-article files stay the source of truth; the index exists
// so past crawls can be listed and queried without rereading the assets
// directory.
type MetaStore struct {
	db *sql.DB
}

// Session identifies one crawl run.
type Session struct {
	ID        uuid.UUID `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
	SeedCount int       `json:"seed_count"`
}

// NewMetaStore creates a meta store with the given database path.
func NewMetaStore(dbPath string) (*MetaStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &MetaStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the tables if they don't exist.
func (m *MetaStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		session_id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		seed_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS articles (
		session_id TEXT NOT NULL,
		article_id INTEGER NOT NULL,
		url TEXT NOT NULL,
		title TEXT NOT NULL,
		authors TEXT NOT NULL,
		topics TEXT NOT NULL,
		published_at TEXT NOT NULL,
		PRIMARY KEY (session_id, article_id)
	);
	`

	_, err := m.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (m *MetaStore) Close() error {
	return m.db.Close()
}

// BeginSession records the start of a crawl run and returns its session.
func (m *MetaStore) BeginSession(seedCount int) (*Session, error) {
	session := &Session{
		ID:        uuid.New(),
		StartedAt: time.Now(),
		SeedCount: seedCount,
	}

	query := "INSERT INTO sessions (session_id, started_at, seed_count) VALUES (?, ?, ?)"
	_, err := m.db.Exec(query,
		session.ID.String(),
		session.StartedAt.Format(time.RFC3339),
		session.SeedCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert session: %w", err)
	}

	return session, nil
}

// IndexArticle records one extracted article under the given session.
func (m *MetaStore) IndexArticle(sessionID uuid.UUID, article *sakhanews.Article) error {
	authors, err := json.Marshal(article.Authors)
	if err != nil {
		return fmt.Errorf("failed to marshal authors: %w", err)
	}
	topics, err := json.Marshal(article.Topics)
	if err != nil {
		return fmt.Errorf("failed to marshal topics: %w", err)
	}

	query := `
		INSERT INTO articles (session_id, article_id, url, title, authors, topics, published_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = m.db.Exec(query,
		sessionID.String(),
		article.ID,
		article.URL,
		article.Title,
		string(authors),
		string(topics),
		article.PublishedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert article: %w", err)
	}

	return nil
}

// SessionArticles returns the metadata rows indexed under a session, in
// article-id order.
func (m *MetaStore) SessionArticles(sessionID uuid.UUID) ([]sakhanews.Meta, error) {
	query := `
		SELECT article_id, url, title, authors, topics, published_at
		FROM articles
		WHERE session_id = ?
		ORDER BY article_id
	`
	rows, err := m.db.Query(query, sessionID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var metas []sakhanews.Meta
	for rows.Next() {
		var meta sakhanews.Meta
		var authors, topics, publishedAt string
		if err := rows.Scan(&meta.ID, &meta.URL, &meta.Title, &authors, &topics, &publishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}

		if err := json.Unmarshal([]byte(authors), &meta.Authors); err != nil {
			return nil, fmt.Errorf("failed to unmarshal authors: %w", err)
		}
		if err := json.Unmarshal([]byte(topics), &meta.Topics); err != nil {
			return nil, fmt.Errorf("failed to unmarshal topics: %w", err)
		}
		if meta.PublishedAt, err = time.Parse(time.RFC3339, publishedAt); err != nil {
			return nil, fmt.Errorf("failed to parse published_at: %w", err)
		}

		metas = append(metas, meta)
	}

	return metas, rows.Err()
}
