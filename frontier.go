package sakhanews

import (
	"encoding/json"
	"fmt"
	"os"
)

// FrontierStore is the durability strategy behind a Crawler. The in-memory
// store gives the plain iterative crawler; the file store makes the crawl
// restart-safe.
type FrontierStore interface {
	// Load returns the frontier persisted by a previous session, creating an
	// empty record when none exists.
	Load() ([]string, error)

	// Save replaces the persisted frontier with urls. The crawler calls this
	// synchronously after every single append, so the durable copy never
	// lags the in-memory one.
	Save(urls []string) error
}

// MemoryStore is a FrontierStore that persists nothing. Every crawl starts
// from an empty frontier and leaves no state behind.
type MemoryStore struct{}

// Load always returns an empty frontier.
func (MemoryStore) Load() ([]string, error) { return nil, nil }

// Save discards the frontier.
func (MemoryStore) Save([]string) error { return nil }

// FileStore mirrors the frontier to a single JSON array-of-strings file. The
// file is read in full at crawl start and rewritten in full after every
// append. It assumes one writer; concurrent crawls against the same path
// would race on the read-modify-write cycle.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed frontier store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the frontier file. A missing file is initialized to an empty
// frontier so a first run and a resumed run go through the same path.
func (s *FileStore) Load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		if err := s.Save(nil); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read frontier file: %w", err)
	}

	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return nil, fmt.Errorf("failed to parse frontier file: %w", err)
	}
	return urls, nil
}

// Save rewrites the whole frontier file.
func (s *FileStore) Save(urls []string) error {
	if urls == nil {
		urls = []string{}
	}
	data, err := json.MarshalIndent(urls, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal frontier: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write frontier file: %w", err)
	}
	return nil
}
