package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StorageConfig describes where crawl output lands on disk.
type StorageConfig struct {
	// AssetsDir is the directory that receives per-article raw text and
	// metadata files.
	AssetsDir string `yaml:"assets_dir"`
	// FrontierPath is the durable frontier file used by the persistent
	// crawler.
	FrontierPath string `yaml:"frontier_path"`
	// MetaDSN is the SQLite database indexing crawl sessions.
	MetaDSN string `yaml:"meta_dsn"`
}

// FileConfig represents the optional application config file. It covers
// everything that is about the environment rather than the crawl itself.
type FileConfig struct {
	Storage StorageConfig `yaml:"storage"`
	// FeedURL is the site RSS feed, used to pre-seed discovery when set.
	FeedURL string `yaml:"feed_url,omitempty"`
}

// LoadFileConfig loads the application config from the given path. Returns
// nil if the file doesn't exist (not an error). Returns an error if the file
// exists but cannot be parsed.
func LoadFileConfig(path string) (*FileConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil // File doesn't exist -- not an error
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}
