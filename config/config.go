package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

// urlPattern is the shape every seed URL has to match before the crawler is
// allowed to touch the network.
var urlPattern = regexp.MustCompile(`^https?://\S+`)

// Config holds the validated crawl settings. The crawler consumes it
// read-only; ownership stays with the caller that loaded it.
type Config struct {
	SeedURLs      []string          `json:"seed_urls"`
	TotalArticles int               `json:"total_articles_to_find_and_parse"`
	Headers       map[string]string `json:"headers"`
	Encoding      string            `json:"encoding"`
	TimeoutSec    int               `json:"timeout"`
	VerifyTLS     bool              `json:"should_verify_certificate"`
	Headless      bool              `json:"headless_mode"`
}

// Load reads and validates a crawl configuration from a JSON file. The
// returned Config is guaranteed valid: every field has been checked before
// any component issues a network call.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks every field against its allowed range. It returns the
// first violation found, wrapped around the matching sentinel error.
func (c *Config) Validate() error {
	if len(c.SeedURLs) == 0 {
		return ErrNoSeedURLs
	}
	for _, seed := range c.SeedURLs {
		if !urlPattern.MatchString(seed) {
			return fmt.Errorf("%w: %q", ErrInvalidSeedURL, seed)
		}
	}

	if c.TotalArticles < 0 || c.TotalArticles > 150 {
		return fmt.Errorf("%w: got %d", ErrArticleCountRange, c.TotalArticles)
	}

	if c.TimeoutSec < 0 || c.TimeoutSec > 60 {
		return fmt.Errorf("%w: got %d", ErrInvalidTimeout, c.TimeoutSec)
	}

	if c.Encoding == "" {
		return ErrInvalidEncoding
	}

	return nil
}

// IsSeed reports whether url is one of the configured seed URLs.
func (c *Config) IsSeed(url string) bool {
	for _, seed := range c.SeedURLs {
		if seed == url {
			return true
		}
	}
	return false
}
