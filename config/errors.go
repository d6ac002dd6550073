package config

import "errors"

// Validation errors returned by Config.Validate. Package-level sentinels so
// callers can branch with errors.Is while still getting a readable message.
var (
	// ErrNoSeedURLs is returned when the seed URL list is empty.
	ErrNoSeedURLs = errors.New("no seed URLs configured")

	// ErrInvalidSeedURL is returned when a seed URL does not look like an
	// absolute http(s) URL.
	ErrInvalidSeedURL = errors.New("seed URL does not match https?:// pattern")

	// ErrArticleCountRange is returned when the target article count is
	// negative or above 150.
	ErrArticleCountRange = errors.New("total articles to find must be between 0 and 150")

	// ErrInvalidTimeout is returned when the request timeout is negative or
	// above 60 seconds.
	ErrInvalidTimeout = errors.New("timeout must be between 0 and 60 seconds")

	// ErrInvalidEncoding is returned when the encoding identifier is empty.
	ErrInvalidEncoding = errors.New("encoding must be a non-empty string")
)
