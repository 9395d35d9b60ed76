// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "seqharvest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// HarvestConfig holds settings for the harvest stage.
type HarvestConfig struct {
	HTTPConfig `yaml:",inline"`

	// SourceURL is the reference page scanned for nuccore links
	// (default: the BLDB home page).
	SourceURL string `json:"source_url" yaml:"source_url"`

	// OutputDir is the base directory for harvested sequences (contains
	// raw/, metadata/, catalog/). Empty means print sequences to stdout.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// FetchDelay is the pause between consecutive sequence fetches
	// (default 500ms). NCBI asks clients to space unauthenticated requests.
	FetchDelay time.Duration `json:"fetch_delay" yaml:"fetch_delay"`

	// Retries is the number of fetch attempts per sequence on connection
	// failure (default 3).
	Retries int `json:"retries" yaml:"retries"`

	// RetryDelay is the pause between retry attempts (default 1s).
	RetryDelay time.Duration `json:"retry_delay" yaml:"retry_delay"`

	// APIKey is an optional NCBI E-utilities API key appended to efetch
	// requests for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// CatalogConfig holds settings for the harvest catalog.
type CatalogConfig struct {
	// CatalogDir is the directory holding the catalog database
	// (default "<output_dir>/catalog").
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`

	// MaxResults is the default maximum number of rows returned by
	// catalog queries (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
