// Package cache stores fetched documents and rendered artifacts between runs.
//
// Two implementations are provided: [FileCache] for the CLI (entries live
// under ~/.cache/treemap/) and [NullCache] when caching is disabled. Keys
// are produced by a [Keyer] so the same inputs always map to the same entry.
package cache

import (
	"context"
	"time"
)

// TTLs for the different kinds of cached data.
const (
	// TTLDocument bounds how long a fetched source document is reused.
	TTLDocument = 24 * time.Hour

	// TTLArtifact bounds how long a rendered artifact is reused. Artifacts
	// are keyed by document hash, so a changed document never hits a stale
	// artifact.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiration.
type Cache interface {
	// Get returns the data stored under key. The bool reports a hit;
	// expired or unreadable entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer builds cache keys for each pipeline stage.
type Keyer interface {
	// DocumentKey identifies a fetched source document.
	DocumentKey(source string) string

	// ArtifactKey identifies a rendered artifact of a document.
	ArtifactKey(documentHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists every option that changes rendered output.
type ArtifactKeyOpts struct {
	Format   string   `json:"format"`
	VizType  string   `json:"viz_type"`
	Selector string   `json:"selector,omitempty"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Padding  float64  `json:"padding"`
	Palette  []string `json:"palette,omitempty"`
	Legend   bool     `json:"legend"`
	Tooltip  bool     `json:"tooltip"`
	Title    string   `json:"title,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DocumentKey returns "document:<source>".
func (DefaultKeyer) DocumentKey(source string) string {
	return "document:" + source
}

// ArtifactKey returns "artifact:<sha256 of hash and options>".
func (DefaultKeyer) ArtifactKey(documentHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", documentHash, opts)
}
