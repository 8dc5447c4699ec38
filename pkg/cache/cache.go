// Package cache provides the artifact cache used by the drafting pipeline.
//
// Drafts themselves are never cached: the engine is pure and cheap. What is
// cached are rendered artifacts (SVG, PNG, PDF, DXF, tiled pages) keyed by a
// hash of the inputs that produced them, and the draft-ID index served by
// the HTTP API.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under the XDG cache directory (CLI)
//   - [MemoryCache]: in-process map with expiry (tests, single-node server)
//   - [RedisCache]: shared cache for several server replicas
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] builds keys. [NewScopedKeyer] prefixes every key, which lets
// several profiles or tenants share one backend.
package cache

import (
	"context"
	"time"
)

// TTLs for cached values.
const (
	TTLArtifact = 7 * 24 * time.Hour
	TTLIndex    = 24 * time.Hour
)

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys for pipeline values.
type Keyer interface {
	// DraftKey identifies the inputs of one draft (measurements, options,
	// dart split).
	DraftKey(inputs DraftKeyOpts) string
	// ArtifactKey identifies one rendered artifact of a draft.
	ArtifactKey(draftHash string, opts ArtifactKeyOpts) string
	// IndexKey maps a public draft ID to its draft key.
	IndexKey(id string) string
}

// DraftKeyOpts holds everything that influences the drafted geometry.
type DraftKeyOpts struct {
	Measurements any    `json:"measurements"`
	Options      any    `json:"options"`
	Split        string `json:"split"`
}

// ArtifactKeyOpts holds everything that influences one rendered artifact.
type ArtifactKeyOpts struct {
	Piece   string  `json:"piece"`
	Format  string  `json:"format"`
	Style   string  `json:"style,omitempty"`
	Paper   string  `json:"paper,omitempty"`
	Page    string  `json:"page,omitempty"`
	Scale   float64 `json:"scale,omitempty"`
	Overlap float64 `json:"overlap,omitempty"`
	Grid    bool    `json:"grid,omitempty"`
	Marks   bool    `json:"marks,omitempty"`
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DraftKey returns "draft:<sha256>".
func (DefaultKeyer) DraftKey(inputs DraftKeyOpts) string {
	return hashKey("draft", inputs)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(draftHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", draftHash, opts)
}

// IndexKey returns "index:<id>".
func (DefaultKeyer) IndexKey(id string) string {
	return "index:" + id
}
