// Package cache provides the byte cache used by the sankey pipeline.
//
// The pipeline caches three kinds of values:
//
//   - Snapshots: imported CSV/JSON files, keyed by file content and column mapping
//   - Frames: layout parameters for a snapshot, used as the namespace of artifacts
//   - Artifacts: rendered SVG, JSON, PNG and PDF bytes
//
// Three backends implement [Cache]: [NullCache] (disabled), [FileCache] for the
// CLI and [RedisCache] for a shared HTTP host deployment. Keys come from a
// [Keyer] so deployments can scope them with [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry kind.
const (
	TTLSnapshot = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with expiration.
type Cache interface {
	// Get returns the value for key and whether it was present.
	// A missing or expired entry is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SnapshotKeyOpts are the import parameters that affect a parsed snapshot.
type SnapshotKeyOpts struct {
	Format     string            `json:"format"`
	Measure    string            `json:"measure,omitempty"`
	Dimensions []string          `json:"dimensions,omitempty"`
	Keys       map[string]string `json:"keys,omitempty"`
	Color      string            `json:"color,omitempty"`
	Formatted  string            `json:"formatted,omitempty"`
}

// FrameKeyOpts are the layout parameters that affect a frame.
type FrameKeyOpts struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	BarWidth float64 `json:"bar_width"`
	GapRatio float64 `json:"gap_ratio"`
	Locale   string  `json:"locale"`
	Labels   bool    `json:"labels,omitempty"`
}

// ArtifactKeyOpts are the render parameters that affect an artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Style       string  `json:"style"`
	Tooltips    bool    `json:"tooltips,omitempty"`
	Interactive bool    `json:"interactive,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	SnapshotKey(contentHash string, opts SnapshotKeyOpts) string
	FrameKey(snapshotHash string, opts FrameKeyOpts) string
	ArtifactKey(frameKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the key components with a per-kind prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SnapshotKey returns the key of an imported snapshot.
func (DefaultKeyer) SnapshotKey(contentHash string, opts SnapshotKeyOpts) string {
	return hashKey("snapshot", contentHash, opts)
}

// FrameKey returns the key identifying a layout of a snapshot. Frames are
// not stored under it; it is the parent of every [Keyer.ArtifactKey].
func (DefaultKeyer) FrameKey(snapshotHash string, opts FrameKeyOpts) string {
	return hashKey("frame", snapshotHash, opts)
}

// ArtifactKey returns the key of an artifact rendered from a frame.
func (DefaultKeyer) ArtifactKey(frameKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", frameKey, opts)
}

var _ Keyer = DefaultKeyer{}
