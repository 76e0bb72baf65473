// Package cache stores rendered artifacts between runs.
//
// Rendering a scene is cheap compared to a paint callback in an interactive
// host, but the CLI and the preview server re-render the same scene file
// over and over. Artifacts are keyed by the scene content hash plus every
// option that changes the output, so an edited scene or a different zoom
// never hits a stale entry.
//
// Two implementations are provided:
//   - [FileCache] keeps entries as JSON files under the user cache directory.
//   - [NullCache] never stores anything and disables caching.
//
// Keys are built by a [Keyer]. [ScopedKeyer] prefixes every key, which the
// CLI uses to separate entries written by different builds.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache is a byte store with expiring entries.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Entry lifetimes.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Key types reported to observability hooks.
const (
	KeyTypeLayout   = "layout"
	KeyTypeArtifact = "artifact"
)

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey identifies the computed placement of a scene.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered output of a scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists the options that change a layout.
type LayoutKeyOpts struct {
	FullColor bool `json:"full_color"`
	ExpandAll bool `json:"expand_all"`
}

// ArtifactKeyOpts lists the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format         string  `json:"format"`
	Zoom           float64 `json:"zoom"`
	FullColor      bool    `json:"full_color"`
	ExpandAll      bool    `json:"expand_all"`
	Cull           bool    `json:"cull"`
	HighlightColor string  `json:"highlight_color,omitempty"`
	Stack          string  `json:"stack,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey(KeyTypeLayout, sceneHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, sceneHash, opts)
}

// Hash returns the hex SHA-256 of data. Scene files are identified by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns kind + ":" + the hash of the scene hash and its options.
// Key options are plain structs, so marshaling cannot fail.
func hashKey(kind, sceneHash string, opts any) string {
	b, _ := json.Marshal(opts)
	return kind + ":" + Hash(append([]byte(sceneHash+"\x00"), b...))
}
