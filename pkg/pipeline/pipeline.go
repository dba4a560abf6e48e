// Package pipeline provides the core transform pipeline for ghostify.
//
// This package implements the complete decode → select → ghost →
// encode sequence shared by the CLI and the HTTP API. Centralizing it
// keeps selection resolution, caching, and observability consistent
// across entry points.
//
// # Architecture
//
// The pipeline has four stages:
//
//  1. Decode: parse the document JSON and rebuild parent links
//  2. Select: resolve the requested root node IDs (or default to the
//     document's top-level frames)
//  3. Ghost: run the traversal engine over the selection
//  4. Encode: serialize the mutated document back to JSON
//
// Results are cached by content: the same document bytes with the same
// selection and engine configuration short-circuit to the cached
// output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, docBytes, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Output)
package pipeline

import (
	"time"

	"github.com/matzehuels/ghostify/pkg/ghost"
)

// DefaultCacheTTL is how long transform results stay cached.
// Content-addressed entries never go stale, so the TTL only bounds
// disk/memory growth.
const DefaultCacheTTL = 24 * time.Hour

// Options controls one pipeline execution.
type Options struct {
	// Selection is the list of root node IDs to process. Empty means
	// every top-level frame of the document.
	Selection []string

	// Config is the engine configuration. The zero value is replaced
	// by ghost.DefaultConfig().
	Config ghost.Config

	// CacheTTL overrides DefaultCacheTTL when positive.
	CacheTTL time.Duration
}

// ValidateAndSetDefaults normalizes the options in place.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Config == (ghost.Config{}) {
		o.Config = ghost.DefaultConfig()
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	return nil
}

// Result is the outcome of one pipeline execution.
type Result struct {
	// Output is the transformed document as indented JSON.
	Output []byte

	// Stats are the engine counters, replayed from the cached envelope
	// when the result is a cache hit.
	Stats ghost.Stats

	// Notices are the user-facing notifications the engine emitted.
	// Empty on a cache hit.
	Notices []string

	// DocHash is the SHA-256 of the input document bytes.
	DocHash string

	// FromCache reports whether Output was served from cache.
	FromCache bool

	// Duration is the wall-clock time of the execution.
	Duration time.Duration
}
