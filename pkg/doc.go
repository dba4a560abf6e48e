// Package pkg provides the core libraries for ghostify document transformation.
//
// # Overview
//
// Ghostify anonymizes design documents: component instances are detached
// into plain frames and text layers are replaced with ghost rectangles
// that keep the original geometry, color, and visual weight. The pkg
// directory is organized into four main areas:
//
//  1. [doc], [host], [ghost] - Domain logic (document model, host boundary, transform engine)
//  2. [cache], [store] - Infrastructure (result caching, document persistence)
//  3. [pipeline] - Orchestration (decode → select → ghost → encode)
//  4. [render], [observability] - Supporting surfaces (tree diagrams, instrumentation hooks)
//
// # Architecture
//
// The typical data flow through ghostify:
//
//	Document JSON
//	         ↓
//	    [doc] package (decode, rebuild parent links)
//	         ↓
//	    [ghost] package (traverse, detach instances, ghost text)
//	         ↓
//	    [doc] package (encode)
//	         ↓
//	    JSON output / [store] / [render]
//
// # Quick Start
//
// Ghost a document and write the result:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/matzehuels/ghostify/pkg/pipeline"
//	)
//
//	data, _ := os.ReadFile("design.json")
//
//	runner := pipeline.NewRunner(nil, nil)
//	result, _ := runner.Execute(context.Background(), data, pipeline.Options{})
//
//	os.WriteFile("ghosted.json", result.Output, 0o644)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [doc] - Document model: a mutable node tree with parent links,
// structural operations (insert, replace, detach), paints, and the JSON
// wire format.
//
// [host] - The capability boundary the engine mutates documents
// through. The in-memory host backs the CLI, the API, and tests.
//
// [ghost] - The traversal engine: depth-first processing that detaches
// instances, replaces text with ghost rectangles, and isolates
// per-node failures.
//
// ## Infrastructure
//
// [cache] - Content-addressed transform result caching. FileCache for
// the CLI (filesystem), RedisCache for server deployments, NullCache
// for tests and --no-cache.
//
// [store] - Document persistence for the HTTP API. MemoryStore for
// development and tests, MongoStore for deployments.
//
// ## Orchestration
//
// [pipeline] - The decode → select → ghost → encode sequence shared by
// the CLI and the HTTP API, with caching and observability hooks.
//
// ## Supporting Surfaces
//
// [render] - Graphviz node-link diagrams of document trees, for
// comparing a ghosted document against its original.
//
// [observability] - Process-wide engine and cache hooks for metrics
// without coupling the core packages to a metrics backend.
//
// [errors] - Structured error codes shared by the CLI and the API.
//
// [buildinfo] - Build-time version information injected via ldflags.
package pkg
