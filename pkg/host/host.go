// Package host defines the capability boundary between the ghost
// engine and the environment that owns the document.
//
// The engine never mutates structure it did not create directly; node
// synthesis, font readiness, instance detachment, and user-facing
// notifications all go through the [Host] interface. This mirrors a
// plugin runtime, where those operations are asynchronous host calls:
// each method taking a context is a potential suspension point, and
// callers must not assume atomicity across one.
//
// [Memory] is the in-process implementation backed by pkg/doc trees.
// It is the production implementation for CLI and server use, and
// doubles as the test host.
package host

import (
	"context"

	"github.com/matzehuels/ghostify/pkg/doc"
)

// Host is the set of document-runtime capabilities the engine needs.
// Implementations must be sequentially consistent: calls happen one at
// a time from a single goroutine, in traversal order.
type Host interface {
	// Selection returns the current selection as an ordered list of
	// root nodes. An empty selection is valid.
	Selection(ctx context.Context) ([]*doc.Node, error)

	// LoadFont ensures the text node's font is ready. Per-character
	// styling queries are only accurate after this returns.
	LoadFont(ctx context.Context, n *doc.Node) error

	// TextSegments returns the node's styled segments partitioned by
	// fill. A uniformly styled text node yields a single segment.
	TextSegments(ctx context.Context, n *doc.Node) ([]doc.Segment, error)

	// CreateRectangle synthesizes a new detached rectangle node.
	CreateRectangle(ctx context.Context) (*doc.Node, error)

	// DetachInstance destroys the instance node and inserts, at its
	// former sibling index, a plain frame holding clones of the
	// instance's children. The replacement frame is returned; it is
	// never itself an instance.
	DetachInstance(ctx context.Context, n *doc.Node) (*doc.Node, error)

	// Notify shows a transient user-facing message.
	Notify(message string)

	// Close terminates the session. Always called once per run,
	// success or failure.
	Close()
}
