// Package ghost implements the traversal-and-transform engine.
//
// # Overview
//
// Given a selection of root nodes, the engine walks each subtree depth
// first and applies exactly one transform per node:
//
//   - Instance nodes are detached into plain frames via the host, and
//     the replacement's children are then visited.
//   - Text nodes are replaced, at the same sibling index, by a "ghost"
//     rectangle approximating the text's bounding box, color, and
//     visual weight.
//   - Containers are left unchanged and their children visited in
//     order.
//   - Other leaves are untouched.
//
// The run is strictly sequential: children in sibling order, roots in
// selection order. A failure on one node is logged and never blocks
// its siblings or the rest of the run.
//
// # Usage
//
//	h := host.NewMemory(document, selection)
//	eng := ghost.New(h, ghost.DefaultConfig(), logger)
//	stats, err := eng.Run(ctx)
package ghost

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ghostify/pkg/doc"
	"github.com/matzehuels/ghostify/pkg/host"
)

// Engine defaults. These are fixed design constants, not user-facing
// settings; Config exists so embedders can deviate deliberately.
const (
	// DefaultCornerRadius is the corner radius applied to every ghost.
	DefaultCornerRadius = 4.0

	// DefaultBaseOpacity is the opacity before size and length scaling.
	DefaultBaseOpacity = 0.2

	// DefaultMinOpacity is the floor of the synthetic ghost opacity.
	DefaultMinOpacity = 0.1

	// DefaultMaxOpacity is the ceiling of the synthetic ghost opacity.
	DefaultMaxOpacity = 0.4
)

// Notification messages surfaced through the host.
const (
	msgEmptySelection = "Select at least one layer to ghost."
	msgRunFailed      = "Ghosting failed. See the log for details."
)

// Config holds the engine's numeric constants. It is immutable after
// construction; the engine never mutates it mid-run.
type Config struct {
	CornerRadius float64 // ghost corner radius
	BaseOpacity  float64 // opacity before scaling
	MinOpacity   float64 // opacity floor
	MaxOpacity   float64 // opacity ceiling
}

// DefaultConfig returns the standard engine configuration.
func DefaultConfig() Config {
	return Config{
		CornerRadius: DefaultCornerRadius,
		BaseOpacity:  DefaultBaseOpacity,
		MinOpacity:   DefaultMinOpacity,
		MaxOpacity:   DefaultMaxOpacity,
	}
}

// Stats summarizes one run.
type Stats struct {
	Visited  int // nodes the traversal reached
	Ghosted  int // text nodes replaced by ghosts
	Detached int // instances expanded into frames
	Skipped  int // stale nodes removed before the traversal reached them
	Failed   int // nodes whose processing errored (logged, not fatal)
}

// Engine walks a selection and applies the ghost transforms through a
// [host.Host]. An Engine is single-use per Run from one goroutine.
type Engine struct {
	host  host.Host
	cfg   Config
	log   *log.Logger
	stats Stats
}

// New creates an engine. A nil logger falls back to log.Default().
func New(h host.Host, cfg Config, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{host: h, cfg: cfg, log: logger}
}

// Run processes every selected root to completion, in selection order,
// then emits a completion notification and closes the host session.
//
// An empty selection is not an error: the user gets a guidance
// notification and nothing is mutated. A run-level failure (reading
// the selection) is returned after the failure notification; per-node
// failures are logged, counted in Stats.Failed, and never returned.
// The session is closed in every case.
func (e *Engine) Run(ctx context.Context) (Stats, error) {
	defer e.host.Close()
	e.stats = Stats{}

	selection, err := e.host.Selection(ctx)
	if err != nil {
		e.log.Error("reading selection failed", "err", err)
		e.host.Notify(msgRunFailed)
		return e.stats, fmt.Errorf("read selection: %w", err)
	}
	if len(selection) == 0 {
		e.log.Debug("empty selection, nothing to do")
		e.host.Notify(msgEmptySelection)
		return e.stats, nil
	}

	for _, root := range selection {
		if err := e.processNode(ctx, root); err != nil {
			e.nodeFailed(root, err)
		}
	}

	e.host.Notify(fmt.Sprintf("Ghosted %d text layers, detached %d instances.",
		e.stats.Ghosted, e.stats.Detached))
	e.log.Info("run complete",
		"visited", e.stats.Visited,
		"ghosted", e.stats.Ghosted,
		"detached", e.stats.Detached,
		"skipped", e.stats.Skipped,
		"failed", e.stats.Failed)
	return e.stats, nil
}

// processNode applies exactly one transform to n. Errors from host
// calls bubble up one level, where the child loop (or Run) logs them
// and moves on; they never abort the traversal.
func (e *Engine) processNode(ctx context.Context, n *doc.Node) error {
	// Skip nodes removed earlier in this run, e.g. a stale entry from
	// a snapshot taken before an ancestor transform. Selection roots
	// without a parent, such as the document's page node, are live.
	if !n.Attached() {
		e.stats.Skipped++
		return nil
	}
	e.stats.Visited++

	switch {
	case n.Kind == doc.KindInstance:
		return e.expandInstance(ctx, n)
	case n.Kind == doc.KindText:
		return e.ghostText(ctx, n)
	case n.IsContainer():
		e.processChildren(ctx, n)
		return nil
	default:
		return nil
	}
}

// processChildren visits a snapshot of parent's current children in
// sibling order. The snapshot keeps earlier siblings' mutations from
// shifting this pass; removed nodes are caught by the liveness check.
func (e *Engine) processChildren(ctx context.Context, parent *doc.Node) {
	for _, child := range parent.SnapshotChildren() {
		if err := e.processNode(ctx, child); err != nil {
			e.nodeFailed(child, err)
		}
	}
}

// expandInstance detaches n into a plain frame at the same sibling
// index and visits the replacement's immediate children. The
// replacement itself is not re-visited: a detach yields a frame, never
// another instance, so re-checking it would be pointless and looping
// on it impossible.
func (e *Engine) expandInstance(ctx context.Context, n *doc.Node) error {
	parent := n.Parent()
	idx := parent.IndexOf(n)
	if idx < 0 {
		return fmt.Errorf("instance %q not found under its parent", n.Name)
	}

	if _, err := e.host.DetachInstance(ctx, n); err != nil {
		return fmt.Errorf("detach instance: %w", err)
	}
	// Re-read the slot rather than trusting cached state: the host
	// owns the replacement's identity.
	replacement, err := parent.ChildAt(idx)
	if err != nil {
		return fmt.Errorf("read detached frame: %w", err)
	}
	e.stats.Detached++
	e.log.Debug("detached instance", "node", n.Name, "children", len(replacement.Children()))

	e.processChildren(ctx, replacement)
	return nil
}

// ghostText replaces the text node with a ghost rectangle at the same
// sibling index. The ghost copies the text's exact geometry, takes its
// fill from the extraction chain and its opacity from the synthetic
// opacity function, and is never itself visited.
func (e *Engine) ghostText(ctx context.Context, n *doc.Node) error {
	parent := n.Parent()

	fills, err := e.textFills(ctx, n)
	if err != nil {
		return fmt.Errorf("extract text color: %w", err)
	}

	g, err := e.host.CreateRectangle(ctx)
	if err != nil {
		return fmt.Errorf("create ghost: %w", err)
	}
	g.Name = "Ghost_" + n.Name
	g.X, g.Y = n.X, n.Y
	g.Width, g.Height = n.Width, n.Height
	g.CornerRadius = e.cfg.CornerRadius
	g.Fills = fills
	g.Opacity = e.cfg.Opacity(n.FontSize, n.CharacterCount())

	if err := parent.ReplaceChild(n, g); err != nil {
		return fmt.Errorf("insert ghost: %w", err)
	}
	e.stats.Ghosted++
	e.log.Debug("ghosted text", "node", n.Name, "opacity", g.Opacity)
	return nil
}

// nodeFailed logs a per-node error with the node's name and counts it.
func (e *Engine) nodeFailed(n *doc.Node, err error) {
	e.stats.Failed++
	e.log.Error("node processing failed", "node", n.Name, "err", err)
}
