package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/matzehuels/ghostify/pkg/doc"
)

// Sentinel errors for host operations.
var (
	// ErrNotAnInstance is returned by DetachInstance when the node is
	// not an instance.
	ErrNotAnInstance = errors.New("node is not an instance")

	// ErrDetachedNode is returned when an operation requires a node
	// that is still attached to the document.
	ErrDetachedNode = errors.New("node is not attached to the document")

	// ErrClosed is returned for operations on a closed host session.
	ErrClosed = errors.New("host session is closed")
)

// Memory is an in-process [Host] backed by a pkg/doc tree.
//
// Notifications are collected and optionally forwarded to NotifyFunc,
// which lets the CLI surface them to the terminal. Memory is not safe
// for concurrent use; the engine drives it from one goroutine.
type Memory struct {
	// NotifyFunc, when non-nil, receives each notification message as
	// it is emitted.
	NotifyFunc func(string)

	doc           *doc.Document
	selection     []*doc.Node
	notifications []string
	closed        bool
}

// NewMemory creates a host over d with the given selection. The
// selection may be empty; nil entries are dropped.
func NewMemory(d *doc.Document, selection []*doc.Node) *Memory {
	sel := make([]*doc.Node, 0, len(selection))
	for _, n := range selection {
		if n != nil {
			sel = append(sel, n)
		}
	}
	return &Memory{doc: d, selection: sel}
}

// Document returns the underlying document.
func (m *Memory) Document() *doc.Document { return m.doc }

// Selection returns the selected root nodes in selection order.
func (m *Memory) Selection(ctx context.Context) ([]*doc.Node, error) {
	if m.closed {
		return nil, ErrClosed
	}
	return m.selection, nil
}

// LoadFont is a no-op: in-memory text carries its styling inline, so
// fonts are always "ready".
func (m *Memory) LoadFont(ctx context.Context, n *doc.Node) error {
	if m.closed {
		return ErrClosed
	}
	return nil
}

// TextSegments returns the node's styled segments. A text node without
// explicit segments is uniformly styled and yields a single segment
// carrying the node's own fills.
func (m *Memory) TextSegments(ctx context.Context, n *doc.Node) ([]doc.Segment, error) {
	if m.closed {
		return nil, ErrClosed
	}
	if len(n.Segments) > 0 {
		return n.Segments, nil
	}
	return []doc.Segment{{Characters: n.Characters, Fills: n.Fills}}, nil
}

// CreateRectangle synthesizes a fresh detached rectangle node with a
// generated ID.
func (m *Memory) CreateRectangle(ctx context.Context) (*doc.Node, error) {
	if m.closed {
		return nil, ErrClosed
	}
	return &doc.Node{
		ID:      uuid.NewString(),
		Name:    "Rectangle",
		Kind:    doc.KindRectangle,
		Width:   100,
		Height:  100,
		Opacity: 1,
	}, nil
}

// DetachInstance replaces the instance with a plain frame at the same
// sibling index. The frame keeps the instance's name, geometry and
// opacity, and holds deep clones of the instance's children.
func (m *Memory) DetachInstance(ctx context.Context, n *doc.Node) (*doc.Node, error) {
	if m.closed {
		return nil, ErrClosed
	}
	if n.Kind != doc.KindInstance {
		return nil, fmt.Errorf("detach %q: %w", n.Name, ErrNotAnInstance)
	}
	parent := n.Parent()
	if parent == nil {
		return nil, fmt.Errorf("detach %q: %w", n.Name, ErrDetachedNode)
	}

	frame := &doc.Node{
		ID:      uuid.NewString(),
		Name:    n.Name,
		Kind:    doc.KindFrame,
		X:       n.X,
		Y:       n.Y,
		Width:   n.Width,
		Height:  n.Height,
		Opacity: n.Opacity,
	}
	for _, child := range n.Children() {
		if err := frame.AppendChild(child.Clone()); err != nil {
			return nil, fmt.Errorf("detach %q: %w", n.Name, err)
		}
	}
	if err := parent.ReplaceChild(n, frame); err != nil {
		return nil, fmt.Errorf("detach %q: %w", n.Name, err)
	}
	return frame, nil
}

// Notify records the message and forwards it to NotifyFunc if set.
func (m *Memory) Notify(message string) {
	m.notifications = append(m.notifications, message)
	if m.NotifyFunc != nil {
		m.NotifyFunc(message)
	}
}

// Notifications returns all messages emitted so far, oldest first.
func (m *Memory) Notifications() []string { return m.notifications }

// Close marks the session closed. Further host calls fail with
// ErrClosed.
func (m *Memory) Close() { m.closed = true }

// Closed reports whether Close has been called.
func (m *Memory) Closed() bool { return m.closed }

// Ensure Memory implements Host.
var _ Host = (*Memory)(nil)
