package doc

import (
	"errors"
	"slices"
	"unicode/utf8"
)

var (
	// ErrNilChild is returned by structural operations when the child
	// node argument is nil.
	ErrNilChild = errors.New("child must not be nil")

	// ErrIndexOutOfRange is returned by [Node.InsertChild] and
	// [Node.ChildAt] when the index is outside the child sequence.
	ErrIndexOutOfRange = errors.New("child index out of range")

	// ErrNotAChild is returned by [Node.RemoveChild] and
	// [Node.ReplaceChild] when the named node is not a child of the
	// receiver.
	ErrNotAChild = errors.New("node is not a child of this parent")

	// ErrAlreadyAttached is returned by [Node.InsertChild] when the
	// child still has a parent. Detach it first.
	ErrAlreadyAttached = errors.New("node already has a parent")
)

// Kind is the node variant discriminant. The traversal engine
// dispatches on Kind rather than probing for capabilities.
type Kind string

// Node kinds. Frame, Group and Page hold children; Instance is a
// component copy that can be detached into a Frame; Text carries
// characters and styled segments; the remaining kinds are leaves.
const (
	KindPage      Kind = "PAGE"
	KindFrame     Kind = "FRAME"
	KindGroup     Kind = "GROUP"
	KindInstance  Kind = "INSTANCE"
	KindText      Kind = "TEXT"
	KindRectangle Kind = "RECTANGLE"
	KindEllipse   Kind = "ELLIPSE"
	KindVector    Kind = "VECTOR"
)

// MixedFontSize marks a text node whose characters do not share a
// single font size. Consumers that need a number should substitute
// their own default.
const MixedFontSize = float64(0)

// Node is a single entity in the document tree.
//
// The zero value is not directly usable as part of a document - set at
// least ID, Name and Kind. Nodes are not safe for concurrent use.
type Node struct {
	ID   string
	Name string
	Kind Kind

	// Geometry, in the parent's coordinate space.
	X, Y          float64
	Width, Height float64

	CornerRadius float64
	Opacity      float64 // 0..1; 0 is treated as unset (fully opaque) by the JSON codec
	Fills        []Paint

	// Text attributes; meaningful only for KindText.
	Characters string
	FontSize   float64   // MixedFontSize when styling is not uniform
	Segments   []Segment // styled spans partitioned by fill

	parent   *Node
	children []*Node
	removed  bool
}

// Segment is a maximal contiguous run of a text node's characters
// sharing one fill list.
type Segment struct {
	Characters string  `json:"characters"`
	Fills      []Paint `json:"fills,omitempty"`
}

// Parent returns the node's parent, or nil if the node is a root or
// has been removed from the document.
func (n *Node) Parent() *Node { return n.parent }

// Attached reports whether the node is still part of a document. Only
// [Node.RemoveChild], [Node.ReplaceChild] and [Node.Detach] detach a
// node; roots that never had a parent are considered attached.
func (n *Node) Attached() bool { return n.parent != nil || !n.removed }

// IsContainer reports whether the node kind holds a child sequence.
// Instances are containers too: their children are the component copy.
func (n *Node) IsContainer() bool {
	switch n.Kind {
	case KindPage, KindFrame, KindGroup, KindInstance:
		return true
	}
	return false
}

// Children returns the node's child slice. Callers that mutate the
// tree while iterating should use [Node.SnapshotChildren] instead.
func (n *Node) Children() []*Node { return n.children }

// SnapshotChildren returns a copy of the current child sequence.
// Structural mutations performed after the snapshot do not affect it.
func (n *Node) SnapshotChildren() []*Node { return slices.Clone(n.children) }

// ChildAt returns the child at index i.
func (n *Node) ChildAt(i int) (*Node, error) {
	if i < 0 || i >= len(n.children) {
		return nil, ErrIndexOutOfRange
	}
	return n.children[i], nil
}

// IndexOf returns the index of child within the receiver's child
// sequence, or -1 if child is not present.
func (n *Node) IndexOf(child *Node) int {
	return slices.Index(n.children, child)
}

// AppendChild attaches child as the last child of n.
// Returns ErrNilChild or ErrAlreadyAttached on invalid input.
func (n *Node) AppendChild(child *Node) error {
	return n.InsertChild(child, len(n.children))
}

// InsertChild attaches child at index i, shifting later siblings up.
// i may equal the current child count (append). The child must be
// detached; this preserves the invariant that every node appears at
// exactly one index under exactly one parent.
func (n *Node) InsertChild(child *Node, i int) error {
	if child == nil {
		return ErrNilChild
	}
	if child.parent != nil {
		return ErrAlreadyAttached
	}
	if i < 0 || i > len(n.children) {
		return ErrIndexOutOfRange
	}
	n.children = slices.Insert(n.children, i, child)
	child.parent = n
	child.removed = false
	return nil
}

// RemoveChild detaches child from n, preserving the relative order of
// the remaining siblings. The removed node is marked detached for
// liveness checks until it is inserted somewhere again.
func (n *Node) RemoveChild(child *Node) error {
	i := n.IndexOf(child)
	if i < 0 {
		return ErrNotAChild
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	child.removed = true
	return nil
}

// ReplaceChild substitutes replacement for old at old's sibling index.
// Siblings on either side keep their relative order. The old node is
// marked detached.
func (n *Node) ReplaceChild(old, replacement *Node) error {
	if replacement == nil {
		return ErrNilChild
	}
	if replacement.parent != nil {
		return ErrAlreadyAttached
	}
	i := n.IndexOf(old)
	if i < 0 {
		return ErrNotAChild
	}
	n.children[i] = replacement
	replacement.parent = n
	replacement.removed = false
	old.parent = nil
	old.removed = true
	return nil
}

// Detach removes the node from its parent, if any. Detaching a root is
// a no-op.
func (n *Node) Detach() {
	if n.parent != nil {
		_ = n.parent.RemoveChild(n)
	}
}

// CharacterCount returns the number of characters (runes, not bytes)
// in a text node. Zero for non-text nodes.
func (n *Node) CharacterCount() int {
	return utf8.RuneCountInString(n.Characters)
}

// Walk calls fn for n and every descendant in depth-first,
// sibling-order traversal. Traversal of a subtree stops when fn
// returns false for its root.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n,
// including n itself.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(*Node) bool { total++; return true })
	return total
}

// Clone returns a deep copy of the subtree rooted at n. The copy's
// root is detached (nil parent); fills and segments are copied so the
// clone shares no mutable state with the original.
func (n *Node) Clone() *Node {
	c := &Node{
		ID:           n.ID,
		Name:         n.Name,
		Kind:         n.Kind,
		X:            n.X,
		Y:            n.Y,
		Width:        n.Width,
		Height:       n.Height,
		CornerRadius: n.CornerRadius,
		Opacity:      n.Opacity,
		Characters:   n.Characters,
		FontSize:     n.FontSize,
	}
	c.Fills = clonePaints(n.Fills)
	if n.Segments != nil {
		c.Segments = make([]Segment, len(n.Segments))
		for i, s := range n.Segments {
			c.Segments[i] = Segment{Characters: s.Characters, Fills: clonePaints(s.Fills)}
		}
	}
	for _, child := range n.children {
		cc := child.Clone()
		cc.parent = c
		c.children = append(c.children, cc)
	}
	return c
}

// Document is a named node tree. Root is conventionally a page node
// whose children are the top-level frames.
type Document struct {
	Name string
	Root *Node
}

// TopLevel returns the root's immediate children - the frames a user
// would see and select.
func (d *Document) TopLevel() []*Node {
	if d.Root == nil {
		return nil
	}
	return d.Root.Children()
}

// FindByID returns the first node in the document with the given ID,
// or nil if absent.
func (d *Document) FindByID(id string) *Node {
	if d.Root == nil {
		return nil
	}
	var found *Node
	d.Root.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}
