package doc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// wireDoc is the serialized document envelope. The same shape is used
// for JSON files and API payloads; the store persists these bytes
// as-is.
type wireDoc struct {
	Name string    `json:"name,omitempty"`
	Root *wireNode `json:"root"`
}

// wireNode is the serialized node. Parent pointers are implicit in the
// nesting and rebuilt on import.
type wireNode struct {
	ID           string      `json:"id"`
	Name         string      `json:"name,omitempty"`
	Type         Kind        `json:"type"`
	X            float64     `json:"x,omitempty"`
	Y            float64     `json:"y,omitempty"`
	Width        float64     `json:"width,omitempty"`
	Height       float64     `json:"height,omitempty"`
	CornerRadius float64     `json:"cornerRadius,omitempty"`
	Opacity      float64     `json:"opacity,omitempty"`
	Fills        []Paint     `json:"fills,omitempty"`
	Characters   string      `json:"characters,omitempty"`
	FontSize     float64     `json:"fontSize,omitempty"`
	Segments     []Segment   `json:"segments,omitempty"`
	Children     []*wireNode `json:"children,omitempty"`
}

// Write encodes the document as indented JSON to w. The output can be
// re-imported with [Read] for round-trip processing.
func Write(d *Document, w io.Writer) error {
	out := wireDoc{Name: d.Name, Root: toWire(d.Root)}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

// Marshal encodes the document as indented JSON bytes.
func Marshal(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the document to a JSON file with 0644 permissions.
func WriteFile(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(d, f)
}

// Read decodes a JSON document from r and rebuilds parent links.
// Returns an error for malformed JSON or a missing root.
func Read(r io.Reader) (*Document, error) {
	var in wireDoc
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if in.Root == nil {
		return nil, fmt.Errorf("decode document: missing root node")
	}
	return &Document{Name: in.Name, Root: fromWire(in.Root, nil)}, nil
}

// Unmarshal decodes a JSON document from bytes.
func Unmarshal(data []byte) (*Document, error) {
	return Read(bytes.NewReader(data))
}

// ReadFile reads a JSON document file.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

func toWire(n *Node) *wireNode {
	if n == nil {
		return nil
	}
	w := &wireNode{
		ID:           n.ID,
		Name:         n.Name,
		Type:         n.Kind,
		X:            n.X,
		Y:            n.Y,
		Width:        n.Width,
		Height:       n.Height,
		CornerRadius: n.CornerRadius,
		Opacity:      n.Opacity,
		Fills:        n.Fills,
		Characters:   n.Characters,
		FontSize:     n.FontSize,
		Segments:     n.Segments,
	}
	for _, c := range n.Children() {
		w.Children = append(w.Children, toWire(c))
	}
	return w
}

func fromWire(w *wireNode, parent *Node) *Node {
	n := &Node{
		ID:           w.ID,
		Name:         w.Name,
		Kind:         w.Type,
		X:            w.X,
		Y:            w.Y,
		Width:        w.Width,
		Height:       w.Height,
		CornerRadius: w.CornerRadius,
		Opacity:      w.Opacity,
		Fills:        w.Fills,
		Characters:   w.Characters,
		FontSize:     w.FontSize,
		Segments:     w.Segments,
	}
	n.parent = parent
	for _, c := range w.Children {
		n.children = append(n.children, fromWire(c, n))
	}
	return n
}
