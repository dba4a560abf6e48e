package ghost

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/ghostify/pkg/doc"
	"github.com/matzehuels/ghostify/pkg/host"
)

func mustAppend(t *testing.T, parent, child *doc.Node) {
	t.Helper()
	if err := parent.AppendChild(child); err != nil {
		t.Fatalf("AppendChild(%s): %v", child.Name, err)
	}
}

func textNode(id, name string, fontSize float64, chars string) *doc.Node {
	return &doc.Node{
		ID: id, Name: name, Kind: doc.KindText,
		Width: 120, Height: 20, X: 8, Y: 16,
		FontSize: fontSize, Characters: chars,
	}
}

func TestRun_EmptySelection(t *testing.T) {
	page := &doc.Node{ID: "0:0", Name: "Page 1", Kind: doc.KindPage}
	mustAppend(t, page, textNode("1:1", "Title", 24, "Hello"))
	h := host.NewMemory(&doc.Document{Root: page}, nil)

	stats, err := New(h, DefaultConfig(), nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Visited != 0 || stats.Ghosted != 0 {
		t.Errorf("empty selection mutated: %+v", stats)
	}
	if page.Children()[0].Kind != doc.KindText {
		t.Error("empty selection must not touch the tree")
	}
	msgs := h.Notifications()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "Select") {
		t.Errorf("Notifications() = %v, want one guidance message", msgs)
	}
	if !h.Closed() {
		t.Error("session must be closed after the run")
	}
}

func TestRun_GhostKeepsSiblingIndex(t *testing.T) {
	page := &doc.Node{ID: "0:0", Name: "Page 1", Kind: doc.KindPage}
	frame := &doc.Node{ID: "1:0", Name: "Card", Kind: doc.KindFrame}
	mustAppend(t, page, frame)
	before := &doc.Node{ID: "1:1", Name: "Icon", Kind: doc.KindVector}
	text := textNode("1:2", "Title", 24, strings.Repeat("o", 50))
	after := &doc.Node{ID: "1:3", Name: "Divider", Kind: doc.KindRectangle}
	mustAppend(t, frame, before)
	mustAppend(t, frame, text)
	mustAppend(t, frame, after)

	h := host.NewMemory(&doc.Document{Root: page}, []*doc.Node{frame})
	stats, err := New(h, DefaultConfig(), nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Ghosted != 1 {
		t.Fatalf("Ghosted = %d, want 1", stats.Ghosted)
	}

	kids := frame.Children()
	if len(kids) != 3 {
		t.Fatalf("child count = %d, want 3", len(kids))
	}
	if kids[0] != before || kids[2] != after {
		t.Error("siblings lost their relative order")
	}
	g := kids[1]
	if g.Kind != doc.KindRectangle {
		t.Fatalf("replacement kind = %s, want RECTANGLE", g.Kind)
	}
	if g.Name != "Ghost_Title" {
		t.Errorf("ghost name = %q, want %q", g.Name, "Ghost_Title")
	}
	if g.X != text.X || g.Y != text.Y || g.Width != text.Width || g.Height != text.Height {
		t.Error("ghost geometry must match the text exactly")
	}
	if g.CornerRadius != DefaultCornerRadius {
		t.Errorf("corner radius = %v, want %v", g.CornerRadius, DefaultCornerRadius)
	}
	if g.Opacity != 0.2 {
		t.Errorf("ghost opacity = %v, want 0.2", g.Opacity)
	}
	if text.Attached() {
		t.Error("text node must be detached from the document")
	}
}

func TestRun_ContainerIdempotence(t *testing.T) {
	build := func() *doc.Node {
		page := &doc.Node{ID: "0:0", Kind: doc.KindPage}
		outer := &doc.Node{ID: "1:0", Name: "Outer", Kind: doc.KindFrame}
		inner := &doc.Node{ID: "1:1", Name: "Inner", Kind: doc.KindGroup}
		leaf := &doc.Node{ID: "1:2", Name: "Shape", Kind: doc.KindEllipse}
		_ = page.AppendChild(outer)
		_ = outer.AppendChild(inner)
		_ = inner.AppendChild(leaf)
		return page
	}

	page := build()
	root := page.Children()[0]
	for run := 0; run < 2; run++ {
		h := host.NewMemory(&doc.Document{Root: page}, []*doc.Node{root})
		stats, err := New(h, DefaultConfig(), nil).Run(context.Background())
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		if stats.Ghosted != 0 || stats.Detached != 0 || stats.Failed != 0 {
			t.Errorf("run %d mutated a container-only tree: %+v", run, stats)
		}
	}

	want := build()
	if page.Count() != want.Count() {
		t.Errorf("node count = %d, want %d", page.Count(), want.Count())
	}
	if page.Children()[0].Children()[0].Name != "Inner" {
		t.Error("container structure changed across runs")
	}
}

func TestRun_InstanceExpansion(t *testing.T) {
	page := &doc.Node{ID: "0:0", Kind: doc.KindPage}
	before := &doc.Node{ID: "1:0", Name: "Backdrop", Kind: doc.KindRectangle}
	inst := &doc.Node{ID: "2:0", Name: "Button", Kind: doc.KindInstance, Width: 80, Height: 32}
	mustAppend(t, page, before)
	mustAppend(t, page, inst)
	mustAppend(t, inst, &doc.Node{ID: "2:1", Name: "BG", Kind: doc.KindRectangle})
	mustAppend(t, inst, textNode("2:2", "Label", 16, "Submit"))

	h := host.NewMemory(&doc.Document{Root: page}, []*doc.Node{inst})
	stats, err := New(h, DefaultConfig(), nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Detached != 1 {
		t.Errorf("Detached = %d, want 1", stats.Detached)
	}
	if stats.Ghosted != 1 {
		t.Errorf("Ghosted = %d, want 1: instance children must be processed in the same run", stats.Ghosted)
	}

	if page.Children()[0] != before {
		t.Error("earlier sibling moved")
	}
	frame := page.Children()[1]
	if frame.Kind != doc.KindFrame {
		t.Fatalf("replacement kind = %s, want FRAME", frame.Kind)
	}
	if frame.Name != "Button" {
		t.Errorf("replacement name = %q, want %q", frame.Name, "Button")
	}
	kids := frame.Children()
	if len(kids) != 2 {
		t.Fatalf("replacement child count = %d, want 2", len(kids))
	}
	if kids[1].Name != "Ghost_Label" {
		t.Errorf("nested text = %q, want ghosted", kids[1].Name)
	}
}

// faultyHost fails LoadFont for one named node, leaving everything
// else to the memory host.
type faultyHost struct {
	*host.Memory
	failFont string
}

func (f *faultyHost) LoadFont(ctx context.Context, n *doc.Node) error {
	if n.Name == f.failFont {
		return errors.New("font service unavailable")
	}
	return f.Memory.LoadFont(ctx, n)
}

func TestRun_ErrorIsolation(t *testing.T) {
	page := &doc.Node{ID: "0:0", Kind: doc.KindPage}
	frame := &doc.Node{ID: "1:0", Name: "Column", Kind: doc.KindFrame}
	mustAppend(t, page, frame)
	bad := textNode("1:1", "Broken", 24, "x")
	good := textNode("1:2", "Fine", 24, "y")
	mustAppend(t, frame, bad)
	mustAppend(t, frame, good)

	mem := host.NewMemory(&doc.Document{Root: page}, []*doc.Node{frame})
	h := &faultyHost{Memory: mem, failFont: "Broken"}

	stats, err := New(h, DefaultConfig(), nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run must not fail on a per-node error: %v", err)
	}
	if stats.Failed != 1 {
		t.Errorf("Failed = %d, want 1", stats.Failed)
	}
	if stats.Ghosted != 1 {
		t.Errorf("Ghosted = %d, want 1: the sibling must still be transformed", stats.Ghosted)
	}
	if frame.Children()[0] != bad {
		t.Error("failed node must be left in place")
	}
	if frame.Children()[1].Name != "Ghost_Fine" {
		t.Errorf("sibling = %q, want ghosted", frame.Children()[1].Name)
	}
}

func TestRun_SkipsDetachedRoot(t *testing.T) {
	page := &doc.Node{ID: "0:0", Kind: doc.KindPage}
	text := textNode("1:1", "Orphan", 24, "gone")
	mustAppend(t, page, text)
	text.Detach() // removed before the run, so the liveness check skips it

	h := host.NewMemory(&doc.Document{Root: page}, []*doc.Node{text})
	stats, err := New(h, DefaultConfig(), nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", stats.Skipped)
	}
	if stats.Failed != 0 || stats.Ghosted != 0 {
		t.Errorf("detached node must be skipped silently: %+v", stats)
	}
}

func TestRun_SelectPageRoot(t *testing.T) {
	page := &doc.Node{ID: "0:0", Name: "Page 1", Kind: doc.KindPage}
	frame := &doc.Node{ID: "1:0", Name: "Card", Kind: doc.KindFrame}
	mustAppend(t, page, frame)
	mustAppend(t, frame, textNode("1:1", "Title", 24, "Hello"))

	h := host.NewMemory(&doc.Document{Root: page}, []*doc.Node{page})
	stats, err := New(h, DefaultConfig(), nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", stats.Skipped)
	}
	if stats.Ghosted != 1 {
		t.Errorf("Ghosted = %d, want 1", stats.Ghosted)
	}
	if got := frame.Children()[0].Name; got != "Ghost_Title" {
		t.Errorf("child name = %q, want %q", got, "Ghost_Title")
	}
}
