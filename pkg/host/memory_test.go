package host

import (
	"context"
	"errors"
	"testing"

	"github.com/matzehuels/ghostify/pkg/doc"
)

func TestDetachInstance_ReplacesAtSameIndex(t *testing.T) {
	page := &doc.Node{ID: "0:0", Kind: doc.KindPage}
	a := &doc.Node{ID: "a", Kind: doc.KindRectangle}
	inst := &doc.Node{ID: "i", Name: "Button", Kind: doc.KindInstance, X: 10, Y: 20, Width: 80, Height: 32}
	b := &doc.Node{ID: "b", Kind: doc.KindRectangle}
	_ = page.AppendChild(a)
	_ = page.AppendChild(inst)
	_ = page.AppendChild(b)
	child := &doc.Node{ID: "c", Name: "Label", Kind: doc.KindText, Characters: "Go"}
	_ = inst.AppendChild(child)

	m := NewMemory(&doc.Document{Root: page}, nil)
	frame, err := m.DetachInstance(context.Background(), inst)
	if err != nil {
		t.Fatalf("DetachInstance: %v", err)
	}

	if got := page.IndexOf(frame); got != 1 {
		t.Errorf("replacement index = %d, want 1", got)
	}
	if frame.Kind != doc.KindFrame {
		t.Errorf("replacement kind = %s, want FRAME", frame.Kind)
	}
	if frame.Name != "Button" || frame.X != 10 || frame.Width != 80 {
		t.Error("replacement must keep the instance's name and geometry")
	}
	if inst.Attached() {
		t.Error("instance must be destroyed (detached)")
	}
	if len(frame.Children()) != 1 {
		t.Fatalf("replacement children = %d, want 1", len(frame.Children()))
	}
	clone := frame.Children()[0]
	if clone == child {
		t.Error("children must be clones, not the original nodes")
	}
	if clone.Characters != "Go" {
		t.Errorf("clone characters = %q, want Go", clone.Characters)
	}
}

func TestDetachInstance_RejectsNonInstance(t *testing.T) {
	page := &doc.Node{ID: "0:0", Kind: doc.KindPage}
	rect := &doc.Node{ID: "r", Kind: doc.KindRectangle}
	_ = page.AppendChild(rect)

	m := NewMemory(&doc.Document{Root: page}, nil)
	if _, err := m.DetachInstance(context.Background(), rect); !errors.Is(err, ErrNotAnInstance) {
		t.Errorf("DetachInstance(rect) = %v, want ErrNotAnInstance", err)
	}

	orphan := &doc.Node{ID: "o", Kind: doc.KindInstance}
	if _, err := m.DetachInstance(context.Background(), orphan); !errors.Is(err, ErrDetachedNode) {
		t.Errorf("DetachInstance(orphan) = %v, want ErrDetachedNode", err)
	}
}

func TestTextSegments_SynthesizesUniformSegment(t *testing.T) {
	text := &doc.Node{
		ID: "t", Kind: doc.KindText, Characters: "hi",
		Fills: []doc.Paint{{Type: doc.PaintSolid, Opacity: 1}},
	}
	m := NewMemory(&doc.Document{Root: text}, nil)

	segs, err := m.TextSegments(context.Background(), text)
	if err != nil {
		t.Fatalf("TextSegments: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("segment count = %d, want 1", len(segs))
	}
	if segs[0].Characters != "hi" || len(segs[0].Fills) != 1 {
		t.Errorf("synthesized segment = %+v, want node characters and fills", segs[0])
	}
}

func TestClose_RejectsFurtherCalls(t *testing.T) {
	m := NewMemory(&doc.Document{}, nil)
	m.Close()

	if !m.Closed() {
		t.Fatal("Closed() = false after Close")
	}
	if _, err := m.Selection(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("Selection after Close = %v, want ErrClosed", err)
	}
	if _, err := m.CreateRectangle(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("CreateRectangle after Close = %v, want ErrClosed", err)
	}
}

func TestNotify_RecordsAndForwards(t *testing.T) {
	m := NewMemory(&doc.Document{}, nil)
	var forwarded []string
	m.NotifyFunc = func(msg string) { forwarded = append(forwarded, msg) }

	m.Notify("one")
	m.Notify("two")

	if got := m.Notifications(); len(got) != 2 || got[0] != "one" {
		t.Errorf("Notifications() = %v, want [one two]", got)
	}
	if len(forwarded) != 2 || forwarded[1] != "two" {
		t.Errorf("forwarded = %v, want [one two]", forwarded)
	}
}
