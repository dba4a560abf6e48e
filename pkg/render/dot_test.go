package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/ghostify/pkg/doc"
)

func sampleDoc() *doc.Document {
	page := &doc.Node{ID: "0:0", Name: "Page 1", Kind: doc.KindPage}
	frame := &doc.Node{ID: "1:0", Name: "Card", Kind: doc.KindFrame}
	ghost := &doc.Node{ID: "1:1", Name: "Ghost_Title", Kind: doc.KindRectangle, Opacity: 0.2}
	inst := &doc.Node{ID: "1:2", Name: "Button", Kind: doc.KindInstance}
	_ = page.AppendChild(frame)
	_ = frame.AppendChild(ghost)
	_ = frame.AppendChild(inst)
	return &doc.Document{Name: "sample", Root: page}
}

func TestToDOT_ContainsAllNodesAndEdges(t *testing.T) {
	dot := ToDOT(sampleDoc(), Options{})

	for _, id := range []string{`"0:0"`, `"1:0"`, `"1:1"`, `"1:2"`} {
		if !strings.Contains(dot, id) {
			t.Errorf("DOT missing node %s", id)
		}
	}
	for _, edge := range []string{`"0:0" -> "1:0"`, `"1:0" -> "1:1"`, `"1:0" -> "1:2"`} {
		if !strings.Contains(dot, edge) {
			t.Errorf("DOT missing edge %s", edge)
		}
	}
}

func TestToDOT_StylesByKind(t *testing.T) {
	dot := ToDOT(sampleDoc(), Options{})

	if !strings.Contains(dot, "dashed") {
		t.Error("ghost nodes should be dashed")
	}
	if !strings.Contains(dot, "peripheries=2") {
		t.Error("instances should be double-bordered")
	}
}

func TestToDOT_DetailedLabels(t *testing.T) {
	d := sampleDoc()
	text := &doc.Node{ID: "2:0", Name: "Caption", Kind: doc.KindText, Width: 100, Height: 16, Characters: "hey"}
	_ = d.Root.AppendChild(text)

	plain := ToDOT(d, Options{})
	detailed := ToDOT(d, Options{Detailed: true})

	if strings.Contains(plain, "chars:") {
		t.Error("plain labels must not include text details")
	}
	if !strings.Contains(detailed, "chars: 3") {
		t.Error("detailed labels must include the character count")
	}
}

func TestToDOT_EmptyDocument(t *testing.T) {
	dot := ToDOT(&doc.Document{}, Options{})
	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(strings.TrimSpace(dot), "}") {
		t.Errorf("ToDOT(empty) produced malformed DOT:\n%s", dot)
	}
}
