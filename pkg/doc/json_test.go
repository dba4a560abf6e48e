package doc

import (
	"strings"
	"testing"
)

const sampleJSON = `{
  "name": "Onboarding",
  "root": {
    "id": "0:1",
    "name": "Page 1",
    "type": "PAGE",
    "children": [
      {
        "id": "1:0",
        "name": "Hero",
        "type": "FRAME",
        "width": 375,
        "height": 200,
        "children": [
          {
            "id": "1:1",
            "name": "Title",
            "type": "TEXT",
            "x": 16,
            "y": 24,
            "width": 343,
            "height": 40,
            "characters": "Welcome back",
            "fontSize": 32,
            "fills": [{"type": "SOLID", "color": {"r": 0.1, "g": 0.1, "b": 0.1}, "opacity": 1}]
          },
          {
            "id": "1:2",
            "name": "CTA",
            "type": "INSTANCE",
            "width": 120,
            "height": 44,
            "children": [
              {"id": "1:3", "name": "Label", "type": "TEXT", "characters": "Start", "fontSize": 16}
            ]
          }
        ]
      }
    ]
  }
}`

func TestRead_RebuildsParents(t *testing.T) {
	d, err := Read(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if d.Name != "Onboarding" {
		t.Errorf("Name = %q, want Onboarding", d.Name)
	}
	if d.Root.Parent() != nil {
		t.Error("root must have no parent")
	}

	hero := d.Root.Children()[0]
	if hero.Parent() != d.Root {
		t.Error("parent pointer not rebuilt for top-level frame")
	}
	title := hero.Children()[0]
	if title.Parent() != hero {
		t.Error("parent pointer not rebuilt for nested node")
	}
	if title.Kind != KindText || title.FontSize != 32 {
		t.Errorf("title decoded as %s/%v, want TEXT/32", title.Kind, title.FontSize)
	}
	if len(title.Fills) != 1 || title.Fills[0].Type != PaintSolid {
		t.Errorf("title fills = %+v, want one solid fill", title.Fills)
	}
	if got := hero.IndexOf(title); got != 0 {
		t.Errorf("IndexOf(title) = %d, want 0", got)
	}
}

func TestRoundTrip(t *testing.T) {
	d, err := Read(strings.NewReader(sampleJSON))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	data, err := Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	d2, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if d2.Root.Count() != d.Root.Count() {
		t.Errorf("round-trip node count = %d, want %d", d2.Root.Count(), d.Root.Count())
	}
	inst := d2.Root.Children()[0].Children()[1]
	if inst.Kind != KindInstance || inst.Width != 120 {
		t.Errorf("instance decoded as %s/%v, want INSTANCE/120", inst.Kind, inst.Width)
	}
	label := inst.Children()[0]
	if label.Characters != "Start" || label.Parent() != inst {
		t.Error("nested instance child lost state across round-trip")
	}
}

func TestRead_MissingRoot(t *testing.T) {
	if _, err := Read(strings.NewReader(`{"name": "empty"}`)); err == nil {
		t.Error("Read without root must fail")
	}
	if _, err := Read(strings.NewReader(`not json`)); err == nil {
		t.Error("Read of malformed input must fail")
	}
}
