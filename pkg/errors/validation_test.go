package errors

import (
	"strings"
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "valid colon-separated id", id: "12:345", wantErr: false},
		{name: "valid uuid style", id: "4f7c1a9e-0b7e-4c1e-8b2f-8d3f2a1c9e77", wantErr: false},
		{name: "empty", id: "", wantErr: true},
		{name: "whitespace", id: "1 2", wantErr: true},
		{name: "control character", id: "a\x01b", wantErr: true},
		{name: "too long", id: strings.Repeat("x", 129), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidNodeID) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidNodeID)
			}
		})
	}
}

func TestValidateDocumentPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "relative path", path: "designs/home.json", wantErr: false},
		{name: "absolute path", path: "/tmp/doc.json", wantErr: false},
		{name: "empty", path: "", wantErr: true},
		{name: "null byte", path: "doc\x00.json", wantErr: true},
		{name: "too long", path: strings.Repeat("a", 501), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocumentPath(%q) = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSelection(t *testing.T) {
	ids, err := ValidateSelection("1:2, 3:4,,5:6,")
	if err != nil {
		t.Fatalf("ValidateSelection: %v", err)
	}
	want := []string{"1:2", "3:4", "5:6"}
	if len(ids) != len(want) {
		t.Fatalf("len = %d, want %d", len(ids), len(want))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}

	if _, err := ValidateSelection(",,"); !Is(err, ErrCodeInvalidSelection) {
		t.Errorf("ValidateSelection(empty) = %v, want INVALID_SELECTION", err)
	}
	if _, err := ValidateSelection("ok,ba d"); !Is(err, ErrCodeInvalidNodeID) {
		t.Errorf("ValidateSelection(bad id) = %v, want INVALID_NODE_ID", err)
	}
}
