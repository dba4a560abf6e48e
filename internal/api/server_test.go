package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ghostify/pkg/doc"
	"github.com/matzehuels/ghostify/pkg/pipeline"
	"github.com/matzehuels/ghostify/pkg/store"
)

const apiDoc = `{
  "name": "Sample",
  "root": {
    "id": "0:0", "name": "Page 1", "type": "PAGE",
    "children": [
      {
        "id": "1:0", "name": "Card", "type": "FRAME",
        "children": [
          {"id": "1:1", "name": "Title", "type": "TEXT",
           "width": 200, "height": 24, "characters": "Hello there", "fontSize": 24}
        ]
      }
    ]
  }
}`

func newTestServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	logger := log.New(io.Discard)
	return NewServer(pipeline.NewRunner(nil, logger), st, logger), st
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %q, want status ok", rec.Body.String())
	}
}

func TestGhost_Stateless(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/ghost", strings.NewReader(apiDoc))
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp ghostResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Stats.Ghosted != 1 {
		t.Errorf("Ghosted = %d, want 1", resp.Stats.Ghosted)
	}
	out, err := doc.Unmarshal(resp.Document)
	if err != nil {
		t.Fatalf("response document invalid: %v", err)
	}
	title := out.Root.Children()[0].Children()[0]
	if title.Name != "Ghost_Title" {
		t.Errorf("node name = %q, want Ghost_Title", title.Name)
	}
}

func TestGhost_EmptyBody(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/ghost", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGhost_InvalidConfigParam(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/ghost?corner_radius=nope", strings.NewReader(apiDoc))
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}

func TestDocuments_CRUD(t *testing.T) {
	s, _ := newTestServer(t)

	// Create.
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/documents", strings.NewReader(apiDoc)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var meta documentMeta
	if err := json.Unmarshal(rec.Body.Bytes(), &meta); err != nil {
		t.Fatalf("decode meta: %v", err)
	}
	if meta.ID == "" || meta.Name != "Sample" {
		t.Errorf("meta = %+v, want non-empty ID and name Sample", meta)
	}

	// Get.
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/documents/"+meta.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"Title"`) {
		t.Error("get must return the stored document")
	}

	// List.
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/documents", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), meta.ID) {
		t.Error("list must include the created document")
	}

	// Delete.
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/documents/"+meta.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want %d", rec.Code, http.StatusOK)
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/documents/"+meta.ID, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestGhostDocument_PersistsResult(t *testing.T) {
	s, st := newTestServer(t)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/documents", strings.NewReader(apiDoc)))
	var meta documentMeta
	if err := json.Unmarshal(rec.Body.Bytes(), &meta); err != nil {
		t.Fatalf("decode meta: %v", err)
	}

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/documents/"+meta.ID+"/ghost", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ghost status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	stored, err := st.Get(context.Background(), meta.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !strings.Contains(string(stored.Data), "Ghost_Title") {
		t.Error("stored document must hold the transformed tree")
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/documents/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !strings.Contains(rec.Body.String(), "DOCUMENT_NOT_FOUND") {
		t.Errorf("body = %q, want DOCUMENT_NOT_FOUND code", rec.Body.String())
	}
}
