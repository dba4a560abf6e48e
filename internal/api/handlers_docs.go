package api

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/ghostify/pkg/doc"
	"github.com/matzehuels/ghostify/pkg/errors"
	"github.com/matzehuels/ghostify/pkg/store"
)

// documentMeta is the metadata view of a stored document.
type documentMeta struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func metaFromRecord(rec *store.Record) documentMeta {
	return documentMeta{
		ID:        rec.ID,
		Name:      rec.Name,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

// handleCreateDocument stores the uploaded document under a new ID.
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	data, err := s.readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	d, err := doc.Unmarshal(data)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document"))
		return
	}

	rec := &store.Record{
		ID:   uuid.NewString(),
		Name: d.Name,
		Data: data,
	}
	if err := s.store.Put(r.Context(), rec); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "store document"))
		return
	}
	writeJSON(w, http.StatusCreated, metaFromRecord(rec))
}

// handleListDocuments lists stored document metadata, newest first.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "list documents"))
		return
	}
	metas := make([]documentMeta, 0, len(recs))
	for _, rec := range recs {
		metas = append(metas, metaFromRecord(rec))
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": metas})
}

// handleGetDocument returns the stored document JSON.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadRecord(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(rec.Data)
}

// handleDeleteDocument removes a stored document.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if err := errors.ValidateNodeID(docID); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), docID); err != nil {
		writeError(w, storeError(err, docID))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": docID})
}

// handleGhostDocument runs the transform over a stored document and
// persists the result in place.
func (s *Server) handleGhostDocument(w http.ResponseWriter, r *http.Request) {
	rec, err := s.loadRecord(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	opts, err := s.optionsFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), rec.Data, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	rec.Data = result.Output
	if err := s.store.Put(r.Context(), rec); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "store transformed document"))
		return
	}
	writeJSON(w, http.StatusOK, ghostFromResult(result))
}

func (s *Server) loadRecord(w http.ResponseWriter, r *http.Request) (*store.Record, error) {
	docID := chi.URLParam(r, "docID")
	if err := errors.ValidateNodeID(docID); err != nil {
		return nil, err
	}
	rec, err := s.store.Get(r.Context(), docID)
	if err != nil {
		return nil, storeError(err, docID)
	}
	return rec, nil
}

func storeError(err error, docID string) error {
	if stderrors.Is(err, store.ErrNotFound) {
		return errors.New(errors.ErrCodeDocumentNotFound, "document %q not found", docID)
	}
	return errors.Wrap(errors.ErrCodeStorage, err, "access document %q", docID)
}
