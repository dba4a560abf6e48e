package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/ghostify/pkg/errors"
	"github.com/matzehuels/ghostify/pkg/ghost"
	"github.com/matzehuels/ghostify/pkg/pipeline"
)

// ghostResponse is the body of a successful transform.
type ghostResponse struct {
	Document  json.RawMessage `json:"document"`
	Stats     ghost.Stats     `json:"stats"`
	Notices   []string        `json:"notices,omitempty"`
	DocHash   string          `json:"doc_hash"`
	FromCache bool            `json:"from_cache"`
}

// handleGhost transforms a document uploaded in the request body
// without storing it.
func (s *Server) handleGhost(w http.ResponseWriter, r *http.Request) {
	data, err := s.readBody(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	opts, err := s.optionsFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), data, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ghostFromResult(result))
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "read request body")
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "request body is empty")
	}
	return data, nil
}

// optionsFromQuery builds pipeline options from the request query.
// Supported parameters: select (comma-separated node IDs),
// corner_radius, base_opacity, min_opacity, max_opacity.
func (s *Server) optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	opts := pipeline.Options{CacheTTL: s.CacheTTL}

	if sel := r.URL.Query().Get("select"); sel != "" {
		ids, err := errors.ValidateSelection(sel)
		if err != nil {
			return opts, err
		}
		opts.Selection = ids
	}

	cfg := ghost.DefaultConfig()
	fields := map[string]*float64{
		"corner_radius": &cfg.CornerRadius,
		"base_opacity":  &cfg.BaseOpacity,
		"min_opacity":   &cfg.MinOpacity,
		"max_opacity":   &cfg.MaxOpacity,
	}
	for name, dst := range fields {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return opts, errors.New(errors.ErrCodeInvalidConfig, "invalid %s: %q", name, raw)
		}
		*dst = v
	}
	opts.Config = cfg
	return opts, nil
}

func ghostFromResult(result *pipeline.Result) ghostResponse {
	return ghostResponse{
		Document:  json.RawMessage(result.Output),
		Stats:     result.Stats,
		Notices:   result.Notices,
		DocHash:   result.DocHash,
		FromCache: result.FromCache,
	}
}
