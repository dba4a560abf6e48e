package api

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/ghostify/pkg/errors"
)

type errorPayload struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusFor(code), errorPayload{
		Error: errors.UserMessage(err),
		Code:  code,
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidDocument,
		errors.ErrCodeInvalidSelection,
		errors.ErrCodeInvalidNodeID,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeDocumentNotFound,
		errors.ErrCodeNodeNotFound,
		errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
