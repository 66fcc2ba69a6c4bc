package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

// WriteJSON marshals v as JSON and writes it to w with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

// CollectionResponse is the envelope of list endpoints.
type CollectionResponse[T any] struct {
	Results []T `json:"results"`
}

// maxBodyBytes bounds request bodies read by DecodeJSON.
const maxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into v. On failure it writes a 400
// response and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	present, ok := DecodeOptionalJSON(w, r, v)
	if ok && !present {
		writeInvalidJSON(w, r)
		return false
	}
	return ok
}

// DecodeOptionalJSON is DecodeJSON for endpoints where the body may be
// omitted. present is false when the body is empty, whatever the declared
// Content-Length or transfer encoding.
func DecodeOptionalJSON(w http.ResponseWriter, r *http.Request, v any) (present, ok bool) {
	if r.Body == nil || r.Body == http.NoBody {
		return false, true
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return false, true
		}
		writeInvalidJSON(w, r)
		return false, false
	}
	return true, true
}

func writeInvalidJSON(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusBadRequest, NewValidationError("Invalid input JSON", CorrelationID(r.Context()), nil))
}
