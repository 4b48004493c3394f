package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	middlewarex "libraryapi/internal/http/middleware"
	"libraryapi/internal/query"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var (
	json       = jsoniter.ConfigCompatibleWithStandardLibrary
	strictJSON = jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		DisallowUnknownFields:  true,
	}.Froze()
)

const maxBodyBytes = 1_048_576

// envelope wraps response bodies that are not a bare resource.
type envelope map[string]any

// writeJSON writes data as JSON. Requests negotiated for hypermedia get the
// vendor media type back.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	contentType := "application/json"
	if middlewarex.Hypermedia(r.Context()) {
		contentType = middlewarex.MediaTypeHATEOAS
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

// readJSON decodes exactly one JSON value of at most 1MB into dst and
// rejects unknown fields.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return fmt.Errorf("body must not be larger than %d bytes", maxBytesErr.Limit)
		}
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errors.New("body must not be empty")
	}
	if err := strictJSON.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("body contains badly-formed JSON: %v", err)
	}
	return nil
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s parameter", name)
	}
	return id, nil
}

// parseIDList reads "(id1,id2)" or "id1,id2", escaped or not.
func parseIDList(raw string) ([]uuid.UUID, error) {
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	raw = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(raw), "("), ")")

	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, errors.New("at least one id is required")
	}
	return ids, nil
}

// setPagination writes the X-Pagination header.
func setPagination(w http.ResponseWriter, meta query.PaginationMetadata) error {
	js, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	w.Header().Set("X-Pagination", string(js))
	return nil
}
