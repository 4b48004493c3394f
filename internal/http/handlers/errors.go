package handlers

import (
	"errors"
	"net/http"

	"libraryapi/internal/query"
	"libraryapi/internal/services/library"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func logError(r *http.Request, err error) {
	log.Error().
		Err(err).
		Str("request_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("uri", r.URL.RequestURI()).
		Msg("request failed")
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	if err := writeJSON(w, r, status, envelope{"error": message}, nil); err != nil {
		logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logError(r, err)
	errorResponse(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func conflictResponse(w http.ResponseWriter, r *http.Request) {
	errorResponse(w, r, http.StatusConflict, "the resource already exists")
}

func failedValidationResponse(w http.ResponseWriter, r *http.Request, errs map[string]string) {
	errorResponse(w, r, http.StatusUnprocessableEntity, errs)
}

// NotFound answers requests for unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	notFoundResponse(w, r)
}

// MethodNotAllowed answers requests with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	errorResponse(w, r, http.StatusMethodNotAllowed, "the "+r.Method+" method is not supported for this resource")
}

// handleServiceError maps service and query errors to responses.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *library.ValidationError
	if clientErr, ok := query.AsClientError(err); ok {
		badRequestResponse(w, r, clientErr)
		return
	}
	switch {
	case errors.As(err, &validationErr):
		failedValidationResponse(w, r, validationErr.Errors)
	case errors.Is(err, library.ErrNotFound):
		notFoundResponse(w, r)
	case errors.Is(err, library.ErrConflict):
		conflictResponse(w, r)
	default:
		serverErrorResponse(w, r, err)
	}
}
