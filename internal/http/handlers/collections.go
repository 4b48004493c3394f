package handlers

import (
	"net/http"
	"strings"

	"libraryapi/internal/query"
	"libraryapi/internal/services/library"

	"github.com/go-chi/chi/v5"
)

// CreateAuthorCollection handles POST /api/authorcollections. The Location
// header names the created collection.
func CreateAuthorCollection(svc *library.Service, hm *Hypermedia) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ins []library.AuthorForCreation
		if err := readJSON(w, r, &ins); err != nil {
			badRequestResponse(w, r, err)
			return
		}

		created, err := svc.CreateAuthorCollection(r.Context(), ins)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}

		ids := make([]string, len(created))
		for i, a := range created {
			ids[i] = a.ID.String()
		}
		location, err := hm.Links.URI(RouteGetAuthorCollection, query.RouteValues{"ids": strings.Join(ids, ",")}, nil)
		if err != nil {
			serverErrorResponse(w, r, err)
			return
		}
		if err := writeJSON(w, r, http.StatusCreated, created, http.Header{"Location": {location}}); err != nil {
			logError(r, err)
		}
	}
}

// GetAuthorCollection handles GET /api/authorcollections/({ids}).
func GetAuthorCollection(svc *library.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids, err := parseIDList(chi.URLParam(r, "ids"))
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}

		authors, err := svc.GetAuthorCollection(r.Context(), ids)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}
		if err := writeJSON(w, r, http.StatusOK, authors, nil); err != nil {
			logError(r, err)
		}
	}
}
