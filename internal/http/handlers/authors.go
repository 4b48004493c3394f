package handlers

import (
	"net/http"

	"libraryapi/internal/query"
	"libraryapi/internal/services/library"
)

// ListAuthors handles GET /api/authors.
func ListAuthors(svc *library.Service, hm *Hypermedia, defaults query.ParameterDefaults) http.HandlerFunc {
	view := authorView(hm)
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := query.ParseResourceParameters(r.URL.Query(), defaults)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}

		page, err := svc.ListAuthors(r.Context(), params)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}
		view.writePage(w, r, page, params, nil)
	}
}

// GetAuthor handles GET /api/authors/{authorId}.
func GetAuthor(svc *library.Service, hm *Hypermedia) http.HandlerFunc {
	view := authorView(hm)
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "authorId")
		if err != nil {
			notFoundResponse(w, r)
			return
		}
		fields := r.URL.Query().Get(query.ParamFields)

		dto, err := svc.GetAuthor(r.Context(), id, fields)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}
		view.writeItem(w, r, http.StatusOK, *dto, fields, nil)
	}
}

// CreateAuthor handles POST /api/authors.
func CreateAuthor(svc *library.Service, hm *Hypermedia) http.HandlerFunc {
	view := authorView(hm)
	return func(w http.ResponseWriter, r *http.Request) {
		var in library.AuthorForCreation
		if err := readJSON(w, r, &in); err != nil {
			badRequestResponse(w, r, err)
			return
		}

		dto, err := svc.CreateAuthor(r.Context(), in)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}
		location, err := view.location(*dto)
		if err != nil {
			serverErrorResponse(w, r, err)
			return
		}
		view.writeItem(w, r, http.StatusCreated, *dto, "", http.Header{"Location": {location}})
	}
}

// BlockAuthorCreation handles POST /api/authors/{authorId}: 409 when the
// author exists, 404 otherwise.
func BlockAuthorCreation(svc *library.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "authorId")
		if err != nil {
			notFoundResponse(w, r)
			return
		}
		handleServiceError(w, r, svc.BlockAuthorCreation(r.Context(), id))
	}
}

// DeleteAuthor handles DELETE /api/authors/{authorId}.
func DeleteAuthor(svc *library.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "authorId")
		if err != nil {
			notFoundResponse(w, r)
			return
		}
		if err := svc.DeleteAuthor(r.Context(), id); err != nil {
			handleServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
