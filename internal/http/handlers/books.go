package handlers

import (
	"net/http"

	"libraryapi/internal/query"
	"libraryapi/internal/services/library"

	"github.com/google/uuid"
)

// bookIDs reads authorId and bookId. Malformed ids cannot name a resource.
func bookIDs(r *http.Request) (authorID, bookID uuid.UUID, ok bool) {
	authorID, err := parseUUIDParam(r, "authorId")
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	bookID, err = parseUUIDParam(r, "bookId")
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	return authorID, bookID, true
}

// ListBooks handles GET /api/authors/{authorId}/books.
func ListBooks(svc *library.Service, hm *Hypermedia, defaults query.ParameterDefaults) http.HandlerFunc {
	view := bookView(hm)
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, err := parseUUIDParam(r, "authorId")
		if err != nil {
			notFoundResponse(w, r)
			return
		}
		params, err := query.ParseResourceParameters(r.URL.Query(), defaults)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}

		page, err := svc.ListBooks(r.Context(), authorID, params)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}
		view.writePage(w, r, page, params, query.RouteValues{"authorId": authorID.String()})
	}
}

// GetBook handles GET /api/authors/{authorId}/books/{bookId}.
func GetBook(svc *library.Service, hm *Hypermedia) http.HandlerFunc {
	view := bookView(hm)
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, bookID, ok := bookIDs(r)
		if !ok {
			notFoundResponse(w, r)
			return
		}
		fields := r.URL.Query().Get(query.ParamFields)

		dto, err := svc.GetBook(r.Context(), authorID, bookID, fields)
		if err != nil {
			handleServiceError(w, r, err)
			return
		}
		view.writeItem(w, r, http.StatusOK, *dto, fields, nil)
	}
}

// CreateBook handles POST /api/authors/{authorId}/books.
func CreateBook(svc *library.Service, hm *Hypermedia) http.HandlerFunc {
	view := bookView(hm)
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, err := parseUUIDParam(r, "authorId")
		if err != nil {
			notFoundResponse(w, r)
			return
		}
		var in library.BookForCreation
		if err := readJSON(w, r, &in); err != nil {
			badRequestResponse(w, r, err)
			return
		}

		dto, err := svc.CreateBook(r.Context(), authorID, in)
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

// UpdateBook handles PUT /api/authors/{authorId}/books/{bookId}.
func UpdateBook(svc *library.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, bookID, ok := bookIDs(r)
		if !ok {
			notFoundResponse(w, r)
			return
		}
		var in library.BookForUpdate
		if err := readJSON(w, r, &in); err != nil {
			badRequestResponse(w, r, err)
			return
		}

		if err := svc.UpdateBook(r.Context(), authorID, bookID, in); err != nil {
			handleServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// PatchBook handles PATCH /api/authors/{authorId}/books/{bookId}.
func PatchBook(svc *library.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, bookID, ok := bookIDs(r)
		if !ok {
			notFoundResponse(w, r)
			return
		}
		var patch library.BookPatch
		if err := readJSON(w, r, &patch); err != nil {
			badRequestResponse(w, r, err)
			return
		}

		if _, err := svc.PatchBook(r.Context(), authorID, bookID, patch); err != nil {
			handleServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteBook handles DELETE /api/authors/{authorId}/books/{bookId}.
func DeleteBook(svc *library.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, bookID, ok := bookIDs(r)
		if !ok {
			notFoundResponse(w, r)
			return
		}
		if err := svc.DeleteBook(r.Context(), authorID, bookID); err != nil {
			handleServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
