package handlers

import (
	"net/http"

	middlewarex "libraryapi/internal/http/middleware"
)

// GetRoot handles GET /api. Only hypermedia clients get a body.
func GetRoot(hm *Hypermedia) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !middlewarex.Hypermedia(r.Context()) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		links, err := hm.rootLinks()
		if err != nil {
			serverErrorResponse(w, r, err)
			return
		}
		if err := writeJSON(w, r, http.StatusOK, links, nil); err != nil {
			logError(r, err)
		}
	}
}
