package middlewarex

import (
	"mime"
	"net/http"
	"strings"
)

// MediaTypeHATEOAS asks for responses carrying hypermedia links.
const MediaTypeHATEOAS = "application/vnd.library.hateoas+json"

var plainJSON = map[string]bool{
	"application/json": true,
	"application/*":    true,
	"*/*":              true,
}

// NegotiateMediaType rejects requests whose Accept header names no JSON
// media type and flags requests for the hypermedia type in the context.
func NegotiateMediaType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hypermedia, ok := negotiate(r.Header.Values("Accept"))
		if !ok {
			writeError(w, http.StatusNotAcceptable, "supported media types are application/json and "+MediaTypeHATEOAS)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithHypermedia(r.Context(), hypermedia)))
	})
}

func negotiate(accept []string) (hypermedia, ok bool) {
	if len(accept) == 0 {
		return false, true
	}
	for _, header := range accept {
		for _, part := range strings.Split(header, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			mt, _, err := mime.ParseMediaType(part)
			if err != nil {
				continue
			}
			switch {
			case mt == MediaTypeHATEOAS:
				hypermedia, ok = true, true
			case plainJSON[mt]:
				ok = true
			}
		}
	}
	return hypermedia, ok
}
