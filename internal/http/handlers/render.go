package handlers

import (
	"net/http"

	middlewarex "libraryapi/internal/http/middleware"
	"libraryapi/internal/query"
	"libraryapi/internal/services/library"
)

// resourceView renders one resource type as shaped entities, with links in
// hypermedia mode.
type resourceView[T any] struct {
	schema     query.Schema[T]
	linker     *query.ResourceLinker
	itemValues func(T) query.RouteValues
}

func authorView(hm *Hypermedia) resourceView[library.AuthorDTO] {
	return resourceView[library.AuthorDTO]{
		schema: library.AuthorDTOSchema,
		linker: hm.Authors,
		itemValues: func(a library.AuthorDTO) query.RouteValues {
			return query.RouteValues{"authorId": a.ID.String()}
		},
	}
}

func bookView(hm *Hypermedia) resourceView[library.BookDTO] {
	return resourceView[library.BookDTO]{
		schema: library.BookDTOSchema,
		linker: hm.Books,
		itemValues: func(b library.BookDTO) query.RouteValues {
			return query.RouteValues{"authorId": b.AuthorID.String(), "bookId": b.ID.String()}
		},
	}
}

// location is the self URI of item.
func (v resourceView[T]) location(item T) (string, error) {
	links, err := v.linker.ItemLinks(v.itemValues(item), "")
	if err != nil {
		return "", err
	}
	return links[0].Href, nil
}

func (v resourceView[T]) writeItem(w http.ResponseWriter, r *http.Request, status int, item T, fields string, headers http.Header) {
	shaped, err := query.Shape(item, fields, v.schema)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if middlewarex.Hypermedia(r.Context()) {
		links, err := v.linker.ItemLinks(v.itemValues(item), fields)
		if err != nil {
			serverErrorResponse(w, r, err)
			return
		}
		shaped.WithLinks(links)
	}
	if err := writeJSON(w, r, status, shaped, headers); err != nil {
		logError(r, err)
	}
}

// writePage writes one page of the collection at values. Page links go to
// X-Pagination outside hypermedia mode and into the body inside it.
func (v resourceView[T]) writePage(w http.ResponseWriter, r *http.Request, page *query.PagedResult[T], params query.ResourceParameters, values query.RouteValues) {
	shaped, err := query.ShapeAll(page.Items, params.Fields, v.schema)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	hypermedia := middlewarex.Hypermedia(r.Context())
	meta := page.Metadata()
	if !hypermedia {
		if page.HasPrevious() {
			if meta.PreviousPageLink, err = v.linker.PageURI(values, params.WithPage(params.PageNumber-1)); err != nil {
				serverErrorResponse(w, r, err)
				return
			}
		}
		if page.HasNext() {
			if meta.NextPageLink, err = v.linker.PageURI(values, params.WithPage(params.PageNumber+1)); err != nil {
				serverErrorResponse(w, r, err)
				return
			}
		}
	}
	if err := setPagination(w, meta); err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	if !hypermedia {
		if err := writeJSON(w, r, http.StatusOK, shaped, nil); err != nil {
			logError(r, err)
		}
		return
	}

	for i, item := range page.Items {
		links, err := v.linker.ItemLinks(v.itemValues(item), params.Fields)
		if err != nil {
			serverErrorResponse(w, r, err)
			return
		}
		shaped[i].WithLinks(links)
	}
	links, err := v.linker.CollectionLinks(values, params, page.HasNext(), page.HasPrevious())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	if err := writeJSON(w, r, http.StatusOK, envelope{"value": shaped, "links": links}, nil); err != nil {
		logError(r, err)
	}
}
