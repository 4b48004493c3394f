package handlers

import (
	"net/http"

	"libraryapi/internal/query"
)

// Route names used for link generation.
const (
	RouteRoot                = "GetRoot"
	RouteGetAuthors          = "GetAuthors"
	RouteGetAuthor           = "GetAuthor"
	RouteCreateAuthor        = "CreateAuthor"
	RouteDeleteAuthor        = "DeleteAuthor"
	RouteGetBooks            = "GetBooksForAuthor"
	RouteGetBook             = "GetBookForAuthor"
	RouteCreateBook          = "CreateBookForAuthor"
	RouteUpdateBook          = "UpdateBookForAuthor"
	RoutePatchBook           = "PartiallyUpdateBookForAuthor"
	RouteDeleteBook          = "DeleteBookForAuthor"
	RouteGetAuthorCollection = "GetAuthorCollection"
)

var routeTemplates = map[string]string{
	RouteRoot:                "/api",
	RouteGetAuthors:          "/api/authors",
	RouteGetAuthor:           "/api/authors/{authorId}",
	RouteCreateAuthor:        "/api/authors",
	RouteDeleteAuthor:        "/api/authors/{authorId}",
	RouteGetBooks:            "/api/authors/{authorId}/books",
	RouteGetBook:             "/api/authors/{authorId}/books/{bookId}",
	RouteCreateBook:          "/api/authors/{authorId}/books",
	RouteUpdateBook:          "/api/authors/{authorId}/books/{bookId}",
	RoutePatchBook:           "/api/authors/{authorId}/books/{bookId}",
	RouteDeleteBook:          "/api/authors/{authorId}/books/{bookId}",
	RouteGetAuthorCollection: "/api/authorcollections/({ids})",
}

// Hypermedia renders the links of every resource the API exposes.
type Hypermedia struct {
	Links   *query.LinkBuilder
	Authors *query.ResourceLinker
	Books   *query.ResourceLinker
}

// NewHypermedia builds absolute links under baseURL. It fails on a
// malformed base URL.
func NewHypermedia(baseURL string) (*Hypermedia, error) {
	links, err := query.NewLinkBuilder(baseURL, routeTemplates)
	if err != nil {
		return nil, err
	}

	authors, err := query.NewResourceLinker(links, query.ResourceLinks{
		Item:       RouteGetAuthor,
		Collection: RouteGetAuthors,
		Affordance: []query.LinkSpec{
			{Route: RouteDeleteAuthor, Rel: "delete_author", Method: http.MethodDelete},
			{Route: RouteCreateBook, Rel: "create_book_for_author", Method: http.MethodPost},
			{Route: RouteGetBooks, Rel: "books", Method: http.MethodGet},
		},
	})
	if err != nil {
		return nil, err
	}

	books, err := query.NewResourceLinker(links, query.ResourceLinks{
		Item:       RouteGetBook,
		Collection: RouteGetBooks,
		Affordance: []query.LinkSpec{
			{Route: RouteDeleteBook, Rel: "delete_book", Method: http.MethodDelete},
			{Route: RouteUpdateBook, Rel: "update_book", Method: http.MethodPut},
			{Route: RoutePatchBook, Rel: "partially_update_book", Method: http.MethodPatch},
		},
	})
	if err != nil {
		return nil, err
	}

	return &Hypermedia{Links: links, Authors: authors, Books: books}, nil
}

// rootLinks lists the entry points of the API.
func (h *Hypermedia) rootLinks() ([]query.Link, error) {
	specs := []query.LinkSpec{
		{Route: RouteRoot, Rel: "self", Method: http.MethodGet},
		{Route: RouteGetAuthors, Rel: "authors", Method: http.MethodGet},
		{Route: RouteCreateAuthor, Rel: "create_authors", Method: http.MethodPost},
	}
	links := make([]query.Link, 0, len(specs))
	for _, s := range specs {
		link, err := h.Links.Link(s.Route, s.Rel, s.Method, nil, nil)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}
